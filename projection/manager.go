package projection

import (
	"github.com/google/uuid"
	"github.com/obra-studios/lienzo-collab"
)

// Manager owns a document and the enumeration caches that sit on top of
// it: the set of frame ids reachable from the root, rebuilt by the
// Manager's own CreateFrame and DeleteFrame and after every Merge
// (§4.4 "Rebuild after merge"). Frames created or deleted directly on the
// document or through a FrameView do not refresh it.
type Manager struct {
	doc    *crdt.Document
	frames []crdt.Id
}

// NewManager creates a Manager backed by a fresh document at the given
// site id.
func NewManager(site string) *Manager {
	m := &Manager{doc: crdt.NewDocument(site)}
	m.rebuild()
	return m
}

// NewDefaultManager creates a Manager at a freshly generated site id, for
// callers that have no natural site identity of their own (§1).
func NewDefaultManager() *Manager {
	return NewManager(uuid.NewString())
}

// SiteID returns the site id the manager's document mints ids under.
func (m *Manager) SiteID() string {
	return m.doc.Site
}

// Document exposes the underlying document for callers (serialization,
// merge, debug printing) that need the raw CRDT layer.
func (m *Manager) Document() *crdt.Document {
	return m.doc
}

// rebuild recomputes the frames cache by walking the visible children of
// the root, keeping those whose type tag is "frame" and descending into
// each such frame's visible children in turn. It never trusts a stamp
// embedded in merged state -- only the current, merged document's own
// child lists.
func (m *Manager) rebuild() {
	var frames []crdt.Id
	visited := make(map[string]bool)
	var walk func(parent crdt.Id)
	walk = func(parent crdt.Id) {
		for _, id := range m.doc.Children(parent) {
			n := m.doc.GetNode(id)
			if n == nil || n.Deleted || n.Type != FrameTypeTag || visited[id.String()] {
				continue
			}
			visited[id.String()] = true
			frames = append(frames, id)
			walk(id)
		}
	}
	walk(m.doc.RootID)
	m.frames = frames
}

// CreateFrame creates a new frame under the document root and refreshes
// the frames cache.
func (m *Manager) CreateFrame(x, y, width, height float64) FrameView {
	view := CreateFrame(m.doc, m.doc.RootID, x, y, width, height)
	m.rebuild()
	return view
}

// DeleteFrame tombstones the frame and refreshes the frames cache.
func (m *Manager) DeleteFrame(id crdt.Id) {
	m.doc.DeleteNode(id)
	m.rebuild()
}

// AllFrames returns every live frame reachable from the root, in
// depth-first order of the document's child lists.
func (m *Manager) AllFrames() []FrameView {
	views := make([]FrameView, 0, len(m.frames))
	for _, id := range m.frames {
		if view, ok := AsFrameView(m.doc, id); ok {
			views = append(views, view)
		}
	}
	return views
}

// AllRectangles returns every non-deleted rectangle in the document, found
// by a full scan of the node map (shape enumeration is not cached, since
// shapes may live under any frame); AsRectangleView filters out tombstoned
// nodes.
func (m *Manager) AllRectangles() []RectangleView {
	var views []RectangleView
	for _, id := range m.doc.AllNodeIDs() {
		if view, ok := AsRectangleView(m.doc, id); ok {
			views = append(views, view)
		}
	}
	return views
}

// AllTextBoxes returns every non-deleted text box in the document, found
// by a full scan of the node map; AsTextBoxView filters out tombstoned
// nodes.
func (m *Manager) AllTextBoxes() []TextBoxView {
	var views []TextBoxView
	for _, id := range m.doc.AllNodeIDs() {
		if view, ok := AsTextBoxView(m.doc, id); ok {
			views = append(views, view)
		}
	}
	return views
}

// Merge folds other's document into m's and rebuilds the frames cache
// from the merged result.
func (m *Manager) Merge(other *Manager) {
	m.doc.Merge(other.doc)
	m.rebuild()
}

// Serialize snapshots the underlying document.
func (m *Manager) Serialize() ([]byte, error) {
	return m.doc.Serialize()
}

// DeserializeManager restores a Manager from a snapshot previously
// produced by Serialize.
func DeserializeManager(data []byte) (*Manager, error) {
	doc, err := crdt.Deserialize(data)
	if err != nil {
		return nil, err
	}
	m := &Manager{doc: doc}
	m.rebuild()
	return m, nil
}
