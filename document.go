package crdt

import "github.com/xlab/treeprint"

// rootType is the immutable type tag of every document's root node.
const rootType = "root"

// Document is a replica's view of the shared tree: a map from every id
// ever observed to its node, a root id, and this replica's own site and
// logical clock. Nodes are never physically removed -- deletion is a flag,
// so future merges can recognize a tombstone rather than treat it as
// never-seen.
type Document struct {
	Site   string
	Clock  uint64
	RootID Id
	Nodes  map[string]*Node
}

// NewDocument initializes an empty document for the given site: clock
// starts at 0, and a fresh root node of type "root" is created and
// installed.
func NewDocument(site string) *Document {
	doc := &Document{
		Site:  site,
		Clock: 0,
		Nodes: make(map[string]*Node),
	}
	doc.RootID = doc.nextID()
	doc.Nodes[doc.RootID.String()] = NewNode(doc.RootID, rootType)
	return doc
}

func (d *Document) nextID() Id {
	d.Clock++
	return NewID(d.Site, d.Clock)
}

// CreateNode allocates a fresh id stamped by this replica, installs an
// empty node of the given type, and returns its id.
func (d *Document) CreateNode(nodeType string) Id {
	id := d.nextID()
	d.Nodes[id.String()] = NewNode(id, nodeType)
	return id
}

// CreateNodeWithID installs a node at a caller-supplied id -- used by
// Deserialize to rehydrate nodes at their originally-assigned ids. If id is
// sited at this replica and carries a clock greater than the current one,
// the local clock advances to match, preserving the invariant that every
// locally-sited id observed anywhere has clock <= Document.Clock.
func (d *Document) CreateNodeWithID(id Id, nodeType string) Id {
	d.Nodes[id.String()] = NewNode(id, nodeType)
	if id.Site == d.Site && id.Clock > d.Clock {
		d.Clock = id.Clock
	}
	return id
}

// GetNode looks up a node by id. Deleted nodes are returned (so they can be
// inspected or merged), not hidden; a nil result means the id has never
// been observed.
func (d *Document) GetNode(id Id) *Node {
	return d.Nodes[id.String()]
}

// DeleteNode tombstones the node at id with a fresh local stamp. Unknown
// ids are silently ignored.
func (d *Document) DeleteNode(id Id) {
	n := d.GetNode(id)
	if n == nil {
		return
	}
	n.MarkDeleted(d.nextID())
}

// SetProperty stamps and applies a property write on the node at id.
// Unknown ids are silently ignored.
func (d *Document) SetProperty(id Id, key, value string) {
	n := d.GetNode(id)
	if n == nil {
		return
	}
	n.SetProperty(key, value, d.nextID())
}

// AddChild stamps and applies a child add on parent. Unknown parents are
// silently ignored; the childID need not itself already exist (dangling
// references are permitted -- a later merge may introduce the node).
func (d *Document) AddChild(parent, child Id) {
	n := d.GetNode(parent)
	if n == nil {
		return
	}
	n.AddChild(child, d.nextID())
}

// RemoveChild stamps and applies a child removal on parent. Unknown
// parents, or parents with no matching child entry, are silently ignored.
func (d *Document) RemoveChild(parent, child Id) {
	n := d.GetNode(parent)
	if n == nil {
		return
	}
	n.RemoveChild(child, d.nextID())
}

// Children returns the visible children of parent, in insertion order: a
// child ref must be non-tombstoned AND its referenced node must itself not
// be deleted, since a child's own deletion never tombstones the parent's
// ChildRef to it. An unknown parent returns an empty slice.
func (d *Document) Children(parent Id) []Id {
	n := d.GetNode(parent)
	if n == nil {
		return nil
	}
	out := make([]Id, 0, len(n.Children))
	for _, id := range n.VisibleChildren() {
		if child := d.GetNode(id); child != nil && !child.Deleted {
			out = append(out, id)
		}
	}
	return out
}

// AllNodeIDs returns every id that has a node in the document, including
// deleted ones.
func (d *Document) AllNodeIDs() []Id {
	out := make([]Id, 0, len(d.Nodes))
	for _, n := range d.Nodes {
		out = append(out, n.ID)
	}
	return out
}

// Merge folds other's state into d: node-by-node merge where both replicas
// have seen the id, deep-clone install where only other has. Afterwards,
// the local clock is advanced to at least the clock of every node id in
// other that is sited at this replica, so a locally-created node that
// round-tripped through a remote replica never leaves the local clock
// below it. Stamps inside properties and child entries are not consulted.
func (d *Document) Merge(other *Document) {
	if other == nil {
		return
	}
	for key, otherNode := range other.Nodes {
		if local, ok := d.Nodes[key]; ok {
			local.Merge(otherNode)
		} else {
			d.Nodes[key] = otherNode.Clone()
		}
	}

	for _, otherNode := range other.Nodes {
		id := otherNode.ID
		if id.Site == d.Site && id.Clock > d.Clock {
			d.Clock = id.Clock
		}
	}
}

// DebugTree returns a human-readable rendering of the node tree reachable
// from RootID: type, tombstone marker, and visible children, recursively.
// It is purely a debugging aid and has no effect on document state.
func (d *Document) DebugTree() string {
	tree := treeprint.New()
	d.addDebugBranch(tree, d.RootID, make(map[string]bool))
	return tree.String()
}

func (d *Document) addDebugBranch(tree treeprint.Tree, id Id, visited map[string]bool) {
	key := id.String()
	if visited[key] {
		return
	}
	visited[key] = true

	n := d.GetNode(id)
	if n == nil {
		tree.AddNode(key + " (missing)")
		return
	}

	label := key + " [" + n.Type + "]"
	if n.Deleted {
		label += " (deleted)"
	}
	branch := tree.AddBranch(label)
	for _, childID := range n.VisibleChildren() {
		d.addDebugBranch(branch, childID, visited)
	}
}
