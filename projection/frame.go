package projection

import "github.com/obra-studios/lienzo-collab"

// FrameTypeTag is the node type tag a node must carry to be a valid Frame.
const FrameTypeTag = "frame"

// FrameView is the typed projection over a "frame" node: position, size,
// and an ordered set of shape children. It refuses to wrap a node of any
// other type.
type FrameView struct {
	nodeRef
}

// CreateFrame creates a new frame node as a child of parent (typically the
// document root), stamps its position and size properties, and returns the
// resulting view.
func CreateFrame(doc *crdt.Document, parent crdt.Id, x, y, width, height float64) FrameView {
	id := doc.CreateNode(FrameTypeTag)
	view := FrameView{nodeRef{doc: doc, id: id}}
	view.setFloat("x", x)
	view.setFloat("y", y)
	view.setFloat("width", width)
	view.setFloat("height", height)
	doc.AddChild(parent, id)
	return view
}

// AsFrameView wraps id as a FrameView if the underlying node exists, is not
// deleted, and is of type "frame"; ok is false otherwise (unknown id,
// deleted node, or type mismatch),
// per §4.4's "the projection must refuse to instantiate a view over a
// mismatched type."
func AsFrameView(doc *crdt.Document, id crdt.Id) (FrameView, bool) {
	ref := nodeRef{doc: doc, id: id}
	if !ref.exists() || ref.nodeType() != FrameTypeTag {
		return FrameView{}, false
	}
	return FrameView{ref}, true
}

// X returns the frame's x position, or 0 if absent/malformed.
func (f FrameView) X() float64 { return f.getFloatOr("x", 0) }

// Y returns the frame's y position, or 0 if absent/malformed.
func (f FrameView) Y() float64 { return f.getFloatOr("y", 0) }

// Width returns the frame's width, or 0 if absent/malformed.
func (f FrameView) Width() float64 { return f.getFloatOr("width", 0) }

// Height returns the frame's height, or 0 if absent/malformed.
func (f FrameView) Height() float64 { return f.getFloatOr("height", 0) }

// SetPosition writes a fresh x, y.
func (f FrameView) SetPosition(x, y float64) {
	f.setFloat("x", x)
	f.setFloat("y", y)
}

// SetSize writes a fresh width, height.
func (f FrameView) SetSize(width, height float64) {
	f.setFloat("width", width)
	f.setFloat("height", height)
}

// AddShape adds shapeID as a visible child of the frame.
func (f FrameView) AddShape(shapeID crdt.Id) {
	f.doc.AddChild(f.id, shapeID)
}

// RemoveShape removes shapeID from the frame's visible children.
func (f FrameView) RemoveShape(shapeID crdt.Id) {
	f.doc.RemoveChild(f.id, shapeID)
}

// ShapeIDs returns the frame's visible children, in insertion order.
func (f FrameView) ShapeIDs() []crdt.Id {
	return f.doc.Children(f.id)
}

// Contains reports whether (px, py) falls within the frame's bounding box.
func (f FrameView) Contains(px, py float64) bool {
	x, y, w, h := f.X(), f.Y(), f.Width(), f.Height()
	return px >= x && px <= x+w && py >= y && py <= y+h
}

// Delete tombstones the frame node.
func (f FrameView) Delete() {
	f.doc.DeleteNode(f.id)
}
