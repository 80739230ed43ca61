package projection

import "github.com/obra-studios/lienzo-collab"

// RectangleTypeTag is the node type tag a node must carry to be a valid
// Rectangle.
const RectangleTypeTag = "rectangle"

// defaultFill is the fill a freshly created rectangle is stamped with,
// matching the FFI boundary's documented default (§6).
const defaultFill = "#FFFFFF"

// RectangleView is the typed projection over a "rectangle" node: position,
// size, rotation, scale, and fill.
type RectangleView struct {
	nodeRef
}

// CreateRectangle creates a new rectangle node as a child of parent,
// stamps its position, size, and default fill, and returns the view.
func CreateRectangle(doc *crdt.Document, parent crdt.Id, x, y, width, height float64) RectangleView {
	id := doc.CreateNode(RectangleTypeTag)
	view := RectangleView{nodeRef{doc: doc, id: id}}
	view.setFloat("x", x)
	view.setFloat("y", y)
	view.setFloat("width", width)
	view.setFloat("height", height)
	view.setString("fill", defaultFill)
	doc.AddChild(parent, id)
	return view
}

// AsRectangleView wraps id as a RectangleView if the underlying node
// exists, is not deleted, and is of type "rectangle"; ok is false
// otherwise.
func AsRectangleView(doc *crdt.Document, id crdt.Id) (RectangleView, bool) {
	ref := nodeRef{doc: doc, id: id}
	if !ref.exists() || ref.nodeType() != RectangleTypeTag {
		return RectangleView{}, false
	}
	return RectangleView{ref}, true
}

func (r RectangleView) X() float64      { return r.getFloatOr("x", 0) }
func (r RectangleView) Y() float64      { return r.getFloatOr("y", 0) }
func (r RectangleView) Width() float64  { return r.getFloatOr("width", 0) }
func (r RectangleView) Height() float64 { return r.getFloatOr("height", 0) }
func (r RectangleView) Rotation() float64 { return r.getFloatOr("rotation", 0) }
func (r RectangleView) ScaleX() float64   { return r.getFloatOr("scaleX", 1) }
func (r RectangleView) ScaleY() float64   { return r.getFloatOr("scaleY", 1) }

// Fill returns the rectangle's fill color, defaulting to defaultFill if
// absent -- the fill is always set at creation, so this only matters for
// rectangles rehydrated from a snapshot that predates the property.
func (r RectangleView) Fill() string {
	if v, ok := r.getString("fill"); ok {
		return v
	}
	return defaultFill
}

// SetPosition writes a fresh x, y.
func (r RectangleView) SetPosition(x, y float64) {
	r.setFloat("x", x)
	r.setFloat("y", y)
}

// SetSize writes a fresh width, height.
func (r RectangleView) SetSize(width, height float64) {
	r.setFloat("width", width)
	r.setFloat("height", height)
}

// SetRotation writes a fresh rotation in degrees.
func (r RectangleView) SetRotation(rotation float64) {
	r.setFloat("rotation", rotation)
}

// SetScale writes a fresh scaleX, scaleY.
func (r RectangleView) SetScale(scaleX, scaleY float64) {
	r.setFloat("scaleX", scaleX)
	r.setFloat("scaleY", scaleY)
}

// SetFill writes a fresh "#RRGGBB" fill.
func (r RectangleView) SetFill(fill string) {
	r.setString("fill", fill)
}

// Delete tombstones the rectangle node.
func (r RectangleView) Delete() {
	r.doc.DeleteNode(r.id)
}
