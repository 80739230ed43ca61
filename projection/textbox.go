package projection

import "github.com/obra-studios/lienzo-collab"

// TextTypeTag is the node type tag a node must carry to be a valid
// TextBox.
const TextTypeTag = "text"

// TextBoxView is the typed projection over a "text" node: position, size,
// and a raw UTF-8 text property.
type TextBoxView struct {
	nodeRef
}

// CreateTextBox creates a new text node as a child of parent, stamps its
// position, size, and initial text, and returns the view.
func CreateTextBox(doc *crdt.Document, parent crdt.Id, x, y, width, height float64, text string) TextBoxView {
	id := doc.CreateNode(TextTypeTag)
	view := TextBoxView{nodeRef{doc: doc, id: id}}
	view.setFloat("x", x)
	view.setFloat("y", y)
	view.setFloat("width", width)
	view.setFloat("height", height)
	view.setString("text", text)
	doc.AddChild(parent, id)
	return view
}

// AsTextBoxView wraps id as a TextBoxView if the underlying node exists,
// is not deleted, and is of type "text"; ok is false otherwise.
func AsTextBoxView(doc *crdt.Document, id crdt.Id) (TextBoxView, bool) {
	ref := nodeRef{doc: doc, id: id}
	if !ref.exists() || ref.nodeType() != TextTypeTag {
		return TextBoxView{}, false
	}
	return TextBoxView{ref}, true
}

func (t TextBoxView) X() float64      { return t.getFloatOr("x", 0) }
func (t TextBoxView) Y() float64      { return t.getFloatOr("y", 0) }
func (t TextBoxView) Width() float64  { return t.getFloatOr("width", 0) }
func (t TextBoxView) Height() float64 { return t.getFloatOr("height", 0) }

// GetText returns the current text, or "" if absent.
func (t TextBoxView) GetText() string {
	v, _ := t.getString("text")
	return v
}

// SetText writes a fresh raw UTF-8 text value.
func (t TextBoxView) SetText(text string) {
	t.setString("text", text)
}

// SetPosition writes a fresh x, y.
func (t TextBoxView) SetPosition(x, y float64) {
	t.setFloat("x", x)
	t.setFloat("y", y)
}

// SetSize writes a fresh width, height.
func (t TextBoxView) SetSize(width, height float64) {
	t.setFloat("width", width)
	t.setFloat("height", height)
}

// Delete tombstones the text node.
func (t TextBoxView) Delete() {
	t.doc.DeleteNode(t.id)
}
