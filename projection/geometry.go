// Package projection is the typed view over the raw CRDT document: Frame,
// Rectangle, and TextBox wrappers that read and write domain attributes
// through the document's property API, and a Manager that rebuilds those
// views from the document after every merge.
package projection

import (
	"strconv"

	"github.com/obra-studios/lienzo-collab"
)

// nodeRef is the shared handle every view wraps: a document plus the id of
// the node it projects. Every domain attribute is stored as a string
// property on that node (§4.4); nodeRef centralizes the parse/format so
// each view only names its own property keys.
type nodeRef struct {
	doc *crdt.Document
	id  crdt.Id
}

// setFloat formats v as a decimal string and writes it to key.
func (r nodeRef) setFloat(key string, v float64) {
	r.doc.SetProperty(r.id, key, strconv.FormatFloat(v, 'f', -1, 64))
}

// getFloat reads key and parses it as a decimal. A missing property or a
// value that fails to parse are both treated as absent (returns ok=false,
// not a silently substituted zero) -- parse failure must never be
// confused with "unset".
func (r nodeRef) getFloat(key string) (float64, bool) {
	n := r.doc.GetNode(r.id)
	if n == nil {
		return 0, false
	}
	s, ok := n.GetProperty(key)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// getFloatOr is getFloat with a caller-supplied fallback for the common
// case where a projection getter wants a plain float64.
func (r nodeRef) getFloatOr(key string, fallback float64) float64 {
	if v, ok := r.getFloat(key); ok {
		return v
	}
	return fallback
}

func (r nodeRef) setString(key, value string) {
	r.doc.SetProperty(r.id, key, value)
}

func (r nodeRef) getString(key string) (string, bool) {
	n := r.doc.GetNode(r.id)
	if n == nil {
		return "", false
	}
	return n.GetProperty(key)
}

// exists reports whether the underlying node is present and not a
// tombstone.
func (r nodeRef) exists() bool {
	n := r.doc.GetNode(r.id)
	return n != nil && !n.Deleted
}

// nodeType returns the node's immutable type tag, or "" if unknown.
func (r nodeRef) nodeType() string {
	n := r.doc.GetNode(r.id)
	if n == nil {
		return ""
	}
	return n.Type
}

// ID returns the id of the node this view projects.
func (r nodeRef) ID() crdt.Id { return r.id }

// pathPointKey is the property key for the idx'th point of a path-typed
// shape (SPEC_FULL §3): one property per indexed point, encoded "x,y".
func pathPointKey(idx int) string {
	return "point_" + strconv.Itoa(idx)
}

// setPathPoint writes the idx'th point of r's path as a decimal pair.
// This is the generic path-point encoding named in §4.4's property table;
// it has no dedicated PathView (see SPEC_FULL §3) but remains available to
// any future shape kind that needs it.
func setPathPoint(r nodeRef, idx int, x, y float64) {
	r.setString(pathPointKey(idx), strconv.FormatFloat(x, 'f', -1, 64)+","+strconv.FormatFloat(y, 'f', -1, 64))
}

// getPathPoint reads the idx'th point of r's path. ok is false if the
// property is absent or malformed.
func getPathPoint(r nodeRef, idx int) (x, y float64, ok bool) {
	raw, present := r.getString(pathPointKey(idx))
	if !present {
		return 0, 0, false
	}
	commaIdx := -1
	for i := 0; i < len(raw); i++ {
		if raw[i] == ',' {
			commaIdx = i
			break
		}
	}
	if commaIdx < 0 {
		return 0, 0, false
	}
	px, errX := strconv.ParseFloat(raw[:commaIdx], 64)
	py, errY := strconv.ParseFloat(raw[commaIdx+1:], 64)
	if errX != nil || errY != nil {
		return 0, 0, false
	}
	return px, py, true
}
