package crdt

import "log/slog"

// Prop is a last-writer-wins register: a string value paired with the
// stamp of the operation that set it. The zero Prop (empty value, zero
// stamp) is considered absent.
type Prop struct {
	Value string
	Stamp Id
}

func (p Prop) absent() bool {
	return p.Stamp.IsZero()
}

// merge keeps the entry with the larger stamp (§4.1 total order), with
// equal stamps resolved identically by both sides since stamps are unique
// per (site, clock) pair in practice; ties only arise from malformed
// or duplicated input and are resolved deterministically via Id.Greater.
func (p Prop) merge(other Prop) Prop {
	if other.Stamp.Greater(p.Stamp) {
		return other
	}
	return p
}

// ChildRef is one entry in a Node's ordered child list: a reference to
// another node, added at a given stamp, optionally tombstoned. Entries are
// retained after deletion so a later merge can recognize the deletion
// rather than treat it as never-seen.
type ChildRef struct {
	Child        Id
	AddedStamp   Id
	Deleted      bool
	DeletedStamp Id
}

// Node is a single versioned tree node: an immutable id and type, a
// tombstone, a set of LWW properties, and an ordered, tombstoned child
// list. All mutation happens through the methods below, each of which
// takes a stamp supplied by the caller (normally a document's fresh local
// clock tick).
type Node struct {
	ID           Id
	Type         string
	Deleted      bool
	DeletedStamp Id
	Properties   map[string]Prop
	Children     []ChildRef
}

// NewNode creates an empty, non-deleted node of the given id and type.
func NewNode(id Id, nodeType string) *Node {
	return &Node{
		ID:         id,
		Type:       nodeType,
		Properties: make(map[string]Prop),
	}
}

// MarkDeleted tombstones the node at the given stamp. Deletion is
// monotone: once deleted, a later call only takes effect if stamp is
// strictly greater (by the total order) than the current deletion stamp.
// A node cannot be undeleted by a later stamp -- only re-tombstoned with a
// fresher one, which has no externally observable effect beyond updating
// DeletedStamp.
func (n *Node) MarkDeleted(stamp Id) {
	if !n.Deleted || stamp.Greater(n.DeletedStamp) {
		n.Deleted = true
		n.DeletedStamp = stamp
	}
}

// SetProperty installs (value, stamp) under key if the key is absent, or
// merges it against the existing Prop under LWW otherwise.
func (n *Node) SetProperty(key, value string, stamp Id) {
	next := Prop{Value: value, Stamp: stamp}
	if existing, ok := n.Properties[key]; ok {
		n.Properties[key] = existing.merge(next)
		return
	}
	n.Properties[key] = next
}

// GetProperty returns the current LWW value for key, treating an absent
// (never-set) property as not found.
func (n *Node) GetProperty(key string) (string, bool) {
	prop, ok := n.Properties[key]
	if !ok || prop.absent() {
		return "", false
	}
	return prop.Value, true
}

// HasProperty reports whether key currently holds a non-absent value.
func (n *Node) HasProperty(key string) bool {
	_, ok := n.GetProperty(key)
	return ok
}

func (n *Node) findChild(childID Id) (int, bool) {
	for i := range n.Children {
		if n.Children[i].Child.Equal(childID) {
			return i, true
		}
	}
	return -1, false
}

// AddChild appends a new child entry if none exists for childID; resurrects
// a deleted entry if stamp is strictly greater than its deletion stamp; and
// is a no-op if an entry already exists and is not deleted. The resurrection
// rule generalizes add-wins: whichever of add/remove carries the later
// stamp wins.
func (n *Node) AddChild(childID Id, stamp Id) {
	idx, exists := n.findChild(childID)
	if !exists {
		n.Children = append(n.Children, ChildRef{Child: childID, AddedStamp: stamp})
		return
	}
	ref := &n.Children[idx]
	if !ref.Deleted {
		return
	}
	if stamp.Greater(ref.DeletedStamp) {
		ref.Deleted = false
		ref.AddedStamp = stamp
		ref.DeletedStamp = Id{}
	}
}

// RemoveChild tombstones the entry for childID if stamp is strictly
// greater than its current deletion state (or it isn't deleted yet). If no
// entry exists, this is a no-op -- a later remote AddChild for the same
// childID will then succeed, which is the deliberate remove-wins-is-not-
// guaranteed-across-an-unseen-add policy (§9).
func (n *Node) RemoveChild(childID Id, stamp Id) {
	idx, exists := n.findChild(childID)
	if !exists {
		return
	}
	ref := &n.Children[idx]
	if !ref.Deleted || stamp.Greater(ref.DeletedStamp) {
		ref.Deleted = true
		ref.DeletedStamp = stamp
	}
}

// VisibleChildren returns the ids of all non-deleted child entries, in
// insertion order.
func (n *Node) VisibleChildren() []Id {
	out := make([]Id, 0, len(n.Children))
	for _, ref := range n.Children {
		if !ref.Deleted {
			out = append(out, ref.Child)
		}
	}
	return out
}

// Merge folds other's state into n. It is a silent no-op if the two nodes
// disagree on id or type -- a type conflict is logged (never raised) since
// it indicates a cross-contaminated site, not a condition a caller of
// Document.Merge can act on.
func (n *Node) Merge(other *Node) {
	if other == nil || !other.ID.Equal(n.ID) {
		return
	}
	if other.Type != n.Type {
		err := typeMismatch{id: n.ID, wantType: n.Type, gotType: other.Type}
		slog.Warn(err.Error())
		return
	}

	if other.Deleted {
		n.MarkDeleted(other.DeletedStamp)
	}

	for key, prop := range other.Properties {
		if existing, ok := n.Properties[key]; ok {
			n.Properties[key] = existing.merge(prop)
		} else {
			n.Properties[key] = prop
		}
	}

	for _, otherRef := range other.Children {
		idx, exists := n.findChild(otherRef.Child)
		if !exists {
			n.Children = append(n.Children, otherRef)
			continue
		}
		if otherRef.Deleted {
			n.RemoveChild(otherRef.Child, otherRef.DeletedStamp)
		} else {
			n.AddChild(otherRef.Child, otherRef.AddedStamp)
		}
		_ = idx
	}
}

// Clone returns a deep copy of n, used when a document merge observes a
// node it has never seen locally and needs to install a fresh copy rather
// than alias the remote's state.
func (n *Node) Clone() *Node {
	clone := &Node{
		ID:           n.ID,
		Type:         n.Type,
		Deleted:      n.Deleted,
		DeletedStamp: n.DeletedStamp,
		Properties:   make(map[string]Prop, len(n.Properties)),
		Children:     make([]ChildRef, len(n.Children)),
	}
	for k, v := range n.Properties {
		clone.Properties[k] = v
	}
	copy(clone.Children, n.Children)
	return clone
}
