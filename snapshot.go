package crdt

import (
	"encoding/json"
	"sort"

	"github.com/pkg/errors"
)

// snapshotVersion is bumped whenever the on-disk envelope shape changes in
// a way Deserialize cannot tolerate. Deserialize rejects any other value.
const snapshotVersion = 1

// snapshotEnvelope is the self-delimiting, version-tagged persisted form
// described in §6: site, clock, root id, and every node with its
// properties (key, value, stamp) and child entries (child id, added stamp,
// deletion tombstone).
type snapshotEnvelope struct {
	Version int            `json:"version"`
	Site    string         `json:"site"`
	Clock   uint64         `json:"clock"`
	RootID  string         `json:"rootId"`
	Nodes   []snapshotNode `json:"nodes"`
}

type snapshotNode struct {
	ID           string                  `json:"id"`
	Type         string                  `json:"type"`
	Deleted      bool                    `json:"deleted"`
	DeletedStamp string                  `json:"deletedStamp,omitempty"`
	Properties   map[string]snapshotProp `json:"properties"`
	Children     []snapshotChildRef      `json:"children"`
}

type snapshotProp struct {
	Value string `json:"value"`
	Stamp string `json:"stamp"`
}

type snapshotChildRef struct {
	Child        string `json:"child"`
	AddedStamp   string `json:"addedStamp"`
	Deleted      bool   `json:"deleted"`
	DeletedStamp string `json:"deletedStamp,omitempty"`
}

// Serialize emits a versioned JSON snapshot of the document from which
// Deserialize reconstructs an equivalent state, up to the unobservable
// insertion order of child entries first seen locally vs. remotely. Nodes
// are emitted in sorted id order, so an unchanged document always
// serializes to the same bytes.
func (d *Document) Serialize() ([]byte, error) {
	env := snapshotEnvelope{
		Version: snapshotVersion,
		Site:    d.Site,
		Clock:   d.Clock,
		RootID:  d.RootID.String(),
		Nodes:   make([]snapshotNode, 0, len(d.Nodes)),
	}

	keys := make([]string, 0, len(d.Nodes))
	for key := range d.Nodes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		n := d.Nodes[key]
		sn := snapshotNode{
			ID:         key,
			Type:       n.Type,
			Deleted:    n.Deleted,
			Properties: make(map[string]snapshotProp, len(n.Properties)),
			Children:   make([]snapshotChildRef, 0, len(n.Children)),
		}
		if n.Deleted {
			sn.DeletedStamp = n.DeletedStamp.String()
		}
		for k, p := range n.Properties {
			sn.Properties[k] = snapshotProp{Value: p.Value, Stamp: p.Stamp.String()}
		}
		for _, ref := range n.Children {
			scr := snapshotChildRef{
				Child:      ref.Child.String(),
				AddedStamp: ref.AddedStamp.String(),
				Deleted:    ref.Deleted,
			}
			if ref.Deleted {
				scr.DeletedStamp = ref.DeletedStamp.String()
			}
			sn.Children = append(sn.Children, scr)
		}
		env.Nodes = append(env.Nodes, sn)
	}

	return json.Marshal(env)
}

// Deserialize parses a snapshot produced by Document.Serialize into a
// transient, fully-populated Document. It returns MalformedSnapshotError
// (wrapped with detail) if the bytes are not valid JSON, the version is
// unsupported, or any id/stamp fails to parse; the caller is expected to
// discard such a snapshot and request a fresh one.
func Deserialize(data []byte) (*Document, error) {
	var env snapshotEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrap(MalformedSnapshotError, err.Error())
	}
	if env.Version != snapshotVersion {
		return nil, errors.Wrapf(MalformedSnapshotError, "unsupported version %d", env.Version)
	}
	if env.Site == "" {
		return nil, errors.Wrap(MalformedSnapshotError, "missing site")
	}

	rootID, err := ParseID(env.RootID)
	if err != nil {
		return nil, errors.Wrap(MalformedSnapshotError, "invalid rootId")
	}

	doc := &Document{
		Site:   env.Site,
		Clock:  env.Clock,
		RootID: rootID,
		Nodes:  make(map[string]*Node, len(env.Nodes)),
	}

	for _, sn := range env.Nodes {
		id, err := ParseID(sn.ID)
		if err != nil {
			return nil, errors.Wrapf(MalformedSnapshotError, "invalid node id %q", sn.ID)
		}
		n := &Node{
			ID:         id,
			Type:       sn.Type,
			Deleted:    sn.Deleted,
			Properties: make(map[string]Prop, len(sn.Properties)),
			Children:   make([]ChildRef, 0, len(sn.Children)),
		}
		if sn.Deleted {
			stamp, err := ParseID(sn.DeletedStamp)
			if err != nil {
				return nil, errors.Wrapf(MalformedSnapshotError, "invalid deletedStamp for %q", sn.ID)
			}
			n.DeletedStamp = stamp
		}
		for key, p := range sn.Properties {
			stamp, err := ParseID(p.Stamp)
			if err != nil {
				return nil, errors.Wrapf(MalformedSnapshotError, "invalid property stamp for %q.%q", sn.ID, key)
			}
			n.Properties[key] = Prop{Value: p.Value, Stamp: stamp}
		}
		for _, scr := range sn.Children {
			childID, err := ParseID(scr.Child)
			if err != nil {
				return nil, errors.Wrapf(MalformedSnapshotError, "invalid child id for %q", sn.ID)
			}
			addedStamp, err := ParseID(scr.AddedStamp)
			if err != nil {
				return nil, errors.Wrapf(MalformedSnapshotError, "invalid addedStamp for %q", sn.ID)
			}
			ref := ChildRef{Child: childID, AddedStamp: addedStamp, Deleted: scr.Deleted}
			if scr.Deleted {
				deletedStamp, err := ParseID(scr.DeletedStamp)
				if err != nil {
					return nil, errors.Wrapf(MalformedSnapshotError, "invalid child deletedStamp for %q", sn.ID)
				}
				ref.DeletedStamp = deletedStamp
			}
			n.Children = append(n.Children, ref)
		}
		doc.Nodes[sn.ID] = n
	}

	if _, ok := doc.Nodes[rootID.String()]; !ok {
		return nil, errors.Wrap(MalformedSnapshotError, "root node not present in snapshot")
	}

	return doc, nil
}
