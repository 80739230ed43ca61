package crdt

import "github.com/pkg/errors"

// MalformedSnapshotError is returned by Deserialize when the byte
// string is not a valid, version-supported snapshot. The receiving document
// is left unchanged; callers should discard the snapshot and request a
// fresh one.
var MalformedSnapshotError = errors.New("crdt: malformed snapshot")

// typeMismatch is logged (never returned) when a merge observes two nodes
// sharing an id but disagreeing on type. Types are immutable once a node is
// created, so this indicates two sites independently minted the same
// (site, clock) pair for different node kinds -- a non-recoverable
// cross-contaminated site, not a condition callers can act on.
type typeMismatch struct {
	id       Id
	wantType string
	gotType  string
}

func (e typeMismatch) Error() string {
	return "crdt: type mismatch merging " + e.id.String() + ": want " + e.wantType + ", got " + e.gotType
}
