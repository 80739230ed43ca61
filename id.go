// Package crdt implements the replicated document core: identifiers and
// logical clocks, a versioned CRDT tree node, and a document-level state
// CRDT that merges two replicas into a deterministic, convergent state.
package crdt

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Id is a globally unique identifier stamped by a single replica: the pair
// (site, clock). Two ids are equal iff both components match. Ordering is
// total (clock ascending, then site ascending) and is used only to break
// ties between concurrent writes, never for causal reasoning.
type Id struct {
	Site  string
	Clock uint64
}

// NewID constructs an Id from its components. It does not validate that
// site is non-empty; callers that need a parseable Id should go through
// Document.CreateNode or ParseID.
func NewID(site string, clock uint64) Id {
	return Id{Site: site, Clock: clock}
}

// IsZero reports whether id is the default, never-set value (empty site,
// clock 0). A zero Id marks an absent stamp, e.g. a ChildRef.DeletedStamp
// on an entry that has never been deleted.
func (id Id) IsZero() bool {
	return id.Site == "" && id.Clock == 0
}

// Equal reports whether id and other identify the same operation.
func (id Id) Equal(other Id) bool {
	return id.Site == other.Site && id.Clock == other.Clock
}

// Less reports whether id strictly precedes other in the total order:
// clock ascending, site ascending as tie-break.
func (id Id) Less(other Id) bool {
	if id.Clock != other.Clock {
		return id.Clock < other.Clock
	}
	return id.Site < other.Site
}

// Greater reports whether id strictly follows other in the total order.
func (id Id) Greater(other Id) bool {
	return other.Less(id)
}

// String returns the canonical "{site}:{clock}" form. It round-trips
// through ParseID for any Id built with a non-empty site.
func (id Id) String() string {
	return id.Site + ":" + strconv.FormatUint(id.Clock, 10)
}

// MalformedIDError is returned by ParseID when a string is not a valid
// canonical Id.
var MalformedIDError = errors.New("crdt: malformed id")

// ParseID parses the canonical "{site}:{clock}" form produced by Id.String.
// It fails with MalformedIDError if there is no ':', the site portion is
// empty, or the clock portion is not a valid unsigned integer.
func ParseID(s string) (Id, error) {
	site, clockStr, found := strings.Cut(s, ":")
	if !found {
		return Id{}, errors.Wrapf(MalformedIDError, "no ':' in %q", s)
	}
	if site == "" {
		return Id{}, errors.Wrapf(MalformedIDError, "empty site in %q", s)
	}
	clock, err := strconv.ParseUint(clockStr, 10, 64)
	if err != nil {
		return Id{}, errors.Wrapf(MalformedIDError, "invalid clock in %q", s)
	}
	return Id{Site: site, Clock: clock}, nil
}
