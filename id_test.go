package crdt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestID_StringRoundTrip(t *testing.T) {
	id := NewID("alice", 42)
	parsed, err := ParseID(id.String())
	require.NoError(t, err)
	require.True(t, id.Equal(parsed))
}

func TestID_Ordering(t *testing.T) {
	lowClock := NewID("b", 1)
	highClock := NewID("a", 2)
	require.True(t, lowClock.Less(highClock))
	require.True(t, highClock.Greater(lowClock))

	tieA := NewID("a", 5)
	tieB := NewID("b", 5)
	require.True(t, tieA.Less(tieB), "equal clock ties break on site ascending")
	require.False(t, tieB.Less(tieA))
}

func TestID_IsZero(t *testing.T) {
	require.True(t, Id{}.IsZero())
	require.False(t, NewID("a", 0).IsZero())
	require.False(t, NewID("", 1).IsZero())
}

func TestParseID_Malformed(t *testing.T) {
	cases := []string{"", "no-colon", ":5", "alice:", "alice:notanumber", "alice:-1"}
	for _, c := range cases {
		_, err := ParseID(c)
		require.Error(t, err, "expected error for %q", c)
		require.ErrorIs(t, err, MalformedIDError)
	}
}
