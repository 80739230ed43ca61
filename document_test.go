package crdt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDocument_NewDocument_HasRoot(t *testing.T) {
	doc := NewDocument("A")
	root := doc.GetNode(doc.RootID)
	require.NotNil(t, root)
	require.Equal(t, rootType, root.Type)
	require.False(t, root.Deleted)
}

func TestDocument_CreateNode_AdvancesClock(t *testing.T) {
	doc := NewDocument("A")
	startClock := doc.Clock

	id := doc.CreateNode("frame")
	require.Equal(t, "A", id.Site)
	require.Equal(t, startClock+1, id.Clock)
	require.Equal(t, doc.Clock, id.Clock)
}

func TestDocument_CreateNodeWithID_RehydratesClock(t *testing.T) {
	doc := NewDocument("A") // clock now 1 (root)
	doc.CreateNodeWithID(NewID("A", 7), "frame")
	require.GreaterOrEqual(t, doc.Clock, uint64(7))

	next := doc.CreateNode("shape")
	require.Greater(t, next.Clock, uint64(7))
}

func TestDocument_SetProperty_UnknownNodeIsNoop(t *testing.T) {
	doc := NewDocument("A")
	doc.SetProperty(NewID("A", 999), "x", "10")
	require.Nil(t, doc.GetNode(NewID("A", 999)))
}

func TestDocument_ChildrenAndVisibility(t *testing.T) {
	doc := NewDocument("A")
	frame := doc.CreateNode("frame")
	doc.AddChild(doc.RootID, frame)
	shape := doc.CreateNode("rectangle")
	doc.AddChild(frame, shape)

	require.Equal(t, []Id{frame}, doc.Children(doc.RootID))
	require.Equal(t, []Id{shape}, doc.Children(frame))

	doc.RemoveChild(frame, shape)
	require.Empty(t, doc.Children(frame))
}

// S1 -- independent creation converges.
func TestDocument_S1_IndependentCreationConverges(t *testing.T) {
	a := NewDocument("A")
	b := NewDocument("B")

	rA := a.CreateNode("rectangle")
	a.AddChild(a.RootID, rA)
	a.SetProperty(rA, "x", "10")
	a.SetProperty(rA, "y", "10")
	a.SetProperty(rA, "width", "50")
	a.SetProperty(rA, "height", "50")

	rB := b.CreateNode("rectangle")
	b.AddChild(b.RootID, rB)
	b.SetProperty(rB, "x", "20")
	b.SetProperty(rB, "y", "20")
	b.SetProperty(rB, "width", "30")
	b.SetProperty(rB, "height", "30")

	a.Merge(b)
	b.Merge(a)

	require.ElementsMatch(t, a.AllNodeIDs(), b.AllNodeIDs())

	rectCount := func(d *Document) int {
		count := 0
		for _, id := range d.AllNodeIDs() {
			n := d.GetNode(id)
			if n.Type == "rectangle" && !n.Deleted {
				count++
			}
		}
		return count
	}
	require.Equal(t, 2, rectCount(a))
	require.Equal(t, 2, rectCount(b))

	xa, _ := a.GetNode(rA).GetProperty("x")
	xb, _ := b.GetNode(rA).GetProperty("x")
	require.Equal(t, "10", xa)
	require.Equal(t, "10", xb)
}

// S2 -- concurrent property write, LWW.
func TestDocument_S2_ConcurrentPropertyWriteLWW(t *testing.T) {
	a := NewDocument("A")
	b := NewDocument("B")

	frameID := NewID("A", 5)
	a.CreateNodeWithID(frameID, "frame")
	b.CreateNodeWithID(frameID, "frame")

	a.GetNode(frameID).SetProperty("x", "10", NewID("A", 6))
	b.GetNode(frameID).SetProperty("x", "20", NewID("B", 6))

	a.Merge(b)
	b.Merge(a)

	xa, _ := a.GetNode(frameID).GetProperty("x")
	xb, _ := b.GetNode(frameID).GetProperty("x")
	require.Equal(t, "20", xa)
	require.Equal(t, "20", xb)
}

// S3 -- add and remove of a child: the later stamp wins. B has received A's
// add before it removes; a remove with no entry to tombstone is a no-op.
func TestDocument_S3_ConcurrentAddRemoveChild(t *testing.T) {
	a := NewDocument("A")
	b := NewDocument("B")

	frameID := NewID("shared", 1)
	shapeID := NewID("shared", 2)
	a.CreateNodeWithID(frameID, "frame")
	a.CreateNodeWithID(shapeID, "rectangle")
	b.CreateNodeWithID(frameID, "frame")
	b.CreateNodeWithID(shapeID, "rectangle")

	a.GetNode(frameID).AddChild(shapeID, NewID("A", 3))
	b.GetNode(frameID).AddChild(shapeID, NewID("A", 3))
	b.GetNode(frameID).RemoveChild(shapeID, NewID("B", 4))

	a.Merge(b)
	b.Merge(a)

	require.NotContains(t, a.Children(frameID), shapeID)
	require.NotContains(t, b.Children(frameID), shapeID)
}

// S4 -- remove then re-add, then merge into a replica that never saw it.
func TestDocument_S4_RemoveThenReAdd(t *testing.T) {
	a := NewDocument("A")
	frameID := a.CreateNode("frame")
	a.AddChild(a.RootID, frameID)
	shapeID := NewID("A", 100)
	a.CreateNodeWithID(shapeID, "rectangle")

	a.GetNode(frameID).AddChild(shapeID, NewID("A", 2))
	a.GetNode(frameID).RemoveChild(shapeID, NewID("A", 3))
	a.GetNode(frameID).AddChild(shapeID, NewID("A", 4))

	require.Contains(t, a.Children(frameID), shapeID)

	b := NewDocument("B")
	b.Merge(a)
	require.Contains(t, b.Children(frameID), shapeID)
}

// S5 -- deletion tombstone survives a serialize/deserialize/merge round trip.
func TestDocument_S5_TombstoneSurvivesRoundTrip(t *testing.T) {
	a := NewDocument("A")
	frameID := a.CreateNode("frame")
	a.AddChild(a.RootID, frameID)
	a.DeleteNode(frameID)

	snapshotBytes, err := a.Serialize()
	require.NoError(t, err)

	fresh, err := Deserialize(snapshotBytes)
	require.NoError(t, err)

	a.Merge(fresh)

	require.NotContains(t, a.Children(a.RootID), frameID)
	require.Contains(t, a.AllNodeIDs(), frameID)
	require.True(t, a.GetNode(frameID).Deleted)
}

// S6 -- clock rehydration after a deserialize.
func TestDocument_S6_ClockRehydration(t *testing.T) {
	a := NewDocument("A")
	for i := 0; i < 7; i++ {
		a.CreateNode("rectangle")
	}
	require.Equal(t, uint64(8), a.Clock) // 1 for root + 7 creates

	snapshotBytes, err := a.Serialize()
	require.NoError(t, err)

	aPrime, err := Deserialize(snapshotBytes)
	require.NoError(t, err)
	require.Equal(t, "A", aPrime.Site)

	next := aPrime.CreateNode("frame")
	require.GreaterOrEqual(t, next.Clock, uint64(8))
}

func TestDocument_Merge_Idempotent(t *testing.T) {
	a := NewDocument("A")
	rectID := a.CreateNode("rectangle")
	a.AddChild(a.RootID, rectID)
	a.SetProperty(rectID, "x", "1")

	snapshot, err := a.Serialize()
	require.NoError(t, err)
	clone, err := Deserialize(snapshot)
	require.NoError(t, err)

	a.Merge(clone)
	afterFirst, err := a.Serialize()
	require.NoError(t, err)

	a.Merge(clone)
	afterSecond, err := a.Serialize()
	require.NoError(t, err)

	require.JSONEq(t, string(afterFirst), string(afterSecond))
}

func TestDocument_Merge_Associative(t *testing.T) {
	build := func(site string, f func(d *Document)) *Document {
		d := NewDocument(site)
		f(d)
		return d
	}

	a := build("A", func(d *Document) {
		id := d.CreateNode("rectangle")
		d.AddChild(d.RootID, id)
	})
	b := build("B", func(d *Document) {
		id := d.CreateNode("rectangle")
		d.AddChild(d.RootID, id)
	})
	c := build("C", func(d *Document) {
		id := d.CreateNode("rectangle")
		d.AddChild(d.RootID, id)
	})

	cloneDoc := func(d *Document) *Document {
		bytes, err := d.Serialize()
		require.NoError(t, err)
		clone, err := Deserialize(bytes)
		require.NoError(t, err)
		return clone
	}

	left := cloneDoc(a)
	ab := cloneDoc(b)
	left.Merge(ab)
	abc1 := cloneDoc(c)
	left.Merge(abc1)

	right := cloneDoc(b)
	bc := cloneDoc(c)
	right.Merge(bc)
	a2 := cloneDoc(a)
	a2.Merge(right)

	require.ElementsMatch(t, allTypeIDs(left, "rectangle"), allTypeIDs(a2, "rectangle"))
}

func allTypeIDs(d *Document, nodeType string) []Id {
	var out []Id
	for _, id := range d.AllNodeIDs() {
		n := d.GetNode(id)
		if n.Type == nodeType && !n.Deleted {
			out = append(out, id)
		}
	}
	return out
}
