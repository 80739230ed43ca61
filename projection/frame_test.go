package projection

import (
	"testing"

	"github.com/obra-studios/lienzo-collab"
	"github.com/stretchr/testify/require"
)

func TestFrameView_CreateAndRead(t *testing.T) {
	doc := crdt.NewDocument("A")
	frame := CreateFrame(doc, doc.RootID, 10, 20, 100, 50)

	require.Equal(t, 10.0, frame.X())
	require.Equal(t, 20.0, frame.Y())
	require.Equal(t, 100.0, frame.Width())
	require.Equal(t, 50.0, frame.Height())
	require.Contains(t, doc.Children(doc.RootID), frame.ID())
}

func TestFrameView_SetPositionAndSize(t *testing.T) {
	doc := crdt.NewDocument("A")
	frame := CreateFrame(doc, doc.RootID, 0, 0, 0, 0)

	frame.SetPosition(5, 6)
	frame.SetSize(7, 8)

	require.Equal(t, 5.0, frame.X())
	require.Equal(t, 6.0, frame.Y())
	require.Equal(t, 7.0, frame.Width())
	require.Equal(t, 8.0, frame.Height())
}

func TestFrameView_ShapeMembership(t *testing.T) {
	doc := crdt.NewDocument("A")
	frame := CreateFrame(doc, doc.RootID, 0, 0, 100, 100)
	rect := CreateRectangle(doc, frame.ID(), 1, 1, 1, 1)

	frame.AddShape(rect.ID())
	require.Contains(t, frame.ShapeIDs(), rect.ID())

	frame.RemoveShape(rect.ID())
	require.NotContains(t, frame.ShapeIDs(), rect.ID())
}

func TestFrameView_Contains(t *testing.T) {
	doc := crdt.NewDocument("A")
	frame := CreateFrame(doc, doc.RootID, 0, 0, 10, 10)

	require.True(t, frame.Contains(0, 0))
	require.True(t, frame.Contains(10, 10))
	require.True(t, frame.Contains(5, 5))
	require.False(t, frame.Contains(11, 5))
	require.False(t, frame.Contains(-1, 5))
}

func TestFrameView_Delete(t *testing.T) {
	doc := crdt.NewDocument("A")
	frame := CreateFrame(doc, doc.RootID, 0, 0, 10, 10)

	frame.Delete()

	require.True(t, doc.GetNode(frame.ID()).Deleted)
	require.NotContains(t, doc.Children(doc.RootID), frame.ID())
}

func TestAsFrameView_RefusesWrongType(t *testing.T) {
	doc := crdt.NewDocument("A")
	rect := CreateRectangle(doc, doc.RootID, 0, 0, 1, 1)

	_, ok := AsFrameView(doc, rect.ID())
	require.False(t, ok)
}

func TestAsFrameView_RefusesUnknownID(t *testing.T) {
	doc := crdt.NewDocument("A")

	_, ok := AsFrameView(doc, crdt.NewID("A", 999))
	require.False(t, ok)
}
