package projection

import (
	"testing"

	"github.com/obra-studios/lienzo-collab"
	"github.com/stretchr/testify/require"
)

func TestRectangleView_CreateDefaults(t *testing.T) {
	doc := crdt.NewDocument("A")
	rect := CreateRectangle(doc, doc.RootID, 1, 2, 3, 4)

	require.Equal(t, 1.0, rect.X())
	require.Equal(t, 2.0, rect.Y())
	require.Equal(t, 3.0, rect.Width())
	require.Equal(t, 4.0, rect.Height())
	require.Equal(t, 0.0, rect.Rotation())
	require.Equal(t, 1.0, rect.ScaleX())
	require.Equal(t, 1.0, rect.ScaleY())
	require.Equal(t, defaultFill, rect.Fill())
}

func TestRectangleView_Setters(t *testing.T) {
	doc := crdt.NewDocument("A")
	rect := CreateRectangle(doc, doc.RootID, 0, 0, 0, 0)

	rect.SetPosition(10, 20)
	rect.SetSize(30, 40)
	rect.SetRotation(45)
	rect.SetScale(2, 3)
	rect.SetFill("#00FF00")

	require.Equal(t, 10.0, rect.X())
	require.Equal(t, 20.0, rect.Y())
	require.Equal(t, 30.0, rect.Width())
	require.Equal(t, 40.0, rect.Height())
	require.Equal(t, 45.0, rect.Rotation())
	require.Equal(t, 2.0, rect.ScaleX())
	require.Equal(t, 3.0, rect.ScaleY())
	require.Equal(t, "#00FF00", rect.Fill())
}

func TestRectangleView_FillMissingFallsBackToDefault(t *testing.T) {
	doc := crdt.NewDocument("A")
	id := doc.CreateNode(RectangleTypeTag)
	doc.AddChild(doc.RootID, id)
	rect, ok := AsRectangleView(doc, id)
	require.True(t, ok)

	require.Equal(t, defaultFill, rect.Fill())
}

func TestRectangleView_Delete(t *testing.T) {
	doc := crdt.NewDocument("A")
	rect := CreateRectangle(doc, doc.RootID, 0, 0, 1, 1)

	rect.Delete()

	require.True(t, doc.GetNode(rect.ID()).Deleted)
}

func TestAsRectangleView_RefusesWrongType(t *testing.T) {
	doc := crdt.NewDocument("A")
	frame := CreateFrame(doc, doc.RootID, 0, 0, 1, 1)

	_, ok := AsRectangleView(doc, frame.ID())
	require.False(t, ok)
}
