package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/structboard/structboard/internal/document"
)

func rect(id string, x float64) document.Element {
	return document.Element{ID: id, Type: document.TypeRectangle, X: x, Width: 10, Height: 10}
}

func TestAddKeepsPaintOrder(t *testing.T) {
	s := New()
	s.Add(rect("a", 0))
	s.Add(rect("b", 1))
	s.Add(rect("a", 5))

	els := s.Elements()
	require.Len(t, els, 2)
	assert.Equal(t, "a", els[0].ID)
	assert.Equal(t, 5.0, els[0].X)
	assert.Equal(t, "b", els[1].ID)
}

func TestUpdateAndRemoveMissing(t *testing.T) {
	s := New()
	x := 3.0
	assert.False(t, s.Update("nope", document.Patch{X: &x}))
	assert.False(t, s.Remove("nope"))
	assert.False(t, s.Replace(rect("nope", 0)))
	assert.Equal(t, 0, s.Len())
}

func TestRemoveClearsSelection(t *testing.T) {
	s := New()
	s.Add(rect("a", 0))
	s.Add(rect("b", 0))
	s.SelectMany([]string{"a", "b"})

	s.Remove("a")
	assert.Equal(t, []string{"b"}, s.SelectedIDs())

	s.Select("b")
	s.Remove("b")
	assert.Empty(t, s.SelectedID())
}

func TestSelectionModes(t *testing.T) {
	s := New()
	s.Add(rect("a", 0))
	s.Add(rect("b", 0))

	s.SelectMany([]string{"b", "a"})
	assert.Equal(t, []string{"a", "b"}, s.SelectedIDs())
	assert.Empty(t, s.SelectedID())

	s.Select("a")
	assert.Equal(t, "a", s.SelectedID())
	assert.Empty(t, s.SelectedIDs())

	s.SelectMany([]string{"b"})
	assert.Equal(t, "b", s.SelectedID())
	assert.True(t, s.IsSelected("b"))
	assert.False(t, s.IsSelected("a"))
}

func TestSubscribeOrderAndUnsubscribe(t *testing.T) {
	s := New()
	var calls []string
	s.Subscribe(func() { calls = append(calls, "first") })
	unsub := s.Subscribe(func() { calls = append(calls, "second") })
	s.Subscribe(func() { calls = append(calls, "third") })

	s.Commit()
	unsub()
	unsub()
	s.Commit()

	assert.Equal(t, []string{"first", "second", "third", "first", "third"}, calls)
}

func TestUndoRedoSymmetry(t *testing.T) {
	s := New()
	initial := s.Elements()

	const n = 5
	for i := range n {
		s.SaveToHistory()
		s.Add(rect(fmt.Sprintf("r%d", i), float64(i)))
	}
	final := s.Elements()

	for range n {
		s.Undo()
	}
	assert.Equal(t, initial, s.Elements())
	assert.False(t, s.CanUndo())

	for range n {
		s.Redo()
	}
	assert.Equal(t, final, s.Elements())
	assert.False(t, s.CanRedo())
}

func TestUndoRedoNoOpWhenEmpty(t *testing.T) {
	s := New()
	commits := 0
	s.Subscribe(func() { commits++ })

	s.Undo()
	s.Redo()
	assert.Equal(t, 0, commits)
}

func TestUndoClearsSelectionAndCommits(t *testing.T) {
	s := New()
	commits := 0
	s.Subscribe(func() { commits++ })

	s.SaveToHistory()
	s.Add(rect("a", 0))
	s.Select("a")

	s.Undo()
	assert.Empty(t, s.SelectedID())
	assert.Equal(t, 1, commits)
}

func TestHistoryBound(t *testing.T) {
	s := New()
	for i := range HistoryLimit + 10 {
		s.SaveToHistory()
		s.Add(rect(fmt.Sprintf("r%d", i), 0))
	}

	past, _ := s.HistoryLen()
	assert.Equal(t, HistoryLimit, past)

	// The oldest kept snapshot was taken before element r10 was added.
	oldest := s.Past()[0]
	assert.Len(t, oldest, 10)
}

func TestWithHistoryLimit(t *testing.T) {
	s := New(WithHistoryLimit(3), WithHistoryLimit(0))
	for range 5 {
		s.SaveToHistory()
	}
	past, _ := s.HistoryLen()
	assert.Equal(t, 3, past)
}

func TestRedoInvalidatedByNewEdit(t *testing.T) {
	s := New()
	s.SaveToHistory()
	s.Add(rect("a", 0))
	s.Undo()
	_, future := s.HistoryLen()
	require.Equal(t, 1, future)

	s.SaveToHistory()
	s.Add(rect("b", 0))
	_, future = s.HistoryLen()
	assert.Equal(t, 0, future)
}

func TestSnapshotsAreIsolated(t *testing.T) {
	s := New()
	s.Add(document.Element{ID: "d", Type: document.TypeDraw, Points: []document.Point{{X: 1, Y: 1}}})
	s.SaveToHistory()

	x := 50.0
	s.Update("d", document.Patch{X: &x})
	live := s.elements["d"]
	live.Points[0].X = 99

	s.Undo()
	restored, ok := s.Element("d")
	require.True(t, ok)
	assert.Equal(t, 0.0, restored.X)
	assert.Equal(t, 1.0, restored.Points[0].X)

	// Mutating the restored element must not leak into the redo snapshot
	// or back into the undo stack.
	s.elements["d"].Points[0].X = -1
	s.Redo()
	redone, _ := s.Element("d")
	assert.Equal(t, 50.0, redone.X)
	assert.Equal(t, 99.0, redone.Points[0].X)

	s.Undo()
	again, _ := s.Element("d")
	assert.Equal(t, -1.0, again.Points[0].X)
}

func TestAreaSelectionState(t *testing.T) {
	s := New()
	s.SetAreaEnd(document.Point{X: 5, Y: 5})
	_, _, active := s.Area()
	assert.False(t, active)

	s.StartArea(document.Point{X: 1, Y: 2})
	s.SetAreaEnd(document.Point{X: 3, Y: 4})
	start, end, active := s.Area()
	assert.True(t, active)
	assert.Equal(t, document.Point{X: 1, Y: 2}, start)
	assert.Equal(t, document.Point{X: 3, Y: 4}, end)

	s.EndArea()
	_, _, active = s.Area()
	assert.False(t, active)
}

func TestSetViewClamps(t *testing.T) {
	s := New()
	s.SetView(document.ViewState{Scale: 10, OffsetX: 3})
	assert.Equal(t, document.MaxScale, s.View().Scale)
	assert.Equal(t, 3.0, s.View().OffsetX)
}
