package session

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/structboard/structboard/internal/document"
	"github.com/structboard/structboard/internal/render"
)

func newSession(t *testing.T) *Session {
	t.Helper()
	s, err := New("", DefaultSettings())
	require.NoError(t, err)
	return s
}

func message(t *testing.T, typ string, payload any) *Message {
	t.Helper()
	msg := &Message{Type: typ}
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		msg.Payload = data
	}
	return msg
}

func handle(t *testing.T, s *Session, typ string, payload any) FramePayload {
	t.Helper()
	out, err := s.Handle(message(t, typ, payload))
	require.NoError(t, err)
	require.Equal(t, TypeFrame, out.Type)
	assert.Equal(t, s.ID, out.SessionID)

	var frame FramePayload
	require.NoError(t, json.Unmarshal(out.Payload, &frame))
	return frame
}

func TestNewSessionID(t *testing.T) {
	s := newSession(t)
	assert.Regexp(t, `^sess_`, s.ID)

	named, err := New("sess_fixed", DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, "sess_fixed", named.ID)
}

func TestDrawRectangleOverMessages(t *testing.T) {
	s := newSession(t)

	frame := handle(t, s, TypeToolChange, ToolPayload{Tool: document.ToolRectangle})
	assert.Equal(t, document.ToolRectangle, frame.Tool)
	assert.False(t, frame.CanUndo)

	handle(t, s, TypePointerDown, PointerPayload{X: 10, Y: 10})
	handle(t, s, TypePointerMove, PointerPayload{X: 60, Y: 40})
	frame = handle(t, s, TypePointerUp, nil)

	assert.True(t, frame.CanUndo)
	els := s.Elements()
	require.Len(t, els, 1)
	assert.Equal(t, document.TypeRectangle, els[0].Type)
	assert.Equal(t, 50.0, els[0].Width)
	assert.Equal(t, 30.0, els[0].Height)

	frame = handle(t, s, TypeUndo, nil)
	assert.Empty(t, s.Elements())
	assert.True(t, frame.CanRedo)

	handle(t, s, TypeRedo, nil)
	assert.Len(t, s.Elements(), 1)
}

func TestFrameCarriesDrawCommands(t *testing.T) {
	s := newSession(t)
	frame := handle(t, s, TypeViewportSet, ViewportPayload{Width: 300, Height: 200})

	require.GreaterOrEqual(t, len(frame.Commands), 2)
	assert.Equal(t, "resetTransform", frame.Commands[0].Op)
	assert.Equal(t, "clear", frame.Commands[1].Op)
	assert.Equal(t, []float64{300, 200}, frame.Commands[1].Args)

	w, h := s.Viewport()
	assert.Equal(t, 300.0, w)
	assert.Equal(t, 200.0, h)
}

func TestRejectedMessages(t *testing.T) {
	cases := []struct {
		name    string
		msg     *Message
		wantErr error
	}{
		{"unknown type", &Message{Type: "nope"}, ErrUnknownMessage},
		{"missing payload", &Message{Type: TypePointerDown}, ErrBadPayload},
		{"malformed payload", &Message{Type: TypeWheel, Payload: json.RawMessage(`"x"`)}, ErrBadPayload},
		{"unknown tool", message(t, TypeToolChange, ToolPayload{Tool: "lasso"}), ErrBadPayload},
		{"unknown structure", message(t, TypeStructureAdd, StructurePayload{Kind: "heap", Values: []string{"1"}}), ErrBadPayload},
		{"empty viewport", message(t, TypeViewportSet, ViewportPayload{}), ErrBadPayload},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newSession(t)
			out, err := s.Handle(tc.msg)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, out)
		})
	}
}

func TestStructureMessages(t *testing.T) {
	s := newSession(t)

	frame := handle(t, s, TypeStructureAdd, StructurePayload{Kind: document.TypeBinaryTree, Values: []string{"2", "1", "3"}})
	require.Len(t, frame.Selected, 1)
	id := frame.Selected[0]

	el := s.Elements()[0]
	require.NotNil(t, el.Root)
	require.NotNil(t, el.Root.Left)

	handle(t, s, TypeTreeUpdate, TreeNodePayload{ElementID: id, NodeID: el.Root.Left.ID, Value: "0"})
	assert.Equal(t, "0", s.Elements()[0].Root.Left.Value)

	handle(t, s, TypeTreeRemove, TreeNodePayload{ElementID: id, NodeID: el.Root.ID})
	assert.Empty(t, s.Elements())

	handle(t, s, TypeStructureAdd, StructurePayload{Kind: document.TypeArray, Values: []string{"a"}})
	handle(t, s, TypeStructureValues, ValuesPayload{Values: []string{"x", "y"}})
	assert.Equal(t, []string{"x", "y"}, s.Elements()[0].Values)

	frame = handle(t, s, TypeDeleteSelected, nil)
	assert.Empty(t, s.Elements())
	assert.Empty(t, frame.Selected)
}

func TestSampleSceneAndClear(t *testing.T) {
	s := newSession(t)

	frame := handle(t, s, TypeSceneSample, nil)
	assert.NotEmpty(t, s.Elements())
	assert.False(t, frame.CanUndo)

	frame = handle(t, s, TypeSceneClear, nil)
	assert.Empty(t, s.Elements())
	assert.True(t, frame.CanUndo)
}

func TestWheelAndReset(t *testing.T) {
	s := newSession(t)

	frame := handle(t, s, TypeWheel, WheelPayload{X: 100, Y: 100, DeltaY: -1})
	assert.InDelta(t, 1.1, frame.View.Scale, 1e-9)

	frame = handle(t, s, TypeViewReset, nil)
	assert.Equal(t, 1.0, frame.View.Scale)
}

func TestTextMessages(t *testing.T) {
	s := newSession(t)
	handle(t, s, TypeToolChange, ToolPayload{Tool: document.ToolText})
	handle(t, s, TypePointerDown, PointerPayload{X: 5, Y: 5})
	handle(t, s, TypeTextUpdate, TextPayload{Text: "hello"})
	handle(t, s, TypeTextCommit, nil)

	els := s.Elements()
	require.Len(t, els, 1)
	assert.Equal(t, "hello", els[0].Text)

	handle(t, s, TypePointerDown, PointerPayload{X: 50, Y: 50})
	handle(t, s, TypeTextUpdate, TextPayload{Text: "draft"})
	handle(t, s, TypeTextCancel, nil)
	assert.Len(t, s.Elements(), 1)
}

func TestPaint(t *testing.T) {
	s := newSession(t)
	handle(t, s, TypeSceneSample, nil)

	rec := render.NewRecorder(100, 100)
	require.NoError(t, s.Paint(rec))
	assert.NotEmpty(t, rec.Commands())

	assert.ErrorIs(t, s.Paint(nil), render.ErrNoSurface)
}

func TestLoadAndQueries(t *testing.T) {
	s := newSession(t)
	s.Load([]document.Element{{ID: "r", Type: document.TypeRectangle, X: 10, Y: 10, Width: 40, Height: 20, FillStyle: "#fff"}})

	assert.Equal(t, "r", s.HitTest(document.Point{X: 20, Y: 20}))
	assert.Empty(t, s.HitTest(document.Point{X: 500, Y: 500}))

	_, ok := s.SelectionBounds()
	assert.False(t, ok)

	handle(t, s, TypePointerDown, PointerPayload{X: 20, Y: 20})
	handle(t, s, TypePointerUp, nil)
	b, ok := s.SelectionBounds()
	require.True(t, ok)
	assert.Equal(t, 40.0, b.Width)
}
