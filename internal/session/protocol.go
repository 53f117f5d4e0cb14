package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/structboard/structboard/internal/document"
	"github.com/structboard/structboard/internal/render"
	"github.com/structboard/structboard/internal/tree"
)

var (
	ErrUnknownMessage = errors.New("unknown message type")
	ErrBadPayload     = errors.New("invalid payload")
)

// Message is the envelope for everything sent over the socket in either
// direction.
type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	ClientID  string          `json:"clientId,omitempty"`
	Seq       int64           `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

const (
	// Server to client
	TypeReady = "session.ready"
	TypeFrame = "frame"
	TypeError = "error"

	// Pointer input
	TypePointerDown  = "pointer.down"
	TypePointerMove  = "pointer.move"
	TypePointerUp    = "pointer.up"
	TypePointerLeave = "pointer.leave"
	TypeWheel        = "wheel"

	// Tools and view
	TypeToolChange  = "tool.change"
	TypeStylesSet   = "styles.set"
	TypeViewportSet = "viewport.set"
	TypeViewReset   = "view.reset"

	// Text draft
	TypeTextUpdate = "text.update"
	TypeTextCommit = "text.commit"
	TypeTextCancel = "text.cancel"

	// Data structures
	TypeStructureAdd    = "structure.add"
	TypeStructureValues = "structure.values"
	TypeTreeUpdate      = "tree.update"
	TypeTreeAddChild    = "tree.addChild"
	TypeTreeRemove      = "tree.remove"

	// Scene
	TypeDeleteSelected = "selection.delete"
	TypeSceneClear     = "scene.clear"
	TypeSceneSample    = "scene.sample"
	TypeUndo           = "history.undo"
	TypeRedo           = "history.redo"
)

// --- Inbound payloads ---

type PointerPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	// Styles overrides the session's tool styles for this gesture.
	Styles document.StyleDefaults `json:"styles,omitempty"`
}

type WheelPayload struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	DeltaY float64 `json:"deltaY"`
}

type ToolPayload struct {
	Tool document.Tool `json:"tool"`
}

type StylesPayload struct {
	Styles document.StyleDefaults `json:"styles"`
}

type ViewportPayload struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type TextPayload struct {
	Text string `json:"text"`
}

type StructurePayload struct {
	Kind   document.ElementType `json:"kind"`
	Values []string             `json:"values"`
}

type ValuesPayload struct {
	Values []string `json:"values"`
}

type TreeNodePayload struct {
	ElementID string    `json:"elementId"`
	NodeID    string    `json:"nodeId"`
	Value     string    `json:"value,omitempty"`
	Side      tree.Side `json:"side,omitempty"`
	Promote   bool      `json:"promote,omitempty"`
}

// --- Outbound payloads ---

type ReadyPayload struct {
	SessionID string `json:"sessionId"`
	ClientID  string `json:"clientId"`
}

// FramePayload carries one rendered frame and the state a toolbar needs.
type FramePayload struct {
	Commands []render.DrawCommand `json:"commands"`
	View     document.ViewState   `json:"view"`
	Tool     document.Tool        `json:"tool"`
	Selected []string             `json:"selected"`
	CanUndo  bool                 `json:"canUndo"`
	CanRedo  bool                 `json:"canRedo"`
}

type ErrorPayload struct {
	Reason string `json:"reason"`
	Seq    int64  `json:"seq,omitempty"`
}

func newMessage(typ string, payload any) (*Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", typ, err)
	}
	return &Message{Type: typ, Payload: data}, nil
}

func decode[T any](raw json.RawMessage) (T, error) {
	var v T
	if len(raw) == 0 {
		return v, fmt.Errorf("%w: missing payload", ErrBadPayload)
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return v, nil
}
