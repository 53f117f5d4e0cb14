// Package session serves a scene engine to a browser over a websocket. Each
// session owns one store, one engine and a renderer that records draw
// commands; every inbound message is answered with a fresh frame.
package session

import (
	"fmt"
	"sync"

	"github.com/structboard/structboard/internal/document"
	"github.com/structboard/structboard/internal/engine"
	"github.com/structboard/structboard/internal/geometry"
	"github.com/structboard/structboard/internal/render"
	"github.com/structboard/structboard/internal/store"
	"github.com/structboard/structboard/internal/typeid"
)

// Settings are the per-session engine parameters.
type Settings struct {
	ViewportWidth  float64
	ViewportHeight float64
	HistoryLimit   int
	HitTolerance   float64
}

func DefaultSettings() Settings {
	return Settings{
		ViewportWidth:  1280,
		ViewportHeight: 720,
		HistoryLimit:   store.HistoryLimit,
		HitTolerance:   engine.DefaultHitTolerance,
	}
}

type Session struct {
	ID string

	mu       sync.Mutex
	store    *store.Store
	engine   *engine.Engine
	recorder *render.Recorder
	renderer *render.Renderer
}

// New creates a session. An empty id gets a fresh one.
func New(id string, settings Settings) (*Session, error) {
	if id == "" {
		id = typeid.NewSessionID()
	}
	s := store.New(store.WithHistoryLimit(settings.HistoryLimit))
	rec := render.NewRecorder(settings.ViewportWidth, settings.ViewportHeight)
	r, err := render.New(s, rec)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}
	return &Session{
		ID:    id,
		store: s,
		engine: engine.New(s,
			engine.WithViewport(settings.ViewportWidth, settings.ViewportHeight),
			engine.WithHitTolerance(settings.HitTolerance),
		),
		recorder: rec,
		renderer: r,
	}, nil
}

// Handle applies msg to the engine and returns the resulting frame.
func (s *Session) Handle(msg *Message) (*Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.dispatch(msg); err != nil {
		return nil, err
	}
	return s.frameLocked(msg.Seq)
}

// Frame renders the current scene.
func (s *Session) Frame() (*Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frameLocked(0)
}

func (s *Session) frameLocked(seq int64) (*Message, error) {
	s.renderer.Frame()
	msg, err := newMessage(TypeFrame, FramePayload{
		Commands: s.recorder.Flush(),
		View:     s.store.View(),
		Tool:     s.engine.Tool(),
		Selected: s.selectionLocked(),
		CanUndo:  s.engine.CanUndo(),
		CanRedo:  s.engine.CanRedo(),
	})
	if err != nil {
		return nil, err
	}
	msg.SessionID = s.ID
	msg.Seq = seq
	return msg, nil
}

func (s *Session) selectionLocked() []string {
	if ids := s.store.SelectedIDs(); len(ids) > 0 {
		return ids
	}
	if id := s.store.SelectedID(); id != "" {
		return []string{id}
	}
	return []string{}
}

// Paint renders the scene onto surface, sized like the session viewport.
func (s *Session) Paint(surface render.Surface) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := render.New(s.store, surface)
	if err != nil {
		return err
	}
	r.Frame()
	return nil
}

// Viewport returns the session's surface size in screen pixels.
func (s *Session) Viewport() (float64, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Viewport()
}

// Elements returns a copy of the scene in paint order.
func (s *Session) Elements() []document.Element {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Elements()
}

// Load replaces the scene without recording history.
func (s *Session) Load(els []document.Element) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.LoadElements(els)
}

// HitTest returns the id of the topmost element under screen point p.
func (s *Session) HitTest(p document.Point) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.HitTest(p)
}

// SelectionBounds returns the world bounds of the selection.
func (s *Session) SelectionBounds() (geometry.Rect, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.SelectionBounds()
}
