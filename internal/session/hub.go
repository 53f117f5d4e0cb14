package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/structboard/structboard/internal/typeid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionBusy     = errors.New("session already has a client")
)

// DefaultIdleTTL is how long a session without a client is kept around for
// reconnects and snapshots.
const DefaultIdleTTL = 10 * time.Minute

type entry struct {
	session   *Session
	client    *Client
	reserved  bool
	idleSince time.Time
}

// Hub tracks live sessions and the one client attached to each.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	settings Settings
	idleTTL  time.Duration
	now      func() time.Time

	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

func NewHub(settings Settings, idleTTL time.Duration) *Hub {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	return &Hub{
		sessions:   make(map[string]*entry),
		settings:   settings,
		idleTTL:    idleTTL,
		now:        time.Now,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run processes client registration until ctx is done. Idle sessions are
// swept once per minute.
func (h *Hub) Run(ctx context.Context) {
	sweep := time.NewTicker(time.Minute)
	defer func() {
		sweep.Stop()
		close(h.done)
	}()

	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-sweep.C:
			h.sweep()
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Open reserves a session for a new connection. An empty id creates a new
// session; otherwise the idle session with that id is resumed.
func (h *Hub) Open(id string) (*Session, error) {
	if id != "" {
		if err := typeid.Validate(id, typeid.PrefixSession); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSessionNotFound, err)
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if id == "" {
		s, err := New("", h.settings)
		if err != nil {
			return nil, err
		}
		h.sessions[s.ID] = &entry{session: s, reserved: true}
		slog.Info("session created", "session", s.ID)
		return s, nil
	}

	e, ok := h.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if e.reserved {
		return nil, ErrSessionBusy
	}
	e.reserved = true
	return e.session, nil
}

// Release gives up a reservation from Open that never got a client.
func (h *Hub) Release(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if e, ok := h.sessions[id]; ok && e.client == nil {
		e.reserved = false
		e.idleSince = h.now()
	}
}

// Session returns the session with the given id.
func (h *Hub) Session(id string) (*Session, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	e, ok := h.sessions[id]
	if !ok {
		return nil, false
	}
	return e.session, true
}

// Len returns the number of live sessions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	e, ok := h.sessions[client.SessionID]
	if !ok {
		h.mu.Unlock()
		slog.Warn("client registered without session", "session", client.SessionID)
		client.conn.Close(websocket.StatusPolicyViolation, "unknown session")
		return
	}
	e.client = client
	e.reserved = true
	h.mu.Unlock()

	ready, err := newMessage(TypeReady, ReadyPayload{SessionID: client.SessionID, ClientID: client.ClientID})
	if err == nil {
		ready.SessionID = client.SessionID
		client.Send(ready)
	}
	if frame, err := e.session.Frame(); err == nil {
		client.Send(frame)
	} else {
		slog.Error("render initial frame", "error", err, "session", client.SessionID)
	}

	slog.Info("client attached", "session", client.SessionID, "client", client.ClientID)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	close(client.send)
	e, ok := h.sessions[client.SessionID]
	if !ok || e.client != client {
		return
	}
	e.client = nil
	e.reserved = false
	e.idleSince = h.now()

	slog.Info("client detached", "session", client.SessionID, "client", client.ClientID)
}

func (h *Hub) sweep() {
	h.mu.Lock()
	defer h.mu.Unlock()

	cutoff := h.now().Add(-h.idleTTL)
	for id, e := range h.sessions {
		if !e.reserved && e.idleSince.Before(cutoff) {
			delete(h.sessions, id)
			slog.Info("session expired", "session", id)
		}
	}
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	s, ok := h.Session(sender.SessionID)
	if !ok {
		sender.sendError(msg.Seq, ErrSessionNotFound.Error())
		return
	}

	frame, err := s.Handle(msg)
	if err != nil {
		slog.Warn("message rejected", "error", err, "type", msg.Type, "session", sender.SessionID)
		sender.sendError(msg.Seq, err.Error())
		return
	}
	sender.Send(frame)
}
