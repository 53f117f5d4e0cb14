package session

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Handler upgrades HTTP requests to session websockets. Requests without a
// sessionId path variable start a new session.
type Handler struct {
	hub            *Hub
	originPatterns []string
}

func NewHandler(hub *Hub, originPatterns []string) *Handler {
	return &Handler{hub: hub, originPatterns: originPatterns}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	s, err := h.hub.Open(sessionID)
	switch {
	case errors.Is(err, ErrSessionNotFound):
		http.Error(w, "session not found", http.StatusNotFound)
		return
	case errors.Is(err, ErrSessionBusy):
		http.Error(w, "session in use", http.StatusConflict)
		return
	case err != nil:
		slog.Error("open session", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		h.hub.Release(s.ID)
		slog.Error("websocket accept", "error", err)
		return
	}

	client := NewClient(h.hub, conn, s.ID, uuid.New().String())
	h.hub.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}
