package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gogpu/gg/text"
	"github.com/gorilla/mux"

	"github.com/structboard/structboard/internal/render"
	"github.com/structboard/structboard/internal/session"
	"github.com/structboard/structboard/internal/typeid"
)

const maxDimension = 4096

// Sessions looks up live sessions by id.
type Sessions interface {
	Session(id string) (*session.Session, bool)
}

// Handler renders session scenes to PNG.
type Handler struct {
	sessions Sessions
	fonts    *text.FontSource
}

func NewHandler(sessions Sessions, fonts *text.FontSource) *Handler {
	return &Handler{sessions: sessions, fonts: fonts}
}

// Snapshot serves GET /sessions/{sessionId}/snapshot.png. The image has the
// session's viewport size unless width and height query parameters are
// given.
func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["sessionId"]
	if err := typeid.Validate(id, typeid.PrefixSession); err != nil {
		http.Error(w, "invalid session id", http.StatusBadRequest)
		return
	}

	s, ok := h.sessions.Session(id)
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	vw, vh := s.Viewport()
	width, err := dimension(r.URL.Query().Get("width"), int(vw))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	height, err := dimension(r.URL.Query().Get("height"), int(vh))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	raster := render.NewRaster(width, height, h.fonts)
	defer raster.Close()

	if err := s.Paint(raster); err != nil {
		slog.Error("paint snapshot", "error", err, "session", id)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := raster.EncodePNG(&buf); err != nil {
		slog.Error("encode snapshot", "error", err, "session", id)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s.png"`, id))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Write(buf.Bytes())

	slog.Info("snapshot rendered", "session", id, "width", width, "height", height, "size", buf.Len())
}

func dimension(raw string, fallback int) (int, error) {
	if raw == "" {
		if fallback <= 0 {
			return 0, fmt.Errorf("session has no viewport")
		}
		return min(fallback, maxDimension), nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 || v > maxDimension {
		return 0, fmt.Errorf("invalid dimension %q: must be 1-%d", raw, maxDimension)
	}
	return v, nil
}
