package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gogpu/gg"
	"github.com/gorilla/mux"

	"github.com/structboard/structboard/internal/config"
	"github.com/structboard/structboard/internal/export"
	mw "github.com/structboard/structboard/internal/middleware"
	"github.com/structboard/structboard/internal/render"
	"github.com/structboard/structboard/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)
	gg.SetLogger(logger.With("component", "raster"))

	fonts, err := render.LoadFontSource(cfg.FontPath)
	if err != nil {
		slog.Error("load font", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := session.NewHub(session.Settings{
		ViewportWidth:  cfg.ViewportWidth,
		ViewportHeight: cfg.ViewportHeight,
		HistoryLimit:   cfg.HistoryLimit,
		HitTolerance:   cfg.HitTolerance,
	}, cfg.SessionIdleTTL)
	go hub.Run(ctx)

	wsHandler := session.NewHandler(hub, cfg.OriginPatterns())
	exportHandler := export.NewHandler(hub, fonts)

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.AllowedOrigins))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"ok","sessions":%d}`, hub.Len())
	}).Methods("GET")

	r.HandleFunc("/sessions/{sessionId}/snapshot.png", exportHandler.Snapshot).Methods("GET", "OPTIONS")

	// WebSocket endpoints
	r.Handle("/ws/session", wsHandler)
	r.Handle("/ws/session/{sessionId}", wsHandler)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
