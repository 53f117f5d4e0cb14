package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port           int           `envconfig:"PORT" default:"8080"`
	AllowedOrigins []string      `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
	ViewportWidth  float64       `envconfig:"VIEWPORT_WIDTH" default:"1280"`
	ViewportHeight float64       `envconfig:"VIEWPORT_HEIGHT" default:"720"`
	HistoryLimit   int           `envconfig:"HISTORY_LIMIT" default:"50"`
	HitTolerance   float64       `envconfig:"HIT_TOLERANCE" default:"5"`
	FontPath       string        `envconfig:"FONT_PATH"`
	SessionIdleTTL time.Duration `envconfig:"SESSION_IDLE_TTL" default:"10m"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if cfg.ViewportWidth <= 0 || cfg.ViewportHeight <= 0 {
		return nil, fmt.Errorf("viewport must be positive, got %vx%v", cfg.ViewportWidth, cfg.ViewportHeight)
	}
	if cfg.HistoryLimit <= 0 {
		return nil, fmt.Errorf("history limit must be positive, got %d", cfg.HistoryLimit)
	}
	return &cfg, nil
}

// Level maps LOG_LEVEL to a slog level. Unknown values mean info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// OriginPatterns returns the allowed origins as host patterns for the
// websocket origin check.
func (c *Config) OriginPatterns() []string {
	out := make([]string, 0, len(c.AllowedOrigins))
	for _, o := range c.AllowedOrigins {
		o = strings.TrimPrefix(o, "http://")
		o = strings.TrimPrefix(o, "https://")
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
