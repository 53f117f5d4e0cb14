package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, 1280.0, cfg.ViewportWidth)
	assert.Equal(t, 720.0, cfg.ViewportHeight)
	assert.Equal(t, 50, cfg.HistoryLimit)
	assert.Equal(t, 5.0, cfg.HitTolerance)
	assert.Empty(t, cfg.FontPath)
	assert.Equal(t, 10*time.Minute, cfg.SessionIdleTTL)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
	assert.Equal(t, []string{"localhost:5173", "localhost:3000"}, cfg.OriginPatterns())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ALLOWED_ORIGINS", "https://board.example.com")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("HISTORY_LIMIT", "10")
	t.Setenv("SESSION_IDLE_TTL", "30s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, []string{"board.example.com"}, cfg.OriginPatterns())
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, 10, cfg.HistoryLimit)
	assert.Equal(t, 30*time.Second, cfg.SessionIdleTTL)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"PORT":           "eighty",
		"HISTORY_LIMIT":  "0",
		"VIEWPORT_WIDTH": "-1",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
