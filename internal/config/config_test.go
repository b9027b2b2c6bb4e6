package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"recruitment-hub/internal/config"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg := config.Load()

		assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
		assert.Equal(t, 12, cfg.BcryptCost)
		assert.Equal(t, 64, cfg.EventBufferSize)
		assert.Equal(t, "recruitment:events", cfg.EventRelayChannel)
		assert.Equal(t, 15*time.Second, cfg.SSEHeartbeat)
		assert.Equal(t, int64(5*1024*1024), cfg.ResumeMaxSize)
		assert.Equal(t, time.UTC, cfg.Location())
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv("EVENT_BUFFER_SIZE", "8")
		t.Setenv("EVENT_RELAY_ENABLED", "true")
		t.Setenv("AUTH_RATE_WINDOW", "30s")
		t.Setenv("DISPLAY_TIMEZONE", "Asia/Jakarta")

		cfg := config.Load()

		assert.Equal(t, 8, cfg.EventBufferSize)
		assert.True(t, cfg.EventRelayEnabled)
		assert.Equal(t, 30*time.Second, cfg.AuthRateWindow)
		assert.Equal(t, "Asia/Jakarta", cfg.Location().String())
	})

	t.Run("Malformed Values Keep Defaults", func(t *testing.T) {
		t.Setenv("BCRYPT_COST", "twelve")
		t.Setenv("SSE_HEARTBEAT", "soon")
		t.Setenv("DISPLAY_TIMEZONE", "Nowhere/Special")

		cfg := config.Load()

		assert.Equal(t, 12, cfg.BcryptCost)
		assert.Equal(t, 15*time.Second, cfg.SSEHeartbeat)
		assert.Equal(t, time.UTC, cfg.Location())
	})
}
