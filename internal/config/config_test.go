package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_TYPE", "DETERMINISTIC", "RECENT_WINDOW", "TOKEN_TTL", "RATE_LIMIT_RPS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.DatabaseType)
	assert.False(t, cfg.Deterministic)
	assert.Equal(t, 10, cfg.RecentWindow)
	assert.Equal(t, 30*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 5.0, cfg.RateLimitRPS)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_TYPE", "Postgres")
	t.Setenv("DETERMINISTIC", "true")
	t.Setenv("RANDOM_SEED", "42")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("RECENT_WINDOW", "not-a-number")
	t.Setenv("TTS_ENDPOINT", "http://localhost:9999/tts")

	cfg := Load()

	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DatabaseType)
	assert.True(t, cfg.Deterministic)
	assert.Equal(t, uint64(42), cfg.RandomSeed)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10, cfg.RecentWindow)
	assert.Equal(t, "http://localhost:9999/tts", cfg.TTSEndpoint)
}
