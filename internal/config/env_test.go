package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("MERGEBOX_TEST_STR", "value")
	assert.Equal(t, "value", GetEnv("MERGEBOX_TEST_STR", "fallback"))
	assert.Equal(t, "fallback", GetEnv("MERGEBOX_TEST_MISSING", "fallback"))
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("MERGEBOX_TEST_INT", "42")
	t.Setenv("MERGEBOX_TEST_BAD_INT", "forty")
	assert.Equal(t, 42, GetEnvInt("MERGEBOX_TEST_INT", 1))
	assert.Equal(t, 1, GetEnvInt("MERGEBOX_TEST_BAD_INT", 1))
	assert.Equal(t, 7, GetEnvInt("MERGEBOX_TEST_MISSING", 7))
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("MERGEBOX_TEST_DUR", "250ms")
	assert.Equal(t, 250*time.Millisecond, GetEnvDuration("MERGEBOX_TEST_DUR", time.Second))
	assert.Equal(t, time.Second, GetEnvDuration("MERGEBOX_TEST_MISSING", time.Second))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SSH_PORT", "2323")
	t.Setenv("MAX_SESSIONS", "16")
	cfg := Load()
	assert.Equal(t, "2323", cfg.SSHPort)
	assert.Equal(t, 16, cfg.MaxSessions)
	assert.NotEmpty(t, cfg.HighScoreFile)
}
