package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("IMAGO_PORT", "")
	t.Setenv("IMAGO_LOG_LEVEL", "")
	t.Setenv("IMAGO_REQUEST_TIMEOUT", "")

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 40*time.Second, cfg.RequestTimeout)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("IMAGO_PORT", "9090")
	t.Setenv("IMAGO_LOG_LEVEL", "debug")
	t.Setenv("IMAGO_REQUEST_TIMEOUT", "90s")
	t.Setenv("XAI_API_KEY", "xk")
	t.Setenv("GEMINI_API_KEY", "gk")
	t.Setenv("TOGETHER_API_KEY", "tk")
	t.Setenv("RUNWARE_API_KEY", "rk")

	cfg := LoadConfig()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 90*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "xk", cfg.XAIKey)
	assert.Equal(t, "gk", cfg.GoogleKey)
	assert.Equal(t, "tk", cfg.TogetherKey)
	assert.Equal(t, "rk", cfg.RunwareKey)
}

func TestLoadConfigInvalidTimeout(t *testing.T) {
	t.Setenv("IMAGO_REQUEST_TIMEOUT", "not-a-duration")

	cfg := LoadConfig()
	assert.Equal(t, 40*time.Second, cfg.RequestTimeout)
}
