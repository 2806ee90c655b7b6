package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "uploads", cfg.UploadDirectory)
	assert.Equal(t, 0.5, cfg.ConfidenceThreshold)
	assert.Equal(t, int64(50), cfg.MaxUploadSizeMB)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("UPLOAD_DIR", "/srv/uploads")
	t.Setenv("CONFIDENCE_THRESHOLD", "0.75")

	cfg := Load()

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/srv/uploads", cfg.UploadDirectory)
	assert.Equal(t, 0.75, cfg.ConfidenceThreshold)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	t.Setenv("CONFIDENCE_THRESHOLD", "high")

	cfg := Load()

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, 0.5, cfg.ConfidenceThreshold)
}
