package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"ENVIRONMENT", "PORT", "MUSICBRAIN_URL", "MUSICBRAIN_TIMEOUT",
		"EMOTION_CATALOG_DIR", "JSON_CACHE_SIZE", "AUTH_MODE", "CORS_ALLOWED_ORIGINS",
		"LANGFUSE_ENABLED",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://127.0.0.1:8765", cfg.MusicbrainURL)
	assert.Equal(t, 120*time.Second, cfg.MusicbrainTimeout)
	assert.Empty(t, cfg.EmotionCatalogDir)
	assert.Equal(t, 256, cfg.JSONCacheSize)
	assert.False(t, cfg.LangfuseEnabled)
	assert.False(t, cfg.IsGatewayMode())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, []string{"tauri://localhost", "http://localhost:1420"}, cfg.CORSAllowedOrigins)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("MUSICBRAIN_URL", "http://musicbrain:9000")
	t.Setenv("MUSICBRAIN_TIMEOUT", "45s")
	t.Setenv("EMOTION_CATALOG_DIR", "/data/emotion_thesaurus")
	t.Setenv("JSON_CACHE_SIZE", "32")
	t.Setenv("AUTH_MODE", "gateway")
	t.Setenv("CORS_ALLOWED_ORIGINS", " * , ")
	t.Setenv("LANGFUSE_ENABLED", "true")

	cfg := Load()
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.IsGatewayMode())
	assert.Equal(t, "http://musicbrain:9000", cfg.MusicbrainURL)
	assert.Equal(t, 45*time.Second, cfg.MusicbrainTimeout)
	assert.Equal(t, "/data/emotion_thesaurus", cfg.EmotionCatalogDir)
	assert.Equal(t, 32, cfg.JSONCacheSize)
	assert.True(t, cfg.LangfuseEnabled)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestLoadJWTMode(t *testing.T) {
	t.Setenv("AUTH_MODE", "jwt")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg := Load()
	assert.True(t, cfg.IsJWTMode())
	assert.False(t, cfg.IsGatewayMode())
	assert.Equal(t, "s3cret", cfg.JWTSecret)
}

func TestLoadIgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("MUSICBRAIN_TIMEOUT", "soon")
	t.Setenv("JSON_CACHE_SIZE", "-3")

	cfg := Load()
	assert.Equal(t, 120*time.Second, cfg.MusicbrainTimeout)
	assert.Equal(t, 256, cfg.JSONCacheSize)
}
