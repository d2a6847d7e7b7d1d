package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBridgeTimeout = 120 * time.Second
	defaultJSONCacheSize = 256
)

// Config holds the application configuration
// Note: This layer is stateless - generation, interrogation and the emotion
// model all live in the musicbrain service
type Config struct {
	// Environment
	Environment string
	Port        string

	// Musicbrain bridge
	MusicbrainURL     string        // Base URL of the musicbrain service
	MusicbrainTimeout time.Duration // Per-request timeout for bridge calls
	EmotionCatalogDir string        // Serve get_emotions from local thesaurus files when set
	JSONCacheSize     int           // Max thesaurus files kept in memory

	// Observability
	SentryDSN         string // Sentry DSN for error tracking
	LangfusePublicKey string // Langfuse public key
	LangfuseSecretKey string // Langfuse secret key
	LangfuseHost      string // Langfuse host URL (cloud or self-hosted)
	LangfuseEnabled   bool   // Feature flag for Langfuse

	// Auth mode
	// - "none": No auth (desktop shell, local dev)
	// - "gateway": Trust X-User-* headers from a fronting gateway
	// - "jwt": Validate bearer tokens signed with JWTSecret
	AuthMode  string
	JWTSecret string

	// Comma-separated list of origins allowed by CORS, "*" for any
	CORSAllowedOrigins []string
}

func Load() *Config {
	return &Config{
		Environment:        getEnv("ENVIRONMENT", "development"),
		Port:               getEnv("PORT", "8080"),
		MusicbrainURL:      getEnv("MUSICBRAIN_URL", "http://127.0.0.1:8765"),
		MusicbrainTimeout:  getDuration("MUSICBRAIN_TIMEOUT", defaultBridgeTimeout),
		EmotionCatalogDir:  getEnv("EMOTION_CATALOG_DIR", ""),
		JSONCacheSize:      getInt("JSON_CACHE_SIZE", defaultJSONCacheSize),
		SentryDSN:          getEnv("SENTRY_DSN", ""),
		LangfusePublicKey:  getEnv("LANGFUSE_PUBLIC_KEY", ""),
		LangfuseSecretKey:  getEnv("LANGFUSE_SECRET_KEY", ""),
		LangfuseHost:       getEnv("LANGFUSE_HOST", "https://cloud.langfuse.com"),
		LangfuseEnabled:    getEnv("LANGFUSE_ENABLED", "false") == "true",
		AuthMode:           getEnv("AUTH_MODE", "none"), // Default to no auth for the desktop shell
		JWTSecret:          getEnv("JWT_SECRET", ""),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "tauri://localhost,http://localhost:1420")),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func getInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsGatewayMode returns true if running behind a trusted gateway
func (c *Config) IsGatewayMode() bool {
	return c.AuthMode == "gateway"
}

// IsJWTMode returns true if callers authenticate with bearer tokens
func (c *Config) IsJWTMode() bool {
	return c.AuthMode == "jwt"
}

// IsProduction returns true in the production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
