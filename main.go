package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/Conceptual-Machines/musicbrain-api/internal/api"
	"github.com/Conceptual-Machines/musicbrain-api/internal/api/handlers"
	"github.com/Conceptual-Machines/musicbrain-api/internal/api/middleware"
	"github.com/Conceptual-Machines/musicbrain-api/internal/bridge"
	"github.com/Conceptual-Machines/musicbrain-api/internal/catalog"
	"github.com/Conceptual-Machines/musicbrain-api/internal/config"
	"github.com/Conceptual-Machines/musicbrain-api/internal/gateway"
	"github.com/Conceptual-Machines/musicbrain-api/internal/jsoncache"
	"github.com/Conceptual-Machines/musicbrain-api/internal/logger"
	"github.com/Conceptual-Machines/musicbrain-api/internal/metrics"
	"github.com/Conceptual-Machines/musicbrain-api/internal/observability"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const (
	sentryFlushTimeout    = 2 * time.Second
	environmentProduction = "production"
)

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

// GetVersion returns the current release version
func GetVersion() string {
	return releaseVersion
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	ctx := context.Background()

	// Initialize Sentry
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			Release:          "musicbrain-api@" + releaseVersion,
			EnableTracing:    true,
			TracesSampleRate: 1.0,
			Debug:            cfg.Environment != environmentProduction,
			BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
				if event.Request != nil {
					event.Request.Headers = filterSensitiveHeaders(event.Request.Headers)
				}
				return event
			},
		}); err != nil {
			log.Printf("Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s, release: %s)", cfg.Environment, releaseVersion)
			defer sentry.Flush(sentryFlushTimeout)
		}
	} else {
		log.Println("⚠️  Sentry not configured (SENTRY_DSN not set)")
	}

	// Bridge: remote musicbrain service, optionally with a local emotion catalog
	cache := jsoncache.New(cfg.JSONCacheSize)
	bridgeOpts := []bridge.Option{bridge.WithTimeout(cfg.MusicbrainTimeout)}
	catalogDir := ""
	if cfg.EmotionCatalogDir != "" {
		emotions := catalog.New(cfg.EmotionCatalogDir, cache)
		catalogDir = emotions.Dir()
		bridgeOpts = append(bridgeOpts, bridge.WithEmotionCatalog(emotions))
		log.Printf("🎭 Serving emotions from %s", catalogDir)
	}
	client := bridge.NewHTTPClient(cfg.MusicbrainURL, bridgeOpts...)

	langfuseClient := observability.InitializeLangfuse(ctx, cfg)
	cloudwatchClient, err := metrics.NewClient(ctx, cfg.Environment)
	if err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to initialize CloudWatch metrics:", err)
	}

	gw := gateway.New(
		observability.TraceBridge(client, langfuseClient),
		gateway.WithObserver(gateway.ObserverFunc(logger.LogBridgeCall)),
		gateway.WithObserver(metrics.NewSentryMetrics()),
		gateway.WithObserver(cloudwatchClient),
	)

	if cfg.IsJWTMode() && cfg.JWTSecret == "" {
		log.Println("⚠️  AUTH_MODE=jwt without JWT_SECRET, all /api/v1 requests will be rejected")
	}

	if cfg.Environment == environmentProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.SetupRouter(cfg, api.Dependencies{
		Gateway: gw,
		Bridge: handlers.BridgeInfo{
			URL:          client.BaseURL(),
			LocalCatalog: client.UsesLocalCatalog(),
			CatalogDir:   catalogDir,
		},
		JSONCache: cache,
		Recorders: []middleware.APIRecorder{cloudwatchClient},
	}, GetVersion())

	log.Printf("🚀 Starting server on port %s (musicbrain: %s)", cfg.Port, cfg.MusicbrainURL)
	if err := router.Run(":" + cfg.Port); err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to start server:", err)
	}
}

func filterSensitiveHeaders(headers map[string]string) map[string]string {
	filtered := make(map[string]string)
	sensitiveKeys := map[string]bool{
		"authorization": true,
		"cookie":        true,
		"x-api-key":     true,
	}

	for k, v := range headers {
		if sensitiveKeys[strings.ToLower(k)] {
			filtered[k] = "[REDACTED]"
		} else {
			filtered[k] = v
		}
	}
	return filtered
}
