package api

import (
	"github.com/Conceptual-Machines/musicbrain-api/internal/api/handlers"
	"github.com/Conceptual-Machines/musicbrain-api/internal/api/middleware"
	"github.com/Conceptual-Machines/musicbrain-api/internal/config"
	"github.com/Conceptual-Machines/musicbrain-api/internal/gateway"
	"github.com/Conceptual-Machines/musicbrain-api/internal/jsoncache"
	"github.com/gin-gonic/gin"
)

// Dependencies are the services the router wires into handlers
type Dependencies struct {
	Gateway   *gateway.Gateway
	Bridge    handlers.BridgeInfo
	JSONCache *jsoncache.Cache // optional, reported by /api/metrics
	Recorders []middleware.APIRecorder
}

func SetupRouter(cfg *config.Config, deps Dependencies, version string) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(middleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(middleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(middleware.RequestTracking(deps.Recorders...))

	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	// Health check
	healthHandler := handlers.NewHealthHandler(deps.Bridge)
	router.GET("/health", healthHandler.HealthCheck)

	// Metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(version, deps.Bridge, deps.JSONCache)
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	v1 := router.Group("/api/v1")
	switch {
	case cfg.IsGatewayMode():
		v1.Use(middleware.GatewayAuth())
	case cfg.IsJWTMode():
		v1.Use(middleware.JWTAuth(cfg.JWTSecret))
	default:
		v1.Use(middleware.NoAuth())
	}
	{
		commandHandler := handlers.NewCommandHandler(deps.Gateway)
		v1.POST("/generate", commandHandler.GenerateMusic)
		v1.POST("/interrogate", commandHandler.Interrogate)
		v1.GET("/emotions", commandHandler.GetEmotions)

		// Named-command dispatch, same names the desktop shell invokes
		v1.GET("/commands", commandHandler.ListCommands)
		v1.POST("/commands/:command", commandHandler.Dispatch)
	}

	return router
}
