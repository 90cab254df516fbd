// Package http exposes the mapping engine over a gin JSON API.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/ReactionMapper/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ReactionMapper/internal/interfaces/http/handlers"
	"github.com/turtacn/ReactionMapper/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handlers and settings of the route tree.
type RouterConfig struct {
	MappingHandler *handlers.MappingHandler
	HealthHandler  *handlers.HealthHandler

	// Metrics is served at MetricsPath when non-nil.
	Metrics     http.Handler
	MetricsPath string

	// Mode is the gin mode: debug, release or test.
	Mode        string
	MaxBodySize int64
	Logging     middleware.LoggingConfig
	Logger      logging.Logger
}

// NewRouter builds the route tree:
//
//	GET  /healthz
//	GET  /readyz
//	GET  <MetricsPath>
//	GET  /api/v1/theories
//	POST /api/v1/mappings
//	POST /api/v1/mappings/validate
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNopLogger()
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogging(cfg.Logger, cfg.Logging))

	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.Liveness)
		r.GET("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.Metrics != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(cfg.Metrics))
	}

	api := r.Group("/api/v1", middleware.BodyLimit(cfg.MaxBodySize))
	if h := cfg.MappingHandler; h != nil {
		api.GET("/theories", h.Theories)
		api.POST("/mappings", h.Create)
		api.POST("/mappings/validate", h.Validate)
	}
	return r
}
