// Package router assembles the gin engine: middleware chain, API routes, and
// operational endpoints.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vigiaai/vigia-provision/internal/config"
	"github.com/vigiaai/vigia-provision/internal/domain/service"
	"github.com/vigiaai/vigia-provision/internal/infrastructure/monitoring"
	"github.com/vigiaai/vigia-provision/internal/interfaces/http/handlers"
	"github.com/vigiaai/vigia-provision/internal/interfaces/http/middleware"
	"github.com/vigiaai/vigia-provision/pkg/logger"
)

// Handlers bundles the endpoint handlers wired by the composition root.
type Handlers struct {
	Provisioning *handlers.ProvisioningHandler
	Auth         *handlers.AuthHandler
	ENI          *handlers.ENIHandler
	Detection    *handlers.DetectionHandler
	Health       *handlers.HealthHandler
}

// New builds the gin engine with the full middleware chain and route table.
func New(
	cfg *config.Config,
	h Handlers,
	sessions service.SessionService,
	metrics *monitoring.Metrics,
	registry *prometheus.Registry,
	log logger.Logger,
) *gin.Engine {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		middleware.Recovery(log),
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.Metrics(metrics),
	)
	if cfg.Tracing.Enabled {
		engine.Use(middleware.Tracing(cfg.Tracing.ServiceName))
	}

	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	engine.GET("/health/live", h.Health.Live)
	engine.GET("/health/ready", h.Health.Ready)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	if cfg.Server.PprofEnabled {
		pprof.Register(engine)
	}

	engine.GET("/marketplace/register", h.Provisioning.Register)
	engine.POST("/marketplace/complete-profile", h.Provisioning.CompleteProfile)
	engine.POST("/auth/login", h.Auth.Login)
	engine.POST("/ingest/detection", h.Detection.Ingest)

	if cfg.Server.DevMode {
		engine.POST("/dev/stub-register", h.Provisioning.StubRegister)
	}

	authed := engine.Group("/", middleware.BearerAuth(sessions))
	{
		authed.GET("/detections", h.Detection.List)
		authed.POST("/enis/register", h.ENI.Register)
		authed.GET("/enis", h.ENI.List)
		authed.DELETE("/enis/:eni_id", h.ENI.Delete)
	}

	return engine
}
