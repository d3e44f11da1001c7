// Command server runs the Vigia marketplace provisioning service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	appservice "github.com/vigiaai/vigia-provision/internal/application/service"
	"github.com/vigiaai/vigia-provision/internal/config"
	domainservice "github.com/vigiaai/vigia-provision/internal/domain/service"
	"github.com/vigiaai/vigia-provision/internal/infrastructure/crypto"
	"github.com/vigiaai/vigia-provision/internal/infrastructure/events"
	"github.com/vigiaai/vigia-provision/internal/infrastructure/marketplace"
	"github.com/vigiaai/vigia-provision/internal/infrastructure/monitoring"
	"github.com/vigiaai/vigia-provision/internal/infrastructure/persistence/postgres"
	"github.com/vigiaai/vigia-provision/internal/infrastructure/persistence/rediscache"
	"github.com/vigiaai/vigia-provision/internal/interfaces/http/handlers"
	"github.com/vigiaai/vigia-provision/internal/interfaces/http/router"
	"github.com/vigiaai/vigia-provision/pkg/logger"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := monitoring.NewZapLogger(cfg.Log.Level)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := monitoring.InitTracing(ctx, &cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(shutdownCtx)
	}()

	db, err := postgres.NewDBConnection(ctx, &cfg.Database, log)
	if err != nil {
		return err
	}
	if err := postgres.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	redisClient, err := rediscache.NewRedisClient(ctx, &cfg.Redis, log)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := monitoring.NewMetrics(registry)

	tenantRepo := postgres.NewTenantRepository(db, metrics, log)
	userRepo := postgres.NewUserRepository(db, log)
	eniRepo := postgres.NewNetworkIdentityRepository(db, log)
	detectionRepo := postgres.NewDetectionRepository(db, log)

	lookupCache := rediscache.NewLookupCache(redisClient, cfg.Redis.LookupTTL, log)
	sessions := crypto.NewSessionTokenManager(&cfg.Session, log)

	var resolver domainservice.CustomerResolver
	if cfg.Marketplace.Mode == "static" {
		resolver = marketplace.NewStaticResolver()
	} else {
		resolver = marketplace.NewHTTPResolver(&cfg.Marketplace, log)
	}

	var publisher domainservice.DetectionPublisher
	if cfg.Kafka.Enabled {
		publisher = events.NewKafkaPublisher(&cfg.Kafka, log)
	} else {
		publisher = events.NewNopPublisher()
	}
	defer publisher.Close()

	provisioningSvc := appservice.NewProvisioningService(resolver, tenantRepo, userRepo, sessions, metrics, log)
	authSvc := appservice.NewAuthService(userRepo, sessions, metrics, log)
	eniSvc := appservice.NewENIService(eniRepo, log)
	detectionSvc := appservice.NewDetectionService(detectionRepo, tenantRepo, eniRepo, lookupCache, publisher, metrics, log)

	engine := router.New(cfg, router.Handlers{
		Provisioning: handlers.NewProvisioningHandler(provisioningSvc),
		Auth:         handlers.NewAuthHandler(authSvc),
		ENI:          handlers.NewENIHandler(eniSvc),
		Detection:    handlers.NewDetectionHandler(detectionSvc),
		Health:       handlers.NewHealthHandler(db, redisClient, version),
	}, sessions, metrics, registry, log)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info(gctx, "Server listening", logger.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info(context.Background(), "Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
