package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fx-rate-service/internal/application/services"
	"fx-rate-service/internal/domain/interfaces"
	"fx-rate-service/internal/infrastructure/config"
	"fx-rate-service/internal/infrastructure/events"
	"fx-rate-service/internal/infrastructure/grpcserver"
	"fx-rate-service/internal/infrastructure/logging"
	"fx-rate-service/internal/infrastructure/metrics"
	"fx-rate-service/internal/infrastructure/providers/exchangerateapi"
	"fx-rate-service/internal/infrastructure/providers/freecurrencyapi"
	"fx-rate-service/internal/infrastructure/repositories/cache"
	"fx-rate-service/internal/infrastructure/resilience"
	"fx-rate-service/internal/infrastructure/scheduler"
	"fx-rate-service/internal/infrastructure/web/handlers"
	"fx-rate-service/internal/infrastructure/web/server"
)

const (
	serviceName    = "fx-rate-service"
	serviceVersion = "1.0.0"

	primaryBreakerName  = "primary-fx-api"
	fallbackBreakerName = "fallback-fx-api"

	cacheConnectTimeout = 5 * time.Second
)

// @title FX Rate Service API
// @version 1.0
// @description Exchange rates and conversions backed by cache, two upstream providers and a static default table.
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}
	loggerConfig := logging.NewConfig(serviceName, serviceVersion, environment).
		WithLevel(logging.LogLevelFromString(cfg.Logging.Level)).
		WithFormat(logging.LogFormatFromString(cfg.Logging.Format))
	if err := logging.InitializeGlobalLoggers(loggerConfig); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}

	ctx := context.Background()
	logging.Info(ctx, "Starting FX rate service", logging.Fields{
		"version":       serviceVersion,
		"cache_backend": cfg.Cache.Backend,
		"grpc_enabled":  cfg.GRPC.Enabled,
	})
	metrics.SetApplicationInfo(serviceVersion, cfg.Cache.Backend)

	// Cache: a failed connect only degrades; the gateway keeps probing in the background
	rateCache, err := cache.NewFactory().CreateGateway(cfg.Cache)
	if err != nil {
		logging.ErrorWithError(ctx, "Failed to create cache", err, nil)
		os.Exit(1)
	}
	connectCtx, cancelConnect := context.WithTimeout(ctx, cacheConnectTimeout)
	if err := rateCache.Connect(connectCtx); err != nil {
		logging.WarnWithError(ctx, "Cache unavailable at startup, running in degraded cache mode", err, nil)
	}
	cancelConnect()

	primary := exchangerateapi.NewClient(cfg.Providers.Primary, cfg.Providers.Timeout)
	fallback := freecurrencyapi.NewClient(cfg.Providers.Fallback, cfg.Providers.Timeout)

	listeners := []interfaces.BreakerListener{
		resilience.NewLoggingListener(),
		resilience.NewMetricsListener(),
	}
	var publisher *events.KafkaPublisher
	if cfg.Events.Enabled {
		publisher = events.NewKafkaPublisher(cfg.Events)
		listeners = append(listeners, publisher)
		logging.Info(ctx, "Breaker events publishing enabled", logging.Fields{
			"brokers": cfg.Events.Brokers,
			"topic":   cfg.Events.Topic,
		})
	}

	fxService := services.NewFxService(rateCache,
		services.ProviderTier{Provider: primary, Breaker: newBreaker(primaryBreakerName, cfg.Breaker, listeners)},
		services.ProviderTier{Provider: fallback, Breaker: newBreaker(fallbackBreakerName, cfg.Breaker, listeners)},
		services.Options{
			CacheTTL:         cfg.Cache.TTL,
			MaxRetries:       cfg.Retry.MaxRetries,
			RetryBaseDelay:   cfg.Retry.BaseDelay,
			IdentityShortcut: cfg.Business.IdentityShortcut,
			SingleFlight:     cfg.Business.SingleFlight,
		},
	)

	var warmup *scheduler.Warmup
	if cfg.Warmup.Enabled {
		warmup = scheduler.NewWarmup(fxService, cfg.Warmup)
		if err := warmup.Start(); err != nil {
			logging.ErrorWithError(ctx, "Failed to start cache warmup", err, nil)
			os.Exit(1)
		}
	}

	serverErrors := make(chan error, 2)

	httpServer := server.NewServer(handlers.NewRouter(fxService), cfg.Server.Port)
	go func() {
		serverErrors <- httpServer.Start()
	}()

	var grpcServer *grpcserver.Server
	if cfg.GRPC.Enabled {
		grpcServer = grpcserver.NewServer(fxService, cfg.GRPC.Port)
		go func() {
			serverErrors <- grpcServer.Start()
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	exitCode := 0
	select {
	case sig := <-quit:
		logging.Info(ctx, "Shutdown signal received", logging.Fields{"signal": sig.String()})
	case err := <-serverErrors:
		if err != nil {
			logging.ErrorWithError(ctx, "Server stopped unexpectedly", err, nil)
			exitCode = 1
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)

	if grpcServer != nil {
		if err := grpcServer.Stop(shutdownCtx); err != nil {
			logging.WarnWithError(ctx, "gRPC server forced to stop", err, nil)
		}
	}
	if err := httpServer.Stop(shutdownCtx); err != nil {
		logging.WarnWithError(ctx, "HTTP server forced to stop", err, nil)
	}
	if warmup != nil {
		warmup.Stop()
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logging.WarnWithError(ctx, "Failed to close breaker event publisher", err, nil)
		}
	}
	if err := rateCache.Close(); err != nil {
		logging.WarnWithError(ctx, "Failed to close cache", err, nil)
	}

	cancel()

	logging.Info(ctx, "Server shutdown completed", nil)
	os.Exit(exitCode)
}

func newBreaker(name string, cfg config.BreakerConfig, listeners []interfaces.BreakerListener) *resilience.Breaker {
	return resilience.NewBreaker(resilience.BreakerSettings{
		Name:            name,
		Timeout:         cfg.Timeout,
		ErrorThreshold:  cfg.ErrorThreshold,
		ResetTimeout:    cfg.ResetTimeout,
		VolumeThreshold: cfg.VolumeThreshold,
		RollingWindow:   cfg.RollingWindow,
	}, resilience.MultiListener(listeners))
}
