package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flightwatch-service/internal/app"
	"flightwatch-service/internal/infrastructure/config"
	"flightwatch-service/internal/infrastructure/router"
	"flightwatch-service/internal/interface/handler"
	"flightwatch-service/internal/interface/middleware"
	"flightwatch-service/internal/usecase"
	"flightwatch-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger("info").Fatal("Failed to load config", "error", err)
	}

	// Create logger
	zl := logger.NewLogger(cfg.LogLevel)
	defer zl.Sync()
	var log logger.Logger = zl
	log.Info("Starting Flightwatch Service", "version", cfg.AppVersion)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	container, err := app.Build(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialise service", "error", err)
	}

	container.Dispatcher.Start(ctx)

	// Run the full notification cycle periodically
	if cfg.CycleInterval > 0 {
		go func() {
			ticker := time.NewTicker(cfg.CycleInterval)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					log.Info("Notification cycle ticker stopped")
					return
				case <-ticker.C:
					log.Info("Running notification cycle")
					runCtx, runCancel := usecase.WithCycleTimeout(ctx, cfg.CycleTimeout)
					if _, err := container.Cycle.RunCycle(runCtx); err != nil {
						log.Error("Error running notification cycle", "error", err)
					}
					runCancel()
				}
			}
		}()
	}

	e := router.NewEcho(log)

	cache := middleware.NewRedisCache(middleware.CacheConfig{
		Enabled: cfg.CacheEnabled,
		TTL:     cfg.CacheTTL,
		Prefix:  cfg.MetricsNamespace,
	}, container.Redis)

	router.RegisterRoutes(e, router.Handlers{
		Flights:       handler.NewFlightHandler(container.Flights, log),
		Users:         handler.NewUserHandler(container.Accounts, log),
		Notifications: handler.NewNotificationHandler(container.Accounts, container.Dispatcher, container.History, cfg.CycleAsync, log),
	}, cache)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(container.Registry, promhttp.HandlerOpts{})))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	container.Dispatcher.Stop()
	cancel() // Cancel the context to stop all goroutines

	container.Close(shutdownCtx)

	log.Info("Flightwatch Service stopped")
}
