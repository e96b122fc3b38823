package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campuskit/venue-booking-engine/internal/app"
	"github.com/campuskit/venue-booking-engine/internal/config"
	"github.com/campuskit/venue-booking-engine/internal/db"
	"github.com/campuskit/venue-booking-engine/internal/notify"
	"github.com/campuskit/venue-booking-engine/internal/pkg/logging"
)

func main() {
	logger := logging.New("venue-booking-engine")

	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Connect DB
	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		logger.Error("failed to connect to db", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Decision events are optional; without a broker they are dropped.
	publisher := notify.NewNoopPublisher()
	if cfg.AMQPURL != "" {
		publisher, err = notify.NewAMQPPublisher(cfg.AMQPURL, logger)
		if err != nil {
			logger.Error("failed to connect to amqp broker", "error", err)
			os.Exit(1)
		}
	}
	defer publisher.Close()

	container, err := app.NewContainer(app.Config{
		IsProduction:     cfg.IsProduction,
		ProdOrigins:      cfg.ProdOrigins,
		DBPool:           pool,
		Publisher:        publisher,
		Logger:           logger,
		DayOpen:          cfg.DayOpen,
		DayClose:         cfg.DayClose,
		WindowTimezone:   cfg.WindowTimezone,
		MaxSuggestions:   cfg.MaxSuggestions,
		AdmissionRetries: cfg.AdmissionRetries,
	})
	if err != nil {
		logger.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	// Run server in separate goroutine
	go func() {
		logger.Info("server running", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	logger.Info("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited gracefully")
}
