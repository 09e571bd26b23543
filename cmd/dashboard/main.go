package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	cfg "github.com/sand/fraud-analytics-dashboard/backend/config"
	"github.com/sand/fraud-analytics-dashboard/backend/internal/handlers"
	"github.com/sand/fraud-analytics-dashboard/backend/internal/usecases"
)

// Server timeout constants.
const (
	readTimeoutSeconds     = 15
	writeTimeoutSeconds    = 15
	idleTimeoutSeconds     = 60
	shutdownTimeoutSeconds = 5
)

func main() {
	time.Local = time.UTC

	// Parse configuration
	config, err := cfg.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	// Setup logging
	opts := &slog.HandlerOptions{
		Level: config.Log.Level,
	}

	if config.App.Debug {
		opts.Level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, opts))
	logger.Warn("Starting application with configuration",
		"name", config.App.Name,
		"environment", config.App.Environment,
		"debug", config.App.Debug,
		"server_port", config.HTTP.Port,
		"ledger_size", config.Generator.Count,
		"seed", config.Generator.Seed,
		"timezone", config.Report.Timezone)

	location, err := config.Report.Location()
	if err != nil {
		logger.Error("Invalid report timezone", "error", err)
		log.Fatal(err)
	}

	// Build the report once; every request reads the same snapshot.
	reportService, err := usecases.NewPipeline(logger, config.ReportConfig(), config.Generator.Options(), location, usecases.Overrides{})
	if err != nil {
		logger.Error("Failed to create report pipeline", "error", err)
		log.Fatal(err)
	}

	buildCtx, cancelBuild := context.WithTimeout(context.Background(), time.Minute)
	_, err = reportService.Build(buildCtx)
	cancelBuild()
	if err != nil {
		logger.Error("Failed to build report", "error", err)
		log.Fatal(err)
	}

	// Create handlers
	websocketManager := handlers.NewWebSocketManager(logger)
	httpHandler := handlers.NewHTTPHandler(logger, reportService, config.HTTP.StaticDir)
	wsHandler := handlers.NewWebSocketHandler(logger, reportService, websocketManager)

	// Create router
	router := mux.NewRouter()

	// Register WebSocket routes before HTTP routes
	wsHandler.RegisterRoutes(router)
	httpHandler.RegisterRoutes(router)

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		ExposedHeaders:   []string{"X-Report-ID"},
		AllowCredentials: false,
	})

	// Wrap router in CORS middleware
	handler := c.Handler(router)

	// Create HTTP server with timeouts
	server := &http.Server{
		Addr:         ":" + config.HTTP.Port,
		Handler:      handler,
		ReadTimeout:  readTimeoutSeconds * time.Second,
		WriteTimeout: writeTimeoutSeconds * time.Second,
		IdleTimeout:  idleTimeoutSeconds * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			log.Fatal(err)
		}
	}()

	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Give 5 seconds to complete current requests
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeoutSeconds*time.Second)
	defer cancel()

	// Hijacked websocket connections are not tracked by Shutdown.
	websocketManager.CloseAll()

	if err = server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
		return
	}

	logger.Info("Server exited properly")
}
