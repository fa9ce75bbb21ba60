package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/portfolio-api/internal/api"
	"github.com/portfolio-api/internal/config"
	"github.com/portfolio-api/internal/database"
	"github.com/portfolio-api/internal/repository"
	"github.com/portfolio-api/internal/service"
	"github.com/portfolio-api/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log := logger.New("info", "json")
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Msg("Starting portfolio API server...")

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Run migrations
	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "./migrations"
	}
	if err := db.RunMigrations(migrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize repositories
	repos := repository.New(db)

	// Initialize services
	services := service.NewServices(repos, cfg, log)

	// Start scheduled maintenance
	if err := services.Maintenance.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start maintenance scheduler")
	}
	log.Info().Str("schedule", cfg.Maintenance.SessionPurgeSchedule).Msg("Maintenance scheduler started")

	// Initialize router
	router := api.NewRouter(services, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Stop scheduled maintenance
	services.Maintenance.Stop(ctx)

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
