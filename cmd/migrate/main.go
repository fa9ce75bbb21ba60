package main

import (
	"flag"
	"os"

	"github.com/portfolio-api/internal/config"
	"github.com/portfolio-api/internal/database"
	"github.com/portfolio-api/pkg/logger"
)

func main() {
	path := flag.String("path", "./migrations", "directory holding the migration files")
	down := flag.Bool("down", false, "roll back the last migration")
	version := flag.Uint("version", 0, "migrate up or down to this version")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log := logger.New("info", "json")
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	switch {
	case *down:
		err = db.MigrateDown(*path)
	case *version > 0:
		err = db.MigrateToVersion(*path, *version)
	default:
		err = db.RunMigrations(*path)
	}
	if err != nil {
		log.Error().Err(err).Msg("Migration failed")
		db.Close()
		os.Exit(1)
	}
}
