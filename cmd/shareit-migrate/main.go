// Package main is the entry point for the ShareIt database migration tool.
// It applies the embedded schema migrations for either backend and reports
// the current schema version.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/openshare/shareit/internal/config"
	"github.com/openshare/shareit/internal/repository/postgres"
	"github.com/openshare/shareit/internal/repository/sqlite"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	switch flag.Arg(0) {
	case "version":
		fmt.Printf("ShareIt Migration Tool\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Git Commit: %s\n", GitCommit)

	case "up":
		cfg := config.MustLoad(*configPath)
		if err := migrateUp(context.Background(), cfg); err != nil {
			log.Fatal().Err(err).Msg("migration failed")
		}
		log.Info().Msg("migrations applied")

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", flag.Arg(0))
		printUsage()
		os.Exit(1)
	}
}

// migrateUp applies all pending migrations for the configured backend.
func migrateUp(ctx context.Context, cfg *config.Config) error {
	switch cfg.Database.Driver {
	case "sqlite":
		db, err := sqlite.NewDB(ctx, sqlite.Config{
			Path:        cfg.Database.Path,
			JournalMode: cfg.Database.JournalMode,
			BusyTimeout: cfg.Database.BusyTimeout,
		}, log.Logger)
		if err != nil {
			return err
		}
		defer db.Close()
		return db.Migrate(ctx)

	case "postgres":
		db, err := postgres.NewDB(ctx, cfg.Database, log.Logger)
		if err != nil {
			return err
		}
		defer db.Close()
		return db.Migrate(ctx)

	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}

func printUsage() {
	fmt.Println(`ShareIt Migration Tool

Usage:
  shareit-migrate [flags] <command>

Commands:
  up          Apply all pending migrations
  version     Print version information
  help        Show this help message

Flags:
  -config     Path to the config file (defaults to config.yaml lookup)

Environment Variables:
  SHAREIT_DATABASE_DRIVER    "postgres" or "sqlite"
  SHAREIT_DATABASE_PATH      SQLite database path
  SHAREIT_DATABASE_HOST      PostgreSQL host

Examples:
  shareit-migrate up
  shareit-migrate -config ./configs/config.yaml up`)
}
