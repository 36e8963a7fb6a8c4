// Package main is the entry point for the ShareIt backend server.
// The server owns all business rules and persistence; the gateway binary
// fronts it with request validation and throttling.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/openshare/shareit/internal/config"
	"github.com/openshare/shareit/internal/handler"
	"github.com/openshare/shareit/internal/metrics"
	"github.com/openshare/shareit/internal/repository"
	"github.com/openshare/shareit/internal/repository/postgres"
	"github.com/openshare/shareit/internal/repository/sqlite"
	"github.com/openshare/shareit/internal/service"
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

	cfg := config.MustLoad(*configPath)
	setupLogger(cfg.Logging)

	log.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Msg("starting ShareIt server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, health, err := openDatabase(ctx, cfg.Database, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("database initialization failed")
	}
	defer health.Close()

	userService := service.NewUserService(repos.User, log.Logger)
	itemService := service.NewItemService(repos.Item, repos.User, repos.Request, repos.Booking, repos.Comment, log.Logger)
	requestService := service.NewRequestService(repos.Request, repos.Item, repos.User, log.Logger)
	bookingService := service.NewBookingService(repos.Booking, repos.Item, repos.User, log.Logger)

	var middlewares []func(http.Handler) http.Handler
	if cfg.Metrics.Enabled {
		m := metrics.New("shareit_server")
		middlewares = append(middlewares, m.Middleware)
		go func() {
			addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Metrics.Port)
			if err := m.Serve(ctx, addr, cfg.Metrics.Path, log.Logger); err != nil {
				log.Error().Err(err).Msg("metrics server failed")
			}
		}()
	}

	router := handler.NewRouter(handler.RouterConfig{
		UserHandler:    handler.NewUserHandler(userService, log.Logger),
		ItemHandler:    handler.NewItemHandler(itemService, log.Logger),
		RequestHandler: handler.NewRequestHandler(requestService, log.Logger),
		BookingHandler: handler.NewBookingHandler(bookingService, log.Logger),
		Health:         health,
		Middlewares:    middlewares,
		Logger:         log.Logger,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// openDatabase connects to the configured backend, runs migrations and
// returns the repository set.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*repository.Repositories, repository.DatabaseHealth, error) {
	switch cfg.Driver {
	case "sqlite":
		db, err := sqlite.NewDB(ctx, sqlite.Config{
			Path:        cfg.Path,
			JournalMode: cfg.JournalMode,
			BusyTimeout: cfg.BusyTimeout,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return sqlite.NewRepositories(db), db, nil

	case "postgres":
		db, err := postgres.NewDB(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return postgres.NewRepositories(db), db, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

// setupLogger configures the global zerolog logger.
func setupLogger(cfg config.LoggingConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339Nano

	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
