// Package main is the entry point for the ShareIt gateway.
// The gateway validates incoming requests and forwards the clean ones to the
// backend server, optionally throttling clients via Redis.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/openshare/shareit/internal/config"
	"github.com/openshare/shareit/internal/gateway"
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
		Msg("starting ShareIt gateway")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var middlewares []func(http.Handler) http.Handler
	if cfg.Gateway.RateLimit.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:        cfg.Redis.Addr(),
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			DialTimeout: cfg.Redis.DialTimeout,
		})
		defer client.Close()

		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis unreachable at startup, rate limiting will fail open")
		}
		limiter := gateway.NewRateLimiter(client, cfg.Gateway.RateLimit.RequestsPerMinute, log.Logger)
		middlewares = append(middlewares, limiter.Middleware)
	}

	proxy := gateway.NewProxy(cfg.Gateway.ServerURL, cfg.Gateway.RequestTimeout, log.Logger)
	router := gateway.NewRouter(gateway.RouterConfig{
		Proxy:       proxy,
		Middlewares: middlewares,
		Logger:      log.Logger,
	})

	srv := &http.Server{
		Addr:    cfg.Gateway.Addr(),
		Handler: router.Handler(),
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("backend", cfg.Gateway.ServerURL).Msg("gateway listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("gateway failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down gateway")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Gateway.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
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
