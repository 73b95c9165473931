package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"fundraiser-display/internal/config"
	"fundraiser-display/internal/logging"
	"fundraiser-display/internal/server"
	"fundraiser-display/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logging.New(logging.Config{})
		boot.Fatal().Err(err).Msg("failed to load config")
	}

	logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	zerolog.DefaultContextLogger = &logger

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, &logger); err != nil {
		logger.Error().Err(err).Msg("api stopped")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) error {
	store, err := storage.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	event := logger.Info().Str("driver", cfg.StorageDriver)
	if cfg.StorageDriver == config.DriverPostgres {
		event = event.Str("database", cfg.Redacted())
	}
	event.Msg("storage ready")

	return server.New(cfg, store, logger).Run(ctx)
}
