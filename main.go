package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"productsapi/internal/app"
	"productsapi/internal/config"
	"productsapi/internal/database"
	"productsapi/internal/logger"
	"productsapi/internal/repositories"
	"productsapi/internal/services"
	"productsapi/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(os.Stderr, "info", logger.FormatConsole)
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}
	log := logger.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	// --- Initialize Database ---
	target, err := database.Resolve(cfg.DatabaseURL, cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to resolve database URL")
	}
	if cfg.DatabaseURL == "" {
		log.Warn().Str("path", target.DSN).Msg("no database URL configured, using local SQLite file")
	}
	db, err := database.Open(target, log)
	if err != nil {
		log.Fatal().Err(err).Str("dialect", target.Dialect).Msg("failed to open database")
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error().Err(err).Msg("failed to close database")
		}
	}()

	seeded, err := database.Init(context.Background(), db, cfg.SeedOnStartup)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	log.Info().Str("dialect", target.Dialect).Int("seeded", seeded).Msg("database ready")

	// --- Initialize RabbitMQ Client (optional) ---
	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.RabbitMQQueue})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize RabbitMQ client")
		}
		defer closeMQ(mqClient, log)
		events = mqClient
		log.Info().Str("queue", cfg.RabbitMQQueue).Msg("publishing product events")
	}

	// --- Initialize Fiber App ---
	server := app.New(app.Options{
		Repo:   repositories.NewGORMProductRepository(db),
		Events: events,
		Log:    log,
	})

	// --- Start HTTP Server ---
	go func() {
		log.Info().Str("addr", cfg.AppPort).Msg("starting server")
		if err := server.Listen(cfg.AppPort); err != nil {
			log.Error().Err(err).Msg("server stopped")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	if err := server.Shutdown(); err != nil {
		log.Error().Err(err).Msg("error during Fiber shutdown")
	}
	log.Info().Msg("server gracefully stopped")
}

func closeMQ(c *rabbitmq.Client, log zerolog.Logger) {
	if err := c.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close RabbitMQ client")
	}
}
