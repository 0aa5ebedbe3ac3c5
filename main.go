package main

import (
	"os"
	"os/signal"
	"syscall"

	"rikky/internal/config"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger := config.NewLogger(cfg.Logger)

	app, err := NewApp(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize application")
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error().Err(err).Msg("error while closing resources")
		}
	}()

	if err := app.StartEventConsumer(); err != nil {
		logger.Warn().Err(err).Msg("failed to start RabbitMQ consumer")
	}

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info().Str("port", cfg.Server.Port).Msg("starting server")
		if err := app.Fiber.Listen(cfg.Server.Port); err != nil {
			logger.Error().Err(err).Msg("server stopped")
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	logger.Info().Msg("shutting down server")

	if err := app.Fiber.Shutdown(); err != nil {
		logger.Error().Err(err).Msg("error during Fiber shutdown")
	}
	logger.Info().Msg("server gracefully stopped")
}
