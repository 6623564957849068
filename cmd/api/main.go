package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"smartstock/internal/backend"
	"smartstock/internal/demoreset"
	"smartstock/internal/http/handlers"
	"smartstock/internal/http/httpapi"
	"smartstock/internal/infra"
)

func main() {
	// Load .env if present.
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	client, err := backend.NewClient(backend.Options{
		BaseURL:        cfg.BackendBaseURL,
		Token:          cfg.BackendToken,
		Logger:         &logger,
		RequestTimeout: cfg.BackendTimeout,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure backend client")
	}

	reset := demoreset.NewController(client, demoreset.Options{
		Interval: cfg.DemoResetInterval,
		Logger:   &logger,
	})

	app := handlers.NewApp(client, reset, logger)
	router := httpapi.NewRouter(app, cfg)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("dashboard API listening on %s", server.Addr())
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	// Stopping the controller only cancels the poll timer; a reset job that
	// is still running stays owned by the external job system.
	reset.Stop()
	logger.Info().Msg("server stopped")
}
