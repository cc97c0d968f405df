// Package main is the web entry point of tickerview. It serves the lookup
// view as server-rendered HTML backed by the analysis API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/tickerview/internal/clients/analyzer"
	"github.com/aristath/tickerview/internal/config"
	"github.com/aristath/tickerview/internal/lookup"
	"github.com/aristath/tickerview/internal/server"
	"github.com/aristath/tickerview/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Use fallback logger if config fails
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
		File:   cfg.LogFile,
	})
	logger.SetGlobalLogger(log)

	log.Info().
		Str("api_url", cfg.AnalysisURL).
		Str("default_symbol", cfg.DefaultSymbol).
		Dur("timeout", cfg.AnalysisTimeout).
		Msg("Starting tickerview server")

	client := analyzer.NewClient(cfg.AnalysisURL, cfg.AnalysisTimeout, log)
	runner := lookup.NewRunner(client, log)

	srv := server.New(server.Config{
		Log:           log,
		Runner:        runner,
		DefaultSymbol: cfg.DefaultSymbol,
		APIURL:        client.BaseURL(),
		Port:          cfg.Port,
		DevMode:       cfg.DevMode,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
