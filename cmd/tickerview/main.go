// Package main is the terminal entry point of tickerview.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aristath/tickerview/internal/clients/analyzer"
	"github.com/aristath/tickerview/internal/config"
	"github.com/aristath/tickerview/internal/lookup"
	"github.com/aristath/tickerview/internal/ui"
	"github.com/aristath/tickerview/pkg/logger"
)

// defaultLogFile keeps log output off the terminal the UI draws on.
const defaultLogFile = "tickerview.log"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	apiURL := flag.String("api-url", cfg.AnalysisURL, "Analysis API URL")
	symbol := flag.String("symbol", cfg.DefaultSymbol, "Symbol to look up on start")
	maxWidth := flag.Int("max-width", 0, "Max columns (0 = no limit)")
	flag.Parse()

	cfg.AnalysisURL = *apiURL
	cfg.DefaultSymbol = *symbol
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logFile := cfg.LogFile
	if logFile == "" {
		logFile = defaultLogFile
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, File: logFile})
	logger.SetGlobalLogger(log)

	log.Info().
		Str("api_url", cfg.AnalysisURL).
		Str("symbol", cfg.DefaultSymbol).
		Msg("Starting tickerview")

	client := analyzer.NewClient(cfg.AnalysisURL, cfg.AnalysisTimeout, log)
	runner := lookup.NewRunner(client, log)
	m := ui.NewModel(runner, client.BaseURL(), cfg.DefaultSymbol, *maxWidth)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("UI exited with error")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
