// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read when TICKERVIEW_CONFIG is not set.
const DefaultConfigFile = "tickerview.yaml"

// Config holds application configuration
type Config struct {
	AnalysisURL     string        // Base URL of the analysis API (no trailing slash)
	AnalysisTimeout time.Duration // Per-request timeout; zero disables it
	DefaultSymbol   string        // Symbol looked up on first mount
	LogLevel        string
	LogFile         string
	Port            int
	DevMode         bool
}

// fileConfig mirrors the optional YAML file.
type fileConfig struct {
	Analysis struct {
		BaseURL string `yaml:"base_url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"analysis"`
	Lookup struct {
		DefaultSymbol string `yaml:"default_symbol"`
	} `yaml:"lookup"`
	Server struct {
		Port    int  `yaml:"port"`
		DevMode bool `yaml:"dev_mode"`
	} `yaml:"server"`
	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
}

// Load reads configuration from the .env file, the optional YAML file and
// environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := defaults()

	path := getEnv("TICKERVIEW_CONFIG", DefaultConfigFile)
	if err := cfg.applyFile(path); err != nil {
		return nil, err
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		AnalysisURL:   "http://127.0.0.1:5328",
		DefaultSymbol: "THYAO",
		LogLevel:      "info",
		Port:          8080,
	}
}

// applyFile merges the YAML file at path. A missing file is not an error.
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.Analysis.BaseURL != "" {
		c.AnalysisURL = fc.Analysis.BaseURL
	}
	if fc.Analysis.Timeout != "" {
		d, err := parseTimeout(fc.Analysis.Timeout)
		if err != nil {
			return fmt.Errorf("config file analysis.timeout: %w", err)
		}
		c.AnalysisTimeout = d
	}
	if fc.Lookup.DefaultSymbol != "" {
		c.DefaultSymbol = fc.Lookup.DefaultSymbol
	}
	if fc.Server.Port != 0 {
		c.Port = fc.Server.Port
	}
	if fc.Server.DevMode {
		c.DevMode = true
	}
	if fc.Log.Level != "" {
		c.LogLevel = fc.Log.Level
	}
	if fc.Log.File != "" {
		c.LogFile = fc.Log.File
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.AnalysisURL = getEnv("ANALYSIS_API_URL", c.AnalysisURL)
	c.DefaultSymbol = getEnv("DEFAULT_SYMBOL", c.DefaultSymbol)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFile = getEnv("LOG_FILE", c.LogFile)
	c.Port = getEnvAsInt("GO_PORT", c.Port)
	c.DevMode = getEnvAsBool("DEV_MODE", c.DevMode)

	if v := os.Getenv("ANALYSIS_TIMEOUT"); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return fmt.Errorf("ANALYSIS_TIMEOUT: %w", err)
		}
		c.AnalysisTimeout = d
	}
	return nil
}

// Validate checks the configuration and normalizes the endpoint and symbol.
func (c *Config) Validate() error {
	u, err := url.Parse(c.AnalysisURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid analysis API URL %q", c.AnalysisURL)
	}
	c.AnalysisURL = strings.TrimRight(c.AnalysisURL, "/")

	c.DefaultSymbol = strings.ToUpper(strings.TrimSpace(c.DefaultSymbol))
	if c.DefaultSymbol == "" {
		return fmt.Errorf("default symbol must not be empty")
	}

	if c.AnalysisTimeout < 0 {
		return fmt.Errorf("analysis timeout must not be negative")
	}
	return nil
}

// parseTimeout accepts Go durations ("15s") or plain seconds ("15").
func parseTimeout(v string) (time.Duration, error) {
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(v)
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
