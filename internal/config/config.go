package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/grib-downloader/internal/forecast"
	"github.com/i474232898/grib-downloader/internal/forecast/fmi"
)

type AppConfig struct {
	APIKey  string
	BaseURL string

	// Parameters requested from the download endpoint (empty = default set).
	Parameters []string

	// OutputDir is where GRIB artifacts are written.
	OutputDir string

	// CitiesFile is the semicolon separated city reference table.
	CitiesFile string

	// Port of the one-shot location callback server.
	Port int

	// WatchInterval controls how often watch mode acquires the latest run.
	WatchInterval time.Duration

	// HTTPTimeout for outbound calls (0 = no explicit timeout).
	HTTPTimeout time.Duration
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.APIKey = os.Getenv("FMI_API_KEY")
	cfg.BaseURL = getenvDefault("FMI_BASE_URL", fmi.DefaultBaseURL)
	cfg.Parameters = forecast.ParseParameters(os.Getenv("GRIB_PARAMS"))
	cfg.OutputDir = getenvDefault("GRIB_OUTPUT_DIR", ".")
	cfg.CitiesFile = getenvDefault("CITIES_FILE", "cities.csv")
	cfg.Port = getenvInt("PORT", 5991)

	interval, err := time.ParseDuration(getenvDefault("WATCH_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid WATCH_INTERVAL: %w", err)
	}
	cfg.WatchInterval = interval

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	return cfg, nil
}

// Query returns the forecast query described by the configuration.
func (c *AppConfig) Query() forecast.ForecastQuery {
	return forecast.ForecastQuery{
		APIKey:     c.APIKey,
		Parameters: c.Parameters,
	}
}

// Validate checks the settings every command needs.
func (c *AppConfig) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("an FMI API key is required (--apikey or FMI_API_KEY)")
	}
	if _, err := c.Query().ParameterSet(); err != nil {
		return err
	}
	if c.WatchInterval <= 0 {
		return fmt.Errorf("watch interval must be positive")
	}
	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
