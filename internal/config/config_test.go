package config

import (
	"reflect"
	"testing"
	"time"

	"github.com/i474232898/grib-downloader/internal/forecast/fmi"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"FMI_API_KEY", "FMI_BASE_URL", "GRIB_PARAMS", "GRIB_OUTPUT_DIR",
		"CITIES_FILE", "PORT", "WATCH_INTERVAL", "HTTP_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.BaseURL != fmi.DefaultBaseURL {
		t.Errorf("BaseURL = %s", cfg.BaseURL)
	}
	if cfg.Port != 5991 {
		t.Errorf("Port = %d, want 5991", cfg.Port)
	}
	if cfg.OutputDir != "." || cfg.CitiesFile != "cities.csv" {
		t.Errorf("unexpected paths: %q %q", cfg.OutputDir, cfg.CitiesFile)
	}
	if cfg.WatchInterval != time.Hour {
		t.Errorf("WatchInterval = %v, want 1h", cfg.WatchInterval)
	}
	if cfg.HTTPTimeout != 0 {
		t.Errorf("HTTPTimeout = %v, want no explicit timeout", cfg.HTTPTimeout)
	}
	if cfg.Parameters != nil {
		t.Errorf("Parameters = %v, want default set", cfg.Parameters)
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("FMI_API_KEY", "cd598b0e")
	t.Setenv("GRIB_PARAMS", "Temperature,WindGust")
	t.Setenv("PORT", "8081")
	t.Setenv("WATCH_INTERVAL", "30m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q := cfg.Query()
	if q.APIKey != "cd598b0e" {
		t.Errorf("APIKey = %s", q.APIKey)
	}
	if !reflect.DeepEqual(q.Parameters, []string{"Temperature", "WindGust"}) {
		t.Errorf("Parameters = %v", q.Parameters)
	}
	if cfg.Port != 8081 || cfg.WatchInterval != 30*time.Minute {
		t.Errorf("unexpected port/interval: %d %v", cfg.Port, cfg.WatchInterval)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestLoadInvalidInterval(t *testing.T) {
	clearEnv(t)
	t.Setenv("WATCH_INTERVAL", "often")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for an invalid WATCH_INTERVAL")
	}
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error without an API key")
	}

	cfg.APIKey = "key"
	cfg.Parameters = []string{"Snowfall"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error for an unknown parameter")
	}
}
