package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/shubham-shewale/gbce-market/pkg/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.App.Env != "local" {
		t.Errorf("Expected env local, got %s", cfg.App.Env)
	}
	if cfg.Market.Window != 15*time.Minute {
		t.Errorf("Expected 15m window, got %s", cfg.Market.Window)
	}
	if cfg.Market.LegacyIndexExponent {
		t.Error("Legacy index exponent should be off by default")
	}
	if cfg.Ingest.NumWorkers != 4 {
		t.Errorf("Expected 4 workers, got %d", cfg.Ingest.NumWorkers)
	}
	if !cfg.Logger.Development {
		t.Error("Local env should build a development logger")
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("MARKET_WINDOW", "5m")
	t.Setenv("MARKET_LEGACY_INDEX_EXPONENT", "true")
	t.Setenv("LISTING_SEED_FILE", "/etc/gbce/stocks.yaml")
	t.Setenv("INGEST_NUM_WORKERS", "8")
	t.Setenv("LOGGER_LEVEL", "debug")

	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Market.Window != 5*time.Minute {
		t.Errorf("Expected 5m window, got %s", cfg.Market.Window)
	}
	if !cfg.Market.LegacyIndexExponent {
		t.Error("Expected legacy index exponent to be enabled")
	}
	if cfg.Listing.SeedFile != "/etc/gbce/stocks.yaml" {
		t.Errorf("Unexpected seed file %q", cfg.Listing.SeedFile)
	}
	if cfg.Ingest.NumWorkers != 8 {
		t.Errorf("Expected 8 workers, got %d", cfg.Ingest.NumWorkers)
	}
	if cfg.Logger.Development {
		t.Error("Prod env should not build a development logger")
	}
}

func TestLoadConfig_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gbce.yaml")
	doc := "market:\n  window: 30m\ningest:\n  trades_file: trades.csv\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	t.Setenv(config.ConfigFileEnv, path)

	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Market.Window != 30*time.Minute {
		t.Errorf("Expected 30m window from file, got %s", cfg.Market.Window)
	}
	if cfg.Ingest.TradesFile != "trades.csv" {
		t.Errorf("Expected trades file from config file, got %q", cfg.Ingest.TradesFile)
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	t.Setenv(config.ConfigFileEnv, filepath.Join(t.TempDir(), "nope.yaml"))

	if _, err := config.LoadConfig(); err == nil {
		t.Fatal("Expected an error for a missing explicit config file")
	}
}

func TestLoadConfig_Validation(t *testing.T) {
	cases := map[string][2]string{
		"zero window":      {"MARKET_WINDOW", "0s"},
		"no workers":       {"INGEST_NUM_WORKERS", "0"},
		"unknown level":    {"LOGGER_LEVEL", "loud"},
		"unknown encoding": {"LOGGER_ENCODING", "xml"},
	}

	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			if _, err := config.LoadConfig(); err == nil {
				t.Errorf("Expected validation error for %s=%s", kv[0], kv[1])
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := config.NewLogger(config.LoggerConfig{Level: "warn", Encoding: "console", Development: true})
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	if logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("Debug should be disabled at warn level")
	}

	if _, err := config.NewLogger(config.LoggerConfig{Level: "chatty"}); err == nil {
		t.Error("Expected an error for an unknown level")
	}
}
