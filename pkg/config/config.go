package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// ConfigFileEnv names an explicit config file; otherwise ./config.yaml is used when present.
const ConfigFileEnv = "GBCE_CONFIG"

// Config holds all configuration for the application
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Logger  LoggerConfig  `mapstructure:"logger"`
	Market  MarketConfig  `mapstructure:"market"`
	Listing ListingConfig `mapstructure:"listing"`
	Ingest  IngestConfig  `mapstructure:"ingest"`
}

type AppConfig struct {
	Env string `mapstructure:"env"` // e.g., "local", "prod"
}

type LoggerConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"` // "json" or "console"
	// Development is derived from app.env.
	Development bool `mapstructure:"-"`
}

type MarketConfig struct {
	Window              time.Duration `mapstructure:"window"`
	LegacyIndexExponent bool          `mapstructure:"legacy_index_exponent"`
}

type ListingConfig struct {
	SeedFile string `mapstructure:"seed_file"` // empty means the built-in sample table
}

type IngestConfig struct {
	TradesFile string `mapstructure:"trades_file"`
	NumWorkers int    `mapstructure:"num_workers"`
}

// LoadConfig reads configuration from .env file, an optional config file,
// environment variables, and defaults.
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Load .env into the process environment (if it exists)
	if err := godotenv.Load(); err != nil {
		log.Println("Note: No .env file found, relying on System Env Vars")
	}

	v.SetDefault("app.env", "local")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "json")

	v.SetDefault("market.window", 15*time.Minute)
	v.SetDefault("market.legacy_index_exponent", false)

	v.SetDefault("listing.seed_file", "")

	v.SetDefault("ingest.trades_file", "")
	v.SetDefault("ingest.num_workers", 4)

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	// "market.window" -> "MARKET_WINDOW"
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Flat env vars only reach nested keys once bound explicitly
	bindEnv(v, "app.env")
	bindEnv(v, "logger.level", "logger.encoding")
	bindEnv(v, "market.window", "market.legacy_index_exponent")
	bindEnv(v, "listing.seed_file")
	bindEnv(v, "ingest.trades_file", "ingest.num_workers")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	cfg.Logger.Development = cfg.App.Env != "prod"

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values LoadConfig cannot express as defaults.
func (c *Config) Validate() error {
	if c.Market.Window <= 0 {
		return fmt.Errorf("market window must be positive, got %s", c.Market.Window)
	}
	if c.Ingest.NumWorkers < 1 {
		return fmt.Errorf("ingest workers must be at least 1, got %d", c.Ingest.NumWorkers)
	}
	if _, err := zapcore.ParseLevel(c.Logger.Level); err != nil {
		return fmt.Errorf("invalid logger level: %w", err)
	}
	switch c.Logger.Encoding {
	case "json", "console":
	default:
		return fmt.Errorf("logger encoding must be json or console, got %q", c.Logger.Encoding)
	}
	return nil
}

func readConfigFile(v *viper.Viper) error {
	if path := os.Getenv(ConfigFileEnv); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("unable to read config file: %w", err)
	}
	return nil
}

// bindEnv is a helper to bind multiple keys at once
func bindEnv(v *viper.Viper, keys ...string) {
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			log.Printf("Could not bind env var for key %s: %v", key, err)
		}
	}
}
