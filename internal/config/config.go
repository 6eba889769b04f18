package config

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	RunAddress  string `yaml:"-"`
	DatabaseURI string `yaml:"-"`
	JWTSecret   string `yaml:"-"`
	ConfigPath  string `yaml:"-"`
	LogLevel    string `yaml:"-"`

	Analytics AnalyticsConfig `yaml:"analytics"`
	Database  DatabaseConfig  `yaml:"database"`
}

type AnalyticsConfig struct {
	Currency  string          `yaml:"currency"`
	Timeout   time.Duration   `yaml:"timeout"`
	Estimates EstimatesConfig `yaml:"estimates"`
}

// EstimatesConfig holds figures shown on dashboards that are not derived
// from transactions.
type EstimatesConfig struct {
	SavingsVsMarket       float64 `yaml:"savings_vs_market"`
	SavingsTrend          float64 `yaml:"savings_trend"`
	ResponseTimeTrend     float64 `yaml:"response_time_trend"`
	SupplierQualityScore  float64 `yaml:"supplier_quality_score"`
	SupplierResponseHours float64 `yaml:"supplier_response_hours"`
	SupplierWinRate       float64 `yaml:"supplier_win_rate"`
}

type DatabaseConfig struct {
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// MemoryDatabase selects the in-memory store instead of Postgres.
const MemoryDatabase = "memory"

func New() (*Config, error) {
	return Parse(os.Args[1:])
}

// Parse builds the config from flags, then environment overrides, then the
// optional YAML file for analytics and pool tuning.
func Parse(args []string) (*Config, error) {
	cfg := Defaults()

	fs := flag.NewFlagSet("marketpulse", flag.ContinueOnError)
	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "server address and port")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "database URI, or \"memory\"")
	fs.StringVar(&cfg.JWTSecret, "s", cfg.JWTSecret, "jwt signing key")
	fs.StringVar(&cfg.ConfigPath, "c", cfg.ConfigPath, "path to YAML config file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	cfg.RunAddress = getEnv("RUN_ADDRESS", cfg.RunAddress)
	cfg.DatabaseURI = getEnv("DATABASE_URI", cfg.DatabaseURI)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.ConfigPath = getEnv("CONFIG_PATH", cfg.ConfigPath)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	if cfg.ConfigPath != "" {
		if err := cfg.loadFile(cfg.ConfigPath); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// loadFile overlays the YAML file on cfg. ${VAR} references are expanded
// from the environment.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), c); err != nil {
		return fmt.Errorf("parse config yaml: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	switch {
	case c.RunAddress == "":
		return errors.New("run address is required")
	case c.DatabaseURI == "":
		return errors.New("database uri is required")
	case c.JWTSecret == "":
		return errors.New("jwt secret is required")
	case c.Analytics.Timeout <= 0:
		return fmt.Errorf("analytics.timeout must be positive, got %s", c.Analytics.Timeout)
	case len(c.Analytics.Currency) != 3:
		return fmt.Errorf("analytics.currency must be a 3-letter code, got %q", c.Analytics.Currency)
	case c.Database.MaxIdleConns > c.Database.MaxOpenConns:
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return level, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
