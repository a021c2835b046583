//-------------------------------------------------------------------------
//
// pgEdge Investment Seeder
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for pgedge-seeder.
// Values are layered: built-in defaults, then an optional config file, then
// environment variables (optionally loaded from a .env file), then CLI flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Environment variables read for the database connection. These names are
// shared with the docker-compose setup of the dashboard.
const (
	EnvDatabaseName = "POSTGRES_DB"
	EnvUser         = "POSTGRES_USER"
	EnvPassword     = "POSTGRES_PASSWORD"
	EnvHost         = "DB_HOST"
	EnvPort         = "DB_PORT"
	EnvSSLMode      = "DB_SSLMODE"
	EnvLogLevel     = "SEEDER_LOG_LEVEL"
)

// Config holds all configuration for pgedge-seeder.
type Config struct {
	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Database holds the connection settings.
	Database DatabaseConfig `mapstructure:"database"`

	// Seed holds configuration for the seed subcommand.
	Seed SeedConfig `mapstructure:"seed"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	SSLMode  string `mapstructure:"sslmode"`
}

// SeedConfig holds configuration for data generation and the connection wait.
type SeedConfig struct {
	// RecordsPerMonth is the base number of records generated per month.
	RecordsPerMonth int `mapstructure:"records_per_month"`

	// Jitter is the maximum random deviation from RecordsPerMonth.
	Jitter int `mapstructure:"jitter"`

	// Months is the number of simulated months of history.
	Months int `mapstructure:"months"`

	// RandomSeed makes generation reproducible when non-zero.
	RandomSeed uint64 `mapstructure:"random_seed"`

	// MaxRetries is the number of connection attempts before giving up.
	MaxRetries int `mapstructure:"max_retries"`

	// RetryDelay is the pause between connection attempts.
	RetryDelay time.Duration `mapstructure:"retry_delay"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Database: DatabaseConfig{
			Name:     "investments",
			User:     "deniz",
			Password: "1227",
			Host:     "localhost",
			Port:     5432,
			SSLMode:  "prefer",
		},
		Seed: SeedConfig{
			RecordsPerMonth: 50,
			Jitter:          5,
			Months:          6,
			MaxRetries:      30,
			RetryDelay:      2 * time.Second,
		},
	}
}

// LoadDotEnv loads variables from a .env file into the process environment.
// Variables already set in the environment are left untouched. A missing
// file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := gotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error reading %s: %w", path, err)
	}
	return nil
}

// Load reads configuration from defaults, config files and the environment.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./pgedge-seeder.yaml
// 3. ~/.config/pgedge-seeder/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("pgedge-seeder")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "pgedge-seeder"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	setDefaults(v, DefaultConfig())

	if err := bindEnv(v); err != nil {
		return nil, err
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("log_level", d.LogLevel)

	v.SetDefault("database.name", d.Database.Name)
	v.SetDefault("database.user", d.Database.User)
	v.SetDefault("database.password", d.Database.Password)
	v.SetDefault("database.host", d.Database.Host)
	v.SetDefault("database.port", d.Database.Port)
	v.SetDefault("database.sslmode", d.Database.SSLMode)

	v.SetDefault("seed.records_per_month", d.Seed.RecordsPerMonth)
	v.SetDefault("seed.jitter", d.Seed.Jitter)
	v.SetDefault("seed.months", d.Seed.Months)
	v.SetDefault("seed.random_seed", d.Seed.RandomSeed)
	v.SetDefault("seed.max_retries", d.Seed.MaxRetries)
	v.SetDefault("seed.retry_delay", d.Seed.RetryDelay)
}

func bindEnv(v *viper.Viper) error {
	bindings := map[string]string{
		"log_level":         EnvLogLevel,
		"database.name":     EnvDatabaseName,
		"database.user":     EnvUser,
		"database.password": EnvPassword,
		"database.host":     EnvHost,
		"database.port":     EnvPort,
		"database.sslmode":  EnvSSLMode,
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("error binding %s: %w", env, err)
		}
	}
	return nil
}

// ConnString renders the settings as a keyword/value connection string.
// Unlike a URL this accepts a Unix socket directory as the host.
func (d DatabaseConfig) ConnString() string {
	params := []string{
		"host=" + quoteConnValue(d.Host),
		"port=" + strconv.Itoa(d.Port),
		"dbname=" + quoteConnValue(d.Name),
		"user=" + quoteConnValue(d.User),
	}
	if d.Password != "" {
		params = append(params, "password="+quoteConnValue(d.Password))
	}
	if d.SSLMode != "" {
		params = append(params, "sslmode="+quoteConnValue(d.SSLMode))
	}
	return strings.Join(params, " ")
}

// quoteConnValue single-quotes a value when it is empty or contains
// whitespace, quotes or backslashes.
func quoteConnValue(v string) string {
	if v != "" && !strings.ContainsAny(v, " \t\n\r'\\") {
		return v
	}
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(v) + "'"
}

// Redacted returns the connection string with the password masked, for
// logging.
func (d DatabaseConfig) Redacted() string {
	masked := d
	if masked.Password != "" {
		masked.Password = "xxxxx"
	}
	return masked.ConnString()
}

// Validate checks that required connection configuration is present.
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}
	if c.Seed.MaxRetries < 1 {
		return fmt.Errorf("max_retries must be at least 1")
	}
	if c.Seed.RetryDelay < 0 {
		return fmt.Errorf("retry_delay must be non-negative")
	}
	return nil
}

// ValidateSeed checks configuration required for the seed command.
func (c *Config) ValidateSeed() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Seed.Months < 1 {
		return fmt.Errorf("months must be at least 1")
	}
	if c.Seed.RecordsPerMonth < 1 {
		return fmt.Errorf("records_per_month must be at least 1")
	}
	if c.Seed.Jitter < 0 {
		return fmt.Errorf("jitter must be non-negative")
	}
	if c.Seed.Jitter >= c.Seed.RecordsPerMonth {
		return fmt.Errorf("jitter must be smaller than records_per_month")
	}
	return nil
}
