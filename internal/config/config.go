// Package config loads pgcrud settings from a config file, .env files and
// the environment.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	DatabaseURL    string
	Provider       string
	MaxOpenConns   int
	ConnectTimeout time.Duration
	Debug          bool
}

// Providers the tool can open.
const (
	ProviderPostgres = "postgres"
	ProviderSQLite   = "sqlite"
)

// Load reads .pgcrud.yaml from the working directory, $HOME or
// $HOME/.config/pgcrud, then .env and .env.local, then PGCRUD_* variables.
// DATABASE_URL is used when no other database URL is set.
func Load(fs afero.Fs) (*Config, error) {
	if err := loadDotEnv(fs, ".env", false); err != nil {
		return nil, err
	}
	// .env.local wins over .env and the environment
	if err := loadDotEnv(fs, ".env.local", true); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetFs(fs)
	v.SetConfigName(".pgcrud")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
		v.AddConfigPath(filepath.Join(home, ".config", "pgcrud"))
	}

	v.SetEnvPrefix("PGCRUD")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("provider", ProviderPostgres)
	v.SetDefault("max_open_conns", 10)
	v.SetDefault("connect_timeout", 5*time.Second)
	v.SetDefault("debug", false)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		DatabaseURL:    v.GetString("database_url"),
		Provider:       v.GetString("provider"),
		MaxOpenConns:   v.GetInt("max_open_conns"),
		ConnectTimeout: v.GetDuration("connect_timeout"),
		Debug:          v.GetBool("debug"),
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	return cfg, nil
}

// Validate checks that the configuration can open a database.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("database url is not set (PGCRUD_DATABASE_URL, DATABASE_URL or --database-url)")
	}
	switch c.Provider {
	case ProviderPostgres, ProviderSQLite:
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	if c.MaxOpenConns < 0 {
		return fmt.Errorf("max_open_conns must not be negative")
	}
	return nil
}

// loadDotEnv reads name through fs into the process environment. A missing
// file is not an error.
func loadDotEnv(fs afero.Fs, name string, override bool) error {
	data, err := afero.ReadFile(fs, name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	vars, err := godotenv.Parse(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}

	for k, val := range vars {
		if _, set := os.LookupEnv(k); set && !override {
			continue
		}
		if err := os.Setenv(k, val); err != nil {
			return err
		}
	}
	return nil
}
