// Package database opens the handles pgcrud runs statements on.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-version"
	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/satishbabariya/pgcrud/internal/config"
	"github.com/satishbabariya/pgcrud/internal/debug"
)

// Oldest servers that understand RETURNING and ON CONFLICT.
var minVersions = map[string]*version.Version{
	config.ProviderPostgres: version.Must(version.NewVersion("9.5.0")),
	config.ProviderSQLite:   version.Must(version.NewVersion("3.35.0")),
}

// ProviderFromURL guesses the provider from a connection URL, returning ""
// when it cannot tell.
func ProviderFromURL(url string) string {
	lower := strings.ToLower(url)
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return config.ProviderPostgres
	case strings.HasPrefix(lower, "sqlite:"), strings.HasPrefix(lower, "file:"),
		lower == ":memory:", strings.HasSuffix(lower, ".db"), strings.HasSuffix(lower, ".sqlite"):
		return config.ProviderSQLite
	}
	return ""
}

// Open connects to the configured database, pings it and checks that the
// server is recent enough for the statements pgcrud generates.
func Open(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	driverName, dsn := driverFor(cfg)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.Provider == config.ProviderSQLite {
		// SQLite allows one writer at a time
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxOpenConns / 2)
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if cfg.Provider == config.ProviderSQLite {
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	v, err := ServerVersion(ctx, db, cfg.Provider)
	if err != nil {
		db.Close()
		return nil, err
	}
	if err := CheckVersion(cfg.Provider, v); err != nil {
		db.Close()
		return nil, err
	}

	debug.Debug("database opened", "provider", cfg.Provider, "server_version", v.String())
	return db, nil
}

// ServerVersion asks the server for its version.
func ServerVersion(ctx context.Context, db *sql.DB, provider string) (*version.Version, error) {
	query := "SHOW server_version"
	if provider == config.ProviderSQLite {
		query = "SELECT sqlite_version()"
	}

	var raw string
	if err := db.QueryRowContext(ctx, query).Scan(&raw); err != nil {
		return nil, fmt.Errorf("failed to read server version: %w", err)
	}
	return ParseVersion(raw)
}

// ParseVersion parses version strings such as "16.2 (Debian 16.2-1)" or
// "3.45.1".
func ParseVersion(raw string) (*version.Version, error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty server version")
	}
	v, err := version.NewVersion(fields[0])
	if err != nil {
		return nil, fmt.Errorf("failed to parse server version %q: %w", raw, err)
	}
	return v, nil
}

// CheckVersion fails when v predates RETURNING or ON CONFLICT support.
func CheckVersion(provider string, v *version.Version) error {
	minVersion, ok := minVersions[provider]
	if !ok {
		return fmt.Errorf("unknown provider %q", provider)
	}
	if v.LessThan(minVersion) {
		return fmt.Errorf("%s %s is too old, need %s or newer", provider, v, minVersion)
	}
	return nil
}

func driverFor(cfg *config.Config) (string, string) {
	if cfg.Provider == config.ProviderSQLite {
		dsn := cfg.DatabaseURL
		if strings.HasPrefix(strings.ToLower(dsn), "sqlite:") {
			dsn = strings.TrimPrefix(dsn[len("sqlite:"):], "//")
		}
		return "sqlite3", dsn
	}
	return "postgres", cfg.DatabaseURL
}
