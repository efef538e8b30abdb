package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/guttosm/salesclean/config"

	_ "github.com/lib/pq" // PostgreSQL driver for database/sql
)

// pingTimeout bounds the connectivity check done on startup.
const pingTimeout = 5 * time.Second

// sqlOpener is an indirection for unit testing; defaults to sql.Open
var sqlOpener = sql.Open

// postgresOpener is an indirection used by InitializeApp and the clean mode of
// cmd; overridden in tests to avoid real connections.
var postgresOpener = InitPostgres

// InitPostgres opens the database described by cfg.Postgres and pings it.
//
// Returns:
//   - *sql.DB: an open database connection pool (safe for concurrent use).
//   - error: if opening or pinging the database fails. The handle is closed
//     on ping failure.
//
// Example usage:
//
//	db, err := app.InitPostgres(config.AppConfig)
//	if err != nil {
//	    logger.L().Fatal().Err(err).Msg("postgres")
//	}
//	defer db.Close()
func InitPostgres(cfg config.Config) (*sql.DB, error) {
	dsn := cfg.Postgres.URL
	if dsn == "" {
		dsn = cfg.Postgres.DSN()
	}

	db, err := sqlOpener("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return db, nil
}

// OpenSink returns the database used to persist cleaning runs, or nil when
// the Postgres sink is disabled.
func OpenSink(cfg config.Config) (*sql.DB, error) {
	if !cfg.Postgres.Enabled {
		return nil, nil
	}
	return postgresOpener(cfg)
}
