//-------------------------------------------------------------------------
//
// pgEdge Investment Seeder
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package db provides database connection management for pgedge-seeder.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pgEdge/pgedge-seeder/internal/logging"
)

// DefaultConnectTimeout caps a single connection attempt.
const DefaultConnectTimeout = 5 * time.Second

// DB is an interface that both *pgxpool.Pool and *pgx.Conn satisfy.
// This allows schema and insert code to work with either a connection pool
// or a dedicated single connection.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ConnectWithRetry waits for the database to accept connections and returns
// a single verified connection. The connection string is parsed once; a
// malformed string fails immediately instead of being retried.
func ConnectWithRetry(ctx context.Context, connString string, retry RetryConfig) (*pgx.Conn, error) {
	config, err := pgx.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}
	if config.ConnectTimeout == 0 {
		config.ConnectTimeout = DefaultConnectTimeout
	}

	logging.Debug().
		Str("host", config.Host).
		Uint16("port", config.Port).
		Str("database", config.Database).
		Int("max_retries", retry.MaxRetries).
		Dur("delay", retry.Delay).
		Msg("Connecting to database")

	var conn *pgx.Conn
	err = Retry(ctx, retry, func(ctx context.Context, attempt int) error {
		c, err := pgx.ConnectConfig(ctx, config.Copy())
		if err != nil {
			return err
		}

		// Verify connection
		if err := c.Ping(ctx); err != nil {
			_ = c.Close(ctx)
			return fmt.Errorf("failed to ping database: %w", err)
		}

		conn = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.Info().
		Str("host", config.Host).
		Str("database", config.Database).
		Msg("Database is available")

	return conn, nil
}
