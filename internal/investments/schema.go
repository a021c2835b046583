//-------------------------------------------------------------------------
//
// pgEdge Investment Seeder
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package investments

import (
	"context"
	"fmt"

	"github.com/pgEdge/pgedge-seeder/internal/db"
)

// Table names.
const (
	// Table is the persistent, production-shaped table. It is created if
	// missing and never written by the seeder.
	Table = "investments"

	// FakeTable holds the synthetic demonstration data and is recreated on
	// every run.
	FakeTable = "investments_fake"
)

// createTypesSQL creates the enum types only when they are absent, so it can
// be run repeatedly.
const createTypesSQL = `
DO $$
BEGIN
    IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'investment_type') THEN
        CREATE TYPE investment_type AS ENUM (
            'cash', 'bond', 'stock', 'real_estate', 'commodity', 'crypto'
        );
    END IF;

    IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'currency_type') THEN
        CREATE TYPE currency_type AS ENUM ('CHF', 'USD', 'EUR');
    END IF;
END $$;
`

// tableColumnsSQL is shared by both tables so their structure stays identical.
const tableColumnsSQL = `(
    investment_id   SERIAL PRIMARY KEY,
    name            VARCHAR(100) NOT NULL,
    provider        VARCHAR(50) NOT NULL,
    investment_type investment_type NOT NULL,
    investment_name VARCHAR(100) NOT NULL,
    amount          NUMERIC(12,2) NOT NULL,
    currency        currency_type NOT NULL,
    unit            NUMERIC(12,4),
    notes           TEXT,
    created_at      TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
    updated_at      TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
)`

// createTablesSQL keeps the persistent table and recreates the fake one.
const createTablesSQL = `
CREATE TABLE IF NOT EXISTS investments ` + tableColumnsSQL + `;

DROP TABLE IF EXISTS investments_fake;

CREATE TABLE investments_fake ` + tableColumnsSQL + `;
`

const dropFakeTableSQL = `DROP TABLE IF EXISTS investments_fake`

// EnsureTypes creates the investment_type and currency_type enums if they
// do not exist yet.
func EnsureTypes(ctx context.Context, conn db.DB) error {
	if err := execInTx(ctx, conn, createTypesSQL); err != nil {
		return fmt.Errorf("failed to create custom types: %w", err)
	}
	return nil
}

// EnsureTables creates the persistent table if missing and drops and
// recreates the fake table. The enum types must already exist.
func EnsureTables(ctx context.Context, conn db.DB) error {
	if err := execInTx(ctx, conn, createTablesSQL); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// CreateSchema ensures the enum types and both tables.
func CreateSchema(ctx context.Context, conn db.DB) error {
	if err := EnsureTypes(ctx, conn); err != nil {
		return err
	}
	return EnsureTables(ctx, conn)
}

// DropFakeTable drops the fake table. The persistent table and the enum
// types are left alone.
func DropFakeTable(ctx context.Context, conn db.DB) error {
	if _, err := conn.Exec(ctx, dropFakeTableSQL); err != nil {
		return fmt.Errorf("failed to drop %s: %w", FakeTable, err)
	}
	return nil
}

// execInTx runs sql in its own transaction. On failure the transaction is
// rolled back and the error returned.
func execInTx(ctx context.Context, conn db.DB, sql string) error {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, sql); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
