//-------------------------------------------------------------------------
//
// pgEdge Investment Seeder
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

//go:build integration
// +build integration

// Integration tests for schema creation and loading.
// Run with: go test -tags=integration ./internal/investments/...
// Requires PostgreSQL to be available.
// Set PGEDGE_TEST_CONN environment variable to override connection string.

package investments_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgEdge/pgedge-seeder/internal/datagen"
	"github.com/pgEdge/pgedge-seeder/internal/db"
	"github.com/pgEdge/pgedge-seeder/internal/investments"
	"github.com/pgEdge/pgedge-seeder/internal/testutil"
)

// setupTestDB creates a throwaway database that is dropped when the test
// passes, and returns its connection string.
func setupTestDB(t *testing.T, name string) (string, *testutil.TestCleanup) {
	t.Helper()

	baseConnStr := testutil.SkipIfNoPostgres(t)
	testConnStr := testutil.CreateTestDB(t, baseConnStr, name)
	cleanup := testutil.NewTestCleanup(t, baseConnStr, testutil.GetDBNameFromConnStr(testConnStr))
	t.Cleanup(cleanup.Cleanup)

	return testConnStr, cleanup
}

func TestSeederIntegration(t *testing.T) {
	connStr, cleanup := setupTestDB(t, "seed")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	conn, err := db.ConnectWithRetry(ctx, connStr, db.RetryConfig{MaxRetries: 3, Delay: time.Second})
	require.NoError(t, err)
	defer conn.Close(ctx)

	pool := testutil.ConnectTestDB(t, connStr)
	cleanup.SetPool(pool)

	gen := investments.NewGenerator(datagen.NewFakerWithSeed(99), investments.DefaultGeneratorConfig())
	result, err := investments.NewSeeder(conn, gen).Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 6, result.Batches)
	assert.Equal(t, result.Records, testutil.CountRows(t, pool, investments.FakeTable))
	assert.Zero(t, testutil.CountRows(t, pool, investments.Table))

	// Every stored row honours the generation invariants
	rows, err := pool.Query(ctx, `
        SELECT investment_type::text, amount::text, unit::text, currency::text, provider
        FROM investments_fake
    `)
	require.NoError(t, err)
	defer rows.Close()

	for rows.Next() {
		var category, amount, currency, provider string
		var unit *string
		require.NoError(t, rows.Scan(&category, &amount, &unit, &currency, &provider))

		c := investments.Category(category)
		require.True(t, c.Valid())
		info, _ := c.Info()

		a := decimal.RequireFromString(amount)
		assert.True(t, a.GreaterThanOrEqual(info.MinAmount))
		assert.True(t, a.LessThanOrEqual(info.MaxAmount))
		assert.Equal(t, c.HasUnits(), unit != nil)
		assert.True(t, investments.Currency(currency).Valid())
		assert.Contains(t, investments.Providers, provider)
	}
	require.NoError(t, rows.Err())

	last, found, err := db.LastRun(ctx, pool)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, result.RunID, last.RunID)
	assert.Equal(t, int(result.Records), last.Records)
}

func TestSchemaIdempotentIntegration(t *testing.T) {
	connStr, cleanup := setupTestDB(t, "schema")
	ctx := context.Background()

	conn := testutil.ConnectTestConn(t, connStr)
	defer conn.Close(ctx)
	pool := testutil.ConnectTestDB(t, connStr)
	cleanup.SetPool(pool)

	require.NoError(t, investments.CreateSchema(ctx, conn))
	assert.True(t, testutil.TypeExists(t, pool, "investment_type"))
	assert.True(t, testutil.TypeExists(t, pool, "currency_type"))

	records := investments.NewGenerator(datagen.NewFakerWithSeed(1),
		investments.GeneratorConfig{RecordsPerMonth: 10, Months: 2}).Generate()
	_, err := investments.Insert(ctx, conn, records)
	require.NoError(t, err)
	require.Equal(t, int64(20), testutil.CountRows(t, pool, investments.FakeTable))

	// A row in the persistent table must survive re-initialisation
	_, err = pool.Exec(ctx, `
        INSERT INTO investments (name, provider, investment_type, investment_name, amount, currency)
        VALUES ('Keep', 'UBS', 'cash', 'Savings', 100, 'CHF')
    `)
	require.NoError(t, err)

	// Second run: enum creation is a no-op, the fake table starts empty
	require.NoError(t, investments.CreateSchema(ctx, conn))
	assert.Zero(t, testutil.CountRows(t, pool, investments.FakeTable))
	assert.Equal(t, int64(1), testutil.CountRows(t, pool, investments.Table))
}

func TestInsertRollbackIntegration(t *testing.T) {
	connStr, cleanup := setupTestDB(t, "rollback")
	ctx := context.Background()

	conn := testutil.ConnectTestConn(t, connStr)
	defer conn.Close(ctx)
	pool := testutil.ConnectTestDB(t, connStr)
	cleanup.SetPool(pool)

	require.NoError(t, investments.CreateSchema(ctx, conn))

	records := investments.NewGenerator(datagen.NewFakerWithSeed(2),
		investments.GeneratorConfig{RecordsPerMonth: 10, Months: 1}).Generate()

	// VARCHAR(50) provider overflows on the last row
	records[len(records)-1].Provider = "Provider name that is far too long for a fifty character column"

	_, err := investments.Insert(ctx, conn, records)
	require.Error(t, err)

	assert.Zero(t, testutil.CountRows(t, pool, investments.FakeTable))
}
