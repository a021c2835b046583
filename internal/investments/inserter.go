package investments

import (
	"context"
	"fmt"

	"github.com/pgEdge/pgedge-seeder/internal/datagen"
	"github.com/pgEdge/pgedge-seeder/internal/db"
	"github.com/pgEdge/pgedge-seeder/internal/logging"
)

const insertRecordSQL = `
INSERT INTO investments_fake (
    name, provider, investment_type, investment_name,
    amount, currency, unit, notes, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`

// Insert writes records into the fake table in a single transaction. Either
// every record is committed or, on the first failing row, the transaction is
// rolled back and nothing is written.
func Insert(ctx context.Context, conn db.DB, records []Record) (int64, error) {
	logging.Info().
		Str("table", FakeTable).
		Int("count", len(records)).
		Msg("Inserting fake data")

	tx, err := conn.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	progress := datagen.NewProgressReporter(FakeTable, int64(len(records)), datagen.DefaultProgressInterval)

	for i, r := range records {
		if _, err := tx.Exec(ctx, insertRecordSQL, r.insertArgs()...); err != nil {
			return 0, fmt.Errorf("failed to insert record %d of %d: %w", i+1, len(records), err)
		}
		progress.Update(1)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit inserts: %w", err)
	}

	progress.Done()
	return progress.Rows(), nil
}
