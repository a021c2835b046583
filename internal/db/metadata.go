//-------------------------------------------------------------------------
//
// pgEdge Investment Seeder
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package db

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pgEdge/pgedge-seeder/internal/logging"
	"github.com/pgEdge/pgedge-seeder/pkg/version"
)

const metadataTable = "seed_metadata"

// createMetadataTableSQL creates the metadata table if it doesn't exist.
const createMetadataTableSQL = `
CREATE TABLE IF NOT EXISTS seed_metadata (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
)`

// RunInfo describes a completed seeding run.
type RunInfo struct {
	RunID    uuid.UUID
	Table    string
	Records  int
	SeededAt time.Time

	// Version is the seeder version that recorded the run. It is filled in
	// by LastRun; SaveMetadata always stores the running version.
	Version string
}

// SaveMetadata records the last successful seeding run.
func SaveMetadata(ctx context.Context, db DB, info RunInfo) error {
	_, err := db.Exec(ctx, createMetadataTableSQL)
	if err != nil {
		return fmt.Errorf("failed to create metadata table: %w", err)
	}

	seededAt := info.SeededAt
	if seededAt.IsZero() {
		seededAt = time.Now()
	}

	metadata := map[string]string{
		"run_id":    info.RunID.String(),
		"version":   version.Short(),
		"seeded_at": seededAt.UTC().Format(time.RFC3339),
		"table":     info.Table,
		"records":   strconv.Itoa(info.Records),
	}

	for key, value := range metadata {
		_, err := db.Exec(ctx, `
            INSERT INTO seed_metadata (key, value) VALUES ($1, $2)
            ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
        `, key, value)
		if err != nil {
			return fmt.Errorf("failed to save metadata %s: %w", key, err)
		}
	}

	logging.Debug().
		Str("run_id", info.RunID.String()).
		Int("records", info.Records).
		Msg("Saved metadata")

	return nil
}

// LastRun returns the run recorded by the most recent successful seed. The
// boolean is false when nothing has been recorded yet.
func LastRun(ctx context.Context, db DB) (RunInfo, bool, error) {
	exists, err := MetadataExists(ctx, db)
	if err != nil {
		return RunInfo{}, false, fmt.Errorf("failed to check metadata table: %w", err)
	}
	if !exists {
		return RunInfo{}, false, nil
	}

	rows, err := db.Query(ctx, `SELECT key, value FROM seed_metadata`)
	if err != nil {
		return RunInfo{}, false, fmt.Errorf("failed to read metadata: %w", err)
	}
	values, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) ([2]string, error) {
		var kv [2]string
		err := row.Scan(&kv[0], &kv[1])
		return kv, err
	})
	if err != nil {
		return RunInfo{}, false, fmt.Errorf("failed to read metadata: %w", err)
	}
	if len(values) == 0 {
		return RunInfo{}, false, nil
	}

	metadata := make(map[string]string, len(values))
	for _, kv := range values {
		metadata[kv[0]] = kv[1]
	}

	info, err := parseRunInfo(metadata)
	if err != nil {
		return RunInfo{}, false, err
	}
	return info, true, nil
}

func parseRunInfo(metadata map[string]string) (RunInfo, error) {
	var info RunInfo
	var err error

	if info.RunID, err = uuid.Parse(metadata["run_id"]); err != nil {
		return RunInfo{}, fmt.Errorf("invalid run_id in metadata: %w", err)
	}
	if info.Records, err = strconv.Atoi(metadata["records"]); err != nil {
		return RunInfo{}, fmt.Errorf("invalid records in metadata: %w", err)
	}
	if info.SeededAt, err = time.Parse(time.RFC3339, metadata["seeded_at"]); err != nil {
		return RunInfo{}, fmt.Errorf("invalid seeded_at in metadata: %w", err)
	}
	info.Table = metadata["table"]
	info.Version = metadata["version"]

	return info, nil
}

// DropMetadata drops the metadata table.
func DropMetadata(ctx context.Context, db DB) error {
	_, err := db.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", metadataTable))
	return err
}

// MetadataExists checks if the metadata table exists.
func MetadataExists(ctx context.Context, db DB) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT FROM information_schema.tables
            WHERE table_name = $1
        )
    `, metadataTable).Scan(&exists)
	return exists, err
}
