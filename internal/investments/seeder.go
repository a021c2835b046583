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
	"time"

	"github.com/google/uuid"

	"github.com/pgEdge/pgedge-seeder/internal/db"
	"github.com/pgEdge/pgedge-seeder/internal/logging"
)

// Result summarises a seeding run.
type Result struct {
	RunID   uuid.UUID
	Batches int
	Records int64
}

// Seeder runs the schema, generate and insert steps against one connection.
type Seeder struct {
	conn      db.DB
	generator *Generator
}

// NewSeeder creates a seeder. The caller owns conn and closes it.
func NewSeeder(conn db.DB, generator *Generator) *Seeder {
	return &Seeder{
		conn:      conn,
		generator: generator,
	}
}

// Run ensures the schema, generates the history and loads it into the fake
// table. Run metadata is recorded once the data is committed; failing to
// record it is logged but does not fail the run.
func (s *Seeder) Run(ctx context.Context) (Result, error) {
	logging.Info().Msg("Creating custom types")
	if err := EnsureTypes(ctx, s.conn); err != nil {
		return Result{}, err
	}

	s.logPreviousRun(ctx)

	logging.Info().
		Str("table", Table).
		Str("fake_table", FakeTable).
		Msg("Creating tables")
	if err := EnsureTables(ctx, s.conn); err != nil {
		return Result{}, err
	}

	batches := s.generator.Batches()
	for _, b := range batches {
		logging.Debug().
			Int("month", b.Month).
			Time("date", b.Date).
			Int("records", len(b.Records)).
			Msg("Generated batch")
	}
	records := Flatten(batches)

	inserted, err := Insert(ctx, s.conn, records)
	if err != nil {
		return Result{}, fmt.Errorf("failed to insert data: %w", err)
	}

	result := Result{
		RunID:   uuid.New(),
		Batches: len(batches),
		Records: inserted,
	}

	if err := db.SaveMetadata(ctx, s.conn, db.RunInfo{
		RunID:    result.RunID,
		Table:    FakeTable,
		Records:  int(inserted),
		SeededAt: time.Now(),
	}); err != nil {
		logging.Warn().Err(err).Msg("Could not record seed metadata")
	}

	logging.Info().
		Str("run_id", result.RunID.String()).
		Int("batches", result.Batches).
		Int64("records", result.Records).
		Msgf("Successfully generated and inserted %d fake investment records", result.Records)

	return result, nil
}

// logPreviousRun reports the run whose rows are about to be replaced.
func (s *Seeder) logPreviousRun(ctx context.Context) {
	prev, found, err := db.LastRun(ctx, s.conn)
	if err != nil {
		logging.Debug().Err(err).Msg("Could not read previous seed run")
		return
	}
	if !found {
		return
	}

	logging.Info().
		Str("run_id", prev.RunID.String()).
		Int("records", prev.Records).
		Time("seeded_at", prev.SeededAt).
		Msg("Replacing previous seed run")
}
