package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-seeder/internal/db"
	"github.com/pgEdge/pgedge-seeder/internal/investments"
	"github.com/pgEdge/pgedge-seeder/internal/logging"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Create the investment types and tables without loading data",
	Long: `Wait for the database and make sure the investment_type and
currency_type enums and the investments tables exist. The investments_fake
table is recreated empty.`,
	RunE: runSchema,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop the fake investments table and seed metadata",
	Long: `Drop investments_fake and the seed_metadata table. The persistent
investments table and the enum types are left untouched.`,
	RunE: runReset,
}

func runSchema(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	conn, err := connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Close(context.Background())

	if err := investments.CreateSchema(ctx, conn); err != nil {
		return err
	}

	logging.Info().
		Str("table", investments.Table).
		Str("fake_table", investments.FakeTable).
		Msg("Schema is ready")
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	conn, err := connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Close(context.Background())

	if last, found, err := db.LastRun(ctx, conn); err != nil {
		logging.Debug().Err(err).Msg("Could not read seed metadata")
	} else if found {
		logging.Info().
			Str("run_id", last.RunID.String()).
			Int("records", last.Records).
			Time("seeded_at", last.SeededAt).
			Msg("Removing seed run")
	}

	logging.Info().Str("table", investments.FakeTable).Msg("Dropping fake table")
	if err := investments.DropFakeTable(ctx, conn); err != nil {
		return err
	}
	if err := db.DropMetadata(ctx, conn); err != nil {
		return fmt.Errorf("failed to drop seed metadata: %w", err)
	}

	logging.Info().Msg("Reset complete")
	return nil
}
