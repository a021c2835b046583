package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-seeder/internal/datagen"
	"github.com/pgEdge/pgedge-seeder/internal/investments"
	"github.com/pgEdge/pgedge-seeder/internal/logging"
)

var (
	seedRecordsPerMonth int
	seedJitter          int
	seedMonths          int
	seedRandomSeed      uint64
	seedMaxRetries      int
	seedRetryDelay      time.Duration
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate fake investment history and load it",
	Long: `Wait for the database, ensure the investment types and tables exist,
then generate one batch of records per simulated month and insert all of
them into investments_fake in a single transaction. If any insert fails
the whole load is rolled back.

Example:
  pgedge-seeder seed
  pgedge-seeder seed --records-per-month 200 --months 12 --seed 42
  pgedge-seeder seed --db-host db --max-retries 60 --retry-delay 1s`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().IntVar(&seedRecordsPerMonth, "records-per-month", 0,
		"base number of records generated per month (default: 50)")
	seedCmd.Flags().IntVar(&seedJitter, "jitter", 0,
		"maximum random deviation from the base count per month (default: 5)")
	seedCmd.Flags().IntVar(&seedMonths, "months", 0,
		"number of months of history to generate (default: 6)")
	seedCmd.Flags().Uint64Var(&seedRandomSeed, "seed", 0,
		"random seed for reproducible data (0 = random)")
	seedCmd.Flags().IntVar(&seedMaxRetries, "max-retries", 0,
		"connection attempts before giving up (default: 30)")
	seedCmd.Flags().DurationVar(&seedRetryDelay, "retry-delay", 0,
		"pause between connection attempts (default: 2s)")
}

// applySeedFlags overrides seed settings with flags set on the command line.
func applySeedFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("records-per-month") {
		cfg.Seed.RecordsPerMonth = seedRecordsPerMonth
	}
	if flags.Changed("jitter") {
		cfg.Seed.Jitter = seedJitter
	}
	if flags.Changed("months") {
		cfg.Seed.Months = seedMonths
	}
	if flags.Changed("seed") {
		cfg.Seed.RandomSeed = seedRandomSeed
	}
	if flags.Changed("max-retries") {
		cfg.Seed.MaxRetries = seedMaxRetries
	}
	if flags.Changed("retry-delay") {
		cfg.Seed.RetryDelay = seedRetryDelay
	}
}

func runSeed(cmd *cobra.Command, args []string) error {
	applySeedFlags(cmd)

	// Validate configuration
	if err := cfg.ValidateSeed(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	conn, err := connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Close(context.Background())

	faker := datagen.NewFaker()
	if cfg.Seed.RandomSeed != 0 {
		faker = datagen.NewFakerWithSeed(cfg.Seed.RandomSeed)
	}

	generator := investments.NewGenerator(faker, investments.GeneratorConfig{
		RecordsPerMonth: cfg.Seed.RecordsPerMonth,
		Jitter:          cfg.Seed.Jitter,
		Months:          cfg.Seed.Months,
		Now:             time.Now,
	})

	logging.Info().
		Int("records_per_month", cfg.Seed.RecordsPerMonth).
		Int("jitter", cfg.Seed.Jitter).
		Int("months", cfg.Seed.Months).
		Msg("Seeding investments")

	start := time.Now()
	result, err := investments.NewSeeder(conn, generator).Run(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("seeding interrupted: %w", err)
		}
		return err
	}

	logging.Info().
		Str("run_id", result.RunID.String()).
		Int("batches", result.Batches).
		Int64("records", result.Records).
		Dur("duration", time.Since(start)).
		Msg("Seeding complete")

	return nil
}
