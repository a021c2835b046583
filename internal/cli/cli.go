//-------------------------------------------------------------------------
//
// pgEdge Investment Seeder
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for pgedge-seeder.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-seeder/internal/config"
	"github.com/pgEdge/pgedge-seeder/internal/db"
	"github.com/pgEdge/pgedge-seeder/internal/investments"
	"github.com/pgEdge/pgedge-seeder/internal/logging"
	"github.com/pgEdge/pgedge-seeder/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	logLevel   string
	dbHost     string
	dbPort     int
	dbName     string
	dbUser     string
	dbPassword string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "pgedge-seeder",
		Short: "Seed a PostgreSQL database with fake investment history",
		Long: `pgedge-seeder waits for a PostgreSQL server to become available,
makes sure the investment enum types and tables exist, and fills the
investments_fake table with six months of generated investment records.

The persistent investments table is created if missing but never written to.
The investments_fake table is recreated on every run.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// Run executes the command line in args and returns the process exit code.
// A failure is reported on out, next to the progress log.
func Run(args []string, out io.Writer) int {
	rootCmd.SetArgs(args)
	if err := Execute(); err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return 1
	}
	return 0
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./pgedge-seeder.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&dbHost, "db-host", "",
		"database host (env DB_HOST)")
	rootCmd.PersistentFlags().IntVar(&dbPort, "db-port", 0,
		"database port (env DB_PORT)")
	rootCmd.PersistentFlags().StringVar(&dbName, "db-name", "",
		"database name (env POSTGRES_DB)")
	rootCmd.PersistentFlags().StringVar(&dbUser, "db-user", "",
		"database user (env POSTGRES_USER)")
	rootCmd.PersistentFlags().StringVar(&dbPassword, "db-password", "",
		"database password (env POSTGRES_PASSWORD)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(categoriesCmd)
}

func initConfig(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(""); err != nil {
		return err
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	applyGlobalFlags(cmd, cfg)

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

// applyGlobalFlags overrides loaded settings with flags the user set
// explicitly on the command line.
func applyGlobalFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		c.LogLevel = logLevel
	}
	if flags.Changed("db-host") {
		c.Database.Host = dbHost
	}
	if flags.Changed("db-port") {
		c.Database.Port = dbPort
	}
	if flags.Changed("db-name") {
		c.Database.Name = dbName
	}
	if flags.Changed("db-user") {
		c.Database.User = dbUser
	}
	if flags.Changed("db-password") {
		c.Database.Password = dbPassword
	}
}

// signalContext returns a context that is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigChan:
			logging.Info().
				Str("signal", sig.String()).
				Msg("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}

// connect waits for the configured database and returns a single connection.
func connect(ctx context.Context) (*pgx.Conn, error) {
	logging.Info().
		Str("database", cfg.Database.Redacted()).
		Msg("Connecting to database")

	conn, err := db.ConnectWithRetry(ctx, cfg.Database.ConnString(), db.RetryConfig{
		MaxRetries: cfg.Seed.MaxRetries,
		Delay:      cfg.Seed.RetryDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return conn, nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List investment categories",
	Long: `List the investment categories the generator draws from, with the
amount range, whether records carry a unit count, and the instrument names
used for each category.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("Investment categories:")
		cmd.Println()
		for _, c := range investments.Categories {
			info, _ := c.Info()
			units := "no"
			if info.UnitBearing {
				units = "yes"
			}
			cmd.Printf("  %-12s %9s - %-9s units: %-3s  %s\n",
				c, info.MinAmount.String(), info.MaxAmount.String(), units,
				strings.Join(info.Names, ", "))
		}
		cmd.Println()
		cmd.Printf("Currencies: %s\n", joinCurrencies())
		cmd.Printf("Providers:  %s\n", strings.Join(investments.Providers, ", "))
	},
}

func joinCurrencies() string {
	names := make([]string, len(investments.Currencies))
	for i, c := range investments.Currencies {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
