package idemctl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
	"go.temporal.io/sdk/log"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Database string // SQLite file
	Postgres string // connection string; takes precedence over Database
	Config   string // YAML coordinator config
	Format   string
	Verbose  bool
}

var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the idemctl command tree.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "idemctl",
		Short: "Inspect and maintain billing idempotency records",
		Long: `idemctl reads and maintains the idempotency records that guard claim
generation and patient payments against duplicate execution.

Records live in the billing PostgreSQL database (--postgres) or in a local
SQLite file (--db) for single-node setups.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", "idempotency.db", "path to SQLite database")
	cmd.PersistentFlags().StringVar(&opts.Postgres, "postgres", "", "PostgreSQL connection string")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "coordinator config file (YAML)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log coordinator activity to stderr")

	cmd.AddCommand(NewDeriveKeyCommand(opts))
	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewResultCommand(opts))
	cmd.AddCommand(NewStoreCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewCleanupCommand(opts))
	cmd.AddCommand(NewReapCommand(opts))

	return cmd
}

// newLogger logs to stderr in verbose mode and discards otherwise.
func newLogger(opts *RootOptions, w io.Writer) log.Logger {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return log.NewStructuredLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
