package idemctl

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

type CleanupOptions struct {
	*RootOptions
	Timeout time.Duration
}

// NewCleanupCommand creates the cleanup command and its expired and stuck subcommands.
func NewCleanupCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete expired records or reclaim stuck ones",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "expired",
		Short: "Delete every record past its expiry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, release, err := openCoordinator(commandContext(cmd), rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer release()

			n, err := c.CleanupExpiredKeys(commandContext(cmd))
			if err != nil {
				return WrapExitError(ExitCommandError, "cleanup failed", err)
			}
			p := printer{format: rootOpts.Format, w: cmd.OutOrStdout()}
			return p.result(map[string]int64{"deleted": n}, func(w io.Writer) {
				fmt.Fprintf(w, "deleted %d expired records\n", n)
			})
		},
	})

	stuck := &CleanupOptions{RootOptions: rootOpts}
	stuckCmd := &cobra.Command{
		Use:   "stuck",
		Short: "Mark old processing records as failed so their keys can be retried",
		Long: `Mark processing records older than --timeout as failed. A failed key is
executed again by the next attempt.

Only reclaim keys whose worker is known to be gone: an operation still running
under a reclaimed key fails when it tries to record its result.

Example:
  idemctl cleanup stuck --timeout 45m`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, release, err := openCoordinator(commandContext(cmd), rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer release()

			n, err := c.CleanupStuckKeys(commandContext(cmd), stuck.Timeout)
			if err != nil {
				return WrapExitError(ExitCommandError, "cleanup failed", err)
			}
			p := printer{format: rootOpts.Format, w: cmd.OutOrStdout()}
			return p.result(map[string]int64{"reclaimed": n}, func(w io.Writer) {
				fmt.Fprintf(w, "reclaimed %d stuck records\n", n)
			})
		},
	}
	stuckCmd.Flags().DurationVar(&stuck.Timeout, "timeout", 0, "age after which a processing record is stuck (default from config)")
	cmd.AddCommand(stuckCmd)

	return cmd
}

type ReapOptions struct {
	*RootOptions
	Once bool
}

// NewReapCommand creates the reap command, which runs both cleanup duties on the
// configured interval until interrupted.
func NewReapCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReapOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "reap",
		Short: "Run expired and stuck cleanup periodically",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			c, release, err := openCoordinator(ctx, rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer release()

			if opts.Once {
				expired, stuck, err := c.Reaper().RunOnce(ctx)
				if err != nil {
					return WrapExitError(ExitCommandError, "reap failed", err)
				}
				p := printer{format: rootOpts.Format, w: cmd.OutOrStdout()}
				return p.result(map[string]int64{"expired": expired, "reclaimed": stuck}, func(w io.Writer) {
					fmt.Fprintf(w, "deleted %d expired records, reclaimed %d stuck records\n", expired, stuck)
				})
			}

			c.Reaper().Run(ctx)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.Once, "once", false, "run a single cycle and exit")

	return cmd
}
