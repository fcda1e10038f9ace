package idemctl

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/carelane/hospital-billing/billing/idempotency"
)

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <operation-type> <operation-key>",
		Short: "Show the record for a key in any status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, release, err := openCoordinator(commandContext(cmd), rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer release()

			rec, err := c.Lookup(commandContext(cmd), args[0], args[1])
			if err != nil {
				return WrapExitError(ExitCommandError, "lookup failed", err)
			}
			if rec == nil {
				return NewExitError(ExitFailure, fmt.Sprintf("no record for %s/%s", args[0], args[1]))
			}

			p := printer{format: rootOpts.Format, w: cmd.OutOrStdout()}
			return p.result(recordView(*rec), func(w io.Writer) {
				printRecord(w, *rec)
			})
		},
	}
}

// NewResultCommand creates the result command.
func NewResultCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "result <operation-type> <operation-key>",
		Short: "Print the stored result of a completed operation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, release, err := openCoordinator(commandContext(cmd), rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer release()

			result, found, err := c.GetStoredResult(commandContext(cmd), args[0], args[1])
			if err != nil {
				return WrapExitError(ExitCommandError, "lookup failed", err)
			}
			if !found {
				return NewExitError(ExitFailure, fmt.Sprintf("no completed result for %s/%s", args[0], args[1]))
			}

			p := printer{format: rootOpts.Format, w: cmd.OutOrStdout()}
			return p.result(json.RawMessage(result), func(w io.Writer) {
				fmt.Fprintln(w, string(result))
			})
		},
	}
}

type StoreOptions struct {
	*RootOptions
	CallerContext string
}

// NewStoreCommand creates the store command.
func NewStoreCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StoreOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "store <operation-type> <operation-key> <json-result>",
		Short: "Record the result of an operation executed by hand",
		Long: `Record a completed result for an operation that was executed outside the
coordinator, e.g. a payment captured manually at the gateway. Later attempts
with the same key return this result instead of running again.

Example:
  idemctl store PAYMENT 3f2a... '{"id":"pay-1","amount_cents":9000}' --caller ops-ticket-1234`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !json.Valid([]byte(args[2])) {
				return NewExitError(ExitCommandError, "result must be valid JSON")
			}

			c, release, err := openCoordinator(commandContext(cmd), rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer release()

			ctx := idempotency.WithCallerContext(commandContext(cmd), opts.CallerContext)
			if err := c.StoreResult(ctx, args[0], args[1], json.RawMessage(args[2])); err != nil {
				if idempotency.KindOf(err) == idempotency.KindAlreadyCompleted {
					return WrapExitError(ExitFailure, "result not stored", err)
				}
				return WrapExitError(ExitCommandError, "result not stored", err)
			}

			p := printer{format: rootOpts.Format, w: cmd.OutOrStdout()}
			return p.result(map[string]string{"operation_type": args[0], "operation_key": args[1]}, func(w io.Writer) {
				fmt.Fprintf(w, "stored result for %s/%s\n", args[0], args[1])
			})
		},
	}

	cmd.Flags().StringVar(&opts.CallerContext, "caller", "idemctl", "caller context recorded with the result")

	return cmd
}

type ListOptions struct {
	*RootOptions
	CallerContext string
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the records created for one caller",
		Long: `List the records created on behalf of one caller, oldest first.

Example:
  idemctl list --caller billing-E1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, release, err := openCoordinator(commandContext(cmd), rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer release()

			records, err := c.FindByCallerContext(commandContext(cmd), opts.CallerContext)
			if err != nil {
				return WrapExitError(ExitCommandError, "list failed", err)
			}

			views := make([]RecordView, 0, len(records))
			for _, rec := range records {
				views = append(views, recordView(rec))
			}
			p := printer{format: rootOpts.Format, w: cmd.OutOrStdout()}
			return p.result(views, func(w io.Writer) {
				if len(records) == 0 {
					fmt.Fprintf(w, "no records for caller %s\n", opts.CallerContext)
					return
				}
				for _, rec := range records {
					fmt.Fprintf(w, "%-20s %-64s %-10s %s\n", rec.OperationType, rec.OperationKey, rec.Status,
						rec.CreatedAt.Format(time.RFC3339))
				}
			})
		},
	}

	cmd.Flags().StringVar(&opts.CallerContext, "caller", "", "caller context to list (required)")
	_ = cmd.MarkFlagRequired("caller")

	return cmd
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count records by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, release, err := openCoordinator(commandContext(cmd), rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer release()

			counts, err := c.CountByStatus(commandContext(cmd))
			if err != nil {
				return WrapExitError(ExitCommandError, "count failed", err)
			}

			data := make(map[string]int64, len(counts))
			for status, n := range counts {
				data[string(status)] = n
			}
			p := printer{format: rootOpts.Format, w: cmd.OutOrStdout()}
			return p.result(data, func(w io.Writer) {
				for _, status := range idempotency.Statuses {
					fmt.Fprintf(w, "%-10s %d\n", status, counts[status])
				}
			})
		},
	}
}

// RecordView is the printed form of a record.
type RecordView struct {
	ID            string          `json:"id"`
	OperationType string          `json:"operation_type"`
	OperationKey  string          `json:"operation_key"`
	CallerContext string          `json:"caller_context,omitempty"`
	Status        string          `json:"status"`
	Result        json.RawMessage `json:"result,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	ExpiresAt     time.Time       `json:"expires_at"`
	Version       int64           `json:"version"`
}

func recordView(rec idempotency.Record) RecordView {
	v := RecordView{
		ID:            rec.ID,
		OperationType: rec.OperationType,
		OperationKey:  rec.OperationKey,
		CallerContext: rec.CallerContext,
		Status:        string(rec.Status),
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
		ExpiresAt:     rec.ExpiresAt,
		Version:       rec.Version,
	}
	if len(rec.Result) > 0 && json.Valid(rec.Result) {
		v.Result = json.RawMessage(rec.Result)
	}
	return v
}

func printRecord(w io.Writer, rec idempotency.Record) {
	fmt.Fprintf(w, "Operation:  %s/%s\n", rec.OperationType, rec.OperationKey)
	fmt.Fprintf(w, "Status:     %s (version %d)\n", rec.Status, rec.Version)
	if rec.CallerContext != "" {
		fmt.Fprintf(w, "Caller:     %s\n", rec.CallerContext)
	}
	fmt.Fprintf(w, "Created:    %s\n", rec.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Updated:    %s\n", rec.UpdatedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Expires:    %s\n", rec.ExpiresAt.Format(time.RFC3339))
	if len(rec.Result) > 0 {
		fmt.Fprintf(w, "Result:     %s\n", rec.Result)
	}
}
