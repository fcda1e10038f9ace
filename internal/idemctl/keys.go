package idemctl

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/carelane/hospital-billing/billing/idempotency"
)

type DeriveKeyOptions struct {
	*RootOptions
	Fields []string
}

// NewDeriveKeyCommand creates the derive-key command.
func NewDeriveKeyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DeriveKeyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "derive-key [component...]",
		Short: "Derive an operation key",
		Long: `Derive the operation key for a set of business fields.

Fields are given either as --field name=value or as positional name:value
components. The order of fields never changes the key.

Examples:
  idemctl derive-key --field encounter=E1 --field patient=P1 --field auth=AUTH100 --field charges_cents=25000
  idemctl derive-key patient:P1 auth:AUTH100 charges:250.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeriveKey(opts, cmd.OutOrStdout(), args)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Fields, "field", nil, "named key field as name=value (repeatable)")

	return cmd
}

func runDeriveKey(opts *DeriveKeyOptions, out io.Writer, args []string) error {
	if len(opts.Fields) > 0 && len(args) > 0 {
		return NewExitError(ExitCommandError, "use either --field or positional components, not both")
	}

	var (
		key string
		err error
	)
	if len(opts.Fields) > 0 {
		fields := make(map[string]string, len(opts.Fields))
		for _, f := range opts.Fields {
			name, value, ok := strings.Cut(f, "=")
			if !ok {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid field %q: expected name=value", f))
			}
			if _, dup := fields[name]; dup {
				return NewExitError(ExitCommandError, fmt.Sprintf("field %q given more than once", name))
			}
			fields[name] = value
		}
		key, err = idempotency.DeriveKeyFromFields(fields)
	} else {
		key, err = idempotency.DeriveKey(args...)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to derive key", err)
	}

	p := printer{format: opts.Format, w: out}
	return p.result(map[string]string{"key": key}, func(w io.Writer) {
		fmt.Fprintln(w, key)
	})
}
