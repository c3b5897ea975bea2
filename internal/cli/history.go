package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/implicitlycorrect/graft/internal/ledger"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Ledger string
	Limit  int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history --ledger <graft.db>",
		Short: "List recorded graft operations",
		Long: `List the operations recorded in a ledger database, oldest first.
Each row is one completed apply: modules involved, selection counts,
and the selection fingerprint.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Ledger, "ledger", "graft.db", "ledger database path")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum rows to list (0 = all)")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	l, err := ledger.Open(opts.Ledger)
	if err != nil {
		if ferr := formatter.Error(ErrCodeLedger, err.Error(), nil); ferr != nil {
			return ferr
		}
		return NewExitError(ExitCommandError, err.Error())
	}
	defer l.Close()

	ops, err := l.ListOperations(cmd.Context(), opts.Limit)
	if err != nil {
		if ferr := formatter.Error(ErrCodeLedger, err.Error(), nil); ferr != nil {
			return ferr
		}
		return NewExitError(ExitCommandError, err.Error())
	}

	if formatter.Format == "json" {
		return formatter.Success(ops)
	}

	if len(ops) == 0 {
		fmt.Fprintln(formatter.Writer, "no operations recorded")
		return nil
	}
	for _, op := range ops {
		fmt.Fprintf(formatter.Writer, "%4d  %s  %s -> %s  types=%d members=%d  %s\n",
			op.Seq, op.CreatedAt, op.SourceModule, op.TargetModule,
			op.TypeCount, op.MemberCount, shortHash(op.SelectionHash))
	}
	return nil
}

// shortHash abbreviates a fingerprint for table output.
func shortHash(h string) string {
	if len(h) <= 12 {
		return h
	}
	return h[:12]
}
