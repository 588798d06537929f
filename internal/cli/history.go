package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Twixan/scylladb-go/internal/journal"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Journal string
	Limit   int
	TraceID string
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List journaled statements",
		Long: `List statements recorded by exec or insert-bulk with --journal,
newest first.

Examples:
  scyllaqb history --journal ./scyllaqb.db
  scyllaqb history --journal ./scyllaqb.db -n 5 --format json
  scyllaqb history --journal ./scyllaqb.db --trace 01929c3e-...`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Journal, "journal", "", "path to the SQLite journal (required)")
	_ = cmd.MarkFlagRequired("journal")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "number of entries to show")
	cmd.Flags().StringVar(&opts.TraceID, "trace", "", "show only entries with this trace id")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	ctx := commandContext(cmd)

	st, err := journal.Open(opts.Journal)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	defer st.Close()

	var entries []journal.Entry
	if opts.TraceID != "" {
		entries, err = st.ByTrace(ctx, opts.TraceID)
	} else {
		entries, err = st.Recent(ctx, opts.Limit)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read journal", err)
	}

	if opts.Format == "json" {
		if entries == nil {
			entries = []journal.Entry{}
		}
		return f.Success(entries)
	}
	if len(entries) == 0 {
		return f.Success("No statements recorded.")
	}

	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = describeEntry(e)
	}
	return f.Success(strings.Join(lines, "\n"))
}

func describeEntry(e journal.Entry) string {
	status := "ok"
	if !e.OK {
		status = "FAILED"
	}
	line := fmt.Sprintf("#%d %s %s %s", e.Seq, status, e.TraceID, e.Statement)
	if e.Error != "" {
		line += "\n    " + e.Error
	}
	return line
}
