package cli

import (
	"fmt"
	"os"

	"github.com/segmentio/encoding/json"
	"github.com/spf13/cobra"

	"github.com/Twixan/scylladb-go/internal/query"
)

// InsertBulkOptions holds flags for the insert-bulk command.
type InsertBulkOptions struct {
	*RootOptions
	Cluster ClusterOptions
	TTL     int64
	DryRun  bool
}

// InsertBulkResult is the JSON payload of a successful insert-bulk.
type InsertBulkResult struct {
	Target    string `json:"target"`
	Records   int    `json:"records"`
	Statement string `json:"statement,omitempty"`
}

// NewInsertBulkCommand creates the insert-bulk command.
func NewInsertBulkCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InsertBulkOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "insert-bulk <keyspace> <table> <file.json>",
		Short: "Insert a JSON array of records in one statement",
		Long: `Insert every object of a JSON array with a single
INSERT INTO <keyspace>.<table> JSON '[...]' statement.

The records are not checked locally. If the statement fails, none of the
output says which records, if any, were applied.

Examples:
  scyllaqb insert-bulk app users ./users.json
  scyllaqb insert-bulk --ttl 86400 app sessions ./sessions.json
  scyllaqb insert-bulk --dry-run app users ./users.json`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInsertBulk(opts, args[0], args[1], args[2], cmd)
		},
	}

	addClusterFlags(cmd, &opts.Cluster)
	cmd.Flags().Int64Var(&opts.TTL, "ttl", 0, "row TTL in seconds (0 = table default)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "print the statement instead of executing it")

	return cmd
}

func runInsertBulk(opts *InsertBulkOptions, keyspace, table, path string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	records, err := readRecords(path)
	if err != nil {
		_ = f.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read records", err)
	}
	f.VerboseLog("Read %d records from %s", len(records), path)
	if len(records) == 0 {
		_ = f.Error(ErrCodeGeneric, query.ErrEmptyBulk.Error(), nil)
		return WrapExitError(ExitFailure, "bulk insert failed", query.ErrEmptyBulk)
	}

	if opts.DryRun {
		b, err := bulkBuilder(query.New(query.Insert, keyspace, table, nil), opts.TTL).WithJSON(records)
		if err != nil {
			_ = f.Error(ErrCodeGeneric, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to encode records", err)
		}
		if opts.Format == "json" {
			return f.Success(InsertBulkResult{Target: b.Target(), Records: len(records), Statement: b.Build()})
		}
		return f.Success(b.Build())
	}

	cfg, err := opts.Cluster.resolve(cmd)
	if err != nil {
		_ = f.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid cluster config", err)
	}

	ctx := commandContext(cmd)
	c, err := opts.connect(ctx, cfg, logger)
	if err != nil {
		_ = f.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to connect", err)
	}
	defer func() {
		if closeErr := c.Close(); closeErr != nil {
			logger.Error("error closing client", "error", closeErr)
		}
	}()

	b := bulkBuilder(c.Builder(query.Insert, keyspace, table), opts.TTL)
	res, err := b.InsertBulk(ctx, records)
	if err != nil {
		_ = f.Error(errorCode(err), err.Error(), nil)
		return WrapExitError(ExitFailure, "bulk insert failed", err)
	}

	out := InsertBulkResult{Target: b.Target(), Records: len(records)}
	if opts.Format == "json" {
		return f.SuccessWithTrace(out, res.TraceID)
	}
	return f.Success(fmt.Sprintf("inserted %d records into %s (trace=%s)", out.Records, out.Target, res.TraceID))
}

func bulkBuilder(b query.Builder, ttl int64) query.Builder {
	if ttl > 0 {
		b = b.InsertOption(query.UsingTTL(ttl))
	}
	return b
}

// readRecords decodes a JSON array, keeping each element's raw text so
// numbers survive unchanged into the payload.
func readRecords(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%s: expected a JSON array of records: %w", path, err)
	}
	return records, nil
}
