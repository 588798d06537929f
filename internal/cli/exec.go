package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Twixan/scylladb-go/internal/plan"
)

// ExecOptions holds flags for the exec command.
type ExecOptions struct {
	*RootOptions
	Cluster ClusterOptions
	Strict  bool
}

// NewExecCommand creates the exec command.
func NewExecCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExecOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "exec <plan>",
		Short: "Execute every statement in a plan against a cluster",
		Long: `Render and execute the statements of a plan in order. Execution stops at
the first failed statement; statements already sent are not rolled back.

Examples:
  scyllaqb exec --hosts 10.0.0.1,10.0.0.2 ./plans/users.yaml
  scyllaqb exec --config ./cluster.hcl --journal ./scyllaqb.db ./plans/users.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(opts, args[0], cmd)
		},
	}

	addClusterFlags(cmd, &opts.Cluster)
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "validate statements before executing")

	return cmd
}

func runExec(opts *ExecOptions, path string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	p, err := loadPlan(path, opts.Strict)
	if err != nil {
		_ = f.Error(ErrCodeGeneric, err.Error(), nil)
		return err
	}

	// Reject an invalid plan before connecting.
	if _, err := p.Render(); err != nil {
		_ = f.Error(errorCode(err), err.Error(), nil)
		return WrapExitError(ExitFailure, "failed to render plan", err)
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

	logger.Debug("executing plan", "plan", p.Name, "statements", len(p.Statements))
	outcomes, runErr := p.Run(ctx, c.Session())

	if opts.Format == "json" {
		if runErr != nil {
			_ = f.Error(errorCode(runErr), runErr.Error(), outcomes)
		} else {
			_ = f.SuccessWithTrace(outcomes, lastTrace(outcomes))
		}
	} else if len(outcomes) > 0 {
		lines := make([]string, len(outcomes))
		for i, o := range outcomes {
			lines[i] = describeOutcome(o)
		}
		_ = f.Success(strings.Join(lines, "\n"))
	}

	if runErr != nil {
		if opts.Format != "json" {
			_ = f.Error(errorCode(runErr), runErr.Error(), nil)
		}
		logger.Warn("plan stopped", "plan", p.Name, "completed", len(outcomes), "error", runErr)
		return WrapExitError(ExitFailure, "plan execution failed", runErr)
	}
	logger.Debug("plan executed", "plan", p.Name)
	return nil
}

func describeOutcome(o plan.Outcome) string {
	return fmt.Sprintf("%s: %s (rows=%d, trace=%s)", o.Name, o.Statement, o.Rows, o.TraceID)
}

func lastTrace(outcomes []plan.Outcome) string {
	if len(outcomes) == 0 {
		return ""
	}
	return outcomes[len(outcomes)-1].TraceID
}
