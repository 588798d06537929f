package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Twixan/scylladb-go/internal/plan"
	"github.com/Twixan/scylladb-go/internal/query"
)

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions
	Strict bool
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render <plan>",
		Short: "Print the CQL text of every statement in a plan",
		Long: `Render every statement of a YAML or CUE plan without connecting to a
cluster.

Examples:
  scyllaqb render ./plans/users.yaml
  scyllaqb render --strict --format json ./plans/users.cue`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "validate statements before rendering")

	return cmd
}

func runRender(opts *RenderOptions, path string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	p, err := loadPlan(path, opts.Strict)
	if err != nil {
		_ = f.Error(ErrCodeGeneric, err.Error(), nil)
		return err
	}
	f.VerboseLog("Loaded plan %s (%d statements)", p.Name, len(p.Statements))

	rendered, err := p.Render()
	if err != nil {
		_ = f.Error(errorCode(err), err.Error(), nil)
		return WrapExitError(ExitFailure, "failed to render plan", err)
	}

	if opts.Format == "json" {
		return f.Success(rendered)
	}
	lines := make([]string, len(rendered))
	for i, r := range rendered {
		lines[i] = r.Name + ": " + r.Statement
	}
	return f.Success(strings.Join(lines, "\n"))
}

func loadPlan(path string, strict bool) (*plan.Plan, error) {
	p, err := plan.LoadPlan(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load plan", err)
	}
	if strict {
		p.Strict = true
	}
	return p, nil
}

// errorCode picks the validation code carried by err, if any.
func errorCode(err error) string {
	var vErr *query.ValidationError
	if errors.As(err, &vErr) {
		return string(vErr.Code)
	}
	return ErrCodeGeneric
}
