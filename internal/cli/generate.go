package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"forge/internal/config"
	"forge/internal/engine"
	"forge/internal/scaffold"
	"forge/internal/ui"
)

func newGenerateCommand(app *App) *cobra.Command {
	var (
		dir   string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Regenerate the project from its saved configuration",
		Long: `Load the configuration persisted by 'forge init' and regenerate the
project source tree. Generation with --force is idempotent: running it twice
produces identical artifacts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Loader.Load(dir)
			if err != nil {
				fmt.Fprintln(app.Out, err)
				return NewExitError(1)
			}

			return app.runGeneration(cfg, dir, force)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "project directory holding .forge/config.yaml")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing artifacts")

	return cmd
}

// runGeneration executes a scaffold run and renders the report. Shared by
// init and generate.
func (app *App) runGeneration(cfg *config.Config, dest string, force bool) error {
	report, err := scaffold.Generate(cfg, dest, scaffold.Options{Overwrite: force})
	if err != nil && report == nil {
		// Planning failed before anything was written.
		fmt.Fprintln(app.Out, err)
		return NewExitError(1)
	}

	ui.RenderReport(app.Out, report)

	var stepErr *engine.StepExecutionError
	if errors.As(err, &stepErr) {
		fmt.Fprintf(app.Out, "generation aborted: %v (already-written artifacts were kept)\n", stepErr)
	}

	if !report.OK() {
		return NewExitError(1)
	}
	return nil
}
