package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"forge/internal/scaffold"
	"forge/internal/ui"
)

func newPlanCommand(app *App) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the execution plan without generating anything",
		Long: `Resolve the execution plan for the saved configuration and print it.
Planning is pure: this command never writes to the project directory, so it
is safe to run on a fully generated project.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Loader.Load(dir)
			if err != nil {
				fmt.Fprintln(app.Out, err)
				return NewExitError(1)
			}

			p, err := scaffold.Plan(cfg)
			if err != nil {
				fmt.Fprintln(app.Out, err)
				return NewExitError(1)
			}

			ui.RenderPlan(app.Out, p)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "project directory holding .forge/config.yaml")

	return cmd
}
