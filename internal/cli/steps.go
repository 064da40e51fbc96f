package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"forge/internal/steps"
	"forge/internal/ui"
)

func newStepsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "steps",
		Short: "List every generation step in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := steps.Catalog()
			if err != nil {
				fmt.Fprintln(app.Out, err)
				return NewExitError(1)
			}

			ui.RenderSteps(app.Out, reg.All())
			return nil
		},
	}
}
