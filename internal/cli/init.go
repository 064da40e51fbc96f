package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"forge/internal/config"
	"forge/internal/wizard"
)

func newInitCommand(app *App) *cobra.Command {
	var (
		dir         string
		force       bool
		useDefaults bool
	)

	cmd := &cobra.Command{
		Use:   "init [project-name]",
		Short: "Create a new project configuration and scaffold it",
		Long: `Collect the project feature configuration through the interactive wizard,
persist it to .forge/config.yaml, and generate the project source tree.

Use --defaults to skip the wizard and scaffold with the recommended
selections (PostgreSQL, gorm, migrations, complete auth, all toggles on).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}

			var (
				cfg *config.Config
				err error
			)
			if useDefaults {
				if name == "" {
					name = wizard.DefaultProjectName
				}
				cfg = config.DefaultConfig(name)
				if err := cfg.Validate(); err != nil {
					fmt.Fprintln(app.Out, err)
					return NewExitError(1)
				}
			} else {
				cfg, err = wizard.Run(app.Prompter, name)
				if err != nil {
					fmt.Fprintln(app.Out, err)
					return NewExitError(1)
				}
			}

			dest := dir
			if dest == "" {
				dest = cfg.ProjectName
			}

			if err := config.Save(cfg, dest, Version); err != nil {
				fmt.Fprintln(app.Out, err)
				return NewExitError(1)
			}

			return app.runGeneration(cfg, dest, force)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "destination directory (defaults to the project name)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing artifacts")
	cmd.Flags().BoolVar(&useDefaults, "defaults", false, "skip the wizard and use recommended selections")

	return cmd
}
