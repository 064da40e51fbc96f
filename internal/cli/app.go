// Package cli provides the forge command tree.
//
// Commands are constructed around an [App] value carrying injected
// collaborators (prompt driver, config loader, output writer), so tests can
// run commands against fakes without touching a terminal or calling
// os.Exit. Failures propagate as [ExitError] values that [Execute] converts
// to process exit codes at the very edge.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"forge/internal/config"
	"forge/internal/wizard"
)

// Version is the forge release stamped into generated configs and shown by
// --version. Overridden at build time via -ldflags.
var Version = "0.2.0"

// App carries the collaborators shared by all commands.
type App struct {
	// Out receives user-facing output.
	Out io.Writer

	// Prompter drives the interactive wizard.
	Prompter wizard.PromptDriver

	// Loader loads persisted project configurations.
	Loader *config.Loader
}

// NewApp creates an [App] with production collaborators.
func NewApp() *App {
	return &App{
		Out:      os.Stdout,
		Prompter: wizard.NewSurveyDriver(),
		Loader:   config.NewLoader(),
	}
}

// NewRootCommand builds the forge command tree around the app.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:          "forge",
		Short:        "Scaffold a backend service from a feature configuration",
		Long:         "Forge scaffolds a backend service's source tree from a declarative\nfeature configuration collected via an interactive wizard.",
		Version:      Version,
		SilenceUsage: true,
		// Errors are rendered here once; cobra should not repeat them.
		SilenceErrors: true,
	}

	root.AddCommand(
		newInitCommand(app),
		newGenerateCommand(app),
		newPlanCommand(app),
		newStepsCommand(app),
	)

	return root
}

// Execute runs the command tree and returns the process exit code.
func Execute() int {
	app := NewApp()
	root := NewRootCommand(app)

	if err := root.Execute(); err != nil {
		if code, ok := IsExitError(err); ok {
			// The command already reported its diagnostics.
			return code
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
