// Package scaffold composes the step catalog, resolver, and engine into the
// generation entry point used by the CLI.
//
// Generate is the only place that wires a real filesystem writer; everything
// below it is pure planning or writer-mediated execution. Plan provides the
// dry-run used by `forge plan`.
package scaffold

import (
	"forge/internal/artifact"
	"forge/internal/config"
	"forge/internal/engine"
	"forge/internal/plan"
	"forge/internal/steps"
)

// Options tune one generation run.
type Options struct {
	// Overwrite replaces existing artifacts instead of failing per step.
	Overwrite bool

	// OnStep, when set, receives progress before each step executes.
	OnStep func(index, total int, id string)
}

// Plan resolves the execution plan for a configuration without touching the
// destination. Planning failures are guaranteed to precede any write.
func Plan(cfg *config.Config) (*plan.ExecutionPlan, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	reg, err := steps.Catalog()
	if err != nil {
		return nil, err
	}

	return plan.Resolve(reg, cfg)
}

// Generate scaffolds the project into destRoot and returns the execution
// report. The returned error is non-nil for configuration or planning
// failures (zero writes performed) and for structural step failures that
// aborted the run; recoverable per-step failures are reported in the report
// only.
func Generate(cfg *config.Config, destRoot string, opts Options) (*engine.Report, error) {
	p, err := Plan(cfg)
	if err != nil {
		return nil, err
	}

	eng := engine.New(engine.Options{
		Overwrite: opts.Overwrite,
		OnStep:    opts.OnStep,
	})

	return eng.Execute(p, cfg, artifact.NewFSWriter(destRoot))
}
