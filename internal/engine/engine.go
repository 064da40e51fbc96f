// Package engine executes an execution plan against an artifact writer.
//
// Execution is strictly sequential: steps write into a shared destination
// tree and their relative order is part of the correctness contract. The
// engine never touches storage itself. Every mutation goes through the
// [artifact.Writer] collaborator, so it runs unchanged against a real
// filesystem or the in-memory recorder used in tests.
//
// Failure policy:
//   - [artifact.ConflictError] is recoverable: the step is recorded as
//     failed and execution continues with steps whose dependencies are
//     otherwise satisfied. Steps downstream of a failed step are recorded
//     as skipped, naming the blocking dependency.
//   - Any other action error is structural: the step is recorded as failed,
//     the remaining plan is abandoned, and the error propagates to the
//     caller wrapped in [StepExecutionError]. Artifacts already written are
//     not rolled back.
//
// Key types:
//   - [Engine] runs plans
//   - [Report] holds per-step outcomes plus the overall result
//   - [StepExecutionError] wraps the structural failure that aborted a run
package engine

import (
	"errors"
	"fmt"

	"forge/internal/artifact"
	"forge/internal/config"
	"forge/internal/plan"
	"forge/internal/registry"
)

// Outcome is the recorded result of one planned step.
type Outcome string

const (
	// OutcomeSucceeded means the action ran and emitted its artifacts.
	OutcomeSucceeded Outcome = "succeeded"

	// OutcomeSkipped means the action deliberately no-opped (self-gated on
	// finer-grained configuration), was blocked by a failed dependency, or
	// was abandoned after a structural failure.
	OutcomeSkipped Outcome = "skipped"

	// OutcomeFailed means the action returned an error.
	OutcomeFailed Outcome = "failed"
)

// StepResult records the outcome of one step.
type StepResult struct {
	// ID is the step identifier.
	ID string

	// Category is the step's reporting category.
	Category registry.Category

	// Outcome is the recorded result.
	Outcome Outcome

	// Err holds the failure for OutcomeFailed results.
	Err error

	// Reason explains skipped outcomes (self-gate, blocked dependency,
	// aborted run). Empty for succeeded steps.
	Reason string
}

// Report is the per-invocation execution record.
type Report struct {
	// Results holds one entry per planned step, in plan order.
	Results []StepResult

	// Aborted is set when a structural failure stopped the run early.
	Aborted error
}

// OK reports overall success: every step succeeded or was deliberately
// skipped, and the run was not aborted.
func (r *Report) OK() bool {
	if r.Aborted != nil {
		return false
	}
	for _, res := range r.Results {
		if res.Outcome == OutcomeFailed {
			return false
		}
	}
	return true
}

// Succeeded returns the IDs of steps that emitted their artifacts.
func (r *Report) Succeeded() []string { return r.idsWith(OutcomeSucceeded) }

// Skipped returns the IDs of steps recorded as skipped.
func (r *Report) Skipped() []string { return r.idsWith(OutcomeSkipped) }

// Failed returns the IDs of steps recorded as failed.
func (r *Report) Failed() []string { return r.idsWith(OutcomeFailed) }

func (r *Report) idsWith(o Outcome) []string {
	var ids []string
	for _, res := range r.Results {
		if res.Outcome == o {
			ids = append(ids, res.ID)
		}
	}
	return ids
}

// StepExecutionError wraps an unexpected failure inside a step's action.
// It aborts the remaining plan; already-written artifacts stay in place.
type StepExecutionError struct {
	// StepID is the step whose action failed.
	StepID string

	// Err is the underlying failure.
	Err error
}

func (e *StepExecutionError) Error() string {
	return fmt.Sprintf("step %q failed: %v", e.StepID, e.Err)
}

func (e *StepExecutionError) Unwrap() error {
	return e.Err
}

// Options tune engine behavior for one invocation.
type Options struct {
	// Overwrite is passed through to step actions via the writer contract:
	// when false, emitting over an existing artifact fails with a
	// recoverable conflict.
	Overwrite bool

	// OnStep, when set, is called before each step runs with the 1-based
	// index, total step count, and step ID. Used for progress output.
	OnStep func(index, total int, id string)
}

// Engine runs execution plans.
type Engine struct {
	opts Options
}

// New creates an [Engine] with the given options.
func New(opts Options) *Engine {
	return &Engine{opts: opts}
}

// Execute runs the plan in order against the writer and returns the report.
//
// The returned error is non-nil only for structural failures that aborted
// the run; recoverable per-step failures are visible in the report alone.
// The configuration is treated as read-only throughout.
func (e *Engine) Execute(p *plan.ExecutionPlan, cfg *config.Config, w artifact.Writer) (*Report, error) {
	report := &Report{Results: make([]StepResult, 0, p.Len())}

	// Steps whose artifacts are not in place: failed steps plus anything
	// skipped because of them. Dependents of these must not run.
	unsatisfied := make(map[string]string) // step ID -> root blocking ID

	total := p.Len()
	for i, step := range p.Steps {
		if e.opts.OnStep != nil {
			e.opts.OnStep(i+1, total, step.ID)
		}

		if blocker := blockedBy(step, unsatisfied); blocker != "" {
			unsatisfied[step.ID] = blocker
			report.Results = append(report.Results, StepResult{
				ID:       step.ID,
				Category: step.Category,
				Outcome:  OutcomeSkipped,
				Reason:   fmt.Sprintf("dependency %q failed", blocker),
			})
			continue
		}

		err := runAction(step, cfg, w, e.opts.Overwrite)
		switch {
		case err == nil:
			report.Results = append(report.Results, StepResult{
				ID:       step.ID,
				Category: step.Category,
				Outcome:  OutcomeSucceeded,
			})

		case errors.Is(err, registry.ErrSkipped):
			report.Results = append(report.Results, StepResult{
				ID:       step.ID,
				Category: step.Category,
				Outcome:  OutcomeSkipped,
				Reason:   "not applicable to this configuration",
			})

		case isConflict(err):
			unsatisfied[step.ID] = step.ID
			report.Results = append(report.Results, StepResult{
				ID:       step.ID,
				Category: step.Category,
				Outcome:  OutcomeFailed,
				Err:      err,
			})

		default:
			// Structural failure: record, abandon the rest of the plan.
			stepErr := &StepExecutionError{StepID: step.ID, Err: err}
			report.Results = append(report.Results, StepResult{
				ID:       step.ID,
				Category: step.Category,
				Outcome:  OutcomeFailed,
				Err:      stepErr,
			})
			for _, rest := range p.Steps[i+1:] {
				report.Results = append(report.Results, StepResult{
					ID:       rest.ID,
					Category: rest.Category,
					Outcome:  OutcomeSkipped,
					Reason:   fmt.Sprintf("aborted after %q failed", step.ID),
				})
			}
			report.Aborted = stepErr
			return report, stepErr
		}
	}

	return report, nil
}

// blockedBy returns the ID of the failed step blocking this one, or "".
func blockedBy(step registry.Step, unsatisfied map[string]string) string {
	for _, dep := range step.Requires {
		if root, ok := unsatisfied[dep]; ok {
			return root
		}
	}
	return ""
}

// runAction invokes the step action with the overwrite mode applied.
func runAction(step registry.Step, cfg *config.Config, w artifact.Writer, overwrite bool) error {
	return step.Action(cfg, &modeWriter{inner: w, overwrite: overwrite})
}

// isConflict reports whether the error chain contains an artifact conflict.
func isConflict(err error) bool {
	var conflict *artifact.ConflictError
	return errors.As(err, &conflict)
}

// modeWriter forces the engine-level overwrite decision onto every write.
//
// Step actions request writes without caring about --force; whether an
// existing artifact is replaced is an invocation-level choice, so the engine
// owns it rather than each action.
type modeWriter struct {
	inner     artifact.Writer
	overwrite bool
}

func (m *modeWriter) Write(relPath string, content []byte, overwrite bool) (string, error) {
	return m.inner.Write(relPath, content, overwrite || m.overwrite)
}
