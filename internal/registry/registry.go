// Package registry holds the metadata for every generation step.
//
// A [Step] is pure data: an identifier, a category, dependency edges, an
// activation predicate over the configuration, and the action that emits its
// artifacts. Steps are registered once at startup into a [Registry] value
// that is passed explicitly to the resolver and engine. There is no global
// step table, so tests can build isolated registries.
//
// Activation predicates are never evaluated at registration time; the
// resolver applies them lazily against a concrete configuration.
//
// Key types:
//   - [Step] describes one conditionally activated unit of artifact synthesis
//   - [Registry] is the ordered, append-only step collection
//   - [DuplicateStepError], [UnknownDependencyError] report integrity violations
package registry

import (
	"errors"
	"fmt"

	"forge/internal/artifact"
	"forge/internal/config"
)

// ErrSkipped is returned by a step action to record a deliberate no-op.
//
// Actions may apply fine-grained self-checks that are not expressible as a
// single activation predicate (for example, a step that only emits when a
// sub-variant flag is set). Returning ErrSkipped marks the step as skipped
// in the report rather than failed.
var ErrSkipped = errors.New("step skipped")

// Category groups steps for reporting. It never affects scheduling;
// ordering comes from Requires edges with Priority as a tie-break.
type Category string

const (
	CategoryBase     Category = "base"
	CategoryConfig   Category = "config"
	CategoryDatabase Category = "database"
	CategoryModel    Category = "model"
	CategoryAuth     Category = "auth"
	CategoryRoutes   Category = "routes"
	CategoryDeploy   Category = "deploy"
	CategoryTest     Category = "test"
	CategoryTooling  Category = "tooling"
	CategoryDocs     Category = "docs"
)

// ActivationFunc decides whether a step participates in a plan for the given
// configuration. It must be pure: no side effects, no writer access.
type ActivationFunc func(cfg *config.Config) bool

// ActionFunc emits a step's artifacts through the writer.
//
// Returning nil records the step as succeeded, [ErrSkipped] as skipped, and
// any other error as failed (see the engine package for the failure policy).
type ActionFunc func(cfg *config.Config, w artifact.Writer) error

// Step describes one generation step.
type Step struct {
	// ID uniquely identifies the step within a registry.
	ID string

	// Category groups the step for reporting.
	Category Category

	// Priority breaks ordering ties between steps with no dependency
	// relation; lower runs first. Equal priorities fall back to
	// registration order.
	Priority int

	// Requires lists the IDs of steps that must run before this one.
	// Every required step must be active whenever this step is active;
	// a step that can live without a feature must encode that in its own
	// Activation predicate instead of relying on a silently waived edge.
	Requires []string

	// Activation decides participation for a configuration. A nil
	// Activation means always active.
	Activation ActivationFunc

	// Action emits the step's artifacts.
	Action ActionFunc

	// Description is a one-line summary shown by `forge steps`.
	Description string
}

// Active reports whether the step participates for the given configuration.
func (s Step) Active(cfg *config.Config) bool {
	if s.Activation == nil {
		return true
	}
	return s.Activation(cfg)
}

// DuplicateStepError reports a second registration of an existing step ID.
type DuplicateStepError struct {
	// ID is the step identifier registered twice.
	ID string
}

func (e *DuplicateStepError) Error() string {
	return fmt.Sprintf("duplicate step registration: %s", e.ID)
}

// UnknownDependencyError reports a Requires entry that names no registered
// step. It is raised by [Registry.Validate] once the catalog is complete.
type UnknownDependencyError struct {
	// StepID is the step declaring the dependency.
	StepID string

	// DependencyID is the unregistered step it requires.
	DependencyID string
}

func (e *UnknownDependencyError) Error() string {
	return fmt.Sprintf("step %q requires unknown step %q", e.StepID, e.DependencyID)
}

// Registry is an ordered, append-only collection of steps.
//
// Registration order is preserved and used by the resolver as the final
// ordering tie-break, so a given catalog always plans identically.
type Registry struct {
	steps []Step
	index map[string]int
}

// New creates an empty [Registry].
func New() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register appends a step. It fails with [DuplicateStepError] if the ID is
// already present, and rejects steps without an ID or an Action.
func (r *Registry) Register(step Step) error {
	if step.ID == "" {
		return fmt.Errorf("step ID must not be empty")
	}
	if step.Action == nil {
		return fmt.Errorf("step %q has no action", step.ID)
	}
	if _, exists := r.index[step.ID]; exists {
		return &DuplicateStepError{ID: step.ID}
	}

	r.index[step.ID] = len(r.steps)
	r.steps = append(r.steps, step)
	return nil
}

// MustRegister registers a step and panics on error. Intended for static
// catalogs where a registration failure is a programming error.
func (r *Registry) MustRegister(step Step) {
	if err := r.Register(step); err != nil {
		panic(err)
	}
}

// All returns the steps in registration order. The returned slice is a copy;
// mutating it does not affect the registry.
func (r *Registry) All() []Step {
	out := make([]Step, len(r.steps))
	copy(out, r.steps)
	return out
}

// Lookup returns the step with the given ID.
func (r *Registry) Lookup(id string) (Step, bool) {
	i, ok := r.index[id]
	if !ok {
		return Step{}, false
	}
	return r.steps[i], true
}

// Len returns the number of registered steps.
func (r *Registry) Len() int {
	return len(r.steps)
}

// Validate checks that every Requires entry resolves to a registered step.
//
// The catalog calls Validate after registering all steps, so dependency
// existence is settled before any planning happens; whether a required step
// is also active for a given configuration is checked later by the resolver.
func (r *Registry) Validate() error {
	for _, s := range r.steps {
		for _, dep := range s.Requires {
			if _, ok := r.index[dep]; !ok {
				return &UnknownDependencyError{StepID: s.ID, DependencyID: dep}
			}
		}
	}
	return nil
}
