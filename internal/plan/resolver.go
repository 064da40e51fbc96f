// Package plan turns a step registry and a configuration into a validated,
// deterministic execution plan.
//
// Resolution is a pure function: it never touches the artifact writer, so
// every planning failure is guaranteed to precede any filesystem mutation.
// The pipeline is: activation filter → dependency validation → cycle check →
// stable topological sort.
//
// Ordering is fully deterministic. The topological sort breaks ties by
// (priority ascending, registration order ascending), so the same catalog
// and configuration always produce the same plan.
//
// Key types:
//   - [ExecutionPlan] is the ordered list of active steps for one invocation
//   - [UnsatisfiedDependencyError] reports an active step requiring an inactive one
//   - [CyclicDependencyError] reports a dependency cycle among active steps
package plan

import (
	"fmt"
	"sort"
	"strings"

	"forge/internal/config"
	"forge/internal/registry"
)

// ExecutionPlan is a totally ordered sequence of active steps consistent
// with the partial order induced by their Requires edges. It is computed
// once per invocation and discarded afterwards.
type ExecutionPlan struct {
	// Steps are the active steps in execution order.
	Steps []registry.Step
}

// IDs returns the step IDs in plan order.
func (p *ExecutionPlan) IDs() []string {
	ids := make([]string, len(p.Steps))
	for i, s := range p.Steps {
		ids[i] = s.ID
	}
	return ids
}

// Len returns the number of planned steps.
func (p *ExecutionPlan) Len() int {
	return len(p.Steps)
}

// UnsatisfiedDependencyError reports an active step whose required step is
// not active for the current configuration.
//
// A required-but-inactive dependency is always an error: a step that can run
// without some feature must encode that in its own activation predicate
// rather than relying on the edge being silently waived.
type UnsatisfiedDependencyError struct {
	// StepID is the active step declaring the requirement.
	StepID string

	// DependencyID is the required step that is inactive.
	DependencyID string
}

func (e *UnsatisfiedDependencyError) Error() string {
	return fmt.Sprintf("step %q requires %q, which is not active for this configuration", e.StepID, e.DependencyID)
}

// CyclicDependencyError reports a dependency cycle among active steps.
type CyclicDependencyError struct {
	// Cycle lists the step IDs forming the cycle, with the first ID
	// repeated at the end.
	Cycle []string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("dependency cycle between steps: %s", strings.Join(e.Cycle, " -> "))
}

// node carries the ordering keys used for deterministic tie-breaks.
type node struct {
	step     registry.Step
	regIndex int
}

// Resolve computes the execution plan for a configuration.
//
// It filters the registry down to active steps, verifies that every
// dependency of an active step is itself active, rejects cycles, and returns
// the steps in a stable dependency-respecting order. Resolve has no side
// effects and may be called repeatedly with identical results.
func Resolve(reg *registry.Registry, cfg *config.Config) (*ExecutionPlan, error) {
	if err := reg.Validate(); err != nil {
		return nil, err
	}

	// Activation filter, preserving registration order.
	var nodes []node
	activeIdx := make(map[string]int)
	for i, s := range reg.All() {
		if !s.Active(cfg) {
			continue
		}
		activeIdx[s.ID] = len(nodes)
		nodes = append(nodes, node{step: s, regIndex: i})
	}

	// Every requirement of an active step must be active too.
	for _, n := range nodes {
		for _, dep := range n.step.Requires {
			if _, ok := activeIdx[dep]; !ok {
				return nil, &UnsatisfiedDependencyError{StepID: n.step.ID, DependencyID: dep}
			}
		}
	}

	// Edges dep -> step, restricted to active steps.
	inDegree := make([]int, len(nodes))
	dependents := make([][]int, len(nodes))
	for i, n := range nodes {
		for _, dep := range n.step.Requires {
			d := activeIdx[dep]
			dependents[d] = append(dependents[d], i)
			inDegree[i]++
		}
	}

	// Kahn's algorithm with a deterministically ordered ready set.
	ready := make([]int, 0, len(nodes))
	for i, deg := range inDegree {
		if deg == 0 {
			ready = append(ready, i)
		}
	}

	ordered := make([]registry.Step, 0, len(nodes))
	for len(ready) > 0 {
		sort.Slice(ready, func(a, b int) bool {
			na, nb := nodes[ready[a]], nodes[ready[b]]
			if na.step.Priority != nb.step.Priority {
				return na.step.Priority < nb.step.Priority
			}
			return na.regIndex < nb.regIndex
		})

		next := ready[0]
		ready = ready[1:]
		ordered = append(ordered, nodes[next].step)

		for _, dep := range dependents[next] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				ready = append(ready, dep)
			}
		}
	}

	if len(ordered) != len(nodes) {
		return nil, &CyclicDependencyError{Cycle: findCycle(nodes, activeIdx, inDegree)}
	}

	return &ExecutionPlan{Steps: ordered}, nil
}

// findCycle walks the unsorted remainder of the graph to name one concrete
// cycle for the error message. Only called when Kahn's algorithm left nodes
// behind, so a cycle is guaranteed to exist among them.
func findCycle(nodes []node, activeIdx map[string]int, inDegree []int) []string {
	// Start from any node still holding unresolved dependencies and follow
	// requirement edges within the remainder until an ID repeats.
	remaining := make(map[int]bool)
	for i, deg := range inDegree {
		if deg > 0 {
			remaining[i] = true
		}
	}

	for start := 0; start < len(nodes); start++ {
		if !remaining[start] {
			continue
		}
		seen := make(map[int]int) // node index -> position in path
		path := []string{}
		cur := start
		for {
			if pos, ok := seen[cur]; ok {
				cycle := append([]string{}, path[pos:]...)
				cycle = append(cycle, path[pos])
				sortCycleStart(cycle)
				return cycle
			}
			seen[cur] = len(path)
			path = append(path, nodes[cur].step.ID)

			next := -1
			for _, dep := range nodes[cur].step.Requires {
				d := activeIdx[dep]
				if remaining[d] {
					next = d
					break
				}
			}
			if next == -1 {
				break
			}
			cur = next
		}
	}

	return nil
}

// sortCycleStart rotates the cycle so it starts at its lexicographically
// smallest ID, keeping error messages stable across runs.
func sortCycleStart(cycle []string) {
	if len(cycle) < 2 {
		return
	}
	body := cycle[:len(cycle)-1]
	min := 0
	for i, id := range body {
		if id < body[min] {
			min = i
		}
	}
	rotated := append(append([]string{}, body[min:]...), body[:min]...)
	copy(cycle, rotated)
	cycle[len(cycle)-1] = rotated[0]
}
