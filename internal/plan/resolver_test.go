package plan

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forge/internal/artifact"
	"forge/internal/config"
	"forge/internal/registry"
)

func noop(cfg *config.Config, w artifact.Writer) error { return nil }

func active(cfg *config.Config) bool { return true }

func inactive(cfg *config.Config) bool { return false }

func testConfig() *config.Config {
	return &config.Config{ProjectName: "demo"}
}

func mustRegistry(t *testing.T, steps ...registry.Step) *registry.Registry {
	t.Helper()
	r := registry.New()
	for _, s := range steps {
		if s.Action == nil {
			s.Action = noop
		}
		require.NoError(t, r.Register(s))
	}
	return r
}

func TestResolve_OrdersByDependencies(t *testing.T) {
	r := mustRegistry(t,
		registry.Step{ID: "routes", Requires: []string{"auth"}},
		registry.Step{ID: "auth", Requires: []string{"database"}},
		registry.Step{ID: "database", Requires: []string{"base"}},
		registry.Step{ID: "base"},
	)

	p, err := Resolve(r, testConfig())
	require.NoError(t, err)

	assert.Equal(t, []string{"base", "database", "auth", "routes"}, p.IDs())
}

func TestResolve_TieBreakByPriorityThenRegistration(t *testing.T) {
	r := mustRegistry(t,
		registry.Step{ID: "x", Priority: 2},
		registry.Step{ID: "y", Priority: 1},
		registry.Step{ID: "z", Priority: 1},
	)

	p, err := Resolve(r, testConfig())
	require.NoError(t, err)

	// y and z share a priority; registration order decides between them.
	assert.Equal(t, []string{"y", "z", "x"}, p.IDs())
}

func TestResolve_Deterministic(t *testing.T) {
	r := mustRegistry(t,
		registry.Step{ID: "base"},
		registry.Step{ID: "db", Requires: []string{"base"}},
		registry.Step{ID: "logging", Priority: 5, Requires: []string{"base"}},
		registry.Step{ID: "auth", Requires: []string{"db"}},
		registry.Step{ID: "docs", Priority: 5},
		registry.Step{ID: "deploy", Requires: []string{"auth", "logging"}},
	)

	first, err := Resolve(r, testConfig())
	require.NoError(t, err)

	for i := 0; i < 25; i++ {
		again, err := Resolve(r, testConfig())
		require.NoError(t, err)
		if diff := cmp.Diff(first.IDs(), again.IDs()); diff != "" {
			t.Fatalf("plan ordering changed between runs (-first +again):\n%s", diff)
		}
	}
}

func TestResolve_FiltersInactiveSteps(t *testing.T) {
	r := mustRegistry(t,
		registry.Step{ID: "on", Activation: active},
		registry.Step{ID: "off", Activation: inactive},
	)

	p, err := Resolve(r, testConfig())
	require.NoError(t, err)

	assert.Equal(t, []string{"on"}, p.IDs())
}

func TestResolve_ActivationSoundness(t *testing.T) {
	cfg := &config.Config{
		ProjectName: "demo",
		Features:    config.Features{Docker: true},
	}

	r := mustRegistry(t,
		registry.Step{ID: "always"},
		registry.Step{ID: "docker", Activation: func(c *config.Config) bool { return c.Features.Docker }},
		registry.Step{ID: "testing", Activation: func(c *config.Config) bool { return c.Features.Testing }},
	)

	p, err := Resolve(r, cfg)
	require.NoError(t, err)

	for _, s := range p.Steps {
		assert.True(t, s.Active(cfg), "plan contains inactive step %q", s.ID)
	}
	assert.NotContains(t, p.IDs(), "testing")
}

func TestResolve_UnsatisfiedDependency(t *testing.T) {
	r := mustRegistry(t,
		registry.Step{ID: "dep", Activation: inactive},
		registry.Step{ID: "user", Requires: []string{"dep"}, Activation: active},
	)

	_, err := Resolve(r, testConfig())

	var unsat *UnsatisfiedDependencyError
	require.ErrorAs(t, err, &unsat)
	assert.Equal(t, "user", unsat.StepID)
	assert.Equal(t, "dep", unsat.DependencyID)
}

func TestResolve_CycleRejected(t *testing.T) {
	r := mustRegistry(t,
		registry.Step{ID: "a", Requires: []string{"b"}},
		registry.Step{ID: "b", Requires: []string{"a"}},
	)

	_, err := Resolve(r, testConfig())

	var cyc *CyclicDependencyError
	require.ErrorAs(t, err, &cyc)
	assert.Equal(t, []string{"a", "b", "a"}, cyc.Cycle)
}

func TestResolve_LongerCycleRejected(t *testing.T) {
	r := mustRegistry(t,
		registry.Step{ID: "base"},
		registry.Step{ID: "a", Requires: []string{"c", "base"}},
		registry.Step{ID: "b", Requires: []string{"a"}},
		registry.Step{ID: "c", Requires: []string{"b"}},
	)

	_, err := Resolve(r, testConfig())

	var cyc *CyclicDependencyError
	require.ErrorAs(t, err, &cyc)
	// The cycle starts at its smallest ID and closes on itself.
	assert.Equal(t, "a", cyc.Cycle[0])
	assert.Equal(t, "a", cyc.Cycle[len(cyc.Cycle)-1])
	assert.Len(t, cyc.Cycle, 4)
}

func TestResolve_UnknownDependencySurfaces(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.Register(registry.Step{ID: "s", Requires: []string{"ghost"}, Action: noop}))

	_, err := Resolve(r, testConfig())

	var unknown *registry.UnknownDependencyError
	assert.ErrorAs(t, err, &unknown)
}

func TestResolve_EveryStepAfterItsDependencies(t *testing.T) {
	r := mustRegistry(t,
		registry.Step{ID: "base"},
		registry.Step{ID: "mid1", Requires: []string{"base"}},
		registry.Step{ID: "mid2", Requires: []string{"base"}, Priority: -1},
		registry.Step{ID: "top", Requires: []string{"mid1", "mid2"}},
	)

	p, err := Resolve(r, testConfig())
	require.NoError(t, err)

	pos := make(map[string]int)
	for i, id := range p.IDs() {
		pos[id] = i
	}
	for _, s := range p.Steps {
		for _, dep := range s.Requires {
			assert.Less(t, pos[dep], pos[s.ID], "%s must run after %s", s.ID, dep)
		}
	}
}
