package engine

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forge/internal/artifact"
	"forge/internal/config"
	"forge/internal/plan"
	"forge/internal/registry"
)

func testConfig() *config.Config {
	return &config.Config{ProjectName: "demo"}
}

// writeStep emits one artifact named after the step.
func writeStep(id string, requires ...string) registry.Step {
	return registry.Step{
		ID:       id,
		Requires: requires,
		Action: func(cfg *config.Config, w artifact.Writer) error {
			_, err := w.Write(id+".txt", []byte(id), false)
			return err
		},
	}
}

func mustPlan(t *testing.T, steps ...registry.Step) *plan.ExecutionPlan {
	t.Helper()
	r := registry.New()
	for _, s := range steps {
		require.NoError(t, r.Register(s))
	}
	p, err := plan.Resolve(r, testConfig())
	require.NoError(t, err)
	return p
}

func TestExecute_AllSucceed(t *testing.T) {
	p := mustPlan(t,
		writeStep("one"),
		writeStep("two", "one"),
		writeStep("three", "two"),
	)

	rec := artifact.NewRecorder()
	report, err := New(Options{}).Execute(p, testConfig(), rec)

	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.Equal(t, []string{"one", "two", "three"}, report.Succeeded())
	assert.Equal(t, []string{"one.txt", "two.txt", "three.txt"}, rec.Writes)
}

func TestExecute_SelfGatedSkip(t *testing.T) {
	skipping := registry.Step{
		ID: "gated",
		Action: func(cfg *config.Config, w artifact.Writer) error {
			return registry.ErrSkipped
		},
	}

	p := mustPlan(t, writeStep("one"), skipping)
	rec := artifact.NewRecorder()
	report, err := New(Options{}).Execute(p, testConfig(), rec)

	require.NoError(t, err)
	assert.True(t, report.OK(), "a self-gated skip is not a failure")
	assert.Equal(t, []string{"gated"}, report.Skipped())
	assert.Equal(t, []string{"one.txt"}, rec.Writes)
}

func TestExecute_ConflictIsRecoverable(t *testing.T) {
	p := mustPlan(t,
		writeStep("base"),
		writeStep("conflicted", "base"),
		writeStep("dependent", "conflicted"),
		writeStep("independent", "base"),
	)

	rec := artifact.NewRecorder()
	rec.Existing["conflicted.txt"] = true

	report, err := New(Options{}).Execute(p, testConfig(), rec)

	// Recoverable failures do not abort the run.
	require.NoError(t, err)
	assert.False(t, report.OK())

	assert.Equal(t, []string{"conflicted"}, report.Failed())
	assert.Equal(t, []string{"dependent"}, report.Skipped())
	assert.Contains(t, report.Succeeded(), "independent")

	// The step blocked by the failure names its blocker.
	for _, res := range report.Results {
		if res.ID == "dependent" {
			assert.Contains(t, res.Reason, "conflicted")
		}
	}
}

func TestExecute_TransitiveBlockingAfterFailure(t *testing.T) {
	p := mustPlan(t,
		writeStep("base"),
		writeStep("failing", "base"),
		writeStep("child", "failing"),
		writeStep("grandchild", "child"),
	)

	rec := artifact.NewRecorder()
	rec.Existing["failing.txt"] = true

	report, err := New(Options{}).Execute(p, testConfig(), rec)

	require.NoError(t, err)
	assert.Equal(t, []string{"child", "grandchild"}, report.Skipped())

	// Both skips trace back to the root failure.
	for _, res := range report.Results {
		if res.Outcome == OutcomeSkipped {
			assert.Contains(t, res.Reason, "failing")
		}
	}
}

func TestExecute_StructuralFailureAborts(t *testing.T) {
	boom := errors.New("boom")
	failing := registry.Step{
		ID:       "failing",
		Requires: []string{"one"},
		Action: func(cfg *config.Config, w artifact.Writer) error {
			return boom
		},
	}

	p := mustPlan(t, writeStep("one"), failing, writeStep("never", "one"))
	rec := artifact.NewRecorder()

	report, err := New(Options{}).Execute(p, testConfig(), rec)

	var stepErr *StepExecutionError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "failing", stepErr.StepID)
	assert.ErrorIs(t, err, boom)

	require.NotNil(t, report)
	assert.NotNil(t, report.Aborted)
	assert.False(t, report.OK())
	assert.Equal(t, []string{"one"}, report.Succeeded())
	assert.Equal(t, []string{"never"}, report.Skipped())

	// No rollback: the successful write stays.
	assert.Equal(t, []string{"one.txt"}, rec.Writes)
}

func TestExecute_IdempotentWithOverwrite(t *testing.T) {
	steps := []registry.Step{
		writeStep("one"),
		writeStep("two", "one"),
	}

	run := func(rec *artifact.Recorder) *Report {
		p := mustPlan(t, steps...)
		report, err := New(Options{Overwrite: true}).Execute(p, testConfig(), rec)
		require.NoError(t, err)
		return report
	}

	rec := artifact.NewRecorder()
	first := run(rec)
	firstFiles := map[string]string{}
	for k, v := range rec.Files {
		firstFiles[k] = string(v)
	}

	second := run(rec)
	secondFiles := map[string]string{}
	for k, v := range rec.Files {
		secondFiles[k] = string(v)
	}

	assert.True(t, first.OK() && second.OK())
	if diff := cmp.Diff(firstFiles, secondFiles); diff != "" {
		t.Errorf("artifacts changed between runs (-first +second):\n%s", diff)
	}
}

func TestExecute_ProgressCallback(t *testing.T) {
	p := mustPlan(t, writeStep("one"), writeStep("two", "one"))

	var seen []string
	opts := Options{
		OnStep: func(index, total int, id string) {
			seen = append(seen, fmt.Sprintf("%d/%d %s", index, total, id))
		},
	}

	_, err := New(opts).Execute(p, testConfig(), artifact.NewRecorder())
	require.NoError(t, err)
	assert.Equal(t, []string{"1/2 one", "2/2 two"}, seen)
}
