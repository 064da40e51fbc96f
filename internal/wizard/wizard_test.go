package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forge/internal/config"
)

// fakeDriver replays scripted answers in prompt order.
type fakeDriver struct {
	t        *testing.T
	inputs   []string
	selects  []int
	confirms []bool

	asked []string
}

func (d *fakeDriver) Input(message, defaultValue string) (string, error) {
	d.asked = append(d.asked, message)
	if len(d.inputs) == 0 {
		return defaultValue, nil
	}
	answer := d.inputs[0]
	d.inputs = d.inputs[1:]
	return answer, nil
}

func (d *fakeDriver) Select(message string, options []string, defaultIndex int) (int, error) {
	d.asked = append(d.asked, message)
	require.NotEmpty(d.t, d.selects, "unexpected select prompt: %s", message)
	answer := d.selects[0]
	d.selects = d.selects[1:]
	return answer, nil
}

func (d *fakeDriver) Confirm(message string, defaultValue bool) (bool, error) {
	d.asked = append(d.asked, message)
	if len(d.confirms) == 0 {
		return defaultValue, nil
	}
	answer := d.confirms[0]
	d.confirms = d.confirms[1:]
	return answer, nil
}

func TestRun_FullSelection(t *testing.T) {
	d := &fakeDriver{
		t:        t,
		inputs:   []string{"my-api"},
		selects:  []int{0, 0, 0},          // postgres, gorm, complete auth
		confirms: []bool{true, true, true, true, true}, // migrations + four toggles
	}

	cfg, err := Run(d, "")
	require.NoError(t, err)

	assert.Equal(t, "my-api", cfg.ProjectName)
	require.NotNil(t, cfg.Database)
	assert.Equal(t, config.DatabasePostgres, cfg.Database.Kind)
	assert.Equal(t, config.ORMGorm, cfg.Database.ORM)
	assert.True(t, cfg.Database.Migrations)
	assert.Equal(t, config.AuthComplete, cfg.AuthMode())
	assert.True(t, cfg.HasRefreshToken(), "complete auth implies refresh tokens")
	assert.True(t, cfg.Features.Docker)
}

func TestRun_NoDatabaseSkipsAuthPrompt(t *testing.T) {
	d := &fakeDriver{
		t:       t,
		selects: []int{2}, // database: none, so no auth select scripted
	}

	cfg, err := Run(d, "bare-api")
	require.NoError(t, err)

	assert.Nil(t, cfg.Database)
	assert.Equal(t, config.AuthNone, cfg.AuthMode())
	assert.NotContains(t, d.asked, "Authentication:")
}

func TestRun_BasicAuthHasNoRefreshToken(t *testing.T) {
	d := &fakeDriver{
		t:       t,
		selects: []int{1, 1, 1}, // mysql, sqlx, basic auth
	}

	cfg, err := Run(d, "svc")
	require.NoError(t, err)

	assert.Equal(t, config.DatabaseMySQL, cfg.Database.Kind)
	assert.Equal(t, config.ORMSqlx, cfg.Database.ORM)
	assert.Equal(t, config.AuthBasic, cfg.AuthMode())
	assert.False(t, cfg.HasRefreshToken())
}

func TestRun_EmptyNameFallsBackToDefault(t *testing.T) {
	d := &fakeDriver{
		t:       t,
		inputs:  []string{""},
		selects: []int{2},
	}

	cfg, err := Run(d, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultProjectName, cfg.ProjectName)
}

func TestRun_InvalidNameRejected(t *testing.T) {
	d := &fakeDriver{
		t:       t,
		inputs:  []string{"Bad Name"},
		selects: []int{2},
	}

	_, err := Run(d, "")

	var cfgErr *config.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}
