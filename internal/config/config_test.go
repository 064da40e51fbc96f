package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantField string
	}{
		{
			name:      "missing project name",
			cfg:       Config{},
			wantField: "project_name",
		},
		{
			name:      "project name with invalid characters",
			cfg:       Config{ProjectName: "My Project!"},
			wantField: "project_name",
		},
		{
			name: "unknown database kind",
			cfg: Config{
				ProjectName: "demo",
				Database:    &Database{Kind: "oracle", ORM: ORMGorm},
			},
			wantField: "database.kind",
		},
		{
			name: "unknown orm",
			cfg: Config{
				ProjectName: "demo",
				Database:    &Database{Kind: DatabasePostgres, ORM: "ent"},
			},
			wantField: "database.orm",
		},
		{
			name: "unknown auth mode",
			cfg: Config{
				ProjectName: "demo",
				Features:    Features{Auth: AuthConfig{Mode: "oauth"}},
			},
			wantField: "features.auth.mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()

			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.wantField, cfgErr.Field)
		})
	}
}

func TestValidate_OK(t *testing.T) {
	cfg := Config{
		ProjectName: "my-service",
		Database:    &Database{Kind: DatabaseMySQL, ORM: ORMSqlx, Migrations: true},
		Features: Features{
			Auth: AuthConfig{Mode: AuthBasic},
			CORS: true,
		},
	}
	assert.NoError(t, cfg.Validate())
}

func TestValidate_AuthWithoutDatabaseIsAConfigLevelPass(t *testing.T) {
	// The impossible combination surfaces at plan time as an unsatisfied
	// dependency, not here.
	cfg := Config{
		ProjectName: "demo",
		Features:    Features{Auth: AuthConfig{Mode: AuthComplete}},
	}
	assert.NoError(t, cfg.Validate())
}

func TestAccessors(t *testing.T) {
	none := Config{ProjectName: "bare"}
	assert.False(t, none.HasDatabase())
	assert.False(t, none.HasAuth())
	assert.False(t, none.HasMigrations())
	assert.False(t, none.HasRefreshToken())
	assert.Equal(t, AuthNone, none.AuthMode())
	assert.Equal(t, DatabaseKind(""), none.DatabaseKindOrNone())

	full := DefaultConfig("demo")
	assert.True(t, full.HasDatabase())
	assert.True(t, full.HasAuth())
	assert.True(t, full.HasMigrations())
	assert.True(t, full.HasRefreshToken())
	assert.Equal(t, AuthComplete, full.AuthMode())
	assert.Equal(t, DatabasePostgres, full.DatabaseKindOrNone())
}

func TestDefaultConfig_Valid(t *testing.T) {
	require.NoError(t, DefaultConfig("demo").Validate())
}

func TestLoader_LoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	content := `
project_name: sample-api
database:
  kind: mysql
  orm: sqlx
  migrations: true
features:
  auth:
    mode: basic
  cors: true
  testing: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := NewLoader().LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "sample-api", cfg.ProjectName)
	require.NotNil(t, cfg.Database)
	assert.Equal(t, DatabaseMySQL, cfg.Database.Kind)
	assert.Equal(t, ORMSqlx, cfg.Database.ORM)
	assert.True(t, cfg.Database.Migrations)
	assert.Equal(t, AuthBasic, cfg.AuthMode())
	assert.True(t, cfg.Features.CORS)
	assert.False(t, cfg.Features.Docker)
}

func TestLoader_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	content := `
project_name: sample-api
features:
  auth:
    mode: basic
  docker: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	t.Setenv("FORGE_PROJECT_NAME", "overridden")
	t.Setenv("FORGE_FEATURES_DOCKER", "true")
	t.Setenv("FORGE_FEATURES_AUTH_MODE", "none")

	cfg, err := NewLoader().LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "overridden", cfg.ProjectName)
	assert.True(t, cfg.Features.Docker, "nested toggle env override")
	assert.Equal(t, AuthNone, cfg.AuthMode())
}

func TestLoader_InvalidConfigRejected(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("project_name: \"\"\n"), 0644))

	_, err := NewLoader().LoadFromFile(path)

	var cfgErr *ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := NewLoader().Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "forge init")
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	projectDir := t.TempDir()
	cfg := DefaultConfig("roundtrip")

	require.NoError(t, Save(cfg, projectDir, "1.2.3"))

	// The original snapshot is not mutated by stamping.
	assert.Empty(t, cfg.Metadata.CreatedAt)

	loaded, err := NewLoader().Load(projectDir)
	require.NoError(t, err)

	assert.Equal(t, cfg.ProjectName, loaded.ProjectName)
	assert.Equal(t, cfg.Database, loaded.Database)
	assert.Equal(t, cfg.Features, loaded.Features)
	assert.Equal(t, "1.2.3", loaded.Metadata.ForgeVersion)
	assert.NotEmpty(t, loaded.Metadata.CreatedAt)
}

func TestSave_RejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	err := Save(&Config{}, dir, "1.0.0")

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))

	// Nothing persisted.
	_, statErr := os.Stat(filepath.Join(dir, ConfigDirName))
	assert.True(t, os.IsNotExist(statErr))
}
