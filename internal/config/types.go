// Package config provides the project feature configuration for forge.
//
// A [Config] is an immutable snapshot of the features selected for a
// scaffolded service. It is collected once by the wizard (or loaded from the
// persisted .forge/config.yaml via [Loader]), validated once, and then passed
// read-only through planning and execution. Activation predicates and step
// actions must observe the same values for the whole invocation; nothing in
// this package mutates a loaded Config.
//
// Key types:
//   - [Config] is the root configuration snapshot
//   - [Database] groups the persistence selections
//   - [Features] holds the independent feature toggles
//   - [Loader] handles viper-based loading of the persisted file
//   - [ConfigurationError] reports a missing or invalid field
package config

import (
	"fmt"
	"regexp"
)

// DatabaseKind identifies the relational database selected for the project.
type DatabaseKind string

const (
	DatabasePostgres DatabaseKind = "postgres"
	DatabaseMySQL    DatabaseKind = "mysql"
)

// IsValid reports whether the kind is a known database.
func (k DatabaseKind) IsValid() bool {
	return k == DatabasePostgres || k == DatabaseMySQL
}

// ORM identifies the data-access layer generated for the project.
type ORM string

const (
	ORMGorm ORM = "gorm"
	ORMSqlx ORM = "sqlx"
)

// IsValid reports whether the ORM is a known choice.
func (o ORM) IsValid() bool {
	return o == ORMGorm || o == ORMSqlx
}

// AuthMode identifies the authentication feature level.
//
// AuthBasic scaffolds login/register only. AuthComplete additionally
// scaffolds refresh tokens, email verification, and password reset.
type AuthMode string

const (
	AuthNone     AuthMode = "none"
	AuthBasic    AuthMode = "basic"
	AuthComplete AuthMode = "complete"
)

// IsValid reports whether the mode is a known auth level.
func (m AuthMode) IsValid() bool {
	return m == AuthNone || m == AuthBasic || m == AuthComplete
}

// Config is the root configuration snapshot driving generation.
//
// The yaml tags define the persisted .forge/config.yaml schema; the
// mapstructure tags drive viper decoding of the same file.
type Config struct {
	// ProjectName is the name of the scaffolded service.
	ProjectName string `mapstructure:"project_name" yaml:"project_name"`

	// Database holds the persistence selections, or nil when the project
	// is generated without a database.
	Database *Database `mapstructure:"database" yaml:"database,omitempty"`

	// Features holds the independent feature toggles.
	Features Features `mapstructure:"features" yaml:"features"`

	// Metadata records when and by which forge version the configuration
	// was created. Informational only; never drives activation.
	Metadata Metadata `mapstructure:"metadata" yaml:"metadata"`
}

// Database groups the persistence selections.
type Database struct {
	// Kind is the relational database to scaffold against.
	Kind DatabaseKind `mapstructure:"kind" yaml:"kind"`

	// ORM is the data-access layer to generate.
	ORM ORM `mapstructure:"orm" yaml:"orm"`

	// Migrations enables the schema migration tooling.
	Migrations bool `mapstructure:"migrations" yaml:"migrations"`
}

// AuthConfig groups the authentication selections.
type AuthConfig struct {
	// Mode is the authentication feature level.
	Mode AuthMode `mapstructure:"mode" yaml:"mode"`

	// RefreshToken enables refresh-token support. Complete auth implies it;
	// for basic auth it stays off unless explicitly requested.
	RefreshToken bool `mapstructure:"refresh_token" yaml:"refresh_token"`
}

// Features holds the independent feature toggles.
type Features struct {
	Auth     AuthConfig `mapstructure:"auth" yaml:"auth"`
	CORS     bool       `mapstructure:"cors" yaml:"cors"`
	DevTools bool       `mapstructure:"dev_tools" yaml:"dev_tools"`
	Testing  bool       `mapstructure:"testing" yaml:"testing"`
	Docker   bool       `mapstructure:"docker" yaml:"docker"`
}

// Metadata records configuration provenance.
type Metadata struct {
	// CreatedAt is the RFC 3339 timestamp of when the wizard saved the config.
	CreatedAt string `mapstructure:"created_at" yaml:"created_at"`

	// ForgeVersion is the forge release that wrote the config.
	ForgeVersion string `mapstructure:"forge_version" yaml:"forge_version"`
}

// HasDatabase reports whether a database was selected.
func (c *Config) HasDatabase() bool {
	return c.Database != nil
}

// DatabaseKindOrNone returns the selected database kind, or "" when the
// project has no database.
func (c *Config) DatabaseKindOrNone() DatabaseKind {
	if c.Database == nil {
		return ""
	}
	return c.Database.Kind
}

// HasMigrations reports whether migration tooling was requested. Always
// false without a database.
func (c *Config) HasMigrations() bool {
	return c.Database != nil && c.Database.Migrations
}

// AuthMode returns the authentication level, treating an unset mode as none.
func (c *Config) AuthMode() AuthMode {
	if c.Features.Auth.Mode == "" {
		return AuthNone
	}
	return c.Features.Auth.Mode
}

// HasAuth reports whether any authentication is enabled.
func (c *Config) HasAuth() bool {
	return c.AuthMode() != AuthNone
}

// HasRefreshToken reports whether refresh-token support is enabled.
func (c *Config) HasRefreshToken() bool {
	return c.HasAuth() && c.Features.Auth.RefreshToken
}

// ConfigurationError reports a missing or invalid configuration field.
// It is fatal: generation surfaces it before planning, guaranteeing that
// nothing was written.
type ConfigurationError struct {
	// Field is the configuration field that failed validation.
	Field string

	// Reason describes why the field is invalid.
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// projectNamePattern matches the names we are willing to bake into module
// paths and compose service names.
var projectNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// Validate checks the snapshot for structural problems.
//
// Validate deliberately does not reject auth-without-database: that
// combination is expressed as a step dependency and surfaces at plan time
// as an unsatisfied dependency, so hand-edited config files get the same
// diagnostics as any other impossible plan.
func (c *Config) Validate() error {
	if c.ProjectName == "" {
		return &ConfigurationError{Field: "project_name", Reason: "required"}
	}
	if !projectNamePattern.MatchString(c.ProjectName) {
		return &ConfigurationError{
			Field:  "project_name",
			Reason: fmt.Sprintf("%q must start with a lowercase letter and contain only lowercase letters, digits, '-' or '_'", c.ProjectName),
		}
	}

	if c.Database != nil {
		if !c.Database.Kind.IsValid() {
			return &ConfigurationError{
				Field:  "database.kind",
				Reason: fmt.Sprintf("unknown database %q (expected %q or %q)", c.Database.Kind, DatabasePostgres, DatabaseMySQL),
			}
		}
		if !c.Database.ORM.IsValid() {
			return &ConfigurationError{
				Field:  "database.orm",
				Reason: fmt.Sprintf("unknown ORM %q (expected %q or %q)", c.Database.ORM, ORMGorm, ORMSqlx),
			}
		}
	}

	if !c.AuthMode().IsValid() {
		return &ConfigurationError{
			Field:  "features.auth.mode",
			Reason: fmt.Sprintf("unknown auth mode %q (expected %q, %q or %q)", c.Features.Auth.Mode, AuthNone, AuthBasic, AuthComplete),
		}
	}

	return nil
}

// DefaultConfig returns the configuration the wizard offers as defaults:
// PostgreSQL with gorm and migrations, complete auth with refresh tokens,
// and every toggle enabled. Used by `forge init --defaults`.
func DefaultConfig(projectName string) *Config {
	return &Config{
		ProjectName: projectName,
		Database: &Database{
			Kind:       DatabasePostgres,
			ORM:        ORMGorm,
			Migrations: true,
		},
		Features: Features{
			Auth: AuthConfig{
				Mode:         AuthComplete,
				RefreshToken: true,
			},
			CORS:     true,
			DevTools: true,
			Testing:  true,
			Docker:   true,
		},
	}
}
