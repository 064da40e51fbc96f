package wizard

import (
	"forge/internal/config"
)

// DefaultProjectName is offered when the user did not pass a name argument.
const DefaultProjectName = "forge-project"

// Run walks the interactive question flow and returns a validated
// configuration snapshot.
//
// projectName seeds the name prompt; pass "" to fall back to
// [DefaultProjectName]. Authentication is only offered when a database was
// selected: auth steps depend on the persistence layer, so the wizard never
// produces a configuration that cannot plan.
func Run(d PromptDriver, projectName string) (*config.Config, error) {
	name, err := collectProjectName(d, projectName)
	if err != nil {
		return nil, err
	}

	db, err := collectDatabase(d)
	if err != nil {
		return nil, err
	}

	features, err := collectFeatures(d, db != nil)
	if err != nil {
		return nil, err
	}

	cfg := &config.Config{
		ProjectName: name,
		Database:    db,
		Features:    features,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func collectProjectName(d PromptDriver, preset string) (string, error) {
	defaultName := preset
	if defaultName == "" {
		defaultName = DefaultProjectName
	}
	name, err := d.Input("Project name:", defaultName)
	if err != nil {
		return "", err
	}
	if name == "" {
		name = defaultName
	}
	return name, nil
}

func collectDatabase(d PromptDriver) (*config.Database, error) {
	choice, err := d.Select("Database:", []string{
		"PostgreSQL (Recommended)",
		"MySQL",
		"None - Skip database",
	}, 0)
	if err != nil {
		return nil, err
	}

	var kind config.DatabaseKind
	switch choice {
	case 0:
		kind = config.DatabasePostgres
	case 1:
		kind = config.DatabaseMySQL
	default:
		return nil, nil
	}

	ormChoice, err := d.Select("Data access layer:", []string{
		"gorm (Recommended)",
		"sqlx",
	}, 0)
	if err != nil {
		return nil, err
	}
	orm := config.ORMGorm
	if ormChoice == 1 {
		orm = config.ORMSqlx
	}

	migrations, err := d.Confirm("Enable schema migrations (goose)?", true)
	if err != nil {
		return nil, err
	}

	return &config.Database{Kind: kind, ORM: orm, Migrations: migrations}, nil
}

func collectFeatures(d PromptDriver, hasDatabase bool) (config.Features, error) {
	features := config.Features{
		Auth: config.AuthConfig{Mode: config.AuthNone},
	}

	if hasDatabase {
		authChoice, err := d.Select("Authentication:", []string{
			"Complete JWT auth (Recommended)",
			"Basic JWT auth (login/register only)",
			"None - Skip authentication",
		}, 0)
		if err != nil {
			return features, err
		}

		switch authChoice {
		case 0:
			// Complete auth implies refresh tokens, email verification,
			// and password reset.
			features.Auth = config.AuthConfig{Mode: config.AuthComplete, RefreshToken: true}
		case 1:
			features.Auth = config.AuthConfig{Mode: config.AuthBasic}
		}
	}

	cors, err := d.Confirm("Enable CORS?", true)
	if err != nil {
		return features, err
	}
	features.CORS = cors

	devTools, err := d.Confirm("Include dev tools (golangci-lint + Makefile)?", true)
	if err != nil {
		return features, err
	}
	features.DevTools = devTools

	testing, err := d.Confirm("Include testing setup?", true)
	if err != nil {
		return features, err
	}
	features.Testing = testing

	docker, err := d.Confirm("Include Docker configs?", true)
	if err != nil {
		return features, err
	}
	features.Docker = docker

	return features, nil
}
