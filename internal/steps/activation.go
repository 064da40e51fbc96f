package steps

import (
	"forge/internal/config"
	"forge/internal/registry"
)

// Shorthand aliases; the catalog table reads better without the package
// qualifiers on every row.
const (
	postgres = config.DatabasePostgres
	mysql    = config.DatabaseMySQL
)

func hasDatabase(cfg *config.Config) bool { return cfg.HasDatabase() }

func hasMigrations(cfg *config.Config) bool { return cfg.HasMigrations() }

func hasAuth(cfg *config.Config) bool { return cfg.HasAuth() }

func authIsComplete(cfg *config.Config) bool { return cfg.AuthMode() == config.AuthComplete }

func featureCORS(cfg *config.Config) bool { return cfg.Features.CORS }

func featureDocker(cfg *config.Config) bool { return cfg.Features.Docker }

func featureTesting(cfg *config.Config) bool { return cfg.Features.Testing }

func featureDevTools(cfg *config.Config) bool { return cfg.Features.DevTools }

func testingWithAuth(cfg *config.Config) bool { return cfg.Features.Testing && cfg.HasAuth() }

// databaseIs builds a predicate matching one database kind.
func databaseIs(kind config.DatabaseKind) registry.ActivationFunc {
	return func(cfg *config.Config) bool {
		return cfg.DatabaseKindOrNone() == kind
	}
}
