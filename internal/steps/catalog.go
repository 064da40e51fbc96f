// Package steps defines the built-in generation step catalog.
//
// Every step is registered as data (an ID, a category, dependency edges, an
// activation predicate, and an action closure) rather than as a type per
// step. Ordering between steps is expressed exclusively through Requires
// edges; Priority values only break ties between steps that have no
// dependency relation, keeping plans stable as the catalog grows.
//
// The emitted file bodies scaffold a small Go backend service: entry point,
// config and logging packages, storage layer, JWT auth, HTTP routes, Docker
// assets, and a test harness. Bodies are opaque to the scheduling core.
package steps

import (
	"forge/internal/registry"
)

// Catalog builds the full step registry.
//
// Steps are registered in rough execution order so that registration order
// is a sensible final tie-break, and Requires edges always point backwards.
// The registry is validated before being returned, so unknown dependency IDs
// are caught here rather than at plan time.
func Catalog() (*registry.Registry, error) {
	r := registry.New()

	for _, s := range builtinSteps() {
		if err := r.Register(s); err != nil {
			return nil, err
		}
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}

	return r, nil
}

// builtinSteps returns the catalog contents in registration order.
func builtinSteps() []registry.Step {
	return []registry.Step{
		{
			ID:          "project.manifest",
			Category:    registry.CategoryBase,
			Priority:    0,
			Description: "Module manifest, gitignore, and environment template",
			Action:      emitProjectManifest,
		},
		{
			ID:          "docs.readme",
			Category:    registry.CategoryDocs,
			Priority:    5,
			Requires:    []string{"project.manifest"},
			Description: "Project README",
			Action:      emitReadme,
		},
		{
			ID:          "config.core",
			Category:    registry.CategoryConfig,
			Priority:    10,
			Requires:    []string{"project.manifest"},
			Description: "Application settings package",
			Action:      emitConfigCore,
		},
		{
			ID:          "config.logging",
			Category:    registry.CategoryConfig,
			Priority:    11,
			Requires:    []string{"config.core"},
			Description: "Structured logging setup",
			Action:      emitLogging,
		},
		{
			ID:          "config.cors",
			Category:    registry.CategoryConfig,
			Priority:    12,
			Requires:    []string{"config.core"},
			Activation:  featureCORS,
			Description: "CORS middleware configuration",
			Action:      emitCORS,
		},
		{
			ID:          "database.connection",
			Category:    registry.CategoryDatabase,
			Priority:    20,
			Requires:    []string{"config.core"},
			Activation:  hasDatabase,
			Description: "Database connection management",
			Action:      emitDatabaseConnection,
		},
		{
			ID:          "database.postgres",
			Category:    registry.CategoryDatabase,
			Priority:    21,
			Requires:    []string{"database.connection"},
			Activation:  databaseIs(postgres),
			Description: "PostgreSQL driver wiring",
			Action:      emitPostgres,
		},
		{
			ID:          "database.mysql",
			Category:    registry.CategoryDatabase,
			Priority:    21,
			Requires:    []string{"database.connection"},
			Activation:  databaseIs(mysql),
			Description: "MySQL driver wiring",
			Action:      emitMySQL,
		},
		{
			ID:          "database.migrations",
			Category:    registry.CategoryDatabase,
			Priority:    22,
			Requires:    []string{"database.connection"},
			Activation:  hasMigrations,
			Description: "Schema migration scaffolding",
			Action:      emitMigrations,
		},
		{
			ID:          "model.user",
			Category:    registry.CategoryModel,
			Priority:    30,
			Requires:    []string{"database.connection"},
			Activation:  hasAuth,
			Description: "User model and store",
			Action:      emitUserModel,
		},
		{
			ID:          "auth.core",
			Category:    registry.CategoryAuth,
			Priority:    40,
			Requires:    []string{"model.user", "config.core"},
			Activation:  hasAuth,
			Description: "Password hashing and JWT issuing",
			Action:      emitAuthCore,
		},
		{
			ID:          "auth.refresh",
			Category:    registry.CategoryAuth,
			Priority:    41,
			Requires:    []string{"auth.core"},
			Activation:  hasAuth,
			Description: "Refresh token rotation (when enabled)",
			Action:      emitAuthRefresh,
		},
		{
			ID:          "auth.tokens",
			Category:    registry.CategoryAuth,
			Priority:    42,
			Requires:    []string{"auth.core", "database.connection"},
			Activation:  authIsComplete,
			Description: "Persistent token model and store",
			Action:      emitAuthTokens,
		},
		{
			ID:          "auth.email",
			Category:    registry.CategoryAuth,
			Priority:    43,
			Requires:    []string{"auth.core"},
			Activation:  authIsComplete,
			Description: "Email verification and password reset service",
			Action:      emitAuthEmail,
		},
		{
			ID:          "routes.api",
			Category:    registry.CategoryRoutes,
			Priority:    50,
			Requires:    []string{"auth.core"},
			Activation:  hasAuth,
			Description: "Versioned API routes",
			Action:      emitRoutes,
		},
		{
			ID:          "server.main",
			Category:    registry.CategoryBase,
			Priority:    55,
			Requires:    []string{"config.core", "config.logging"},
			Description: "Service entry point",
			Action:      emitServerMain,
		},
		{
			ID:          "deploy.docker",
			Category:    registry.CategoryDeploy,
			Priority:    60,
			Requires:    []string{"server.main"},
			Activation:  featureDocker,
			Description: "Dockerfile, compose file, and dockerignore",
			Action:      emitDocker,
		},
		{
			ID:          "test.harness",
			Category:    registry.CategoryTest,
			Priority:    70,
			Requires:    []string{"server.main"},
			Activation:  featureTesting,
			Description: "Test harness and smoke test",
			Action:      emitTestHarness,
		},
		{
			ID:          "test.auth",
			Category:    registry.CategoryTest,
			Priority:    71,
			Requires:    []string{"test.harness", "auth.core"},
			Activation:  testingWithAuth,
			Description: "Authentication flow tests",
			Action:      emitAuthTests,
		},
		{
			ID:          "tooling.dev",
			Category:    registry.CategoryTooling,
			Priority:    80,
			Requires:    []string{"project.manifest"},
			Activation:  featureDevTools,
			Description: "Linter configuration and Makefile",
			Action:      emitDevTooling,
		},
	}
}
