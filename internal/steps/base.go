package steps

import (
	"forge/internal/artifact"
	"forge/internal/config"
)

func emitProjectManifest(cfg *config.Config, w artifact.Writer) error {
	return emitAll(w, cfg, []file{
		{"go.mod", tmplGoMod},
		{".gitignore", tmplGitignore},
		{".env.example", tmplEnvExample},
	})
}

func emitReadme(cfg *config.Config, w artifact.Writer) error {
	return emit(w, cfg, "README.md", tmplReadme)
}

func emitConfigCore(cfg *config.Config, w artifact.Writer) error {
	return emit(w, cfg, "internal/settings/settings.go", tmplSettings)
}

func emitLogging(cfg *config.Config, w artifact.Writer) error {
	return emit(w, cfg, "internal/logging/logging.go", tmplLogging)
}

func emitCORS(cfg *config.Config, w artifact.Writer) error {
	return emit(w, cfg, "internal/middleware/cors.go", tmplCORS)
}

func emitServerMain(cfg *config.Config, w artifact.Writer) error {
	return emit(w, cfg, "cmd/{{.Name}}/main.go", tmplServerMain)
}

const tmplGoMod = `module {{.Name}}

go 1.25
`

const tmplGitignore = `# Binaries
/bin/
{{.Name}}

# Environment
.env

# Editor state
.idea/
.vscode/
`

const tmplEnvExample = `# {{.Name}} environment
APP_ENV=development
HTTP_ADDR=:8080
{{- if .HasDatabase}}
DATABASE_URL=
{{- end}}
{{- if .HasAuth}}
JWT_SECRET=change-me
{{- end}}
{{- if .CompleteAuth}}
SMTP_HOST=
SMTP_PORT=587
SMTP_FROM=no-reply@{{.Name}}.local
{{- end}}
`

const tmplReadme = `# {{.Name}}

Backend service scaffolded by forge.

## Features
{{- if .HasDatabase}}
- {{.DBKind}} persistence via {{.ORM}}
{{- end}}
{{- if .HasAuth}}
- JWT authentication ({{.AuthMode}})
{{- end}}
{{- if .CORS}}
- CORS middleware
{{- end}}
{{- if .Docker}}
- Docker deployment
{{- end}}

## Running

    go run ./cmd/{{.Name}}
`

const tmplSettings = `package settings

import (
	"os"
)

// Settings holds runtime configuration read from the environment.
type Settings struct {
	Env      string
	HTTPAddr string
{{- if .HasDatabase}}
	DatabaseURL string
{{- end}}
{{- if .HasAuth}}
	JWTSecret string
{{- end}}
}

// Load reads settings from the environment, applying defaults.
func Load() Settings {
	return Settings{
		Env:      getenv("APP_ENV", "development"),
		HTTPAddr: getenv("HTTP_ADDR", ":8080"),
{{- if .HasDatabase}}
		DatabaseURL: os.Getenv("DATABASE_URL"),
{{- end}}
{{- if .HasAuth}}
		JWTSecret: os.Getenv("JWT_SECRET"),
{{- end}}
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
`

const tmplLogging = `package logging

import (
	"log/slog"
	"os"
)

// New builds the service logger. Development environments get text output;
// everything else logs JSON.
func New(env string) *slog.Logger {
	if env == "development" {
		return slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, nil))
}
`

const tmplCORS = `package middleware

import "net/http"

// CORS applies permissive cross-origin headers. Tighten AllowedOrigin before
// exposing the service publicly.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("Access-Control-Allow-Origin", "*")
		rw.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		rw.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		if r.Method == http.MethodOptions {
			rw.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(rw, r)
	})
}
`

const tmplServerMain = `package main

import (
	"net/http"

	"{{.Name}}/internal/logging"
	"{{.Name}}/internal/settings"
{{- if .HasDatabase}}
	"{{.Name}}/internal/storage"
{{- end}}
{{- if .HasAuth}}
	"{{.Name}}/internal/routes"
{{- end}}
{{- if .CORS}}
	"{{.Name}}/internal/middleware"
{{- end}}
)

func main() {
	cfg := settings.Load()
	log := logging.New(cfg.Env)

{{- if .HasDatabase}}
	db, err := storage.Open(cfg.DatabaseURL)
	if err != nil {
		log.Error("database connection failed", "error", err)
		return
	}
	defer db.Close()
{{- end}}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(rw http.ResponseWriter, _ *http.Request) {
		rw.WriteHeader(http.StatusOK)
	})
{{- if .HasAuth}}
	routes.Mount(mux, db, cfg)
{{- end}}

	var handler http.Handler = mux
{{- if .CORS}}
	handler = middleware.CORS(handler)
{{- end}}

	log.Info("listening", "addr", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, handler); err != nil {
		log.Error("server stopped", "error", err)
	}
}
`
