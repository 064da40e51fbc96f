package steps

import (
	"bytes"
	"fmt"
	"text/template"

	"forge/internal/artifact"
	"forge/internal/config"
)

// templateData is the view rendered into artifact bodies.
type templateData struct {
	Name         string
	DBKind       config.DatabaseKind
	ORM          config.ORM
	AuthMode     config.AuthMode
	HasDatabase  bool
	HasAuth      bool
	CompleteAuth bool
	RefreshToken bool
	Migrations   bool
	CORS         bool
	Docker       bool
	Testing      bool
}

func newTemplateData(cfg *config.Config) templateData {
	d := templateData{
		Name:         cfg.ProjectName,
		AuthMode:     cfg.AuthMode(),
		HasDatabase:  cfg.HasDatabase(),
		HasAuth:      cfg.HasAuth(),
		CompleteAuth: cfg.AuthMode() == config.AuthComplete,
		RefreshToken: cfg.HasRefreshToken(),
		Migrations:   cfg.HasMigrations(),
		CORS:         cfg.Features.CORS,
		Docker:       cfg.Features.Docker,
		Testing:      cfg.Features.Testing,
	}
	if cfg.Database != nil {
		d.DBKind = cfg.Database.Kind
		d.ORM = cfg.Database.ORM
	}
	return d
}

// emit renders a template body for the configuration and hands it to the
// writer. The path is rendered too, so catalog entries can place artifacts
// under the project name (cmd/{{.Name}}/main.go). Templates are parsed per
// call; bodies are small and generation is a one-shot CLI run, so there is
// nothing worth caching.
func emit(w artifact.Writer, cfg *config.Config, relPath, body string) error {
	data := newTemplateData(cfg)

	path, err := render(relPath, relPath, data)
	if err != nil {
		return err
	}
	content, err := render(relPath, body, data)
	if err != nil {
		return err
	}

	if _, err := w.Write(path, []byte(content), false); err != nil {
		return err
	}
	return nil
}

func render(name, body string, data templateData) (string, error) {
	tmpl, err := template.New(name).Parse(body)
	if err != nil {
		return "", fmt.Errorf("invalid template for %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}

// emitAll renders a set of path → template pairs in the given order.
func emitAll(w artifact.Writer, cfg *config.Config, files []file) error {
	for _, f := range files {
		if err := emit(w, cfg, f.path, f.body); err != nil {
			return err
		}
	}
	return nil
}

// file pairs an artifact path with its template body.
type file struct {
	path string
	body string
}
