package steps

import (
	"forge/internal/artifact"
	"forge/internal/config"
)

func emitDocker(cfg *config.Config, w artifact.Writer) error {
	return emitAll(w, cfg, []file{
		{"Dockerfile", tmplDockerfile},
		{"docker-compose.yml", tmplCompose},
		{".dockerignore", tmplDockerignore},
	})
}

func emitDevTooling(cfg *config.Config, w artifact.Writer) error {
	return emitAll(w, cfg, []file{
		{".golangci.yml", tmplGolangci},
		{"Makefile", tmplMakefile},
	})
}

const tmplDockerfile = `FROM golang:1.25-alpine AS build
WORKDIR /src
COPY go.mod ./
RUN go mod download
COPY . .
RUN CGO_ENABLED=0 go build -o /out/{{.Name}} ./cmd/{{.Name}}

FROM alpine:3.20
COPY --from=build /out/{{.Name}} /usr/local/bin/{{.Name}}
EXPOSE 8080
ENTRYPOINT ["{{.Name}}"]
`

const tmplCompose = `services:
  {{.Name}}:
    build: .
    ports:
      - "8080:8080"
    env_file: .env
{{- if .HasDatabase}}
    depends_on:
      - db

  db:
{{- if eq .DBKind "postgres"}}
    image: postgres:17-alpine
    environment:
      POSTGRES_DB: {{.Name}}
      POSTGRES_PASSWORD: {{.Name}}
    ports:
      - "5432:5432"
{{- else}}
    image: mysql:8.4
    environment:
      MYSQL_DATABASE: {{.Name}}
      MYSQL_ROOT_PASSWORD: {{.Name}}
    ports:
      - "3306:3306"
{{- end}}
{{- end}}
`

const tmplDockerignore = `.git
.forge
bin/
*.md
`

const tmplGolangci = `run:
  timeout: 3m

linters:
  enable:
    - govet
    - staticcheck
    - errcheck
    - ineffassign
    - misspell
`

const tmplMakefile = `.PHONY: build lint test run

build:
	go build -o bin/{{.Name}} ./cmd/{{.Name}}

lint:
	golangci-lint run

test:
	go test ./...

run:
	go run ./cmd/{{.Name}}
`
