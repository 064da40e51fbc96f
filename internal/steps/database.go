package steps

import (
	"forge/internal/artifact"
	"forge/internal/config"
)

func emitDatabaseConnection(cfg *config.Config, w artifact.Writer) error {
	return emit(w, cfg, "internal/storage/storage.go", tmplStorage)
}

func emitPostgres(cfg *config.Config, w artifact.Writer) error {
	return emit(w, cfg, "internal/storage/postgres.go", tmplPostgres)
}

func emitMySQL(cfg *config.Config, w artifact.Writer) error {
	return emit(w, cfg, "internal/storage/mysql.go", tmplMySQL)
}

func emitMigrations(cfg *config.Config, w artifact.Writer) error {
	return emitAll(w, cfg, []file{
		{"migrations/README.md", tmplMigrationsReadme},
		{"migrations/0001_init.sql", tmplMigrationInit},
	})
}

const tmplStorage = `package storage

import (
	"database/sql"
	"fmt"
)

// DB wraps the service database handle.
type DB struct {
	conn *sql.DB
}

// Open connects to the configured {{.DBKind}} database and verifies the
// connection with a ping.
func Open(url string) (*DB, error) {
	if url == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	conn, err := sql.Open(driverName, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Close releases the underlying pool.
func (d *DB) Close() error {
	return d.conn.Close()
}
`

const tmplPostgres = `package storage

// driverName selects the PostgreSQL driver. Blank-import the driver in the
// service entry point: _ "github.com/jackc/pgx/v5/stdlib".
const driverName = "pgx"

// DefaultPort is the conventional PostgreSQL port, used by the compose file.
const DefaultPort = 5432
`

const tmplMySQL = `package storage

// driverName selects the MySQL driver. Blank-import the driver in the
// service entry point: _ "github.com/go-sql-driver/mysql".
const driverName = "mysql"

// DefaultPort is the conventional MySQL port, used by the compose file.
const DefaultPort = 3306
`

const tmplMigrationsReadme = `# Migrations

Schema migrations for {{.Name}}, applied in filename order with goose:

    goose -dir migrations {{.DBKind}} "$DATABASE_URL" up
`

const tmplMigrationInit = `-- +goose Up
{{- if .HasAuth}}
CREATE TABLE users (
    id          BIGINT PRIMARY KEY,
    email       VARCHAR(255) NOT NULL UNIQUE,
    password    VARCHAR(255) NOT NULL,
    created_at  TIMESTAMP NOT NULL
);
{{- if .CompleteAuth}}

CREATE TABLE tokens (
    id          BIGINT PRIMARY KEY,
    user_id     BIGINT NOT NULL REFERENCES users (id),
    kind        VARCHAR(32) NOT NULL,
    expires_at  TIMESTAMP NOT NULL
);
{{- end}}
{{- else}}
-- Initial schema goes here.
{{- end}}

-- +goose Down
{{- if .CompleteAuth}}
DROP TABLE tokens;
{{- end}}
{{- if .HasAuth}}
DROP TABLE users;
{{- end}}
`
