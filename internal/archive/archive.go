// Package archive records puzzle generation runs in SQLite or PostgreSQL.
package archive

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// schemaVersion is bumped whenever the runs schema changes shape.
const schemaVersion = 1

// Archive wraps the database connection and records generation runs.
type Archive struct {
	db      *sql.DB
	dialect Dialect
	qb      *QueryBuilder
}

// Open opens or creates the SQLite archive at the given path.
func Open(path string) (*Archive, error) {
	return OpenWithConfig(DefaultConfig(path))
}

// OpenWithConfig opens the archive described by the config,
// backed by SQLite or PostgreSQL depending on the driver.
func OpenWithConfig(cfg Config) (*Archive, error) {
	dialect := NewDialect(DialectType(cfg.Driver))

	var dsn string
	if _, ok := dialect.(*PostgresDialect); ok {
		p := cfg.Postgres
		dsn = fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
		)
	} else {
		// Ensure directory exists
		dir := filepath.Dir(cfg.SQLitePath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create archive directory: %w", err)
		}
		dsn = cfg.SQLitePath
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	if _, ok := dialect.(*PostgresDialect); ok {
		if cfg.Postgres.MaxOpenConns > 0 {
			db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
		}
		if cfg.Postgres.MaxIdleConns > 0 {
			db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
		}
		if cfg.Postgres.ConnMaxLifetime > 0 {
			db.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)
		}
	}

	a := &Archive{
		db:      db,
		dialect: dialect,
		qb:      NewQueryBuilder(dialect),
	}

	if err := a.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return a, nil
}

// Close closes the archive connection.
func (a *Archive) Close() error {
	return a.db.Close()
}

// migrate creates the archive schema if it doesn't exist.
func (a *Archive) migrate() error {
	for _, stmt := range a.dialect.InitStatements() {
		if _, err := a.db.Exec(stmt); err != nil {
			return fmt.Errorf("init statement failed: %w\nSQL: %s", err, stmt)
		}
	}

	migrations := []string{
		// Runs table
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS runs (
			id %s,
			kind TEXT NOT NULL,
			theme %s NOT NULL DEFAULT '',
			seed BIGINT NOT NULL DEFAULT 0,
			grid_cols INTEGER NOT NULL DEFAULT 0,
			grid_rows INTEGER NOT NULL DEFAULT 0,
			words_requested INTEGER NOT NULL DEFAULT 0,
			words_placed INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`, a.dialect.AutoIncrementPrimaryKey(), a.dialect.CaseInsensitiveTextType()),

		// Metadata table, a single row keyed by id = 1
		`CREATE TABLE IF NOT EXISTS archive_meta (
			id INTEGER PRIMARY KEY,
			schema_version INTEGER NOT NULL
		)`,

		// Indexes for common queries
		`CREATE INDEX IF NOT EXISTS idx_runs_kind ON runs(kind)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
	}

	for _, m := range migrations {
		if _, err := a.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	// Seed the metadata row; a duplicate key means the archive was already initialized
	seed := a.qb.Build(`INSERT INTO archive_meta (id, schema_version) VALUES (?, ?)`)
	if _, err := a.db.Exec(seed, 1, schemaVersion); err != nil && !a.dialect.IsDuplicateKeyError(err) {
		return fmt.Errorf("failed to seed archive metadata: %w", err)
	}

	return nil
}

// SchemaVersion returns the schema version recorded in the archive.
func (a *Archive) SchemaVersion() (int, error) {
	var version int
	query := a.qb.Build(`SELECT schema_version FROM archive_meta WHERE id = ?`)
	if err := a.db.QueryRow(query, 1).Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// DB returns the underlying sql.DB for advanced operations.
func (a *Archive) DB() *sql.DB {
	return a.db
}
