// migrate-archive migrates the puzzle run archive from SQLite to
// PostgreSQL.
//
// Usage:
//
//	go run ./cmd/migrate-archive \
//	    -sqlite data/puzzlegen.db \
//	    -pg-host localhost \
//	    -pg-port 5432 \
//	    -pg-user puzzlegen \
//	    -pg-password puzzlegen \
//	    -pg-database puzzlegen
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/sundaypages/puzzlegen/internal/archive"
	_ "modernc.org/sqlite"
)

func main() {
	// Parse command-line flags
	sqlitePath := flag.String("sqlite", "data/puzzlegen.db", "Path to SQLite archive database")
	pgHost := flag.String("pg-host", "localhost", "PostgreSQL host")
	pgPort := flag.Int("pg-port", 5432, "PostgreSQL port")
	pgUser := flag.String("pg-user", "puzzlegen", "PostgreSQL user")
	pgPassword := flag.String("pg-password", "puzzlegen", "PostgreSQL password")
	pgDatabase := flag.String("pg-database", "puzzlegen", "PostgreSQL database name")
	pgSSLMode := flag.String("pg-sslmode", "disable", "PostgreSQL SSL mode")
	dryRun := flag.Bool("dry-run", false, "Count what would be migrated without writing rows")
	flag.Parse()

	log.Println("SQLite to PostgreSQL Archive Migration Tool")
	log.Println("===========================================")

	// Open SQLite archive
	log.Printf("Opening SQLite archive: %s", *sqlitePath)
	sqliteDB, err := sql.Open("sqlite", *sqlitePath)
	if err != nil {
		log.Fatalf("Failed to open SQLite archive: %v", err)
	}
	defer sqliteDB.Close()

	// Verify SQLite connection
	if err := sqliteDB.Ping(); err != nil {
		log.Fatalf("Failed to connect to SQLite archive: %v", err)
	}

	// Open PostgreSQL through the archive so the schema is ready
	pgCfg := archive.DefaultPostgresConfig()
	pgCfg.Host = *pgHost
	pgCfg.Port = *pgPort
	pgCfg.User = *pgUser
	pgCfg.Password = *pgPassword
	pgCfg.Database = *pgDatabase
	pgCfg.SSLMode = *pgSSLMode

	log.Printf("Opening PostgreSQL archive: %s@%s:%d/%s", *pgUser, *pgHost, *pgPort, *pgDatabase)
	log.Println("Ensuring PostgreSQL schema is ready...")
	arc, err := archive.OpenWithConfig(archive.Config{
		Driver:   "postgres",
		Postgres: pgCfg,
	})
	if err != nil {
		log.Fatalf("Failed to open PostgreSQL archive: %v", err)
	}
	defer arc.Close()
	pgDB := arc.DB()

	if *dryRun {
		log.Println("DRY RUN MODE - No rows will be written")
	}

	// Refuse to copy between different schema versions
	srcVersion, err := sqliteSchemaVersion(sqliteDB)
	if err != nil {
		log.Fatalf("Failed to read SQLite schema version: %v", err)
	}
	dstVersion, err := arc.SchemaVersion()
	if err != nil {
		log.Fatalf("Failed to read PostgreSQL schema version: %v", err)
	}
	if srcVersion != dstVersion {
		log.Fatalf("Schema version mismatch: SQLite has %d, PostgreSQL has %d", srcVersion, dstVersion)
	}

	log.Println("Migrating table: runs")
	count, err := migrateRuns(sqliteDB, pgDB, *dryRun)
	if err != nil {
		log.Fatalf("Failed to migrate runs: %v", err)
	}
	log.Printf("  Migrated %d rows", count)

	log.Println("===========================================")
	log.Printf("Migration complete! Total rows migrated: %d", count)
	if *dryRun {
		log.Println("(DRY RUN - No rows were actually written)")
	}
}

func migrateRuns(sqlite, pg *sql.DB, dryRun bool) (int64, error) {
	rows, err := sqlite.Query(`
		SELECT id, kind, theme, seed, grid_cols, grid_rows, words_requested, words_placed, created_at
		FROM runs
	`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var count int64
	for rows.Next() {
		var id, seed int64
		var kind, theme string
		var gridCols, gridRows, wordsRequested, wordsPlaced int
		var createdAt string

		if err := rows.Scan(&id, &kind, &theme, &seed, &gridCols, &gridRows, &wordsRequested, &wordsPlaced, &createdAt); err != nil {
			return count, err
		}

		if dryRun {
			count++
			continue
		}

		// Check if the run already exists
		var existingID int64
		err := pg.QueryRow(`SELECT id FROM runs WHERE id = $1`, id).Scan(&existingID)
		if err == nil {
			continue
		}

		// Insert with explicit ID to keep run history stable
		_, err = pg.Exec(`
			INSERT INTO runs (id, kind, theme, seed, grid_cols, grid_rows, words_requested, words_placed, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, id, kind, theme, seed, gridCols, gridRows, wordsRequested, wordsPlaced, parseTime(createdAt))
		if err != nil {
			if !strings.Contains(err.Error(), "duplicate key") {
				return count, err
			}
		} else {
			count++
		}
	}

	// Reset the sequence to avoid ID conflicts for new records
	if !dryRun {
		_, _ = pg.Exec(`SELECT setval('runs_id_seq', COALESCE((SELECT MAX(id) FROM runs), 0) + 1, false)`)
	}

	return count, rows.Err()
}

func sqliteSchemaVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow(`SELECT schema_version FROM archive_meta WHERE id = 1`).Scan(&version)
	return version, err
}

// Helper functions

func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	// Try various formats
	formats := []string{
		"2006-01-02 15:04:05",
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05-07:00",
		time.RFC3339,
		time.RFC3339Nano,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return &t
		}
	}
	log.Printf("Warning: Could not parse time: %s", s)
	return nil
}

func init() {
	// Custom usage message
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Migrates the puzzle run archive from SQLite to PostgreSQL.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s -sqlite data/puzzlegen.db -pg-host localhost -pg-user puzzlegen -pg-password puzzlegen -pg-database puzzlegen\n", os.Args[0])
	}
}
