package archive

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestArchive(t *testing.T) *Archive {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	a, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open archive: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestOpen(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	a, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open archive: %v", err)
	}
	defer a.Close()

	// Verify file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Archive file was not created")
	}

	// Verify tables exist by running simple queries
	var count int
	err = a.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count)
	if err != nil {
		t.Errorf("Failed to query runs table: %v", err)
	}

	err = a.db.QueryRow("SELECT COUNT(*) FROM archive_meta").Scan(&count)
	if err != nil {
		t.Errorf("Failed to query archive_meta table: %v", err)
	}
	if count != 1 {
		t.Errorf("archive_meta has %d rows, want 1", count)
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	nestedPath := filepath.Join(tmpDir, "nested", "dir", "test.db")

	a, err := Open(nestedPath)
	if err != nil {
		t.Fatalf("Failed to open archive with nested path: %v", err)
	}
	defer a.Close()

	if _, err := os.Stat(nestedPath); os.IsNotExist(err) {
		t.Error("Archive file was not created in nested directory")
	}
}

func TestClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	a, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open archive: %v", err)
	}

	if err := a.Close(); err != nil {
		t.Errorf("Failed to close archive: %v", err)
	}

	// Verify archive is closed by trying to query
	var count int
	err = a.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count)
	if err == nil {
		t.Error("Expected error querying closed archive")
	}
}

func TestSchemaVersion(t *testing.T) {
	a := openTestArchive(t)

	version, err := a.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion returned error: %v", err)
	}
	if version != schemaVersion {
		t.Errorf("SchemaVersion = %d, want %d", version, schemaVersion)
	}
}

func TestReopenExistingArchive(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	a, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open archive: %v", err)
	}

	if _, err := a.RecordRun(Run{Kind: "maze", Cols: 10, Rows: 10}); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Reopen: migrations must be idempotent and the metadata row must survive
	a, err = Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen archive: %v", err)
	}
	defer a.Close()

	has, err := a.HasRuns()
	if err != nil {
		t.Fatalf("HasRuns failed: %v", err)
	}
	if !has {
		t.Error("Expected recorded run to survive reopen")
	}

	version, err := a.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion failed after reopen: %v", err)
	}
	if version != schemaVersion {
		t.Errorf("SchemaVersion after reopen = %d, want %d", version, schemaVersion)
	}
}

func TestOpenWithConfig_UnknownDriverFallsBackToSQLite(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := Config{
		Driver:     "mystery",
		SQLitePath: filepath.Join(tmpDir, "test.db"),
	}

	a, err := OpenWithConfig(cfg)
	if err != nil {
		t.Fatalf("OpenWithConfig failed: %v", err)
	}
	defer a.Close()

	if _, ok := a.dialect.(*SQLiteDialect); !ok {
		t.Errorf("Expected SQLite dialect for unknown driver, got %T", a.dialect)
	}
}

func TestDB(t *testing.T) {
	a := openTestArchive(t)

	if a.DB() == nil {
		t.Error("DB() returned nil")
	}
}
