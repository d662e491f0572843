package archive

import (
	"database/sql"
	"fmt"
	"time"
)

// Run represents one recorded puzzle generation run.
type Run struct {
	ID             int64
	Kind           string
	Theme          string
	Seed           int64
	Cols           int
	Rows           int
	WordsRequested int
	WordsPlaced    int
	CreatedAt      time.Time
}

// RecordRun records a generation run and returns its assigned ID.
func (a *Archive) RecordRun(run Run) (int64, error) {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	query := a.qb.BuildWithReturning(`
		INSERT INTO runs (kind, theme, seed, grid_cols, grid_rows, words_requested, words_placed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, "id")

	args := []any{
		run.Kind, run.Theme, run.Seed,
		run.Cols, run.Rows,
		run.WordsRequested, run.WordsPlaced,
		run.CreatedAt,
	}

	if a.dialect.SupportsLastInsertID() {
		result, err := a.db.Exec(query, args...)
		if err != nil {
			return 0, fmt.Errorf("failed to record run: %w", err)
		}
		return result.LastInsertId()
	}

	var id int64
	if err := a.db.QueryRow(query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to record run: %w", err)
	}
	return id, nil
}

// RecentRuns returns the most recently recorded runs, newest first.
func (a *Archive) RecentRuns(limit int) ([]Run, error) {
	query := a.qb.Build(`
		SELECT id, kind, theme, seed, grid_cols, grid_rows, words_requested, words_placed, created_at
		FROM runs
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`)

	rows, err := a.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// RunsForTheme returns all runs recorded for a theme, oldest first.
// Theme matching is case-insensitive.
func (a *Archive) RunsForTheme(theme string) ([]Run, error) {
	query := a.qb.Build(`
		SELECT id, kind, theme, seed, grid_cols, grid_rows, words_requested, words_placed, created_at
		FROM runs
		WHERE theme = ?
		ORDER BY created_at ASC, id ASC
	`)

	rows, err := a.db.Query(query, theme)
	if err != nil {
		return nil, fmt.Errorf("failed to query theme runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// RunCountByKind returns how many runs have been recorded per puzzle kind.
func (a *Archive) RunCountByKind() (map[string]int, error) {
	rows, err := a.db.Query(`
		SELECT kind, COUNT(*) AS total
		FROM runs
		GROUP BY kind
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count runs: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var kind string
		var total int
		if err := rows.Scan(&kind, &total); err != nil {
			return nil, err
		}
		counts[kind] = total
	}
	return counts, rows.Err()
}

// HasRuns returns true if at least one run has been recorded.
func (a *Archive) HasRuns() (bool, error) {
	var count int
	err := a.db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// scanRuns reads a full result set of run rows.
func scanRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		var run Run
		err := rows.Scan(
			&run.ID, &run.Kind, &run.Theme, &run.Seed,
			&run.Cols, &run.Rows,
			&run.WordsRequested, &run.WordsPlaced,
			&run.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
