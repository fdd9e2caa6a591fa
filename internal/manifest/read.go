package manifest

import (
	"context"
	"database/sql"
	"fmt"
)

// Run is one recorded compile run.
type Run struct {
	ID         string `json:"id"`
	StartedAt  string `json:"started_at"`
	FinishedAt string `json:"finished_at,omitempty"`
	Entries    int    `json:"entries"`
	Failed     int    `json:"failed"`
}

// Entry is one recorded entry outcome.
type Entry struct {
	Entry  string `json:"entry"`
	Output string `json:"output,omitempty"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Diagnostic is one recorded expansion diagnostic.
type Diagnostic struct {
	Entry  string `json:"entry"`
	Kind   string `json:"kind"`
	Ref    string `json:"ref"`
	Detail string `json:"detail,omitempty"`
}

// RecentRuns returns the n most recent runs, newest first.
// Ordering ties on started_at break by id so results are deterministic.
func (s *Store) RecentRuns(ctx context.Context, n int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, entries, failed
		FROM runs
		ORDER BY started_at DESC, id COLLATE BINARY DESC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var r Run
		var finished sql.NullString
		if err := rows.Scan(&r.ID, &r.StartedAt, &finished, &r.Entries, &r.Failed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if finished.Valid {
			r.FinishedAt = finished.String
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// RunEntries returns the entries recorded for a run, in insertion order.
func (s *Store) RunEntries(ctx context.Context, runID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT entry, output, status, error
		FROM entries
		WHERE run_id = ?
		ORDER BY rowid ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Entry, &e.Output, &e.Status, &e.Error); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

// RunDiagnostics returns the diagnostics recorded for a run, in insertion
// order.
func (s *Store) RunDiagnostics(ctx context.Context, runID string) ([]Diagnostic, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT entry, kind, ref, detail
		FROM diagnostics
		WHERE run_id = ?
		ORDER BY rowid ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query diagnostics: %w", err)
	}
	defer rows.Close()

	diags := []Diagnostic{}
	for rows.Next() {
		var d Diagnostic
		if err := rows.Scan(&d.Entry, &d.Kind, &d.Ref, &d.Detail); err != nil {
			return nil, fmt.Errorf("scan diagnostic: %w", err)
		}
		diags = append(diags, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate diagnostics: %w", err)
	}
	return diags, nil
}
