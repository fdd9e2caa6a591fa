package manifest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/weftdocs/weft/internal/expand"
)

// EntryStatus values for a recorded entry.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// BeginRun inserts a new run row and returns its ID.
func (s *Store) BeginRun(ctx context.Context) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, started_at) VALUES (?, ?)
	`, id, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("begin run: %w", err)
	}
	return id, nil
}

// RecordEntry records the outcome of one entry compile within a run.
// errText is empty for successful entries.
func (s *Store) RecordEntry(ctx context.Context, runID, entry, output, status, errText string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO entries (run_id, entry, output, status, error)
		VALUES (?, ?, ?, ?, ?)
	`, runID, entry, output, status, errText)
	if err != nil {
		return fmt.Errorf("record entry: %w", err)
	}
	return nil
}

// RecordDiagnostics records the recoverable diagnostics an entry's
// expansion produced, in order.
func (s *Store) RecordDiagnostics(ctx context.Context, runID, entry string, diags []expand.Diag) error {
	for _, d := range diags {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO diagnostics (run_id, entry, kind, ref, detail)
			VALUES (?, ?, ?, ?, ?)
		`, runID, entry, string(d.Kind), d.Ref, d.Detail)
		if err != nil {
			return fmt.Errorf("record diagnostic: %w", err)
		}
	}
	return nil
}

// FinishRun stamps the run's finish time and aggregate counts.
func (s *Store) FinishRun(ctx context.Context, runID string, entries, failed int) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE runs SET finished_at = ?, entries = ?, failed = ? WHERE id = ?
	`, time.Now().UTC().Format(time.RFC3339), entries, failed, runID)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}
