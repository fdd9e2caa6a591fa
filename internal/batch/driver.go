// Package batch enumerates entry documents and drives their compilation.
//
// The driver is the only component that touches every other one: it
// discovers entries per configured collection, expands each with fresh
// per-entry state, persists compiled output, and optionally records the
// run in the manifest. Entries are processed sequentially; they share no
// mutable state, so ordering between them is a simplicity choice, not a
// correctness requirement.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/weftdocs/weft/internal/config"
	"github.com/weftdocs/weft/internal/docstore"
	"github.com/weftdocs/weft/internal/expand"
	"github.com/weftdocs/weft/internal/manifest"
	"github.com/weftdocs/weft/internal/output"
)

// EntryResult is the outcome of compiling one entry document.
type EntryResult struct {
	// Entry is the entry document identity.
	Entry string `json:"entry"`

	// Collection names the collection the entry was discovered in;
	// empty for single-entry compiles.
	Collection string `json:"collection,omitempty"`

	// Output is the destination identity; empty when the compile failed.
	Output string `json:"output,omitempty"`

	// Diags are the recoverable expansion diagnostics.
	Diags []expand.Diag `json:"diags,omitempty"`

	// Err is the fatal per-entry failure, nil on success.
	Err error `json:"-"`

	// Error mirrors Err as text for JSON output and the manifest.
	Error string `json:"error,omitempty"`
}

// Summary aggregates a batch run.
type Summary struct {
	// Results in processing order.
	Results []EntryResult `json:"results"`

	// Failed counts entries whose compile failed.
	Failed int `json:"failed"`

	// Aborted is true when fail-fast stopped the batch early.
	Aborted bool `json:"aborted,omitempty"`

	// RunID is the manifest run identity, empty when recording is off.
	RunID string `json:"run_id,omitempty"`

	// ManifestErr reports manifest bookkeeping trouble. It never fails
	// an entry; callers decide whether to surface it.
	ManifestErr error `json:"-"`
}

// Driver wires the expander, output writer, and manifest together.
type Driver struct {
	store    docstore.Store
	expander *expand.Expander
	writer   *output.Writer
	cfg      *config.Config
	manifest *manifest.Store // nil disables recording
}

// New creates a Driver over store using cfg. man may be nil to disable
// run recording.
func New(store docstore.Store, cfg *config.Config, man *manifest.Store) *Driver {
	return &Driver{
		store:    store,
		expander: expand.New(store),
		writer:   output.NewWriter(store),
		cfg:      cfg,
		manifest: man,
	}
}

// Run compiles every discovered entry across all configured collections.
//
// Per-entry failures are isolated: remaining entries still compile and the
// failures are aggregated in the summary. When cfg.FailFast is set the
// first failure aborts the remaining batch instead.
func (d *Driver) Run(ctx context.Context) (*Summary, error) {
	sum := &Summary{}
	d.beginRecording(ctx, sum)

	for _, col := range d.cfg.Collections {
		entries, err := d.discover(ctx, col)
		if err != nil {
			return nil, fmt.Errorf("discovering entries in collection %q: %w", col.Name, err)
		}
		slog.Info("collection discovered",
			"collection", col.Name,
			"entries", len(entries))

		for _, entry := range entries {
			res := d.compile(ctx, entry, rule(col))
			res.Collection = col.Name
			d.record(ctx, sum, res)
			sum.Results = append(sum.Results, res)
			if res.Err != nil {
				sum.Failed++
				if d.cfg.FailFast {
					sum.Aborted = true
					d.finishRecording(ctx, sum)
					return sum, nil
				}
			}
		}
	}

	d.finishRecording(ctx, sum)
	return sum, nil
}

// Single compiles exactly one entry using the primary collection's rule.
func (d *Driver) Single(ctx context.Context, entry string) (*Summary, error) {
	primary, err := d.cfg.Primary()
	if err != nil {
		return nil, err
	}

	sum := &Summary{}
	d.beginRecording(ctx, sum)

	res := d.compile(ctx, entry, rule(primary))
	d.record(ctx, sum, res)
	sum.Results = append(sum.Results, res)
	if res.Err != nil {
		sum.Failed++
	}

	d.finishRecording(ctx, sum)
	return sum, nil
}

// compile expands one entry and persists its output.
func (d *Driver) compile(ctx context.Context, entry string, r output.Rule) EntryResult {
	res := EntryResult{Entry: entry}

	expanded, err := d.expander.Entry(ctx, entry)
	if err != nil {
		slog.Error("entry compile failed",
			"entry", entry,
			"error", err)
		res.Err = err
		res.Error = err.Error()
		return res
	}
	res.Entry = expanded.Entry
	res.Diags = expanded.Diags

	dest, err := d.writer.Write(ctx, expanded.Entry, r, expanded.Output)
	if err != nil {
		slog.Error("entry output write failed",
			"entry", expanded.Entry,
			"error", err)
		res.Err = err
		res.Error = err.Error()
		return res
	}
	res.Output = dest

	slog.Info("entry compiled",
		"entry", expanded.Entry,
		"output", dest,
		"diagnostics", len(expanded.Diags))
	return res
}

// discover returns a collection's entries: documents under col.Dir at
// col.Depth directory levels, carrying col.Suffix, in lexical order.
func (d *Driver) discover(ctx context.Context, col config.Collection) ([]string, error) {
	segments := make([]string, 0, col.Depth)
	for i := 0; i < col.Depth-1; i++ {
		segments = append(segments, "*")
	}
	segments = append(segments, "*"+col.Suffix)
	pattern := filepath.Join(append([]string{col.Dir}, segments...)...)

	entries, err := d.store.Glob(ctx, pattern)
	if err != nil {
		return nil, err
	}

	// Glob patterns like "*.w.md" also match bare ".w.md"; require a
	// non-empty base name before the suffix.
	out := entries[:0]
	for _, e := range entries {
		if strings.TrimSuffix(filepath.Base(e), col.Suffix) != "" {
			out = append(out, e)
		}
	}
	return out, nil
}

// rule converts a collection's configured fields to an output rule.
func rule(col config.Collection) output.Rule {
	return output.Rule{
		Kind:      output.TransformKind(col.Transform),
		Out:       col.Out,
		Suffix:    col.Suffix,
		OutSuffix: col.OutSuffix,
		OutName:   col.OutName,
	}
}

// beginRecording opens a manifest run if recording is enabled.
func (d *Driver) beginRecording(ctx context.Context, sum *Summary) {
	if d.manifest == nil {
		return
	}
	runID, err := d.manifest.BeginRun(ctx)
	if err != nil {
		slog.Warn("manifest run not recorded", "error", err)
		sum.ManifestErr = err
		return
	}
	sum.RunID = runID
}

// record persists one entry outcome to the manifest.
func (d *Driver) record(ctx context.Context, sum *Summary, res EntryResult) {
	if d.manifest == nil || sum.RunID == "" {
		return
	}
	status, errText := manifest.StatusOK, ""
	if res.Err != nil {
		status, errText = manifest.StatusFailed, res.Err.Error()
	}
	if err := d.manifest.RecordEntry(ctx, sum.RunID, res.Entry, res.Output, status, errText); err != nil {
		slog.Warn("manifest entry not recorded", "entry", res.Entry, "error", err)
		sum.ManifestErr = err
	}
	if err := d.manifest.RecordDiagnostics(ctx, sum.RunID, res.Entry, res.Diags); err != nil {
		slog.Warn("manifest diagnostics not recorded", "entry", res.Entry, "error", err)
		sum.ManifestErr = err
	}
}

// finishRecording stamps the manifest run's aggregate counts.
func (d *Driver) finishRecording(ctx context.Context, sum *Summary) {
	if d.manifest == nil || sum.RunID == "" {
		return
	}
	if err := d.manifest.FinishRun(ctx, sum.RunID, len(sum.Results), sum.Failed); err != nil {
		slog.Warn("manifest run not finished", "run", sum.RunID, "error", err)
		sum.ManifestErr = err
	}
}
