// Package output derives destination identities for compiled documents and
// persists them through the document store.
package output

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/weftdocs/weft/internal/docstore"
)

// TransformKind selects how an entry identity maps to a destination.
type TransformKind string

const (
	// TransformSuffix replaces the entry's known suffix with an output
	// suffix and places the file flat in the output root.
	TransformSuffix TransformKind = "suffix"

	// TransformDirname nests the output under the entry's immediate
	// parent directory name and always uses one fixed filename. Entries
	// from distinct subdirectories land in distinct subdirectories of the
	// output root, each named identically.
	TransformDirname TransformKind = "dirname"
)

// Rule is one destination-naming transform.
type Rule struct {
	// Kind selects the transform.
	Kind TransformKind

	// Out is the output root collection.
	Out string

	// Suffix is the entry suffix to strip (TransformSuffix).
	Suffix string

	// OutSuffix replaces Suffix in the destination name (TransformSuffix).
	OutSuffix string

	// OutName is the fixed destination filename (TransformDirname).
	OutName string
}

// Destination derives the destination identity for an entry under this rule.
func (r Rule) Destination(entry string) (string, error) {
	switch r.Kind {
	case TransformSuffix:
		name := filepath.Base(entry)
		if r.Suffix != "" {
			name = strings.TrimSuffix(name, r.Suffix)
		} else {
			name = strings.TrimSuffix(name, filepath.Ext(name))
		}
		return filepath.Join(r.Out, name+r.OutSuffix), nil

	case TransformDirname:
		parent := filepath.Base(filepath.Dir(entry))
		if parent == "." || parent == string(filepath.Separator) {
			return "", fmt.Errorf("entry %s has no parent directory for dirname transform", entry)
		}
		return filepath.Join(r.Out, parent, r.OutName), nil

	default:
		return "", fmt.Errorf("unknown transform kind %q", r.Kind)
	}
}

// Writer persists compiled output at rule-derived destinations.
type Writer struct {
	store docstore.Store
}

// NewWriter creates a Writer backed by store.
func NewWriter(store docstore.Store) *Writer {
	return &Writer{store: store}
}

// Write derives the destination for entry under rule and persists text
// there, overwriting prior content. Returns the destination identity.
func (w *Writer) Write(ctx context.Context, entry string, rule Rule, text string) (string, error) {
	dest, err := rule.Destination(entry)
	if err != nil {
		return "", err
	}
	if err := w.store.Write(ctx, dest, text); err != nil {
		return "", fmt.Errorf("persisting compiled output: %w", err)
	}
	return dest, nil
}
