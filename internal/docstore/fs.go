package docstore

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/natefinch/atomic"
)

// FS is a filesystem-backed Store. Identities are filesystem paths.
type FS struct{}

// NewFS creates a filesystem store.
func NewFS() *FS {
	return &FS{}
}

// Read returns the file's content as a string.
func (s *FS) Read(_ context.Context, id string) (string, error) {
	data, err := os.ReadFile(id)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return "", fmt.Errorf("reading %s: %w", id, err)
	}
	return string(data), nil
}

// Write persists text at id atomically, creating parent directories.
// The atomic rename guarantees readers never observe a half-written file.
func (s *FS) Write(_ context.Context, id string, text string) error {
	if err := os.MkdirAll(filepath.Dir(id), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", id, err)
	}
	if err := atomic.WriteFile(id, bytes.NewReader([]byte(text))); err != nil {
		return fmt.Errorf("writing %s: %w", id, err)
	}
	return nil
}

// Glob returns the paths matching pattern in lexical order.
func (s *FS) Glob(_ context.Context, pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("globbing %s: %w", pattern, err)
	}
	// filepath.Glob sorts already; kept explicit because lexical order is
	// part of the Store contract, not an accident of this implementation.
	sort.Strings(matches)
	out := matches[:0]
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("stat %s: %w", m, err)
		}
		if info.Mode().IsRegular() {
			out = append(out, m)
		}
	}
	return out, nil
}
