package docstore

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"
)

// Mem is an in-memory Store keyed by identity string.
//
// Mem is safe for concurrent use. Identities are treated as slash-separated
// paths for Glob purposes.
type Mem struct {
	mu   sync.RWMutex
	docs map[string]string
}

// NewMem creates an in-memory store seeded with the given documents.
// The seed map may be nil.
func NewMem(seed map[string]string) *Mem {
	docs := make(map[string]string, len(seed))
	for id, text := range seed {
		docs[id] = text
	}
	return &Mem{docs: docs}
}

// Read returns the stored text for id.
func (s *Mem) Read(_ context.Context, id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.docs[id]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return text, nil
}

// Write stores text at id, replacing any prior content.
func (s *Mem) Write(_ context.Context, id string, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[id] = text
	return nil
}

// Glob returns stored identities matching pattern, segment-wise, in
// lexical order.
func (s *Mem) Glob(_ context.Context, pattern string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []string
	for id := range s.docs {
		ok, err := matchSegments(pattern, id)
		if err != nil {
			return nil, fmt.Errorf("globbing %s: %w", pattern, err)
		}
		if ok {
			matches = append(matches, id)
		}
	}
	sort.Strings(matches)
	return matches, nil
}

// matchSegments applies path.Match per slash-separated segment, so that
// "*" never crosses a directory boundary, mirroring filepath.Glob.
func matchSegments(pattern, id string) (bool, error) {
	// path.Match already scopes wildcards to a single segment, but only
	// when segment counts line up; enforce that explicitly.
	if strings.Count(pattern, "/") != strings.Count(id, "/") {
		return false, nil
	}
	return path.Match(pattern, id)
}
