package docstore

import (
	"context"
	"errors"
)

// ErrNotFound indicates the requested document does not exist in the store.
var ErrNotFound = errors.New("document not found")

// Store is the document storage port used by the expansion engine.
//
// Identities are opaque location strings. The FS implementation uses
// absolute filesystem paths; other implementations only need to be
// consistent: the same identity always names the same document.
type Store interface {
	// Read returns the raw text of the document at id.
	// Returns an error wrapping ErrNotFound if no document exists there.
	Read(ctx context.Context, id string) (string, error)

	// Write persists text at id, overwriting any prior content and
	// creating any containing location as needed.
	Write(ctx context.Context, id string, text string) error

	// Glob returns the identities matching pattern, in deterministic
	// (lexical) order. Pattern syntax is that of path/filepath.Match,
	// applied per path segment.
	Glob(ctx context.Context, pattern string) ([]string, error)
}
