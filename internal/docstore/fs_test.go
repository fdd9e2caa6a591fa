package docstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFS_ReadMissing tests that a missing file maps to ErrNotFound.
func TestFS_ReadMissing(t *testing.T) {
	s := NewFS()

	_, err := s.Read(context.Background(), filepath.Join(t.TempDir(), "gone.md"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestFS_WriteCreatesDirectories tests that writes create the containing
// directory and the content round-trips.
func TestFS_WriteCreatesDirectories(t *testing.T) {
	s := NewFS()
	ctx := context.Background()
	dest := filepath.Join(t.TempDir(), "nested", "deep", "out.md")

	require.NoError(t, s.Write(ctx, dest, "compiled"))

	text, err := s.Read(ctx, dest)
	require.NoError(t, err)
	assert.Equal(t, "compiled", text)
}

// TestFS_WriteOverwrites tests overwrite semantics.
func TestFS_WriteOverwrites(t *testing.T) {
	s := NewFS()
	ctx := context.Background()
	dest := filepath.Join(t.TempDir(), "out.md")

	require.NoError(t, s.Write(ctx, dest, "first"))
	require.NoError(t, s.Write(ctx, dest, "second"))

	text, err := s.Read(ctx, dest)
	require.NoError(t, err)
	assert.Equal(t, "second", text)
}

// TestFS_GlobFilesOnly tests that Glob skips directories and sorts results.
func TestFS_GlobFilesOnly(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.w.md"), []byte("b"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.w.md"), []byte("a"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "c.w.md"), 0755)) // directory decoy

	s := NewFS()
	matches, err := s.Glob(context.Background(), filepath.Join(dir, "*.w.md"))
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "a.w.md"),
		filepath.Join(dir, "b.w.md"),
	}, matches)
}
