package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScenarios runs every YAML scenario under testdata/scenarios and
// compares compiled output against the golden files.
func TestScenarios(t *testing.T) {
	scenarios, err := LoadScenarios("testdata/scenarios")
	require.NoError(t, err)
	require.NotEmpty(t, scenarios, "scenario directory should not be empty")

	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			require.NoError(t, RunWithGolden(t, s))
		})
	}
}

// TestRun_ExpectationMismatch tests that an unexpected diagnostic fails
// the scenario.
func TestRun_ExpectationMismatch(t *testing.T) {
	s := &Scenario{
		Name: "mismatch",
		Documents: map[string]string{
			"/x/A.md": "@include(gone.md)",
		},
		Entry: "/x/A.md",
		// No expectations, but the expansion emits UNRESOLVABLE.
	}

	_, err := Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "diagnostic")
}

// TestRun_MissingEntryDocument tests the hard failure surface: an entry
// not present in the document tree fails the run outright.
func TestRun_MissingEntryDocument(t *testing.T) {
	s := &Scenario{
		Name:      "no-entry",
		Documents: map[string]string{"/x/other.md": "text"},
		Entry:     "/x/gone.md",
	}

	_, err := Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry document unreadable")
}

// TestLoadScenario_Validation tests structural validation of scenario files.
func TestLoadScenario_Validation(t *testing.T) {
	dir := t.TempDir()

	missingEntry := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(missingEntry, []byte("documents:\n  /a.md: text\n"), 0644))
	_, err := LoadScenario(missingEntry)
	assert.ErrorContains(t, err, "missing entry")

	entryNotPresent := filepath.Join(dir, "orphan.yaml")
	require.NoError(t, os.WriteFile(entryNotPresent, []byte("entry: /b.md\ndocuments:\n  /a.md: text\n"), 0644))
	_, err = LoadScenario(entryNotPresent)
	assert.ErrorContains(t, err, "not among documents")
}

// TestLoadScenario_NameDefaultsToFilename tests the name fallback.
func TestLoadScenario_NameDefaultsToFilename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fallback.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entry: /a.md\ndocuments:\n  /a.md: text\n"), 0644))

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "fallback", s.Name)
}
