package expand

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weftdocs/weft/internal/docstore"
)

func expandDocs(t *testing.T, docs map[string]string, entry string) *Result {
	t.Helper()
	e := New(docstore.NewMem(docs))
	result, err := e.Entry(context.Background(), entry)
	require.NoError(t, err)
	return result
}

// TestEntry_DirectiveFreeInput tests that a document with no directives
// comes back byte-for-byte unchanged.
func TestEntry_DirectiveFreeInput(t *testing.T) {
	text := "# Title\n\nplain prose\nwith lines\n"
	result := expandDocs(t, map[string]string{"/x/A.md": text}, "/x/A.md")

	assert.Equal(t, text, result.Output)
	assert.Empty(t, result.Diags)
}

// TestEntry_SingleLevelSubstitution tests one directive replaced by its
// target's content.
func TestEntry_SingleLevelSubstitution(t *testing.T) {
	result := expandDocs(t, map[string]string{
		"/x/A.md": "before @include(B.md) after",
		"/x/B.md": "hello",
	}, "/x/A.md")

	assert.Equal(t, "before hello after", result.Output)
	assert.Empty(t, result.Diags)
}

// TestEntry_NestedSubstitution tests recursion depth >= 2: A includes B,
// B includes C.
func TestEntry_NestedSubstitution(t *testing.T) {
	result := expandDocs(t, map[string]string{
		"/x/A.md": "A[@include(B.md)]",
		"/x/B.md": "B[@include(C.md)]",
		"/x/C.md": "leaf",
	}, "/x/A.md")

	assert.Equal(t, "A[B[leaf]]", result.Output)
	assert.Empty(t, result.Diags)
}

// TestEntry_ResolvesRelativeToParent tests that an included document's own
// directory, not the entry's, is the base for its directives: B in /x/sub
// includes C.md, which must resolve to /x/sub/C.md.
func TestEntry_ResolvesRelativeToParent(t *testing.T) {
	result := expandDocs(t, map[string]string{
		"/x/A.md":     "@include(sub/B.md)",
		"/x/sub/B.md": "@include(C.md)",
		"/x/sub/C.md": "deep",
		"/x/C.md":     "WRONG",
	}, "/x/A.md")

	assert.Equal(t, "deep", result.Output)
	assert.Empty(t, result.Diags)
}

// TestEntry_CycleTermination tests that a two-document cycle terminates,
// leaves the re-entrant directive verbatim, and records a diagnostic.
func TestEntry_CycleTermination(t *testing.T) {
	result := expandDocs(t, map[string]string{
		"/x/A.md": "A(@include(B.md))",
		"/x/B.md": "B(@include(A.md))",
	}, "/x/A.md")

	assert.Equal(t, "A(B(@include(A.md)))", result.Output)
	require.Len(t, result.Diags, 1)
	assert.Equal(t, DiagCycle, result.Diags[0].Kind)
	assert.Equal(t, "A.md", result.Diags[0].Ref)
	assert.Equal(t, "/x/A.md", result.Diags[0].Target)
	assert.Equal(t, "/x/B.md", result.Diags[0].In)
}

// TestEntry_SelfInclude tests the degenerate one-document cycle.
func TestEntry_SelfInclude(t *testing.T) {
	result := expandDocs(t, map[string]string{
		"/x/A.md": "self: @include(A.md)",
	}, "/x/A.md")

	assert.Equal(t, "self: @include(A.md)", result.Output)
	require.Len(t, result.Diags, 1)
	assert.Equal(t, DiagCycle, result.Diags[0].Kind)
}

// TestEntry_FailSoftOnMissingReference tests that an unloadable target
// leaves the directive verbatim and expansion succeeds.
func TestEntry_FailSoftOnMissingReference(t *testing.T) {
	result := expandDocs(t, map[string]string{
		"/x/A.md": "pre @include(missing.md) post",
	}, "/x/A.md")

	assert.Equal(t, "pre @include(missing.md) post", result.Output)
	require.Len(t, result.Diags, 1)
	assert.Equal(t, DiagUnresolvable, result.Diags[0].Kind)
	assert.Equal(t, "missing.md", result.Diags[0].Ref)
	assert.NotEmpty(t, result.Diags[0].Detail)
}

// TestEntry_MissingReferenceDoesNotBlockSiblings tests that a broken
// directive leaves later directives in the same document unaffected.
func TestEntry_MissingReferenceDoesNotBlockSiblings(t *testing.T) {
	result := expandDocs(t, map[string]string{
		"/x/A.md": "@include(missing.md) then @include(B.md)",
		"/x/B.md": "ok",
	}, "/x/A.md")

	assert.Equal(t, "@include(missing.md) then ok", result.Output)
	require.Len(t, result.Diags, 1)
}

// TestEntry_OrderPreservation tests that independent directives substitute
// in source order.
func TestEntry_OrderPreservation(t *testing.T) {
	result := expandDocs(t, map[string]string{
		"/x/A.md": "x @include(B.md) y @include(C.md) z",
		"/x/B.md": "1",
		"/x/C.md": "2",
	}, "/x/A.md")

	assert.Equal(t, "x 1 y 2 z", result.Output)
}

// TestEntry_SiblingReinclusionIsNotACycle tests the path-scoped visit
// tracking: the same fragment included from two sibling branches expands
// both times.
func TestEntry_SiblingReinclusionIsNotACycle(t *testing.T) {
	result := expandDocs(t, map[string]string{
		"/x/A.md": "@include(B.md)+@include(C.md)",
		"/x/B.md": "[@include(F.md)]",
		"/x/C.md": "[@include(F.md)]",
		"/x/F.md": "frag",
	}, "/x/A.md")

	assert.Equal(t, "[frag]+[frag]", result.Output)
	assert.Empty(t, result.Diags, "sibling re-inclusion is not a cycle")
}

// TestEntry_RepeatedDirectiveSameLevel tests two occurrences of the same
// reference in one document; both expand.
func TestEntry_RepeatedDirectiveSameLevel(t *testing.T) {
	result := expandDocs(t, map[string]string{
		"/x/A.md": "@include(B.md) @include(B.md)",
		"/x/B.md": "twice",
	}, "/x/A.md")

	assert.Equal(t, "twice twice", result.Output)
	assert.Empty(t, result.Diags)
}

// TestEntry_SubstitutedContentNotRescannedAtSameLevel tests that directive
// text arriving via substitution is not rescanned by the parent level.
// Nested directives expand through recursion on the included document, so
// a fragment whose literal content *is* a directive still expands exactly
// once, at its own level.
func TestEntry_SubstitutedContentNotRescannedAtSameLevel(t *testing.T) {
	result := expandDocs(t, map[string]string{
		"/x/A.md": "@include(B.md)",
		"/x/B.md": "@include(C.md)",
		"/x/C.md": "done",
	}, "/x/A.md")

	assert.Equal(t, "done", result.Output)
}

// TestEntry_EntryUnreadableIsFatal tests the one hard failure: the entry
// document itself cannot be read.
func TestEntry_EntryUnreadableIsFatal(t *testing.T) {
	e := New(docstore.NewMem(nil))
	result, err := e.Entry(context.Background(), "/x/gone.md")

	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, IsEntryError(err), "entry read failure should be an EntryError")
}

// TestEntry_DiagnosticOrder tests diagnostics come back in visit order.
func TestEntry_DiagnosticOrder(t *testing.T) {
	result := expandDocs(t, map[string]string{
		"/x/A.md": "@include(gone1.md) @include(B.md) @include(gone2.md)",
		"/x/B.md": "mid",
	}, "/x/A.md")

	require.Len(t, result.Diags, 2)
	assert.Equal(t, "gone1.md", result.Diags[0].Ref)
	assert.Equal(t, "gone2.md", result.Diags[1].Ref)
}
