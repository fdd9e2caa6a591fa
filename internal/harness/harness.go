// Package harness runs expansion conformance scenarios.
//
// A scenario is a YAML file describing a document tree entirely in memory,
// the entry document to expand, and the diagnostics the expansion must
// emit. The harness seeds an in-memory document store, runs the real
// expander, and hands the compiled output to golden-file comparison. This
// exercises the genuine engine end to end, with the filesystem as the only
// collaborator replaced.
package harness

import (
	"context"
	"fmt"

	"github.com/weftdocs/weft/internal/docstore"
	"github.com/weftdocs/weft/internal/expand"
)

// Run expands the scenario's entry against its in-memory document tree.
//
// Returns the expansion result. The error is non-nil only for the hard
// failure the engine itself distinguishes: the entry document being
// unreadable (for a scenario, absent), or an expectation mismatch.
func Run(s *Scenario) (*expand.Result, error) {
	store := docstore.NewMem(s.Documents)
	expander := expand.New(store)

	result, err := expander.Entry(context.Background(), s.Entry)
	if err != nil {
		return nil, err
	}

	if err := checkExpectations(s, result); err != nil {
		return result, err
	}
	return result, nil
}

// checkExpectations verifies the emitted diagnostics match the scenario's
// expect list in kind, ref, and order.
func checkExpectations(s *Scenario, result *expand.Result) error {
	if len(result.Diags) != len(s.Expect) {
		return fmt.Errorf("scenario %s: got %d diagnostic(s), expected %d: %v",
			s.Name, len(result.Diags), len(s.Expect), result.Diags)
	}
	for i, want := range s.Expect {
		got := result.Diags[i]
		if string(got.Kind) != want.Kind || got.Ref != want.Ref {
			return fmt.Errorf("scenario %s: diagnostic %d is %s(%s), expected %s(%s)",
				s.Name, i, got.Kind, got.Ref, want.Kind, want.Ref)
		}
	}
	return nil
}
