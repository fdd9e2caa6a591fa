package expand

import (
	"context"
	"log/slog"
	"strings"

	"github.com/weftdocs/weft/internal/docstore"
)

// Expander performs recursive directive expansion against a document store.
//
// An Expander is stateless between calls; per-entry state (the recursion
// path) lives on the stack of one Entry call. The zero value is not usable;
// construct with New.
type Expander struct {
	store docstore.Store
}

// New creates an Expander reading from store.
func New(store docstore.Store) *Expander {
	return &Expander{store: store}
}

// Result is the outcome of expanding one entry document.
type Result struct {
	// Entry is the canonical identity of the entry document.
	Entry string

	// Output is the compiled text: every reachable directive substituted,
	// except those recorded in Diags, which remain verbatim.
	Output string

	// Diags lists the recoverable failures encountered, in the order the
	// offending directives were visited.
	Diags []Diag
}

// Entry expands the document at the given identity and returns its compiled
// output. The entry's own directory is the initial base for resolving
// directive arguments.
//
// The only error Entry returns is *EntryError: the entry document itself
// could not be read. Every nested failure degrades to a Diag.
func (e *Expander) Entry(ctx context.Context, entry string) (*Result, error) {
	id := Resolve(entry, ".")
	text, err := e.store.Read(ctx, id)
	if err != nil {
		return nil, &EntryError{Entry: id, Err: err}
	}

	res := &Result{Entry: id}
	visiting := map[string]bool{id: true}
	res.Output = e.expand(ctx, text, id, visiting, &res.Diags)
	return res, nil
}

// expand runs the per-level state machine: one scanner pass over text, then
// for each match resolve, cycle-check, load, recurse, substitute. Matches
// are computed before any substitution, so content spliced in at this level
// is never rescanned here; nested directives are handled by the recursive
// call on the included document's own text.
func (e *Expander) expand(ctx context.Context, text, doc string, visiting map[string]bool, diags *[]Diag) string {
	matches := Scan(text)
	if matches == nil {
		return text
	}

	base := BaseDir(doc)
	var out strings.Builder
	out.Grow(len(text))
	last := 0

	for _, m := range matches {
		out.WriteString(text[last:m.Start])
		last = m.End

		target := Resolve(m.Arg, base)

		if visiting[target] {
			slog.Warn("include cycle detected",
				"ref", m.Arg,
				"target", target,
				"in", doc)
			*diags = append(*diags, Diag{Kind: DiagCycle, Ref: m.Arg, Target: target, In: doc})
			out.WriteString(text[m.Start:m.End])
			continue
		}

		included, err := e.store.Read(ctx, target)
		if err != nil {
			slog.Warn("include target unreadable",
				"ref", m.Arg,
				"target", target,
				"in", doc,
				"error", err)
			*diags = append(*diags, Diag{Kind: DiagUnresolvable, Ref: m.Arg, Target: target, In: doc, Detail: err.Error()})
			out.WriteString(text[m.Start:m.End])
			continue
		}

		slog.Debug("expanding include",
			"target", target,
			"in", doc)

		// Path-scoped visit tracking: on the path while this branch is
		// being expanded, off it once the branch unwinds, so sibling
		// re-inclusion of the same fragment is not a cycle.
		visiting[target] = true
		out.WriteString(e.expand(ctx, included, target, visiting, diags))
		delete(visiting, target)
	}

	out.WriteString(text[last:])
	return out.String()
}
