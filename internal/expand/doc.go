// Package expand implements recursive directive expansion.
//
// A directive is a single-line textual marker of the form
//
//	@include(<argument>)
//
// where the argument is a location interpreted relative to the directory of
// the document containing the marker. Expansion replaces each directive
// span with the fully expanded content of its target, depth-first and in
// document order.
//
// ERROR MODEL:
//
// Per-directive failures are never fatal. A target that cannot be loaded,
// or whose identity is already on the current recursion path (a cycle),
// leaves that directive verbatim in the output and records a Diag; the
// rest of the document expands normally. The single fatal condition is the
// entry document itself being unreadable, which fails that entry's
// expansion before any output exists.
//
// CYCLE TRACKING:
//
// The expander tracks the current path from the entry to the document
// being expanded, pushing an identity when it recurses in and popping it
// when the branch unwinds. Only genuine ancestor cycles are flagged; the
// same fragment included from two sibling branches expands both times.
package expand
