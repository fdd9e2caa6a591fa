package expand

import (
	"errors"
	"fmt"
)

// DiagKind categorizes a recoverable expansion diagnostic.
type DiagKind string

const (
	// DiagCycle indicates the directive's target is an ancestor on the
	// current recursion path.
	DiagCycle DiagKind = "CYCLE"

	// DiagUnresolvable indicates the directive's target could not be
	// loaded from the document store.
	DiagUnresolvable DiagKind = "UNRESOLVABLE"
)

// Diag records one recoverable per-directive failure. The originating
// directive is left verbatim in the compiled output; a Diag is the only
// trace the failure leaves behind.
type Diag struct {
	// Kind is the failure category.
	Kind DiagKind `json:"kind"`

	// Ref is the directive argument as written in the source.
	Ref string `json:"ref"`

	// Target is the resolved identity the argument mapped to.
	Target string `json:"target"`

	// In is the identity of the document containing the directive.
	In string `json:"in"`

	// Detail carries the underlying error text for unresolvable targets.
	Detail string `json:"detail,omitempty"`
}

// String renders the diagnostic for logs and CLI output.
func (d Diag) String() string {
	if d.Detail != "" {
		return fmt.Sprintf("%s: @include(%s) in %s: %s", d.Kind, d.Ref, d.In, d.Detail)
	}
	return fmt.Sprintf("%s: @include(%s) in %s -> %s", d.Kind, d.Ref, d.In, d.Target)
}

// EntryError is the one fatal failure this layer produces: the entry
// document itself could not be read. Nested targets failing to load are
// diagnostics, not errors; see Diag.
type EntryError struct {
	Entry string
	Err   error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("entry document unreadable: %s: %v", e.Entry, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

// IsEntryError reports whether err is an EntryError.
func IsEntryError(err error) bool {
	var entryErr *EntryError
	return errors.As(err, &entryErr)
}
