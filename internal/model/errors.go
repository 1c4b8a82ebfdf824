package model

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedContentType is returned before any processing when the
	// declared content type is not one the engine accepts.
	ErrUnsupportedContentType = errors.New("unsupported content type")

	// ErrEmptyDocument is returned before any processing when the document
	// body is empty.
	ErrEmptyDocument = errors.New("empty document")
)

// InvariantError reports an internal-consistency bug (an item classified into
// more than one type, a violation referencing a nonexistent item). These are
// engine bugs, not bad input: they carry full context and must surface in
// testing rather than silently corrupting legal output.
type InvariantError struct {
	// Invariant names the broken guarantee.
	Invariant string

	// Rule is the classifier/detector rule involved, when known.
	Rule string

	// Context is the offending input rendered for diagnosis.
	Context string
}

func (e *InvariantError) Error() string {
	if e.Rule != "" {
		return fmt.Sprintf("invariant violated: %s (rule %s): %s", e.Invariant, e.Rule, e.Context)
	}
	return fmt.Sprintf("invariant violated: %s: %s", e.Invariant, e.Context)
}
