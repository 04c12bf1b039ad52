package runbook

import (
	"errors"
	"fmt"
)

// ErrDuplicateIdentifier is returned when two units share a number.
var ErrDuplicateIdentifier = errors.New("duplicate identifier")

// IdentifierError names both occurrences of a duplicated unit number.
type IdentifierError struct {
	Kind      string // "step" or "cycle"
	ID        string
	FirstLine int
	Line      int
}

func (e *IdentifierError) Error() string {
	return fmt.Sprintf("duplicate %s number %s (line %d and line %d)", e.Kind, e.ID, e.FirstLine, e.Line)
}

func (e *IdentifierError) Unwrap() error { return ErrDuplicateIdentifier }
