package invoice

import (
	"errors"
	"fmt"
)

// Invoice domain errors.
var (
	// ErrNoSelection is returned when an invoice cannot be bound to a
	// customer account: either no accounts are registered at all, or the
	// referenced account does not exist. Interactive selection may re-prompt;
	// programmatic selection fails immediately.
	ErrNoSelection = errors.New("no customer account selected")
)

// ImportError identifies the row and field that failed a bulk entry import.
// Any malformed row fails the whole import; no entries are kept from a
// partially-read source.
type ImportError struct {
	// Row is the 1-based row number in the source, counting the header.
	Row int

	// Field names the offending column (e.g. "rate", "quantity").
	Field string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ImportError) Error() string {
	return fmt.Sprintf("import: row %d: bad %s: %v", e.Row, e.Field, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ImportError) Unwrap() error {
	return e.Err
}
