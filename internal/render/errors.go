package render

import (
	"errors"
	"fmt"
)

// Document generation errors.
var (
	// ErrEmptyInvoice is returned when generation is attempted for an
	// invoice with no entries. The invoice stays open; add entries and retry.
	ErrEmptyInvoice = errors.New("invoice has no entries")

	// ErrWorkspaceConflict is returned when the temporary workspace already
	// exists, which signals an unclean prior run. It is never auto-recovered:
	// stale fragments must not leak into a new document, so the operator has
	// to remove the directory by hand.
	ErrWorkspaceConflict = errors.New("temporary workspace already exists")

	// ErrRenderFailed is returned when the external renderer exits non-zero
	// or exceeds its time bound.
	ErrRenderFailed = errors.New("external renderer failed")

	// ErrArtifactMissing is returned when the renderer finished but the
	// expected output artifact is not in the workspace.
	ErrArtifactMissing = errors.New("renderer produced no output artifact")
)

// PipelineError wraps errors with context about which generation step failed.
type PipelineError struct {
	// Op is the operation that failed (e.g. "Generate", "runRenderer").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("render: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("render: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Is implements error matching for Go 1.13+ error handling.
func (e *PipelineError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

func newPipelineError(op string, err error, details string) *PipelineError {
	return &PipelineError{Op: op, Err: err, Details: details}
}
