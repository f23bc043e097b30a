package galaxypdf

import (
	"errors"
	"fmt"
)

// Sentinel errors for the preconditions a workspace action can fail.
var (
	ErrNotPDF           = errors.New("galaxypdf: only PDF files are accepted")
	ErrTooFewFiles      = errors.New("galaxypdf: at least two files are required to merge")
	ErrNoSplitFile      = errors.New("galaxypdf: no file selected to split")
	ErrNoSplitDirective = errors.New("galaxypdf: no page range or per-page option set")
	ErrUnknownFile      = errors.New("galaxypdf: unknown staged file")
	ErrIndexOutOfRange  = errors.New("galaxypdf: index out of range")
)

// ActionError represents a failed workspace action.
// It wraps an underlying error and includes the action name for context.
type ActionError struct {
	Op  string // action name, e.g. "Merge", "AddMergeFiles"
	Err error  // underlying error
}

func (e *ActionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("galaxypdf.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("galaxypdf.%s: unknown error", e.Op)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

func newActionError(op string, err error) *ActionError {
	return &ActionError{Op: op, Err: err}
}
