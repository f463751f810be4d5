package parser

import (
	"errors"
	"fmt"
)

// ErrUnreadable indicates the upload could not be opened at all: corrupt
// archive, password protection, or an unsupported legacy format.
var ErrUnreadable = errors.New("workbook unreadable")

// ErrResourceLimit indicates the upload exceeded a configured ceiling
// (file size, sheet count, cell count) or ran past the parse deadline.
var ErrResourceLimit = errors.New("resource limit exceeded")

// ParseError is the only error kind the pipeline returns. Everything below
// this level degrades to per-sheet diagnostics or row exclusions instead.
type ParseError struct {
	Kind error // ErrUnreadable or ErrResourceLimit
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match against the kind sentinels.
func (e *ParseError) Is(target error) bool {
	return target == e.Kind
}

func unreadable(msg string, err error) *ParseError {
	return &ParseError{Kind: ErrUnreadable, Msg: msg, Err: err}
}

func resourceLimit(msg string, err error) *ParseError {
	return &ParseError{Kind: ErrResourceLimit, Msg: msg, Err: err}
}

// IsUnreadable reports whether err is a fatal unreadable-workbook error.
func IsUnreadable(err error) bool {
	return errors.Is(err, ErrUnreadable)
}

// IsResourceLimit reports whether err is a fatal resource-ceiling error.
func IsResourceLimit(err error) bool {
	return errors.Is(err, ErrResourceLimit)
}
