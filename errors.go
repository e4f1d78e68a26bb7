package reluri

import (
	"fmt"

	"braces.dev/errtrace"

	"github.com/ghettovoice/reluri/internal/errorutil"
	"github.com/ghettovoice/reluri/internal/grammar"
)

// Error is a sentinel error type.
type Error = errorutil.Error

const (
	// ErrUnexpectedScheme is returned when the input starts with a scheme.
	ErrUnexpectedScheme Error = "unexpected scheme"
	// ErrUnexpectedAuthority is returned when the input starts with an authority ("//host").
	ErrUnexpectedAuthority Error = "unexpected authority"
	// ErrMalformedInput is returned when the input breaks the URI grammar.
	ErrMalformedInput = grammar.ErrMalformedInput
)

// ParseError describes a failure to parse a relative URI reference.
// The Err field holds one of the sentinel errors, optionally wrapping the cause.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("parse relative URI %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Grammar marks the error as a grammar error.
func (*ParseError) Grammar() bool { return true }

func newParseError(input string, sentinel error, args ...any) error {
	return errtrace.Wrap(&ParseError{Input: input, Err: errorutil.NewWrapperError(sentinel, args...)})
}
