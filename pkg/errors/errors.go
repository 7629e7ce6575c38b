// Package errors defines the coded errors shared by the chartkit CLI
// and HTTP service.
//
// Every failure that crosses a package boundary carries a [Code], a
// stable machine-readable tag. Outer layers branch on the code instead
// of matching message text: the CLI picks its exit message with it, the
// HTTP handlers map it onto a status. Codes survive ordinary wrapping,
// so [Is] still answers after any number of fmt.Errorf("%w") hops.
//
//	err := errors.New(errors.ErrCodeInvalidKind, "unknown chart kind %q", kind)
//
//	if errors.Is(err, errors.ErrCodeInvalidKind) {
//		// reject the definition
//	}
//
// Definition validation reports every rejected field at once through
// [ValidationError], which plugs into the same code machinery.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Code is a stable, machine-readable error tag.
type Code string

const (
	// Rejected input: malformed definitions, datasets, and parameters.
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidKind       Code = "INVALID_KIND"
	ErrCodeInvalidDefinition Code = "INVALID_DEFINITION"
	ErrCodeInvalidDataset    Code = "INVALID_DATASET"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeInvalidPalette    Code = "INVALID_PALETTE"
	ErrCodeInvalidSurface    Code = "INVALID_SURFACE"
	ErrCodeInvalidPath       Code = "INVALID_PATH"

	// Missing resources.
	ErrCodeNotFound      Code = "NOT_FOUND"
	ErrCodeChartNotFound Code = "CHART_NOT_FOUND"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"

	// Backend failures.
	ErrCodeStore Code = "STORE_ERROR"
	ErrCodeCache Code = "CACHE_ERROR"

	// Everything else.
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error pairs a code with a formatted message and an optional cause.
// Construct with [New] or [Wrap].
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	s := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

// Unwrap exposes the cause to stdlib errors traversal.
func (e *Error) Unwrap() error { return e.Cause }

// New builds a coded error from a format string.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds a coded error around cause. The cause stays reachable
// through errors.Is and errors.As.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	err := New(code, format, args...)
	err.Cause = cause
	return err
}

// coder is satisfied by error types that report their own code, such
// as [ValidationError].
type coder interface{ Code() Code }

// GetCode returns the code of the first coded error in err's chain, or
// the empty string when there is none.
func GetCode(err error) Code {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	var c coder
	if stderrors.As(err, &c) {
		return c.Code()
	}
	return ""
}

// Is reports whether err's chain contains a coded error with the given
// code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// UserMessage returns a coded error's message without the code prefix,
// or err.Error() for everything else.
func UserMessage(err error) string {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// FieldError describes one rejected field of a chart definition.
type FieldError struct {
	Field string // definition path, e.g. "style.palette"
	Rule  string // the violated rule, e.g. "oneof"
	Value any    // the offending value
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s violates %q (got %v)", e.Field, e.Rule, e.Value)
}

// ValidationError collects every rejected field of a definition so one
// failed validation reports them all.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid definition"
	}
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Field
	}
	return fmt.Sprintf("invalid definition: %d field(s) rejected: %s",
		len(e.Fields), strings.Join(names, ", "))
}

// Code marks the error as a definition validation failure.
func (e *ValidationError) Code() Code { return ErrCodeInvalidDefinition }
