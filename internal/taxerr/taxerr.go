// Package taxerr implements the typed error taxonomy of spec §7: a closed
// set of semantic error kinds shared by validation, computation, the
// report store, and the resilience primitives, wrapped the way the rest
// of this module wraps errors (fmt.Errorf with %w, errors.Is/As friendly).
package taxerr

import "fmt"

// Kind is one of the closed set of semantic error kinds.
type Kind string

const (
	KindInvalidInput       Kind = "invalid_input"
	KindValidationFailed   Kind = "validation_failed"
	KindComputationError   Kind = "computation_error"
	KindNotFound           Kind = "not_found"
	KindAlreadyExists      Kind = "already_exists"
	KindIntegrityViolation Kind = "integrity_violation"
	KindExternalUnavailable Kind = "external_unavailable"
	KindCircuitOpen        Kind = "circuit_open"
	KindRetryExhausted     Kind = "retry_exhausted"
	KindCancelled          Kind = "cancelled"
)

// Retryable reports whether errors of this kind are, by policy, safe to
// retry. Only ExternalUnavailable is retryable; everything else is a
// structural or terminal condition.
func (k Kind) Retryable() bool {
	return k == KindExternalUnavailable
}

// Error is the concrete error type carried through the pipeline. Path
// identifies the offending field for InvalidInput/ValidationFailed
// (e.g. "income.w2_forms[0].wages"); Code is a short machine token.
type Error struct {
	Kind    Kind
	Path    string
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Path)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is supports errors.Is comparisons against a bare Kind sentinel created
// via New(kind, "").
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New constructs an *Error with no wrapped cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf constructs an *Error with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap constructs an *Error carrying cause as its Unwrap target.
func Wrap(kind Kind, cause error, message string) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// WithPath returns a copy of e with Path set, for attaching a field
// location once it becomes known to the caller.
func (e *Error) WithPath(path string) *Error {
	cp := *e
	cp.Path = path
	return &cp
}

// InvalidInput is a convenience constructor for the most common kind.
func InvalidInput(path, code, message string) *Error {
	return &Error{Kind: KindInvalidInput, Path: path, Code: code, Message: message}
}
