package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies pipeline errors by how the caller must react to them.
type Kind string

const (
	// KindValidation marks bad input. Fatal, never retried, reported
	// before any network call is made.
	KindValidation Kind = "validation"

	// KindAuth marks an invalid or missing credential. Fatal, never
	// retried. Messages must not contain the credential value.
	KindAuth Kind = "auth"

	// KindTransient marks a network or service hiccup. Eligible for one
	// retry with backoff before becoming fatal.
	KindTransient Kind = "transient"

	// KindPreprocessing marks a failed audio stage. Non-fatal: the
	// pipeline falls back to the pre-stage buffer and records a warning.
	KindPreprocessing Kind = "preprocessing"

	// KindStorage marks a remote backend failure. Flips the storage
	// gateway into local-fallback mode for the rest of the process.
	KindStorage Kind = "storage"
)

// Error is the standardized pipeline error carrying a Kind.
type Error struct {
	kind    Kind
	message string
	cause   error
}

func New(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{kind: kind, message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with a kind and context. Returns nil for a nil cause.
func Wrap(err error, kind Kind, message string) error {
	if err == nil {
		return nil
	}
	return &Error{kind: kind, message: message, cause: err}
}

func Wrapf(err error, kind Kind, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{kind: kind, message: fmt.Sprintf(format, args...), cause: err}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *Error) Kind() Kind { return e.kind }

func (e *Error) Unwrap() error { return e.cause }

// Message returns the error text without the wrapped cause, suitable for
// user-facing rendering.
func (e *Error) Message() string { return e.message }

// KindOf extracts the Kind from err, unwrapping as needed. Errors without
// a Kind report KindTransient so unknown failures stay retryable exactly once.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.kind
	}
	return KindTransient
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return stderrors.As(err, &e) && e.kind == kind
}

// Retryable reports whether err may be retried.
func Retryable(err error) bool {
	return Is(err, KindTransient)
}
