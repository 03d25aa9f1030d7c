// Package apperr provides standardized error types for the application.
// Client code classifies remote API failures into typed kinds so callers
// can decide between fail-soft and fail-loud handling.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind represents the category of error.
type Kind int

const (
	// KindUnknown is the default error kind when none is specified.
	KindUnknown Kind = iota
	// KindUnauthorized indicates the bearer token was rejected or expired.
	KindUnauthorized
	// KindValidation indicates invalid input caught before a request was sent.
	KindValidation
	// KindNotFound indicates the remote resource does not exist.
	KindNotFound
	// KindNetwork indicates the request never produced a response.
	KindNetwork
	// KindServer indicates a non-2xx response from the remote API.
	KindServer
	// KindNormalization indicates an unexpected response shape.
	KindNormalization
)

// Error is a typed error carrying the failure category.
type Error struct {
	Kind    Kind
	Message string
	Op      string // Operation that failed (optional)
	Err     error  // Underlying error (optional)
	Status  int    // HTTP status of the response, when one was received
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates a new error wrapping an existing error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// WithOp returns the error with the operation set.
func (e *Error) WithOp(op string) *Error {
	e.Op = op
	return e
}

// FromStatus classifies a non-2xx HTTP response. The message is the
// server-provided error text when the body carried one.
func FromStatus(status int, message string) *Error {
	kind := KindServer
	switch status {
	case http.StatusUnauthorized:
		kind = KindUnauthorized
	case http.StatusNotFound:
		kind = KindNotFound
	}
	if message == "" {
		message = fmt.Sprintf("request failed with status %d", status)
	}
	return &Error{Kind: kind, Message: message, Status: status}
}

// Convenience constructors for common error types.

// Unauthorized creates an unauthorized error.
func Unauthorized(message string) *Error {
	return New(KindUnauthorized, message)
}

// Validation creates a validation error.
func Validation(message string) *Error {
	return New(KindValidation, message)
}

// Network creates a network error.
func Network(message string, err error) *Error {
	return Wrap(KindNetwork, message, err)
}

// Normalization creates a normalization error.
func Normalization(message string) *Error {
	return New(KindNormalization, message)
}

// GetKind extracts the error kind from an error, unwrapping as needed.
// Returns KindUnknown if no *Error is found in the chain.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is checks if err is an *Error with the given kind.
func Is(err error, kind Kind) bool {
	return GetKind(err) == kind
}
