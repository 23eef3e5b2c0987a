// Package apperr defines the typed errors shared across the travel service.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for propagation and HTTP mapping.
type Kind string

const (
	KindInvalidArgument Kind = "invalid_argument"
	KindDecode          Kind = "decode_error"
	KindUpstream        Kind = "upstream_error"
	KindNotFound        Kind = "not_found"
	KindValidation      Kind = "validation_error"
	KindConflict        Kind = "conflict"
	KindPayment         Kind = "payment_error"
)

// Error is the concrete error type returned by domain and application code.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error { return e.Err }

// NewInvalidArgumentError reports malformed input to a pure function.
func NewInvalidArgumentError(message string) *Error {
	return &Error{Kind: KindInvalidArgument, Message: message}
}

// NewDecodeError reports a malformed encoded polyline.
func NewDecodeError(err error) *Error {
	return &Error{Kind: KindDecode, Message: "malformed polyline", Err: err}
}

// NewUpstreamError reports a failed call to an external capability.
func NewUpstreamError(operation string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: fmt.Sprintf("%s failed", operation), Err: err}
}

// NewNotFoundError reports a missing entity or result.
func NewNotFoundError(entity, id string) *Error {
	if id == "" {
		return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", entity)}
	}
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %s not found", entity, id)}
}

// NewValidationError reports invalid request data.
func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NewConflictError reports a write conflict.
func NewConflictError(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// NewPaymentError reports a failure returned by the payment provider.
func NewPaymentError(err error) *Error {
	return &Error{Kind: KindPayment, Message: "payment provider error", Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
