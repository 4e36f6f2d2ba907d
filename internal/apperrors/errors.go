// Package apperrors defines the error taxonomy shared by services and handlers.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindAuthenticationRequired Kind = "AUTHENTICATION_REQUIRED"
	KindNotFound               Kind = "NOT_FOUND"
	KindForbidden              Kind = "FORBIDDEN"
	KindValidationFailed       Kind = "VALIDATION_FAILED"
	KindConflict               Kind = "CONFLICT"
	KindRateLimited            Kind = "RATE_LIMITED"
	KindInternal               Kind = "INTERNAL"
)

// FieldError is a single schema violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError carries a stable kind, a client-safe message and an optional cause
// that is only ever logged.
type AppError struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

// HTTPStatus maps the kind to a response status code.
func (e *AppError) HTTPStatus() int {
	return StatusFor(e.Kind)
}

func StatusFor(kind Kind) int {
	switch kind {
	case KindAuthenticationRequired:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindValidationFailed:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Constructors
func New(kind Kind, message string) error {
	return &AppError{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, cause error) error {
	return &AppError{Kind: kind, Message: message, Cause: cause}
}

func Unauthenticated(msg string) error {
	return New(KindAuthenticationRequired, msg)
}

func NotFound(msg string) error {
	return New(KindNotFound, msg)
}

func Forbidden(msg string) error {
	return New(KindForbidden, msg)
}

func Conflict(msg string) error {
	return New(KindConflict, msg)
}

func Internal(msg string, cause error) error {
	return Wrap(KindInternal, msg, cause)
}

// Validation builds a ValidationFailed error. The message defaults to the first field's message.
func Validation(msg string, fields ...FieldError) error {
	if msg == "" && len(fields) > 0 {
		msg = fields[0].Message
	}
	return &AppError{Kind: KindValidationFailed, Message: msg, Fields: fields}
}

// As extracts an *AppError. Any other error is reported as Internal with the
// original error kept as the cause.
func As(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{Kind: KindInternal, Message: "Internal server error", Cause: err}
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}
