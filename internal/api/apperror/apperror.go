// Package apperror defines the error taxonomy shared by repositories, services and handlers.
package apperror

import (
	"errors"
	"fmt"
)

// Kinds. Match with errors.Is.
var (
	ErrNotFound            = errors.New("not found")
	ErrValidation          = errors.New("validation failure")
	ErrConflict            = errors.New("conflict")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrUpstreamRateLimited = errors.New("upstream rate limited")
	ErrMisconfigured       = errors.New("misconfigured")
)

// Error pairs a kind with the message shown to API clients.
type Error struct {
	Kind   error
	Detail string
}

// New returns an *Error of the given kind.
func New(kind error, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// Newf is New with a formatted detail.
func Newf(kind error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.Detail
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// UpstreamError is a failure reported by the market-data provider.
// Detail is either decoded JSON or the raw response text.
type UpstreamError struct {
	StatusCode int
	Detail     interface{}
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream responded %d: %v", e.StatusCode, e.Detail)
}
