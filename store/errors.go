package store

import (
	"database/sql"
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Kind classifies a facade failure so callers can report store
// unavailability, policy rejection and validation failure as distinct
// conditions.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindUnauthorized
	KindRateLimited
	KindUnavailable
	KindNotFound
)

type Error struct {
	Kind    Kind
	Message string
	Err     error

	// RetryAfter is set on rate-limited errors only: how long until the
	// caller's window resets.
	RetryAfter time.Duration
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the classification of a facade error, zero for foreign
// errors.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}

func validationError(err error) *Error {
	return &Error{Kind: KindValidation, Message: "validation failed", Err: err}
}

// unauthorizedError is deliberately generic so the response does not leak
// which policy rule was violated.
func unauthorizedError() *Error {
	return &Error{Kind: KindUnauthorized, Message: "operation not permitted"}
}

// RateLimited tags a throttled request with the wait until the caller may
// retry. Exported because throttling happens at the request boundary, before
// any facade operation is invoked.
func RateLimited(retryAfter time.Duration) *Error {
	return &Error{Kind: KindRateLimited, Message: "too many attempts", RetryAfter: retryAfter}
}

func notFoundError(err error) *Error {
	return &Error{Kind: KindNotFound, Message: "record not found", Err: err}
}

func unavailableError(err error) *Error {
	return &Error{Kind: KindUnavailable, Message: "store operation failed", Err: err}
}

// storeError maps an underlying store failure onto the taxonomy: the store's
// own field validation surfaces as a validation error, a missing row as
// not-found, anything else as unavailability.
func storeError(err error) *Error {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		return validationError(err)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return notFoundError(err)
	}
	return unavailableError(err)
}
