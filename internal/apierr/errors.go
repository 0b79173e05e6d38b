// internal/apierr/errors.go
package apierr

import (
	"errors"
	"fmt"
	"time"
)

// Input validation errors (400)
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidDateRange = errors.New("check-out must be after check-in")
	ErrInvalidGuestCount = errors.New("guest count exceeds cabin capacity")
	ErrMissingField     = errors.New("required field is missing")
)

// Not-found errors (404)
var (
	ErrCabinNotFound      = errors.New("cabin not found")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrHoldNotFound       = errors.New("hold not found")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrConversationNotFound = errors.New("conversation not found")
)

// Conflict errors (409) — the hold/booking concurrency taxonomy.
var (
	ErrHoldAlreadyExists = errors.New("a hold already exists for this date range")
	ErrCabinOnHold       = errors.New("cabin is currently on hold for these dates")
	ErrCabinBusy         = errors.New("cabin is already booked for these dates")
	ErrHoldMismatch      = errors.New("hold does not match the booking request")
	ErrHoldExpired       = errors.New("hold has expired")
)

// HoldConflict wraps ErrHoldAlreadyExists with the expiry of the hold that
// already occupies the key, per spec.md Testable Property #9.
type HoldConflict struct {
	ExpiresAt time.Time
}

func (e *HoldConflict) Error() string {
	return ErrHoldAlreadyExists.Error()
}

func (e *HoldConflict) Unwrap() error {
	return ErrHoldAlreadyExists
}

// Upstream dependency errors (503)
var (
	ErrCalendarUnreachable = errors.New("calendar service unreachable")
	ErrCalendarForbidden   = errors.New("calendar service rejected the request")
	ErrCalendarNotFound    = errors.New("calendar event not found")
	ErrLockStoreUnavailable = errors.New("lock store unavailable")
	ErrPaymentGatewayUnavailable = errors.New("payment gateway unavailable")
)

// Code is a stable machine-readable error identifier returned to API clients.
type Code string

const (
	CodeInvalidInput         Code = "INVALID_INPUT"
	CodeNotFound             Code = "NOT_FOUND"
	CodeConflict             Code = "CONFLICT"
	CodeDependencyUnavailable Code = "DEPENDENCY_UNAVAILABLE"
	CodeInternal             Code = "INTERNAL"
)

// APIError is the typed error surfaced through HTTP handlers. Status is the
// HTTP status code to write; Code is the stable identifier; Err is the
// underlying sentinel or wrapped cause.
type APIError struct {
	Status  int
	Code    Code
	Err     error
	Details interface{}
}

func (e *APIError) Error() string {
	if e.Err == nil {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func newAPIError(status int, code Code, err error) *APIError {
	return &APIError{Status: status, Code: code, Err: err}
}

func InvalidInput(err error) *APIError {
	return newAPIError(400, CodeInvalidInput, err)
}

func NotFound(err error) *APIError {
	return newAPIError(404, CodeNotFound, err)
}

func Conflict(err error) *APIError {
	return newAPIError(409, CodeConflict, err)
}

// ConflictWithDetails is Conflict plus a machine-readable details payload
// (e.g. the expiry of the hold that caused the conflict).
func ConflictWithDetails(err error, details interface{}) *APIError {
	apiErr := newAPIError(409, CodeConflict, err)
	apiErr.Details = details
	return apiErr
}

func DependencyUnavailable(err error) *APIError {
	return newAPIError(503, CodeDependencyUnavailable, err)
}

func Internal(err error) *APIError {
	return newAPIError(500, CodeInternal, err)
}

// Classify maps a plain error (typically from a lower layer) onto the
// taxonomy above, defaulting to an internal error when nothing matches.
func Classify(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var holdConflict *HoldConflict
	if errors.As(err, &holdConflict) {
		return ConflictWithDetails(err, map[string]interface{}{"expires_at": holdConflict.ExpiresAt})
	}

	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidDateRange),
		errors.Is(err, ErrInvalidGuestCount), errors.Is(err, ErrMissingField):
		return InvalidInput(err)

	case errors.Is(err, ErrCabinNotFound), errors.Is(err, ErrBookingNotFound),
		errors.Is(err, ErrHoldNotFound), errors.Is(err, ErrCustomerNotFound),
		errors.Is(err, ErrConversationNotFound):
		return NotFound(err)

	case errors.Is(err, ErrHoldAlreadyExists), errors.Is(err, ErrCabinOnHold),
		errors.Is(err, ErrCabinBusy), errors.Is(err, ErrHoldMismatch),
		errors.Is(err, ErrHoldExpired):
		return Conflict(err)

	case errors.Is(err, ErrCalendarUnreachable), errors.Is(err, ErrCalendarForbidden),
		errors.Is(err, ErrCalendarNotFound), errors.Is(err, ErrLockStoreUnavailable),
		errors.Is(err, ErrPaymentGatewayUnavailable):
		return DependencyUnavailable(err)

	default:
		return Internal(err)
	}
}
