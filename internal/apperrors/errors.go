package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the actor is not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrForbiddenState indicates the operation is disallowed by the current
// lifecycle state of the record (e.g. editing a settled title).
var ErrForbiddenState = errors.New("operation not allowed in current state")

// ErrDomain indicates a business rule violation that is not tied to state
// immutability (e.g. settling an already settled title).
var ErrDomain = errors.New("domain rule violation")

// ErrInsufficientBalance indicates a settlement amount exceeding the
// outstanding balance of a title. Surfaced separately from ErrDomain so
// callers can present it distinctly.
var ErrInsufficientBalance = errors.New("settlement amount exceeds outstanding balance")

// ErrConflict indicates the request conflicts with the current state of a resource.
var ErrConflict = errors.New("conflict with current resource state")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code alongside a message and cause.
// Repositories use it to report infrastructure failures without leaking
// driver errors to callers.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
