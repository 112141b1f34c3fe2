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

// ErrForbidden indicates that the actor's role does not permit the operation.
var ErrForbidden = errors.New("operation not permitted")

// ErrInsufficientBalance indicates that the affected account cannot fund the
// requested amount.
var ErrInsufficientBalance = errors.New("insufficient balance")

// ErrConflict indicates a concurrent-write conflict was detected. Operations
// hitting it are retried a bounded number of times before it is surfaced.
var ErrConflict = errors.New("concurrent update conflict")

// ErrInternal indicates an unexpected failure in the store or the commit path.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish code and a message alongside the wrapped cause.
// Repositories use it to report store failures without losing the original
// error for errors.Is/As inspection.
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

// NewAppError creates an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
