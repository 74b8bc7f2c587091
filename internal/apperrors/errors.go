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

// ErrInvalidTransition indicates an invoice lifecycle event that is not
// legal from the invoice's current status. Recoverable; surfaced to the
// caller without retry.
var ErrInvalidTransition = errors.New("invalid invoice transition")

// ErrInvoiceClosed indicates an operation attempted against an invoice in a
// terminal status.
var ErrInvoiceClosed = errors.New("invoice is closed")

// ErrAlreadyResolved indicates an overpayment resolution attempted after the
// invoice already left the OVERPAID state.
var ErrAlreadyResolved = errors.New("overpayment already resolved")

// ErrPeriodLocked indicates a posting whose entry date resolves to a locked
// period or a closed fiscal year. Fatal for that posting attempt; never
// silently redirected to another period.
var ErrPeriodLocked = errors.New("accounting period is locked")

// ErrNoOpenPeriod indicates that no accounting period covers the entry date.
var ErrNoOpenPeriod = errors.New("no accounting period covers the entry date")

// ErrUnmappedCategory indicates a posting for an event category with no
// account mapping configured. A configuration error: logged loudly, never
// silently skipped.
var ErrUnmappedCategory = errors.New("no account mapping for event category")

// ErrDuplicatePosting indicates a repeated posting for an already-posted
// (source_type, source_id, category) key. Protective: callers treat it as
// success-with-warning and use the existing entry returned alongside it.
var ErrDuplicatePosting = errors.New("journal entry already posted for source")

// AppError wraps lower-level failures with an internal code and message so
// repositories can attach context without losing the cause.
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

// NewNotFoundError creates an AppError that matches ErrNotFound via errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// IsNotFound reports whether err is, or wraps, ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
