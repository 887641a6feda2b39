package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller is not allowed to act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidSplit indicates an empty or malformed participant set for a split.
var ErrInvalidSplit = errors.New("invalid split")

// ErrSplitMismatch indicates that split inputs do not add up to the expected total.
var ErrSplitMismatch = errors.New("split mismatch")

// ErrInvalidAmount indicates a negative or zero total, or a non-positive share input.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrUnknownCurrency indicates a currency with no usable rate in the rate table.
var ErrUnknownCurrency = errors.New("unknown currency")

// SplitMismatchError reports the total the caller supplied so it can be shown back
// to the user next to the value it should have matched.
type SplitMismatchError struct {
	Total    decimal.Decimal // what the inputs summed to
	Expected decimal.Decimal
	Unit     string // "%" for percentage splits, a currency code for exact splits
}

func (e *SplitMismatchError) Error() string {
	return fmt.Sprintf("%s: inputs sum to %s%s, expected %s%s",
		ErrSplitMismatch.Error(), e.Total.String(), e.Unit, e.Expected.String(), e.Unit)
}

// Is lets errors.Is(err, ErrSplitMismatch) match.
func (e *SplitMismatchError) Is(target error) bool {
	return target == ErrSplitMismatch
}

// AppError carries an HTTP-ish status code alongside the underlying cause.
// Repositories use it for infrastructure failures.
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

// NewAppError wraps err with a status code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an error matching ErrNotFound.
func NewNotFoundError(message string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, message)
}

// NewValidationError returns an error matching ErrValidation.
func NewValidationError(message string) error {
	return fmt.Errorf("%w: %s", ErrValidation, message)
}
