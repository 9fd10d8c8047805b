// Package apperr defines the error codes shared by the store, the
// operator CLI and the HTTP handlers.
package apperr

import (
	goerrors "errors"
	"fmt"

	"github.com/agilira/go-errors"
)

const (
	ErrCodeUsage       = "EPISOLVE_USAGE"
	ErrCodeValidation  = "EPISOLVE_VALIDATION"
	ErrCodeNotFound    = "EPISOLVE_NOT_FOUND"
	ErrCodeIntegration = "EPISOLVE_INTEGRATION"
	ErrCodeStore       = "EPISOLVE_STORE"
)

// Usage reports a missing or malformed command-line argument.
func Usage(format string, args ...any) error {
	return errors.New(ErrCodeUsage, fmt.Sprintf(format, args...))
}

// Invalid reports a constraint violation on input or stored data.
func Invalid(format string, args ...any) error {
	return errors.New(ErrCodeValidation, fmt.Sprintf(format, args...))
}

// NotFound reports a lookup by id or slug that matched nothing.
func NotFound(format string, args ...any) error {
	return errors.New(ErrCodeNotFound, fmt.Sprintf(format, args...))
}

// Integration wraps a failure of an external side effect (email, CRM).
// Callers log these; they never fail the primary operation.
func Integration(err error, message string) error {
	return errors.Wrap(err, ErrCodeIntegration, message)
}

// Store wraps an unexpected storage failure.
func Store(err error, message string) error {
	return errors.Wrap(err, ErrCodeStore, message)
}

// WrapInvalid wraps err as a validation failure.
func WrapInvalid(err error, message string) error {
	return errors.Wrap(err, ErrCodeValidation, message)
}

// Code returns the code of the outermost coded error in err's chain, or
// "" when err carries none.
func Code(err error) string {
	var coder errors.ErrorCoder
	if goerrors.As(err, &coder) {
		return string(coder.ErrorCode())
	}
	return ""
}

func IsUsage(err error) bool       { return Code(err) == ErrCodeUsage }
func IsValidation(err error) bool  { return Code(err) == ErrCodeValidation }
func IsNotFound(err error) bool    { return Code(err) == ErrCodeNotFound }
func IsIntegration(err error) bool { return Code(err) == ErrCodeIntegration }
