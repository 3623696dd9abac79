package errors

import (
	"errors"
	"fmt"
)

// ErrorCode classifies an AppError so transport layers can pick a response
// status without inspecting driver errors.
type ErrorCode string

const (
	ErrCodeNotFound   ErrorCode = "not_found"
	ErrCodeConflict   ErrorCode = "conflict"
	ErrCodeValidation ErrorCode = "validation"
	ErrCodeForeignKey ErrorCode = "foreign_key"
	ErrCodeInternal   ErrorCode = "internal"
	ErrCodeTimeout    ErrorCode = "timeout"
	ErrCodeCanceled   ErrorCode = "canceled"
)

// AppError is a classified application error, produced mainly by MapDBError.
// Message is safe to show to a client; Cause keeps the underlying error
// reachable for errors.Is/errors.As.
type AppError struct {
	Code    ErrorCode
	Message string
	// Field names the input field at fault, when one could be determined.
	Field string
	// Cause is the underlying error, if any.
	Cause error
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *AppError) Unwrap() error { return e.Cause }

// isCode reports whether err carries an AppError with the given code
// anywhere in its chain.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsNotFound reports whether err is classified as not-found.
func IsNotFound(err error) bool { return isCode(err, ErrCodeNotFound) }

// IsConflict reports whether err is classified as a uniqueness conflict.
func IsConflict(err error) bool { return isCode(err, ErrCodeConflict) }

// IsValidation reports whether err is classified as invalid input.
func IsValidation(err error) bool { return isCode(err, ErrCodeValidation) }

// IsForeignKey reports whether err is classified as a reference violation.
func IsForeignKey(err error) bool { return isCode(err, ErrCodeForeignKey) }

// IsInternal reports whether err is classified as an internal failure.
func IsInternal(err error) bool { return isCode(err, ErrCodeInternal) }

// GetCode returns the code carried by err, or "" when the chain holds no
// AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetField returns the offending field carried by err, or "" when unknown.
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}
