package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	bare := &AppError{Code: ErrCodeNotFound, Message: "candidate not found"}
	if got := bare.Error(); got != "candidate not found" {
		t.Errorf("Error() = %q, want %q", got, "candidate not found")
	}

	wrapped := &AppError{
		Code:    ErrCodeInternal,
		Message: "query failed",
		Cause:   errors.New("connection reset"),
	}
	if got := wrapped.Error(); got != "query failed: connection reset" {
		t.Errorf("Error() = %q, want %q", got, "query failed: connection reset")
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("driver error")
	err := &AppError{Code: ErrCodeConflict, Message: "duplicate", Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is() should reach the cause through Unwrap")
	}

	var target *AppError
	if !errors.As(fmt.Errorf("outer: %w", err), &target) || target.Code != ErrCodeConflict {
		t.Error("errors.As() should recover the AppError through wrapping")
	}
}

func TestCodePredicates(t *testing.T) {
	tests := []struct {
		name      string
		code      ErrorCode
		predicate func(error) bool
	}{
		{name: "not found", code: ErrCodeNotFound, predicate: IsNotFound},
		{name: "conflict", code: ErrCodeConflict, predicate: IsConflict},
		{name: "validation", code: ErrCodeValidation, predicate: IsValidation},
		{name: "foreign key", code: ErrCodeForeignKey, predicate: IsForeignKey},
		{name: "internal", code: ErrCodeInternal, predicate: IsInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := &AppError{Code: tt.code, Message: "boom"}

			if !tt.predicate(appErr) {
				t.Errorf("predicate should match code %q", tt.code)
			}
			// Repositories wrap before returning; the predicates must see
			// through fmt.Errorf.
			if !tt.predicate(fmt.Errorf("list jobs: %w", appErr)) {
				t.Errorf("predicate should match wrapped code %q", tt.code)
			}
			if tt.predicate(errors.New("boom")) {
				t.Error("predicate should not match a plain error")
			}
			if tt.predicate(nil) {
				t.Error("predicate should not match nil")
			}
		})
	}

	other := &AppError{Code: ErrCodeTimeout, Message: "slow"}
	if IsConflict(other) {
		t.Error("IsConflict should not match a timeout error")
	}
}

func TestGetCodeAndField(t *testing.T) {
	appErr := &AppError{Code: ErrCodeValidation, Message: "bad input", Field: "email"}
	wrapped := fmt.Errorf("create candidate: %w", appErr)

	if got := GetCode(wrapped); got != ErrCodeValidation {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeValidation)
	}
	if got := GetField(wrapped); got != "email" {
		t.Errorf("GetField() = %q, want %q", got, "email")
	}

	plain := errors.New("plain")
	if got := GetCode(plain); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
	if got := GetField(plain); got != "" {
		t.Errorf("GetField(plain) = %q, want empty", got)
	}
}
