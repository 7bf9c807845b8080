package domain

import (
	"errors"
	"fmt"
	"testing"
)

// codedError stands in for package-level error types such as
// postcode.FormatError.
type codedError struct {
	code string
	msg  string
}

func (e *codedError) Error() string        { return "coded: " + e.msg }
func (e *codedError) ErrorCode() string    { return e.code }
func (e *codedError) ErrorMessage() string { return e.msg }

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "message only",
			err:      &Error{Code: EINVALID, Message: "invalid input"},
			expected: "invalid input",
		},
		{
			name:     "with operation",
			err:      &Error{Code: EINVALID, Op: "postcode.lookup", Message: "invalid input"},
			expected: "postcode.lookup: invalid input",
		},
		{
			name: "with wrapped error",
			err: &Error{
				Code:    EINTERNAL,
				Op:      "address.validate",
				Message: "failed to validate",
				Err:     errors.New("context canceled"),
			},
			expected: "address.validate: failed to validate: context canceled",
		},
		{
			name: "wrapped error without op",
			err: &Error{
				Code:    EINTERNAL,
				Message: "failed to validate",
				Err:     errors.New("context canceled"),
			},
			expected: "failed to validate: context canceled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := &Error{Code: EINTERNAL, Message: "wrapped", Err: underlying}

	if !errors.Is(err, underlying) {
		t.Error("errors.Is should find underlying error")
	}
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil error", err: nil, expected: ""},
		{name: "domain error", err: &Error{Code: EINVALID, Message: "test"}, expected: EINVALID},
		{name: "wrapped domain error", err: fmt.Errorf("wrapped: %w", &Error{Code: ENOTFOUND}), expected: ENOTFOUND},
		{name: "coded error", err: &codedError{code: EINVALID, msg: "bad postcode"}, expected: EINVALID},
		{name: "wrapped coded error", err: fmt.Errorf("decode: %w", &codedError{code: EINVALID}), expected: EINVALID},
		{name: "validation error", err: NewValidationError("op", "postcode", "required"), expected: EINVALID},
		{name: "non-domain error", err: errors.New("some error"), expected: EINTERNAL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorCode(tt.err); got != tt.expected {
				t.Errorf("ErrorCode() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil error", err: nil, expected: ""},
		{name: "domain error with message", err: &Error{Code: EINVALID, Message: "missing postcode"}, expected: "missing postcode"},
		{name: "internal error hides message", err: &Error{Code: EINTERNAL, Message: "dial tcp 10.0.0.1"}, expected: genericMessage},
		{name: "coded error", err: &codedError{code: EINVALID, msg: "bad postcode"}, expected: "bad postcode"},
		{name: "internal coded error hides message", err: &codedError{code: EINTERNAL, msg: "secret"}, expected: genericMessage},
		{name: "non-domain error returns generic message", err: errors.New("detail"), expected: genericMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorMessage(tt.err); got != tt.expected {
				t.Errorf("ErrorMessage() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorOp(t *testing.T) {
	if got := ErrorOp(Invalid("postcode.lookup", "x")); got != "postcode.lookup" {
		t.Errorf("ErrorOp() = %q, want %q", got, "postcode.lookup")
	}
	if got := ErrorOp(errors.New("x")); got != "" {
		t.Errorf("ErrorOp() = %q, want empty", got)
	}
	if got := ErrorOp(nil); got != "" {
		t.Errorf("ErrorOp(nil) = %q, want empty", got)
	}
}

func TestErrorf(t *testing.T) {
	err := Errorf(EINVALID, "postcode.lookup", "unexpected length: %d", 12)

	var domainErr *Error
	if !errors.As(err, &domainErr) {
		t.Fatal("Errorf should return *Error")
	}
	if domainErr.Message != "unexpected length: 12" {
		t.Errorf("Message = %q, want %q", domainErr.Message, "unexpected length: 12")
	}
}

func TestWrapError(t *testing.T) {
	t.Run("wraps non-nil error", func(t *testing.T) {
		underlying := errors.New("boom")
		err := WrapError(underlying, EINTERNAL, "address.validate", "failed")

		if !errors.Is(err, underlying) {
			t.Error("should wrap underlying error")
		}
		if ErrorCode(err) != EINTERNAL {
			t.Errorf("code = %q, want %q", ErrorCode(err), EINTERNAL)
		}
	})

	t.Run("returns nil for nil error", func(t *testing.T) {
		if err := WrapError(nil, EINTERNAL, "test", "test"); err != nil {
			t.Errorf("WrapError(nil) should return nil, got %v", err)
		}
	})
}

func TestValidationError(t *testing.T) {
	t.Run("single field error", func(t *testing.T) {
		err := NewValidationError("address.validate", "postal_code", "postal code is required")

		expected := "address.validate: postal_code: postal code is required"
		if err.Error() != expected {
			t.Errorf("Error() = %q, want %q", err.Error(), expected)
		}
	})

	t.Run("multiple field errors", func(t *testing.T) {
		err := &ValidationError{
			Op:     "address.validate",
			Fields: map[string]string{"country": "is required", "city": "is required"},
		}

		if len(GetValidationFields(err)) != 2 {
			t.Errorf("Fields count = %d, want 2", len(GetValidationFields(err)))
		}
		if err.Error() != "address.validate: validation failed for 2 fields" {
			t.Errorf("Error() = %q", err.Error())
		}
		if !IsValidationError(err) {
			t.Error("IsValidationError should be true")
		}
	})

	t.Run("message omits op", func(t *testing.T) {
		err := &ValidationError{
			Op:     "postcode.normalize",
			Fields: map[string]string{"postcode": "must be a valid UK postcode", "label": "is required"},
		}

		want := "label: is required; postcode: must be a valid UK postcode"
		if got := ErrorMessage(err); got != want {
			t.Errorf("ErrorMessage() = %q, want %q", got, want)
		}
		if got := ErrorMessage(NewValidationError("postcode.normalize", "postcode", "is required")); got != "postcode: is required" {
			t.Errorf("ErrorMessage() = %q", got)
		}
	})

	t.Run("non-validation error has no fields", func(t *testing.T) {
		if fields := GetValidationFields(errors.New("x")); fields != nil {
			t.Errorf("GetValidationFields should return nil, got %v", fields)
		}
	})
}

func TestConvenienceFunctions(t *testing.T) {
	if code := ErrorCode(NotFound("postcode.lookup", "postcode", "M1 1AA")); code != ENOTFOUND {
		t.Errorf("NotFound code = %q, want %q", code, ENOTFOUND)
	}
	if code := ErrorCode(Invalid("postcode.validate", "bad body")); code != EINVALID {
		t.Errorf("Invalid code = %q, want %q", code, EINVALID)
	}
	if code := ErrorCode(Internal(errors.New("x"), "op", "failed")); code != EINTERNAL {
		t.Errorf("Internal code = %q, want %q", code, EINTERNAL)
	}
}
