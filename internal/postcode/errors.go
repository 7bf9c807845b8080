package postcode

import (
	"errors"
	"fmt"
)

// These mirror domain error codes to avoid an import cycle.
const codeInvalid = "invalid"

// ErrInvalidFormat is matched (via errors.Is) by every parse failure.
var ErrInvalidFormat = errors.New("invalid postcode format")

// FormatError reports input that does not satisfy the postcode grammar.
type FormatError struct {
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("postcode: %v: %q", ErrInvalidFormat, e.Input)
}

// Is makes errors.Is(err, ErrInvalidFormat) true.
func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}

// ErrorCode returns the error code for HTTP status mapping.
func (e *FormatError) ErrorCode() string {
	return codeInvalid
}

// ErrorMessage returns the user-facing message.
func (e *FormatError) ErrorMessage() string {
	return fmt.Sprintf("%q is not a valid UK postcode", e.Input)
}
