// Package postcode implements a validated, normalized UK postcode value.
//
// A Postcode can only be obtained through Parse (or one of its wrappers), so
// every non-zero instance holds a canonical 7-character string: the outward
// code left-justified in four characters followed by the inward code, e.g.
// "M1  1AA", "W1A 1AA", "EC1A1BB".
package postcode

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Postcode is an immutable UK postcode in canonical form.
// The zero value is not a valid postcode; see IsZero.
type Postcode struct {
	value string
}

// Parse validates raw against the UK postcode grammar and returns its
// canonical form. Matching is case-insensitive and the whole string must
// match. On failure the error is a *FormatError matching ErrInvalidFormat.
func Parse(raw string) (Postcode, error) {
	value, ok := normalize(raw)
	if !ok {
		return Postcode{}, &FormatError{Input: raw}
	}
	return Postcode{value: value}, nil
}

// TryParse is Parse without the error: ok is false and p is the zero value
// when raw is not a valid postcode.
func TryParse(raw string) (p Postcode, ok bool) {
	value, ok := normalize(raw)
	if !ok {
		return Postcode{}, false
	}
	return Postcode{value: value}, true
}

// MustParse is like Parse but panics on invalid input.
// Intended for constants and tests.
func MustParse(raw string) Postcode {
	p, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// FromString converts a string to a Postcode. It is Parse under another name.
func FromString(raw string) (Postcode, error) {
	return Parse(raw)
}

// IsValid reports whether raw satisfies the grammar.
func IsValid(raw string) bool {
	_, ok := normalize(raw)
	return ok
}

// String returns the canonical value.
func (p Postcode) String() string {
	return p.value
}

// IsZero reports whether p is the zero value (never produced by a
// successful parse).
func (p Postcode) IsZero() bool {
	return p.value == ""
}

// Equal reports whether p and other hold the same canonical value.
func (p Postcode) Equal(other Postcode) bool {
	return p.value == other.value
}

// EqualString compares the canonical value with s exactly. s is not
// normalized first: "EC1A 1BB" is not equal to the postcode "EC1A1BB".
func (p Postcode) EqualString(s string) bool {
	return p.value == s
}

// Hash returns a hash of the canonical value.
func (p Postcode) Hash() uint64 {
	return xxhash.Sum64String(p.value)
}

// Outward returns the outward code (area and district), e.g. "EC1A".
func (p Postcode) Outward() string {
	if p.IsZero() {
		return ""
	}
	return strings.TrimRight(p.value[:canonicalLength-3], " ")
}

// Inward returns the inward code (sector and unit), e.g. "1BB".
func (p Postcode) Inward() string {
	if p.IsZero() {
		return ""
	}
	return p.value[canonicalLength-3:]
}

// Area returns the postcode area: the leading letters of the outward code,
// e.g. "EC" for "EC1A1BB" and "M" for "M1  1AA". The special code yields "GIR".
func (p Postcode) Area() string {
	outward := p.Outward()
	i := 0
	for i < len(outward) && outward[i] >= 'A' && outward[i] <= 'Z' {
		i++
	}
	return outward[:i]
}
