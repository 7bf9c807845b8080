package address

import (
	"context"
	"strings"

	"github.com/dukerupert/ukpostcode/internal/postcode"
)

// BasicValidator performs format validation without external API calls.
// It checks required fields and, for GB addresses, normalizes the postcode.
type BasicValidator struct{}

// NewBasicValidator creates a new basic address validator.
func NewBasicValidator() Validator {
	return &BasicValidator{}
}

// Validate performs basic validation checks on the address.
// Postal codes outside GB are trimmed but their format is not checked.
func (v *BasicValidator) Validate(ctx context.Context, addr Address) (*ValidationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	normalized := trimmed(addr)
	result := &ValidationResult{NormalizedAddress: &normalized}

	required := []requiredField{
		{"address_line1", normalized.AddressLine1},
		{"city", normalized.City},
		{"postal_code", normalized.PostalCode},
		{"country", normalized.Country},
	}
	if normalized.Type == "shipping" {
		required = append(required, requiredField{"full_name", normalized.FullName})
	}
	for _, r := range required {
		if r.value == "" {
			result.Errors = append(result.Errors, ValidationError{Field: r.field, Message: "is required"})
		}
	}

	switch {
	case normalized.PostalCode == "":
	case normalized.Country == CountryGB:
		pc, ok := postcode.TryParse(normalized.PostalCode)
		if !ok {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "postal_code",
				Message: "must be a valid UK postcode",
			})
			break
		}
		normalized.PostalCode = pc.String()
	case normalized.Country != "":
		result.Warnings = append(result.Warnings, "postal code format not checked for country "+normalized.Country)
	}

	result.IsValid = len(result.Errors) == 0
	return result, nil
}

type requiredField struct {
	field string
	value string
}

// trimmed returns addr with surrounding whitespace removed and the country
// code uppercased. "UK" is folded into GB.
func trimmed(addr Address) Address {
	out := Address{
		Type:         strings.ToLower(strings.TrimSpace(addr.Type)),
		FullName:     strings.TrimSpace(addr.FullName),
		Company:      strings.TrimSpace(addr.Company),
		AddressLine1: strings.TrimSpace(addr.AddressLine1),
		AddressLine2: strings.TrimSpace(addr.AddressLine2),
		City:         strings.TrimSpace(addr.City),
		State:        strings.TrimSpace(addr.State),
		PostalCode:   strings.TrimSpace(addr.PostalCode),
		Country:      strings.ToUpper(strings.TrimSpace(addr.Country)),
		Phone:        strings.TrimSpace(addr.Phone),
	}
	if out.Country == "UK" {
		out.Country = CountryGB
	}
	return out
}
