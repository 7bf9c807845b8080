package address

import "context"

// Validator defines the interface for address validation.
// Implementations could call external APIs; BasicValidator checks format only.
type Validator interface {
	// Validate checks if an address is well formed.
	// Returns normalized address if validation succeeds.
	// Even if IsValid is false, NormalizedAddress may contain corrections.
	Validate(ctx context.Context, addr Address) (*ValidationResult, error)
}

// Address represents a physical address for shipping or billing.
type Address struct {
	Type         string `json:"type,omitempty"` // "shipping" or "billing"
	FullName     string `json:"full_name,omitempty"`
	Company      string `json:"company,omitempty"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state,omitempty"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
	Phone        string `json:"phone,omitempty"`
}

// ValidationResult contains the outcome of address validation.
type ValidationResult struct {
	IsValid           bool              `json:"is_valid"`
	NormalizedAddress *Address          `json:"normalized_address,omitempty"`
	Errors            []ValidationError `json:"errors,omitempty"`
	Warnings          []string          `json:"warnings,omitempty"`
}

// ValidationError represents a specific validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// CountryGB is the ISO 3166-1 code for the United Kingdom.
const CountryGB = "GB"
