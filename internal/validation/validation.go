// Package validation wraps go-playground/validator with the postcode rules
// used by request payloads.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dukerupert/ukpostcode/internal/domain"
	"github.com/dukerupert/ukpostcode/internal/postcode"
)

// TagPostcode is the struct tag for UK postcode fields.
const TagPostcode = "uk_postcode"

var validate = New()

// New returns a validator with the uk_postcode rule registered. Field names
// in errors come from json tags.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	// Registration only fails for an empty tag or nil func.
	if err := v.RegisterValidation(TagPostcode, isPostcode); err != nil {
		panic(err)
	}
	return v
}

func isPostcode(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	return postcode.IsValid(field.String())
}

// Struct validates s with the shared validator. Rule failures come back as a
// *domain.ValidationError keyed by json field name.
func Struct(op string, s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.Internal(err, op, "validation failed")
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = message(fe)
	}
	return &domain.ValidationError{Op: op, Fields: fields}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case TagPostcode:
		return "must be a valid UK postcode"
	case "min":
		return "must have at least " + fe.Param() + " " + unit(fe)
	case "max":
		return "must have at most " + fe.Param() + " " + unit(fe)
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

func unit(fe validator.FieldError) string {
	switch fe.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return "items"
	default:
		return "characters"
	}
}
