package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/ukpostcode/internal/domain"
	"github.com/dukerupert/ukpostcode/internal/validation"
)

type lookupRequest struct {
	Postcode string `json:"postcode" validate:"required,uk_postcode"`
	Label    string `json:"label,omitempty" validate:"max=10"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name   string
		req    lookupRequest
		fields map[string]string
	}{
		{
			name: "valid postcode",
			req:  lookupRequest{Postcode: "EC1A 1BB"},
		},
		{
			name: "valid lowercase postcode",
			req:  lookupRequest{Postcode: "m1 1aa"},
		},
		{
			name:   "missing postcode",
			req:    lookupRequest{},
			fields: map[string]string{"postcode": "is required"},
		},
		{
			name:   "invalid postcode",
			req:    lookupRequest{Postcode: "Q1 1AA"},
			fields: map[string]string{"postcode": "must be a valid UK postcode"},
		},
		{
			name:   "multiple failures",
			req:    lookupRequest{Postcode: "12345", Label: "far too long label"},
			fields: map[string]string{"postcode": "must be a valid UK postcode", "label": "must have at most 10 characters"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Struct("postcode.validate", tt.req)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, domain.IsValidationError(err))
			assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
			assert.Equal(t, tt.fields, domain.GetValidationFields(err))
		})
	}
}

type batchRequest struct {
	Postcodes []string `json:"postcodes" validate:"required,min=1,max=2,dive,max=8"`
}

func TestStruct_Slice(t *testing.T) {
	err := validation.Struct("postcode.batch", batchRequest{Postcodes: []string{"a", "b", "c"}})
	assert.Equal(t, map[string]string{"postcodes": "must have at most 2 items"}, domain.GetValidationFields(err))

	err = validation.Struct("postcode.batch", batchRequest{Postcodes: []string{}})
	assert.Equal(t, map[string]string{"postcodes": "must have at least 1 items"}, domain.GetValidationFields(err))

	err = validation.Struct("postcode.batch", batchRequest{Postcodes: []string{"M1 1AA", "much too long"}})
	assert.Equal(t, map[string]string{"postcodes[1]": "must have at most 8 characters"}, domain.GetValidationFields(err))
}

func TestNew_PostcodeTag(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Var("W1A 1HQ", validation.TagPostcode))
	assert.NoError(t, v.Var("GIR 0AA", validation.TagPostcode))
	assert.Error(t, v.Var("V1 1AA", validation.TagPostcode))
	assert.Error(t, v.Var(12345, validation.TagPostcode))
}
