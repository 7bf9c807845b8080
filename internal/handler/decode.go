package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dukerupert/ukpostcode/internal/domain"
)

// DecodeJSON decodes the request body into v. Unknown fields, trailing data
// and malformed JSON are EINVALID; bodies over the MaxBodySize limit are
// ETOOLARGE.
func DecodeJSON(r *http.Request, op string, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return domain.WrapError(err, domain.ETOOLARGE, op, "Request body too large")
		}
		return domain.WrapError(err, domain.EINVALID, op, "Request body must be a single valid JSON object")
	}
	if dec.More() {
		return domain.Invalid(op, "Request body must be a single valid JSON object")
	}
	return nil
}
