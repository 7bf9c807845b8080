package api

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/ukpostcode/internal/address"
	"github.com/dukerupert/ukpostcode/internal/domain"
	"github.com/dukerupert/ukpostcode/internal/handler"
	"github.com/dukerupert/ukpostcode/internal/middleware"
	"github.com/dukerupert/ukpostcode/internal/telemetry"
)

// AddressHandler serves address validation.
type AddressHandler struct {
	validator address.Validator
	metrics   *telemetry.BusinessMetrics
	logger    *slog.Logger
}

// NewAddressHandler creates a new address handler. metrics may be nil.
func NewAddressHandler(validator address.Validator, metrics *telemetry.BusinessMetrics, logger *slog.Logger) *AddressHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AddressHandler{
		validator: validator,
		metrics:   metrics,
		logger:    logger,
	}
}

// Validate handles POST /api/addresses/validate with an address body.
//
// Response codes:
// - 200 OK: ValidationResult, whether or not the address is valid
// - 400 Bad Request: malformed JSON
// - 500 Internal Server Error: the validator failed
func (h *AddressHandler) Validate(w http.ResponseWriter, r *http.Request) {
	const op = "address.validate"

	var addr address.Address
	if err := handler.DecodeJSON(r, op, &addr); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	result, err := h.validator.Validate(r.Context(), addr)
	if err != nil {
		handler.ErrorResponse(w, r, domain.Internal(err, op, "address validation failed"))
		return
	}

	country := addr.Country
	if result.NormalizedAddress != nil {
		country = result.NormalizedAddress.Country
	}
	fields := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		fields = append(fields, e.Field)
	}
	h.metrics.RecordAddress(country, result.IsValid, fields)

	middleware.GetLogger(r.Context(), h.logger).Debug("address validated",
		"country", country,
		"valid", result.IsValid,
		"errors", len(result.Errors),
	)
	handler.WriteJSON(w, http.StatusOK, result)
}
