package api

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/ukpostcode/internal/handler"
	"github.com/dukerupert/ukpostcode/internal/middleware"
	"github.com/dukerupert/ukpostcode/internal/postcode"
	"github.com/dukerupert/ukpostcode/internal/telemetry"
	"github.com/dukerupert/ukpostcode/internal/validation"
)

// PostcodeHandler serves postcode parsing endpoints.
type PostcodeHandler struct {
	metrics *telemetry.BusinessMetrics
	logger  *slog.Logger
}

// NewPostcodeHandler creates a new postcode handler. metrics may be nil.
func NewPostcodeHandler(metrics *telemetry.BusinessMetrics, logger *slog.Logger) *PostcodeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostcodeHandler{
		metrics: metrics,
		logger:  logger,
	}
}

// PostcodeResponse is the canonical form of one postcode and its parts.
type PostcodeResponse struct {
	Postcode postcode.Postcode `json:"postcode"`
	Outward  string            `json:"outward"`
	Inward   string            `json:"inward"`
	Area     string            `json:"area"`
}

func newPostcodeResponse(p postcode.Postcode) PostcodeResponse {
	return PostcodeResponse{
		Postcode: p,
		Outward:  p.Outward(),
		Inward:   p.Inward(),
		Area:     p.Area(),
	}
}

// Lookup handles GET /api/postcodes/{postcode}
//
// Response codes:
// - 200 OK: canonical postcode with outward, inward and area
// - 400 Bad Request: the path value is not a valid UK postcode
func (h *PostcodeHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("postcode")
	p, err := postcode.Parse(raw)
	if err != nil {
		h.metrics.RecordLookup("lookup", false, "")
		r = r.WithContext(middleware.WithLogAttrs(r.Context(), "input", raw))
		handler.ErrorResponse(w, r, err)
		return
	}

	h.metrics.RecordLookup("lookup", true, p.Area())
	handler.WriteJSON(w, http.StatusOK, newPostcodeResponse(p))
}

type normalizeRequest struct {
	Postcode string `json:"postcode" validate:"required,uk_postcode"`
}

// Normalize handles POST /api/postcodes/normalize with body {"postcode": "..."}.
// Invalid postcodes are reported as field errors.
func (h *PostcodeHandler) Normalize(w http.ResponseWriter, r *http.Request) {
	const op = "postcode.normalize"

	var req normalizeRequest
	if err := handler.DecodeJSON(r, op, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	if err := validation.Struct(op, req); err != nil {
		h.metrics.RecordLookup("normalize", false, "")
		handler.ErrorResponse(w, r, err)
		return
	}

	// The uk_postcode rule already ran the grammar.
	p := postcode.MustParse(req.Postcode)
	h.metrics.RecordLookup("normalize", true, p.Area())
	handler.WriteJSON(w, http.StatusOK, newPostcodeResponse(p))
}

type batchRequest struct {
	Postcodes []string `json:"postcodes" validate:"required,min=1,max=100,dive,max=32"`
}

// BatchResult reports one input of a batch validation.
type BatchResult struct {
	Input    string             `json:"input"`
	Valid    bool               `json:"valid"`
	Postcode *postcode.Postcode `json:"postcode,omitempty"`
}

// BatchResponse is the body returned by ValidateBatch.
type BatchResponse struct {
	Results []BatchResult `json:"results"`
	Valid   int           `json:"valid"`
	Invalid int           `json:"invalid"`
}

// ValidateBatch handles POST /api/postcodes/validate with body
// {"postcodes": ["...", ...]}. Invalid postcodes are not errors; each result
// carries valid=false and no postcode.
func (h *PostcodeHandler) ValidateBatch(w http.ResponseWriter, r *http.Request) {
	const op = "postcode.validate"

	var req batchRequest
	if err := handler.DecodeJSON(r, op, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	if err := validation.Struct(op, req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	resp := BatchResponse{Results: make([]BatchResult, 0, len(req.Postcodes))}
	for _, raw := range req.Postcodes {
		result := BatchResult{Input: raw}
		p, ok := postcode.TryParse(raw)
		h.metrics.RecordLookup("validate", ok, p.Area())
		if ok {
			result.Valid = true
			result.Postcode = &p
			resp.Valid++
		} else {
			resp.Invalid++
		}
		resp.Results = append(resp.Results, result)
	}

	middleware.GetLogger(r.Context(), h.logger).Debug("batch validated",
		"valid", resp.Valid,
		"invalid", resp.Invalid,
	)
	handler.WriteJSON(w, http.StatusOK, resp)
}
