package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dukerupert/ukpostcode/internal/domain"
	"github.com/dukerupert/ukpostcode/internal/middleware"
)

// errorBody is the JSON error envelope:
// {"error": {"code": "invalid", "message": "...", "fields": {...}}}
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ErrorCodeToHTTPStatus maps domain error codes to HTTP status codes.
func ErrorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest // 400
	case domain.ENOTFOUND:
		return http.StatusNotFound // 404
	case domain.ETOOLARGE:
		return http.StatusRequestEntityTooLarge // 413
	case domain.ERATELIMIT:
		return http.StatusTooManyRequests // 429
	case domain.EINTERNAL:
		return http.StatusInternalServerError // 500
	default:
		return http.StatusInternalServerError // 500
	}
}

// ErrorResponse logs err with the request-scoped logger and writes it to the
// client: JSON when the client accepts it, plain text otherwise.
// Internal error details never reach the client.
func ErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)
	message := domain.ErrorMessage(err)
	status := ErrorCodeToHTTPStatus(code)

	logger := middleware.GetLogger(r.Context())
	attrs := []any{
		"error", err.Error(),
		"code", code,
		"status", status,
	}
	if op := domain.ErrorOp(err); op != "" {
		attrs = append(attrs, "op", op)
	}

	if status >= 500 {
		logger.Error("request failed", attrs...)
	} else {
		logger.Info("request rejected", attrs...)
	}

	if !wantsJSON(r) {
		http.Error(w, message, status)
		return
	}

	WriteJSON(w, status, errorBody{Error: errorDetail{
		Code:    code,
		Message: message,
		Fields:  domain.GetValidationFields(err),
	}})
}

// NotFound answers requests that match no route.
func NotFound(w http.ResponseWriter, r *http.Request) {
	ErrorResponse(w, r, domain.NotFound("router", "route", r.URL.Path))
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func wantsJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	if strings.Contains(accept, "application/json") {
		return true
	}
	if strings.Contains(accept, "text/html") || strings.Contains(accept, "text/plain") {
		return false
	}
	return strings.HasPrefix(r.URL.Path, "/api/")
}
