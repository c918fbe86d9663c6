package handler

// RESPONSE HELPERS:
// writeJSON and writeError standardise how handlers send responses, so every
// error from any endpoint has the same shape:
//
//	{"error": "not_found", "message": "post not found with id abc123"}
//
// This is also the ONE place domain errors become HTTP status codes. The
// service layer returns apperror values with no knowledge of HTTP; the
// mapping lives here so a different transport could map the same errors its
// own way.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Iamdevsuyash/CodeAtlas/internal/apperror"
)

// ErrorResponse is the standard error format returned by all API endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`   // Machine-readable error type (e.g., "not_found")
	Message string `json:"message"` // Human-readable description
}

// writeJSON sends a JSON response with the given status code.
//
// Headers and status MUST be set before the body: the first Write sends
// them, and changes after that are silently ignored.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent — all we can do is log it.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeRawJSON forwards already-encoded JSON (an upstream response body)
// without a decode/re-encode round trip.
func writeRawJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		slog.Error("failed to write JSON response", slog.String("error", err.Error()))
	}
}

// writeError maps a domain error to the appropriate HTTP status and sends it.
//
// errors.As walks the wrap chain (via Unwrap) and extracts the *AppError if
// one is anywhere in it; errors.Is then picks the sentinel to decide the
// status. Anything that isn't an AppError becomes a generic 500 — raw error
// text can contain SQL or file paths and never belongs in a response.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError

	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		errorType := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
			errorType = "validation_error"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
			errorType = "not_found"
		case errors.Is(err, apperror.ErrUnauthorized):
			status = http.StatusUnauthorized
			errorType = "unauthorized"
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusConflict
			errorType = "conflict"
		}

		writeJSON(w, status, ErrorResponse{
			Error:   errorType,
			Message: appErr.Message,
		})
		return
	}

	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}
