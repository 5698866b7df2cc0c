// Package response writes the JSON envelopes shared by every endpoint:
// {"data": ...} on success and {"errors": "..."} on failure.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/isdelr/contact-book-be/internal/apierror"
	"github.com/rs/zerolog/log"
)

// Envelope wraps a successful payload.
type Envelope struct {
	Data interface{} `json:"data"`
}

// ErrorEnvelope wraps a failure message.
type ErrorEnvelope struct {
	Errors string `json:"errors"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// Data writes {"data": v}.
func Data(w http.ResponseWriter, status int, v interface{}) {
	JSON(w, status, Envelope{Data: v})
}

// OK writes {"data": "OK"}.
func OK(w http.ResponseWriter) {
	Data(w, http.StatusOK, "OK")
}

// Error renders err. An *apierror.Error keeps its status and message; any
// other error is logged and reported as a 500 without leaking details.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	if apiErr, ok := apierror.As(err); ok {
		JSON(w, apiErr.Status, ErrorEnvelope{Errors: apiErr.Message})
		return
	}

	log.Error().
		Err(err).
		Str("request_id", middleware.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("Unhandled request error")
	JSON(w, http.StatusInternalServerError, ErrorEnvelope{Errors: "Internal server error"})
}
