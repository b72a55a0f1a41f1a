package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse represents the standardized error response format.
type ErrorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, payload any, log *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// The status code is already on the wire; all we can do is log.
		if log != nil {
			log.Error("failed to encode response", "error", err)
		}
	}
}

// WriteError writes a standardized JSON error response.
func WriteError(w http.ResponseWriter, statusCode int, message string, errors []string, log *slog.Logger) {
	WriteJSON(w, statusCode, ErrorResponse{Message: message, Errors: errors}, log)
}
