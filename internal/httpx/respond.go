// Package httpx writes the JSON response envelope used by every endpoint.
package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/vidstream/vidstream/internal/apperr"
)

// Response is the success envelope.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// ErrorResponse is the failure envelope. Errors holds field-level detail when
// available; it is always present (possibly empty) for programmatic clients.
type ErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

// JSON writes a success envelope with the given status.
func JSON(w http.ResponseWriter, status int, data any, message string) {
	write(w, status, Response{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// Error maps err onto the failure envelope using the apperr taxonomy.
// Untagged errors become a 500 with a generic message.
func Error(w http.ResponseWriter, err error) {
	status := apperr.StatusOf(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
	}
	write(w, status, ErrorResponse{
		StatusCode: status,
		Message:    apperr.MessageOf(err),
		Success:    false,
		Errors:     []string{},
	})
}

func write(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encodeErr := json.NewEncoder(w).Encode(body)
	if encodeErr != nil {
		slog.Error("failed to encode response", "error", encodeErr)
	}
}
