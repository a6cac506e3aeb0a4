// Package responses contains small helpers for writing JSON HTTP responses.
package responses

import (
	"encoding/json"
	"log"
	"net/http"
)

// JSON writes data as a JSON response with the given status code. Encoding
// failures are logged instead of panicking; at that point the status line is
// already on the wire, so the fallback body is best effort.
func JSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("error encoding JSON response: %v", err)
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response carrying a single message.
func Error(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, struct {
		Message string `json:"message"`
	}{
		Message: message,
	})
}

// ErrorWithDetails writes a JSON error response with a message and extra
// context, typically input validation results.
func ErrorWithDetails(w http.ResponseWriter, statusCode int, message string, details any) {
	JSON(w, statusCode, struct {
		Message string `json:"message"`
		Details any    `json:"details,omitempty"`
	}{
		Message: message,
		Details: details,
	})
}
