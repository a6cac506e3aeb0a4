package busops

import (
	"fmt"
	"net/http"
	"time"

	"github.com/JailtonJunior94/eventkit-go/pkg/responses"
)

// ProblemDetail represents an RFC 7807 Problem Details for HTTP APIs
// response.
type ProblemDetail struct {
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Status    int       `json:"status"`
	Detail    string    `json:"detail"`
	Instance  string    `json:"instance"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}

// writeErrorResponse writes an error response following RFC 7807.
func writeErrorResponse(w http.ResponseWriter, r *http.Request, code int, detail string) {
	requestID, _ := r.Context().Value(requestIDKey).(string)

	responses.JSON(w, code, ProblemDetail{
		Type:      fmt.Sprintf("https://httpstatuses.com/%d", code),
		Title:     statusTitle(code),
		Status:    code,
		Detail:    detail,
		Instance:  r.URL.Path,
		Timestamp: time.Now(),
		RequestID: requestID,
	})
}

// statusTitle returns the human-readable title for the status code.
func statusTitle(code int) string {
	if text := http.StatusText(code); text != "" {
		return text
	}
	return "Error"
}
