// ABOUTME: JSON error response helper shared by middleware and API handlers
// ABOUTME: Uses the { message } body the dashboard client reads on failure

package middleware

import (
	"encoding/json"
	"net/http"
)

// WriteJSONError writes {"message": ...} with the given status code.
func WriteJSONError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(struct {
		Message string `json:"message"`
	}{
		Message: message,
	})
}
