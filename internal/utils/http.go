package utils

import (
	"encoding/json"
	"net/http"
)

// WriteJSON encodes v with the given status. Encoding failures after the
// header is written can only be logged by the caller, so they are ignored.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteError emits the uniform failure envelope used across the API.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]any{
		"success": false,
		"message": message,
	})
}
