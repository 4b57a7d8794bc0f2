package handlers

import (
	"encoding/json"
	"net/http"
	"net/mail"
)

// ErrorResponse is the uniform error body for all endpoints
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// default: Internal server error
	Message string `json:"message"`

	// Validation error details, present on 400 responses only
	Errors []string `json:"errors,omitempty"`
}

func writeError(w http.ResponseWriter, status int, message string, errs ...string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Message: message,
		Errors:  errs,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func lengthBetween(s string, min, max int) bool {
	return len(s) >= min && len(s) <= max
}
