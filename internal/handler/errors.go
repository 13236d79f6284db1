package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"blogapi/internal/apperr"
)

// ErrorResponse is the body of every failed request: a single human-readable
// message the client displays directly.
type ErrorResponse struct {
	Message string `json:"message"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Message: message})
}

func WriteSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// WriteServiceError maps a service failure to an HTTP status by its kind.
// Anything outside the taxonomy is a 500 with a generic message.
func WriteServiceError(w http.ResponseWriter, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		WriteError(w, appErr.Message, appErr.Kind.HTTPStatus())
		return
	}

	log.Printf("internal error: %v", err)
	WriteError(w, "Internal server error", http.StatusInternalServerError)
}
