package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"post-stats-pipeline/internal/model"
	"post-stats-pipeline/internal/pipeline"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error          string                `json:"error"`
	MissingColumns []model.MissingColumn `json:"missingColumns,omitempty"`
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, ErrorResponse{Error: message}, statusCode)
}

func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	writeJSON(w, data, statusCode)
}

func writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("❌ Response encoding failed: %v", err)
	}
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	var (
		parseErr    *model.ParseError
		validErr    *model.ValidationError
		conflictErr *model.MappingConflictError
		persistErr  *model.PersistenceError
	)
	switch {
	case errors.As(err, &parseErr), errors.As(err, &conflictErr):
		return http.StatusBadRequest
	case errors.As(err, &validErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, pipeline.ErrFileNotFound):
		return http.StatusNotFound
	case errors.As(err, &persistErr) && errors.Is(err, model.ErrQuotaExceeded):
		return http.StatusInsufficientStorage
	default:
		return http.StatusInternalServerError
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	resp := ErrorResponse{Error: err.Error()}

	var validErr *model.ValidationError
	if errors.As(err, &validErr) {
		resp.MissingColumns = validErr.Missing
	}
	if status == http.StatusInternalServerError {
		log.Printf("❌ Request failed: %v", err)
	}
	writeJSON(w, resp, status)
}
