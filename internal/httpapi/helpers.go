package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/harshaakurathi/newMCQ-backend/internal/execution"
	"github.com/harshaakurathi/newMCQ-backend/internal/genai"
	"github.com/harshaakurathi/newMCQ-backend/internal/qbank"
)

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeServiceError maps domain errors to HTTP statuses. Anything unmapped
// is a 500 without the underlying detail.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, qbank.ErrSubjectNotFound),
		errors.Is(err, qbank.ErrTopicNotFound),
		errors.Is(err, qbank.ErrUnitNotFound),
		errors.Is(err, qbank.ErrMCQNotFound),
		errors.Is(err, qbank.ErrNoBaseQuestions):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, qbank.ErrSubjectExists),
		errors.Is(err, qbank.ErrTopicExists),
		errors.Is(err, qbank.ErrUnitExists),
		errors.Is(err, qbank.ErrVersionConflict):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, genai.ErrMalformedContent):
		writeJSON(w, http.StatusBadGateway, errorResponse{
			Error:   "generated content could not be parsed",
			Details: err.Error(),
		})
	case errors.Is(err, genai.ErrProviderFailure):
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "generation provider failed"})
	case errors.Is(err, execution.ErrTimeout):
		writeJSON(w, http.StatusGatewayTimeout, errorResponse{Error: err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		writeJSON(w, http.StatusGatewayTimeout, errorResponse{Error: "request deadline exceeded"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "request failed"})
	}
}

func writeValidationError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: message})
}

// decodeBody parses the JSON request body into dest. A false return means
// the response has already been written.
func decodeBody(w http.ResponseWriter, r *http.Request, dest any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		writeValidationError(w, "invalid JSON body")
		return false
	}
	return true
}

// requireFields checks that every named field is non-blank. Pairs alternate
// field name then value.
func requireFields(w http.ResponseWriter, pairs ...string) bool {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			writeValidationError(w, pairs[i]+" is required")
			return false
		}
	}
	return true
}

func unitRef(subjectName, topicName, unitName string) qbank.UnitRef {
	return qbank.UnitRef{
		Subject: strings.TrimSpace(subjectName),
		Topic:   strings.TrimSpace(topicName),
		Unit:    strings.TrimSpace(unitName),
	}
}
