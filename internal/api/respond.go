package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"sales-tracker-go/internal/period"
	"sales-tracker-go/internal/postback"
	"sales-tracker-go/internal/store"

	"go.uber.org/zap"
)

type errorResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Error("Failed to encode response", zap.Error(err))
	}
}

func respondMessage(w http.ResponseWriter, statusCode int, message string) {
	respondJSON(w, statusCode, errorResponse{Message: message})
}

// respondError maps the error taxonomy onto HTTP statuses: validation
// failures are 400, missing records 404, duplicate codes 409 and
// everything else is a storage failure reported as 500 without leaking
// internals.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case isValidationError(err):
		respondMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		respondMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrDuplicateCode):
		respondMessage(w, http.StatusConflict, err.Error())
	default:
		zap.L().Error("Request failed", zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "Internal server error.")
	}
}

func isValidationError(err error) bool {
	return errors.Is(err, period.ErrInvalidPeriod) ||
		errors.Is(err, period.ErrInvalidDateFormat) ||
		errors.Is(err, period.ErrInvalidRange) ||
		errors.Is(err, postback.ErrMissingTransactionId)
}
