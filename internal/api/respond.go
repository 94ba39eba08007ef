package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alexivanou/countrydata-api/internal/apperr"
	"github.com/alexivanou/countrydata-api/internal/model"
	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}

// writeError maps a taxonomy error onto one fixed status code and the
// JSON error envelope
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	status := httpStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", zap.Error(err))
	}
	writeJSON(w, logger, status, model.ErrorResponse{
		Error:   apperr.Kind(err),
		Message: err.Error(),
	})
}

func httpStatus(err error) int {
	switch {
	case errors.Is(err, apperr.ErrUpstreamUnavailable),
		errors.Is(err, apperr.ErrUpstreamMalformed):
		return http.StatusBadGateway
	case errors.Is(err, apperr.ErrNotFound),
		errors.Is(err, apperr.ErrNothingToRender):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrInvalidParameter):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
