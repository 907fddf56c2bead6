package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"fx-rate-service/internal/application/dto"
	"fx-rate-service/internal/domain/entities"
	"fx-rate-service/internal/infrastructure/logging"
)

const (
	codeInvalidBody      = "INVALID_BODY"
	codeInvalidParameter = "INVALID_PARAMETER"
	codeNoRateAvailable  = "NO_RATE_AVAILABLE"
	codeInternal         = "INTERNAL_ERROR"

	maxBodyBytes = 1 << 20
)

// decodeJSON lee el body acotado a maxBodyBytes
func decodeJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dest)
}

// writeJSONResponse writes a JSON response preserving the request context for logs
func writeJSONResponse(ctx context.Context, w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.ErrorWithError(ctx, "Failed to encode JSON response", err, logging.Fields{
			"status_code": statusCode,
		})
	}
}

func writeErrorResponse(ctx context.Context, w http.ResponseWriter, statusCode int, errorCode, message string) {
	writeJSONResponse(ctx, w, statusCode, dto.NewErrorResponseWithCode(errorCode, message, strconv.Itoa(statusCode)))
}

// writeServiceError mapea errores del orquestador: entrada inválida 400, sin tasa 503, resto 500
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entities.ErrInvalidCurrency), errors.Is(err, entities.ErrInvalidAmount):
		writeErrorResponse(ctx, w, http.StatusBadRequest, codeInvalidParameter, err.Error())
	case errors.Is(err, entities.ErrNoRateAvailable):
		writeErrorResponse(ctx, w, http.StatusServiceUnavailable, codeNoRateAvailable, err.Error())
	default:
		logging.ErrorWithError(ctx, "Unexpected error serving FX request", err, nil)
		writeErrorResponse(ctx, w, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}
