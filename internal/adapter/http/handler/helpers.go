package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/iho/fintrack/internal/adapter/http/dto"
	"github.com/iho/fintrack/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// decodeJSON decodes the request body into dst and writes the error response
// itself when decoding fails.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large", err.Error())
		return false
	}
	writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
	return false
}

// writeDomainError logs a failed computation and writes the mapped response.
func writeDomainError(w http.ResponseWriter, r *http.Request, message string, err error) {
	status := mapDomainError(err)
	if status >= http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg(message)
	}
	writeError(w, status, message, err.Error())
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrScheduleMismatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrTooManyPayments):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrNegativePayment),
		errors.Is(err, domain.ErrNegativeTarget),
		errors.Is(err, domain.ErrInvalidSchedule),
		errors.Is(err, domain.ErrPeriodNotFound),
		errors.Is(err, domain.ErrInvalidScheduleInput),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAmountTooLarge),
		errors.Is(err, domain.ErrInvalidTitle),
		errors.Is(err, domain.ErrUnknownFrequency),
		errors.Is(err, domain.ErrInvalidCount),
		errors.Is(err, domain.ErrUnknownTransactionType):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
