package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/iho/fxreport/internal/adapter/gateway"
	"github.com/iho/fxreport/internal/adapter/http/dto"
	"github.com/iho/fxreport/internal/domain"
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

// mapReportError maps domain and gateway errors to HTTP status codes.
func mapReportError(err error) int {
	var (
		transport *gateway.TransportError
		status    *gateway.StatusError
		app       *gateway.AppError
		norm      *gateway.NormalizeError
	)

	switch {
	case errors.Is(err, domain.ErrEmptySelection),
		errors.Is(err, domain.ErrUnknownChannel),
		errors.Is(err, domain.ErrNoAccounts),
		errors.Is(err, domain.ErrEmptyAccountID):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDetailNotCached):
		return http.StatusNotFound
	case errors.As(err, &app):
		return http.StatusUnprocessableEntity
	case errors.As(err, &transport), errors.As(err, &status):
		return http.StatusBadGateway
	case errors.As(err, &norm):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
