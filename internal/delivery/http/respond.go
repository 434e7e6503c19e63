package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"scanner-backend/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// writeError maps the domain error taxonomy onto HTTP statuses: invalid
// input is the caller's fault, upstream unavailability is a bad gateway.
func writeError(w http.ResponseWriter, err error) {
	var upstream *domain.UpstreamError
	switch {
	case errors.As(err, &upstream):
		writeJSON(w, http.StatusBadGateway, errorResponse{
			Error:   "market data source unavailable",
			Details: upstream.Error(),
		})
	case errors.Is(err, domain.ErrUnknownStrategy),
		errors.Is(err, domain.ErrNoSymbols),
		errors.Is(err, domain.ErrInvalidInterval):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
