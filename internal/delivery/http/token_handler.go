package http

import (
	"encoding/json"
	"net/http"
	"time"

	"scanner-backend/internal/domain"
)

// TokenHandler manages the device tokens push alerts target.
type TokenHandler struct {
	tokenRepo domain.TokenRepository
}

func NewTokenHandler(tokenRepo domain.TokenRepository) *TokenHandler {
	return &TokenHandler{tokenRepo: tokenRepo}
}

type tokenRequest struct {
	Token    string `json:"token"`
	Platform string `json:"platform"`
}

type tokenResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// HandleRegister handles POST /api/tokens.
func (h *TokenHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Token == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "token is required"})
		return
	}
	if req.Platform == "" {
		req.Platform = "android"
	}

	if err := h.tokenRepo.Register(r.Context(), req.Token, req.Platform, time.Now()); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to register token"})
		return
	}

	count, _ := h.tokenRepo.Count(r.Context())
	writeJSON(w, http.StatusOK, tokenResponse{Success: true, Message: "token registered", Count: count})
}

// HandleUnregister handles DELETE /api/tokens.
func (h *TokenHandler) HandleUnregister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Token == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "token is required"})
		return
	}

	if err := h.tokenRepo.Unregister(r.Context(), req.Token); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to unregister token"})
		return
	}

	count, _ := h.tokenRepo.Count(r.Context())
	writeJSON(w, http.StatusOK, tokenResponse{Success: true, Message: "token unregistered", Count: count})
}
