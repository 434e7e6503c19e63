package http

import (
	"net/http"
	"strconv"
	"strings"

	"scanner-backend/internal/domain"
	"scanner-backend/internal/usecase"
)

// StrategyHandler serves the fixed strategy views.
type StrategyHandler struct {
	uc *usecase.ScannerUsecase
}

func NewStrategyHandler(uc *usecase.ScannerUsecase) *StrategyHandler {
	return &StrategyHandler{uc: uc}
}

// Handle serves GET /api/strategy/{name}. Thresholds come from query
// parameters; anything unset keeps the strategy defaults.
func (h *StrategyHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := domain.StrategyName(strings.TrimPrefix(r.URL.Path, "/api/strategy/"))
	cfg := usecase.DefaultStrategyConfig()

	q := r.URL.Query()
	if v := q.Get("minVolume"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.MinQuoteVolume = f
		}
	}
	if v := q.Get("minChange"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.MinChangePercent = f
		}
	}
	if v := q.Get("maxChange"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.MaxChangePercent = f
		}
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			cfg.Limit = n
		}
	}
	if v := q.Get("includeLeveraged"); v == "true" {
		cfg.ExcludeLeveraged = false
	}
	cfg.Mode = q.Get("mode")

	result, err := h.uc.RunStrategy(r.Context(), name, cfg)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
