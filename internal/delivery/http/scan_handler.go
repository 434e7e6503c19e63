package http

import (
	"net/http"
	"strconv"
	"strings"

	"scanner-backend/internal/domain"
	"scanner-backend/internal/usecase"
)

// ScanHandler serves on-demand scans and the latest background snapshot.
type ScanHandler struct {
	uc   *usecase.ScannerUsecase
	repo domain.ScanRepository
}

func NewScanHandler(uc *usecase.ScannerUsecase, repo domain.ScanRepository) *ScanHandler {
	return &ScanHandler{uc: uc, repo: repo}
}

// HandleScan handles GET /api/scan?symbols=BTC,ETH&interval=1h&limit=250.
// Without symbols it discovers the top pairs by quote volume.
func (h *ScanHandler) HandleScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req := usecase.ScanRequest{
		Interval: r.URL.Query().Get("interval"),
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("symbols")); raw != "" {
		req.Symbols = strings.Split(raw, ",")
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 1000 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be in 1..1000"})
			return
		}
		req.Limit = n
	}
	if v := r.URL.Query().Get("top"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 500 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "top must be in 1..500"})
			return
		}
		req.TopN = n
	}

	snap, err := h.uc.Scan(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// HandleLatest handles GET /api/scan/latest, returning the snapshot the
// background loop stored most recently.
func (h *ScanHandler) HandleLatest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap := h.repo.Latest()
	if snap == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no scan has completed yet"})
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
