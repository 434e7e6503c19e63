package websocket

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"scanner-backend/internal/domain"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler streams the latest scan snapshot to connected clients.
type Handler struct {
	repo domain.ScanRepository
	log  *slog.Logger
}

func NewHandler(repo domain.ScanRepository, log *slog.Logger) *Handler {
	return &Handler{repo: repo, log: log}
}

// Handle upgrades the connection, sends the current snapshot right away
// and then pushes the stored snapshot every few seconds. Sending the
// whole snapshot each time keeps clients trivially stateless.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	h.log.Debug("websocket client connected", "remote", r.RemoteAddr)

	if snap := h.repo.Latest(); snap != nil {
		if err := conn.WriteJSON(snap); err != nil {
			return
		}
	}

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			snap := h.repo.Latest()
			if snap == nil {
				continue
			}
			if err := conn.WriteJSON(snap); err != nil {
				h.log.Debug("websocket write failed", "err", err)
				return
			}
		}
	}
}
