package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
)

type WebSocketHandler struct {
	logger           *slog.Logger
	reports          ReportProvider
	websocketManager *Manager
}

func NewWebSocketHandler(
	logger *slog.Logger,
	reports ReportProvider,
	websocketManager *Manager,
) *WebSocketHandler {
	return &WebSocketHandler{
		logger:           logger,
		reports:          reports,
		websocketManager: websocketManager,
	}
}

func (h *WebSocketHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/ws/dashboard", h.HandleConnection)
}

// HandleConnection sends the dashboard snapshot once and holds the connection
// until the client goes away. The report never changes, so nothing else is
// pushed.
func (h *WebSocketHandler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	report, err := h.reports.Current()
	if err != nil {
		http.Error(w, "Report is not ready", http.StatusServiceUnavailable)
		return
	}

	conn, err := h.websocketManager.Upgrade(w, r)
	if err != nil {
		h.logger.Error("Error upgrading connection", "error", err)
		return
	}
	defer h.websocketManager.Release(conn)

	h.logger.Info("New WebSocket connection", "report_id", report.ID, "remote", r.RemoteAddr)

	if err = conn.WriteJSON(newDashboardResponse(report)); err != nil {
		h.logger.Error("Error sending dashboard snapshot", "error", err)
		return
	}

	for {
		if _, _, readErr := conn.ReadMessage(); readErr != nil {
			h.logger.Debug("WebSocket connection closed", "error", readErr)
			return
		}
	}
}
