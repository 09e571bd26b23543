package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/sand/fraud-analytics-dashboard/backend/internal/entities"
	"github.com/sand/fraud-analytics-dashboard/backend/internal/usecases"
)

const (
	defaultPageLimit = 100
	maxPageLimit     = 1000
)

var _ ReportProvider = (*usecases.ReportService)(nil)

// ReportProvider hands out the already built report.
type ReportProvider interface {
	Current() (*entities.Report, error)
}

type HTTPHandler struct {
	logger    *slog.Logger
	reports   ReportProvider
	staticDir string
}

func NewHTTPHandler(logger *slog.Logger, reports ReportProvider, staticDir string) *HTTPHandler {
	return &HTTPHandler{
		logger:    logger,
		reports:   reports,
		staticDir: staticDir,
	}
}

func (h *HTTPHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/healthz", h.Health).Methods("GET")

	// Report
	router.HandleFunc("/api/dashboard", h.GetDashboard).Methods("GET")
	router.HandleFunc("/api/metrics", h.GetMetrics).Methods("GET")
	router.HandleFunc("/api/series/daily", h.GetDailySeries).Methods("GET")
	router.HandleFunc("/api/distribution", h.GetDistribution).Methods("GET")

	// Transactions
	router.HandleFunc("/api/transactions", h.GetTransactions).Methods("GET")
	router.HandleFunc("/api/transactions/top-risk", h.GetTopRisk).Methods("GET")

	// Static files - register last to avoid intercepting other routes.
	if h.staticDir != "" {
		fs := http.FileServer(http.Dir(h.staticDir))
		router.PathPrefix("/").Handler(http.StripPrefix("/", fs))
	}
}

func (h *HTTPHandler) Health(w http.ResponseWriter, _ *http.Request) {
	status := "ok"
	code := http.StatusOK
	if _, err := h.reports.Current(); err != nil {
		status = "building"
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(map[string]string{"status": status}); err != nil {
		h.logger.Error("Error encoding response", "error", err)
	}
}

// GetDashboard returns every figure plus formatted metric cards.
func (h *HTTPHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	report, ok := h.currentReport(w)
	if !ok {
		return
	}
	h.writeJSON(w, report, newDashboardResponse(report))
}

func (h *HTTPHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	report, ok := h.currentReport(w)
	if !ok {
		return
	}
	h.writeJSON(w, report, report.Metrics)
}

// GetDailySeries returns the per-day fraud series in ascending date order.
func (h *HTTPHandler) GetDailySeries(w http.ResponseWriter, r *http.Request) {
	report, ok := h.currentReport(w)
	if !ok {
		return
	}
	h.writeJSON(w, report, report.Daily)
}

func (h *HTTPHandler) GetDistribution(w http.ResponseWriter, r *http.Request) {
	report, ok := h.currentReport(w)
	if !ok {
		return
	}
	h.writeJSON(w, report, report.Distribution)
}

func (h *HTTPHandler) GetTopRisk(w http.ResponseWriter, r *http.Request) {
	report, ok := h.currentReport(w)
	if !ok {
		return
	}
	h.writeJSON(w, report, report.TopRisk)
}

// GetTransactions pages through the ledger with limit and offset.
func (h *HTTPHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", defaultPageLimit)
	if err != nil || limit <= 0 {
		http.Error(w, "Invalid limit", http.StatusBadRequest)
		return
	}
	limit = min(limit, maxPageLimit)

	offset, err := queryInt(r, "offset", 0)
	if err != nil || offset < 0 {
		http.Error(w, "Invalid offset", http.StatusBadRequest)
		return
	}

	report, ok := h.currentReport(w)
	if !ok {
		return
	}

	h.writeJSON(w, report, map[string]any{
		"total":        report.Ledger.Len(),
		"limit":        limit,
		"offset":       offset,
		"transactions": report.Ledger.Window(offset, limit),
	})
}

func (h *HTTPHandler) currentReport(w http.ResponseWriter) (*entities.Report, bool) {
	report, err := h.reports.Current()
	if err != nil {
		if errors.Is(err, usecases.ErrReportNotReady) {
			http.Error(w, "Report is not ready", http.StatusServiceUnavailable)
		} else {
			h.logger.Error("Failed to load report", "error", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return nil, false
	}
	return report, true
}

func (h *HTTPHandler) writeJSON(w http.ResponseWriter, report *entities.Report, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Report-ID", report.ID.String())
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Error encoding response", "error", err, "report_id", report.ID)
	}
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
