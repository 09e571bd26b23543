package handlers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sand/fraud-analytics-dashboard/backend/internal/entities"
)

// MetricCard is one formatted headline figure.
type MetricCard struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// TrendSeries is the daily fraud rate as two aligned sequences.
type TrendSeries struct {
	Dates []string  `json:"dates"`
	Rates []float64 `json:"rates"`
}

// DashboardResponse carries everything the presentation layer renders.
type DashboardResponse struct {
	ReportID     uuid.UUID                   `json:"report_id"`
	GeneratedAt  time.Time                   `json:"generated_at"`
	Cards        []MetricCard                `json:"cards"`
	Metrics      entities.Metrics            `json:"metrics"`
	Trend        TrendSeries                 `json:"trend"`
	Daily        entities.DailyFraudSeries   `json:"daily"`
	Distribution entities.AmountDistribution `json:"distribution"`
	TopRisk      []entities.RiskRow          `json:"top_risk"`
}

var printer = message.NewPrinter(language.English)

func newDashboardResponse(report *entities.Report) DashboardResponse {
	return DashboardResponse{
		ReportID:    report.ID,
		GeneratedAt: report.GeneratedAt,
		Cards:       metricCards(report.Metrics),
		Metrics:     report.Metrics,
		Trend: TrendSeries{
			Dates: report.Daily.Dates(),
			Rates: report.Daily.Rates(),
		},
		Daily:        report.Daily,
		Distribution: report.Distribution,
		TopRisk:      report.TopRisk,
	}
}

func metricCards(m entities.Metrics) []MetricCard {
	return []MetricCard{
		{Label: "Total Amount", Value: formatCurrency(m.TotalAmount)},
		{Label: "Transactions", Value: printer.Sprintf("%d", m.TotalTransactions)},
		{Label: "Fraud Cases", Value: printer.Sprintf("%d", m.FraudTransactions)},
		{Label: "Fraud Amount", Value: formatCurrency(m.FraudAmount)},
		{Label: "Fraud Rate", Value: printer.Sprintf("%.2f%%", m.FraudRate)},
		{Label: "Avg Transaction", Value: formatCurrency(m.MeanAmount)},
	}
}

// formatCurrency renders whole dollars with thousands separators.
func formatCurrency(d decimal.Decimal) string {
	return printer.Sprintf("$%.0f", d.Round(0).InexactFloat64())
}
