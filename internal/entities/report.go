package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	amlentities "github.com/sand/fraud-analytics-dashboard/backend/internal/aml/entities"
)

// Metrics holds the scalar summary of a ledger. All fields are zero for an
// empty ledger.
type Metrics struct {
	TotalAmount       decimal.Decimal `json:"total_amount"       yaml:"total_amount"`
	TotalTransactions int             `json:"total_transactions" yaml:"total_transactions"`
	FraudTransactions int             `json:"fraud_transactions" yaml:"fraud_transactions"`
	FraudAmount       decimal.Decimal `json:"fraud_amount"       yaml:"fraud_amount"`
	FraudRate         float64         `json:"fraud_rate"         yaml:"fraud_rate"` // percent
	MeanAmount        decimal.Decimal `json:"mean_amount"        yaml:"mean_amount"`

	// Records matching the fraud rule, and the ones among them left unflagged.
	EligibleTransactions int           `json:"eligible_transactions" yaml:"eligible_transactions"`
	MissedEligible       int           `json:"missed_eligible"       yaml:"missed_eligible"`
	RiskBreakdown        RiskBreakdown `json:"risk_breakdown"        yaml:"risk_breakdown"`
}

// RiskBreakdown counts records per risk level.
type RiskBreakdown struct {
	Low    int `json:"low"    yaml:"low"`
	Medium int `json:"medium" yaml:"medium"`
	High   int `json:"high"   yaml:"high"`
}

// DailyFraudPoint is one calendar day of the fraud-rate series.
type DailyFraudPoint struct {
	Date       time.Time `json:"date"        yaml:"date"`
	Count      int       `json:"count"       yaml:"count"`
	FraudCount int       `json:"fraud_count" yaml:"fraud_count"`
	FraudRate  float64   `json:"fraud_rate"  yaml:"fraud_rate"`
}

// DailyFraudSeries is ordered by ascending date.
type DailyFraudSeries []DailyFraudPoint

// Dates returns the series dates formatted as YYYY-MM-DD.
func (s DailyFraudSeries) Dates() []string {
	dates := make([]string, len(s))
	for i, p := range s {
		dates[i] = p.Date.Format(time.DateOnly)
	}
	return dates
}

// Rates returns the fraud rates aligned with Dates.
func (s DailyFraudSeries) Rates() []float64 {
	rates := make([]float64, len(s))
	for i, p := range s {
		rates[i] = p.FraudRate
	}
	return rates
}

// TotalCount sums the per-day transaction counts.
func (s DailyFraudSeries) TotalCount() int {
	total := 0
	for _, p := range s {
		total += p.Count
	}
	return total
}

// AmountDistribution splits ledger amounts by label, in ledger order.
type AmountDistribution struct {
	Legitimate []float64 `json:"legitimate" yaml:"legitimate"`
	Fraudulent []float64 `json:"fraudulent" yaml:"fraudulent"`
}

// RiskRow is the projection of a transaction shown in the top-risk table.
type RiskRow struct {
	Date          time.Time `json:"date"           yaml:"date"`
	TransactionID string    `json:"transaction_id" yaml:"transaction_id"`
	Amount        float64   `json:"amount"         yaml:"amount"`
	Merchant      Merchant  `json:"merchant"       yaml:"merchant"`
	RiskScore     float64   `json:"risk_score"     yaml:"risk_score"`
	IsFraud       bool      `json:"is_fraud"       yaml:"is_fraud"`

	// Rule clauses the record matches.
	Reasons []amlentities.Reason `json:"reasons" yaml:"reasons"`
}

// Aggregates bundles everything derived from a ledger.
type Aggregates struct {
	Metrics      Metrics            `json:"metrics"      yaml:"metrics"`
	Daily        DailyFraudSeries   `json:"daily"        yaml:"daily"`
	Distribution AmountDistribution `json:"distribution" yaml:"distribution"`
	TopRisk      []RiskRow          `json:"top_risk"     yaml:"top_risk"`
}

// Report is one immutable generate-then-aggregate result.
type Report struct {
	ID          uuid.UUID `json:"id"           yaml:"id"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	Seed        uint64    `json:"seed"         yaml:"seed"`
	Ledger      Ledger    `json:"-"            yaml:"-"`
	Aggregates  `yaml:",inline"`
}
