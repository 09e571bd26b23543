package usecases

import (
	"cmp"
	"log/slog"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"

	amlentities "github.com/sand/fraud-analytics-dashboard/backend/internal/aml/entities"
	amlservices "github.com/sand/fraud-analytics-dashboard/backend/internal/aml/services"
	"github.com/sand/fraud-analytics-dashboard/backend/internal/core/ports"
	"github.com/sand/fraud-analytics-dashboard/backend/internal/entities"
	"github.com/sand/fraud-analytics-dashboard/backend/internal/shared"
)

var _ ports.Aggregator = (*Aggregator)(nil)

// Aggregator derives dashboard figures from a ledger. It never mutates the
// ledger. Empty ledgers yield zero metrics and empty collections.
type Aggregator struct {
	logger   *slog.Logger
	rules    amlservices.LocalRules
	location *time.Location
}

// NewAggregator creates an aggregator. Calendar days are taken in location,
// UTC when nil.
func NewAggregator(logger *slog.Logger, rules amlservices.LocalRules, location *time.Location) *Aggregator {
	if location == nil {
		location = time.UTC
	}

	return &Aggregator{
		logger:   logger,
		rules:    rules,
		location: location,
	}
}

// Aggregate computes every derived figure in one call.
func (a *Aggregator) Aggregate(ledger entities.Ledger, topK int) entities.Aggregates {
	result := entities.Aggregates{
		Metrics:      a.Metrics(ledger),
		Daily:        a.DailySeries(ledger),
		Distribution: a.AmountDistribution(ledger),
		TopRisk:      a.TopRisk(ledger, topK),
	}

	a.logger.Debug("Aggregated ledger",
		"transactions", result.Metrics.TotalTransactions,
		"fraud", result.Metrics.FraudTransactions,
		"days", len(result.Daily),
		"top_k", len(result.TopRisk))

	return result
}

// Metrics returns the scalar summary. Amounts are exact decimals; rounding is
// left to presentation.
func (a *Aggregator) Metrics(ledger entities.Ledger) entities.Metrics {
	total := decimal.Zero
	fraudTotal := decimal.Zero

	var metrics entities.Metrics
	for _, tx := range ledger.Records() {
		amount := decimal.NewFromFloat(tx.Amount)
		total = total.Add(amount)
		metrics.TotalTransactions++

		if tx.IsFraud {
			metrics.FraudTransactions++
			fraudTotal = fraudTotal.Add(amount)
		}

		if a.rules.EligibleTransaction(tx) {
			metrics.EligibleTransactions++
			if !tx.IsFraud {
				metrics.MissedEligible++
			}
		}

		switch amlentities.LevelForScore(tx.RiskScore) {
		case amlentities.RiskLevelHigh:
			metrics.RiskBreakdown.High++
		case amlentities.RiskLevelMedium:
			metrics.RiskBreakdown.Medium++
		default:
			metrics.RiskBreakdown.Low++
		}
	}

	metrics.TotalAmount = total
	metrics.FraudAmount = fraudTotal
	metrics.FraudRate = shared.Percent(metrics.FraudTransactions, metrics.TotalTransactions)
	metrics.MeanAmount = decimal.Zero
	if metrics.TotalTransactions > 0 {
		metrics.MeanAmount = total.Div(decimal.NewFromInt(int64(metrics.TotalTransactions)))
	}

	return metrics
}

// DailySeries groups the ledger by calendar day and returns one point per day
// in ascending order.
func (a *Aggregator) DailySeries(ledger entities.Ledger) entities.DailyFraudSeries {
	days := make(map[string]*entities.DailyFraudPoint)

	for _, tx := range ledger.Records() {
		local := tx.Timestamp.In(a.location)
		key := local.Format(time.DateOnly)

		point, ok := days[key]
		if !ok {
			point = &entities.DailyFraudPoint{
				Date: time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, a.location),
			}
			days[key] = point
		}

		point.Count++
		if tx.IsFraud {
			point.FraudCount++
		}
	}

	keys := maps.Keys(days)
	slices.Sort(keys)

	series := make(entities.DailyFraudSeries, 0, len(keys))
	for _, key := range keys {
		point := days[key]
		point.FraudRate = shared.Round(shared.Percent(point.FraudCount, point.Count), ports.RatePlaces)
		series = append(series, *point)
	}

	return series
}

// AmountDistribution splits amounts into legitimate and fraudulent, keeping
// ledger order within each side.
func (a *Aggregator) AmountDistribution(ledger entities.Ledger) entities.AmountDistribution {
	dist := entities.AmountDistribution{
		Legitimate: make([]float64, 0, ledger.Len()),
		Fraudulent: make([]float64, 0),
	}

	for _, tx := range ledger.Records() {
		if tx.IsFraud {
			dist.Fraudulent = append(dist.Fraudulent, tx.Amount)
		} else {
			dist.Legitimate = append(dist.Legitimate, tx.Amount)
		}
	}

	return dist
}

// TopRisk returns the k highest-scoring records, highest first, each with the
// rule clauses it matches. Equal scores keep ledger order.
func (a *Aggregator) TopRisk(ledger entities.Ledger, k int) []entities.RiskRow {
	if k <= 0 || ledger.IsEmpty() {
		return []entities.RiskRow{}
	}

	ranked := ledger.Slice()
	slices.SortStableFunc(ranked, func(x, y entities.Transaction) int {
		return cmp.Compare(y.RiskScore, x.RiskScore)
	})

	ranked = ranked[:min(k, len(ranked))]
	rows := make([]entities.RiskRow, len(ranked))
	for i, tx := range ranked {
		rows[i] = entities.RiskRow{
			Date:          tx.Timestamp,
			TransactionID: tx.TransactionID,
			Amount:        tx.Amount,
			Merchant:      tx.Merchant,
			RiskScore:     tx.RiskScore,
			IsFraud:       tx.IsFraud,
			Reasons:       a.rules.Reasons(tx.Amount, tx.Merchant, tx.Country),
		}
	}

	return rows
}
