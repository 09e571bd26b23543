package usecases

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	amlentities "github.com/sand/fraud-analytics-dashboard/backend/internal/aml/entities"
	amlservices "github.com/sand/fraud-analytics-dashboard/backend/internal/aml/services"
	"github.com/sand/fraud-analytics-dashboard/backend/internal/entities"
	"github.com/sand/fraud-analytics-dashboard/backend/internal/usecases/mocked"
)

var testNow = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestAggregator() *Aggregator {
	return NewAggregator(testLogger(), amlservices.DefaultLocalRules(), time.UTC)
}

func generateLedger(t *testing.T, n int) entities.Ledger {
	t.Helper()

	opts := mocked.DefaultOptions()
	opts.Now = testNow
	g, err := mocked.NewLedgerGenerator(testLogger(), opts)
	require.NoError(t, err)

	ledger, err := g.Generate(n)
	require.NoError(t, err)
	return ledger
}

func at(day, hour int) time.Time {
	return time.Date(2025, time.February, day, hour, 0, 0, 0, time.UTC)
}

func fixtureLedger() entities.Ledger {
	return entities.NewLedger([]entities.Transaction{
		{TransactionID: "TX00000000", Timestamp: at(1, 1), Amount: 100.10, Merchant: entities.MerchantAmazon, Country: entities.CountryUS, RiskScore: 0.12},
		{TransactionID: "TX00000001", Timestamp: at(1, 9), Amount: 20000, Merchant: entities.MerchantApple, Country: entities.CountryDE, IsFraud: true, RiskScore: 0.91},
		{TransactionID: "TX00000002", Timestamp: at(1, 23), Amount: 42.00, Merchant: entities.MerchantUnknown, Country: entities.CountryFR, RiskScore: 0.45},
		{TransactionID: "TX00000003", Timestamp: at(2, 0), Amount: 7000, Merchant: entities.MerchantUber, Country: entities.CountryIN, IsFraud: true, RiskScore: 0.91},
		{TransactionID: "TX00000004", Timestamp: at(3, 12), Amount: 10.55, Merchant: entities.MerchantNetflix, Country: entities.CountryUK, RiskScore: 0.6},
	})
}

func TestMetrics(t *testing.T) {
	metrics := newTestAggregator().Metrics(fixtureLedger())

	assert.True(t, decimal.RequireFromString("27152.65").Equal(metrics.TotalAmount), metrics.TotalAmount.String())
	assert.Equal(t, 5, metrics.TotalTransactions)
	assert.Equal(t, 2, metrics.FraudTransactions)
	assert.True(t, decimal.RequireFromString("27000").Equal(metrics.FraudAmount), metrics.FraudAmount.String())
	assert.InDelta(t, 40.0, metrics.FraudRate, 1e-9)
	assert.True(t, decimal.RequireFromString("5430.53").Equal(metrics.MeanAmount), metrics.MeanAmount.String())

	assert.Equal(t, 3, metrics.EligibleTransactions)
	assert.Equal(t, 1, metrics.MissedEligible)
	assert.Equal(t, entities.RiskBreakdown{Low: 1, Medium: 2, High: 2}, metrics.RiskBreakdown)
}

func TestMetricsMeanIsNotRounded(t *testing.T) {
	ledger := entities.NewLedger([]entities.Transaction{
		{TransactionID: "TX00000000", Timestamp: at(1, 1), Amount: 10, Merchant: entities.MerchantAmazon, Country: entities.CountryUS},
		{TransactionID: "TX00000001", Timestamp: at(1, 2), Amount: 10, Merchant: entities.MerchantAmazon, Country: entities.CountryUS},
		{TransactionID: "TX00000002", Timestamp: at(1, 3), Amount: 10.01, Merchant: entities.MerchantAmazon, Country: entities.CountryUS},
	})

	mean := newTestAggregator().Metrics(ledger).MeanAmount
	assert.False(t, mean.Equal(decimal.RequireFromString("10.00")), mean.String())
	assert.True(t, mean.Round(2).Equal(decimal.RequireFromString("10.00")), mean.String())
	assert.InDelta(t, 30.01/3, mean.InexactFloat64(), 1e-9)
}

func TestMetricsEmptyLedger(t *testing.T) {
	agg := newTestAggregator()
	empty := entities.NewLedger(nil)

	metrics := agg.Metrics(empty)
	assert.True(t, metrics.TotalAmount.IsZero())
	assert.True(t, metrics.FraudAmount.IsZero())
	assert.True(t, metrics.MeanAmount.IsZero())
	assert.Zero(t, metrics.FraudRate)
	assert.Zero(t, metrics.TotalTransactions)

	result := agg.Aggregate(empty, 10)
	assert.Empty(t, result.Daily)
	assert.Empty(t, result.Distribution.Legitimate)
	assert.Empty(t, result.Distribution.Fraudulent)
	assert.NotNil(t, result.TopRisk)
	assert.Empty(t, result.TopRisk)
}

func TestDailySeries(t *testing.T) {
	series := newTestAggregator().DailySeries(fixtureLedger())

	require.Len(t, series, 3)
	assert.Equal(t, []string{"2025-02-01", "2025-02-02", "2025-02-03"}, series.Dates())
	assert.Equal(t, entities.DailyFraudPoint{Date: at(1, 0), Count: 3, FraudCount: 1, FraudRate: 33.33}, series[0])
	assert.Equal(t, entities.DailyFraudPoint{Date: at(2, 0), Count: 1, FraudCount: 1, FraudRate: 100}, series[1])
	assert.Equal(t, entities.DailyFraudPoint{Date: at(3, 0), Count: 1, FraudCount: 0, FraudRate: 0}, series[2])
	assert.Equal(t, []float64{33.33, 100, 0}, series.Rates())
	assert.Equal(t, 5, series.TotalCount())
}

func TestDailySeriesUsesLocation(t *testing.T) {
	tz := time.FixedZone("UTC-5", -5*60*60)
	series := NewAggregator(testLogger(), amlservices.DefaultLocalRules(), tz).DailySeries(fixtureLedger())

	// 02-01 01:00 UTC and 02-02 00:00 UTC fall on the previous local day.
	assert.Equal(t, []string{"2025-01-31", "2025-02-01", "2025-02-03"}, series.Dates())
	assert.Equal(t, 5, series.TotalCount())
}

func TestAmountDistribution(t *testing.T) {
	dist := newTestAggregator().AmountDistribution(fixtureLedger())

	assert.Equal(t, []float64{100.10, 42.00, 10.55}, dist.Legitimate)
	assert.Equal(t, []float64{20000, 7000}, dist.Fraudulent)
}

func TestTopRiskStableOrder(t *testing.T) {
	rows := newTestAggregator().TopRisk(fixtureLedger(), 3)

	require.Len(t, rows, 3)
	assert.Equal(t, "TX00000001", rows[0].TransactionID)
	assert.Equal(t, "TX00000003", rows[1].TransactionID)
	assert.Equal(t, "TX00000004", rows[2].TransactionID)
	assert.Equal(t, entities.RiskRow{
		Date:          at(1, 9),
		TransactionID: "TX00000001",
		Amount:        20000,
		Merchant:      entities.MerchantApple,
		RiskScore:     0.91,
		IsFraud:       true,
		Reasons:       []amlentities.Reason{amlentities.ReasonHighAmount},
	}, rows[0])
	assert.Equal(t, []amlentities.Reason{amlentities.ReasonHighRiskCorridor}, rows[1].Reasons)
	assert.NotNil(t, rows[2].Reasons)
	assert.Empty(t, rows[2].Reasons)

	assert.Len(t, newTestAggregator().TopRisk(fixtureLedger(), 10), 5)
	assert.Empty(t, newTestAggregator().TopRisk(fixtureLedger(), 0))
}

func TestAggregateGeneratedLedger(t *testing.T) {
	ledger := generateLedger(t, 500)
	result := newTestAggregator().Aggregate(ledger, 10)
	metrics := result.Metrics

	require.Equal(t, 500, metrics.TotalTransactions)
	require.Greater(t, metrics.FraudTransactions, 0)
	require.LessOrEqual(t, metrics.FraudTransactions, 500)
	require.InDelta(t, float64(metrics.FraudTransactions)/float64(metrics.TotalTransactions)*100, metrics.FraudRate, 1e-9)
	require.LessOrEqual(t, metrics.FraudTransactions, metrics.EligibleTransactions)
	require.Equal(t, metrics.EligibleTransactions-metrics.FraudTransactions, metrics.MissedEligible)

	require.Equal(t, metrics.TotalTransactions, result.Daily.TotalCount())
	dates := result.Daily.Dates()
	for i := 1; i < len(dates); i++ {
		require.Less(t, dates[i-1], dates[i])
	}

	require.Equal(t, 500, len(result.Distribution.Legitimate)+len(result.Distribution.Fraudulent))
	require.Len(t, result.Distribution.Fraudulent, metrics.FraudTransactions)

	require.Len(t, result.TopRisk, 10)
	included := make(map[string]struct{}, len(result.TopRisk))
	lowest := result.TopRisk[len(result.TopRisk)-1].RiskScore
	for i, row := range result.TopRisk {
		included[row.TransactionID] = struct{}{}
		if row.IsFraud {
			require.NotEmpty(t, row.Reasons, row.TransactionID)
		}
		if i > 0 {
			require.GreaterOrEqual(t, result.TopRisk[i-1].RiskScore, row.RiskScore)
		}
	}
	for _, tx := range ledger.Records() {
		if _, ok := included[tx.TransactionID]; !ok {
			require.LessOrEqual(t, tx.RiskScore, lowest)
		}
	}
}

func TestTopRiskSmallLedger(t *testing.T) {
	ledger := generateLedger(t, 4)
	rows := newTestAggregator().TopRisk(ledger, 10)
	require.Len(t, rows, 4)
}
