package mocked

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/sand/fraud-analytics-dashboard/backend/internal/core/ports"
	"github.com/sand/fraud-analytics-dashboard/backend/internal/entities"
	"github.com/sand/fraud-analytics-dashboard/backend/internal/shared"
)

const (
	transactionIDFormat = "TX%08d"
	userIDFormat        = "USER%d"
)

var _ ports.LedgerGenerator = (*LedgerGenerator)(nil)

// LedgerGenerator synthesizes reproducible transaction ledgers.
type LedgerGenerator struct {
	logger *slog.Logger
	opts   Options

	merchantCDF []float64
}

// NewLedgerGenerator validates opts and returns a generator. When opts.Now is
// zero the current time is captured once here.
func NewLedgerGenerator(logger *slog.Logger, opts Options) (*LedgerGenerator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	return &LedgerGenerator{
		logger:      logger,
		opts:        opts,
		merchantCDF: cumulative(opts.MerchantWeights),
	}, nil
}

// Options returns the effective generator options.
func (g *LedgerGenerator) Options() Options {
	return g.opts
}

// Seed returns the seed every ledger is generated from.
func (g *LedgerGenerator) Seed() uint64 {
	return g.opts.Seed
}

// Generate returns a ledger of n records. The same options and n always
// produce the same ledger.
func (g *LedgerGenerator) Generate(n int) (entities.Ledger, error) {
	if n <= 0 {
		return entities.Ledger{}, fmt.Errorf("%w: got %d", ErrInvalidLedgerSize, n)
	}

	rng := rand.New(rand.NewPCG(g.opts.Seed, g.opts.Seed))

	timestamps := evenlySpaced(g.opts.Now.Add(-g.opts.Window), g.opts.Now, n)

	// Whole columns are drawn one after another in a fixed order.
	amounts := make([]float64, n)
	for i := range amounts {
		amounts[i] = g.drawAmount(rng)
	}

	merchants := make([]entities.Merchant, n)
	for i := range merchants {
		merchants[i] = g.drawMerchant(rng)
	}

	countries := make([]entities.Country, n)
	for i := range countries {
		countries[i] = entities.Countries[rng.IntN(len(entities.Countries))]
	}

	userIDs := make([]string, n)
	for i := range userIDs {
		userIDs[i] = fmt.Sprintf(userIDFormat, g.opts.UserIDMin+rng.IntN(g.opts.UserIDMax-g.opts.UserIDMin))
	}

	flagDraws := uniformColumn(rng, n)
	fraudDraws := uniformColumn(rng, n)
	cleanDraws := uniformColumn(rng, n)

	records := make([]entities.Transaction, n)
	fraudCount := 0
	for i := range records {
		eligible := g.opts.Rules.Eligible(amounts[i], merchants[i], countries[i])
		isFraud, score := g.label(eligible, flagDraws[i], fraudDraws[i], cleanDraws[i])
		if isFraud {
			fraudCount++
		}

		records[i] = entities.Transaction{
			TransactionID: fmt.Sprintf(transactionIDFormat, i),
			Timestamp:     timestamps[i],
			Amount:        amounts[i],
			Merchant:      merchants[i],
			Country:       countries[i],
			UserID:        userIDs[i],
			IsFraud:       isFraud,
			RiskScore:     score,
		}
	}

	g.logger.Info("Generated ledger",
		"count", n,
		"seed", g.opts.Seed,
		"fraud", fraudCount,
		"from", timestamps[0],
		"to", timestamps[n-1])

	return entities.NewLedger(records), nil
}

// label turns the rule outcome and three uniform draws in [0,1) into the final
// fraud label and a score from the band that label owns.
func (g *LedgerGenerator) label(eligible bool, flagDraw, fraudDraw, cleanDraw float64) (bool, float64) {
	isFraud := eligible && flagDraw < g.opts.FlagProbability

	var score float64
	if isFraud {
		score = ports.FraudScoreMin + (ports.FraudScoreMax-ports.FraudScoreMin)*fraudDraw
	} else {
		score = ports.CleanScoreMin + (ports.CleanScoreMax-ports.CleanScoreMin)*cleanDraw
	}

	return isFraud, shared.Round(score, ports.RiskScorePlaces)
}

func (g *LedgerGenerator) drawAmount(rng *rand.Rand) float64 {
	amount := math.Exp(g.opts.AmountMean + g.opts.AmountSigma*rng.NormFloat64())
	return shared.Round(amount, ports.AmountPlaces)
}

func (g *LedgerGenerator) drawMerchant(rng *rand.Rand) entities.Merchant {
	u := rng.Float64()
	for i, edge := range g.merchantCDF {
		if u < edge {
			return entities.Merchants[i]
		}
	}
	return entities.Merchants[len(entities.Merchants)-1]
}

func uniformColumn(rng *rand.Rand, n int) []float64 {
	column := make([]float64, n)
	for i := range column {
		column[i] = rng.Float64()
	}
	return column
}

// cumulative normalizes weights into a cumulative distribution ending at 1.
func cumulative(weights []float64) []float64 {
	total := 0.0
	for _, w := range weights {
		total += w
	}

	cdf := make([]float64, len(weights))
	running := 0.0
	for i, w := range weights {
		running += w / total
		cdf[i] = running
	}
	cdf[len(cdf)-1] = 1

	return cdf
}

// evenlySpaced returns n instants from start to end inclusive. A single
// instant is placed at start.
func evenlySpaced(start, end time.Time, n int) []time.Time {
	out := make([]time.Time, n)
	if n == 1 {
		out[0] = start
		return out
	}

	step := float64(end.Sub(start)) / float64(n-1)
	for i := range out {
		ts := start.Add(time.Duration(math.Round(step * float64(i))))
		if i == n-1 || ts.After(end) {
			ts = end
		}
		out[i] = ts
	}

	return out
}
