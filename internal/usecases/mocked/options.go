package mocked

import (
	"errors"
	"fmt"
	"math"
	"time"

	amlservices "github.com/sand/fraud-analytics-dashboard/backend/internal/aml/services"
	"github.com/sand/fraud-analytics-dashboard/backend/internal/core/ports"
	"github.com/sand/fraud-analytics-dashboard/backend/internal/entities"
)

var (
	ErrInvalidLedgerSize = errors.New("ledger size must be positive")
	ErrInvalidOptions    = errors.New("invalid generator options")
)

// DefaultMerchantWeights are the draw probabilities aligned with entities.Merchants.
var DefaultMerchantWeights = []float64{0.30, 0.20, 0.15, 0.10, 0.10, 0.05, 0.10}

// Options configures a LedgerGenerator.
type Options struct {
	Seed uint64

	// Now is the end of the timestamp window. Zero means the wall clock at
	// generator construction.
	Now    time.Time
	Window time.Duration

	// Amounts are drawn from exp(N(AmountMean, AmountSigma)).
	AmountMean  float64
	AmountSigma float64

	// User ids are drawn from [UserIDMin, UserIDMax).
	UserIDMin int
	UserIDMax int

	MerchantWeights []float64
	FlagProbability float64
	Rules           amlservices.LocalRules
}

// DefaultOptions returns the options the dashboard runs with.
func DefaultOptions() Options {
	return Options{
		Seed:            ports.DefaultSeed,
		Window:          ports.DefaultWindow,
		AmountMean:      ports.DefaultAmountMean,
		AmountSigma:     ports.DefaultAmountSigma,
		UserIDMin:       ports.DefaultUserIDMin,
		UserIDMax:       ports.DefaultUserIDMax,
		MerchantWeights: DefaultMerchantWeights,
		FlagProbability: ports.FlagProbability,
		Rules:           amlservices.DefaultLocalRules(),
	}
}

// Validate checks the distribution parameters.
func (o Options) Validate() error {
	if o.Window <= 0 {
		return fmt.Errorf("%w: window must be positive, got %s", ErrInvalidOptions, o.Window)
	}
	if !isFinite(o.AmountMean) || !isFinite(o.AmountSigma) || o.AmountSigma < 0 {
		return fmt.Errorf("%w: amount mean %v sigma %v", ErrInvalidOptions, o.AmountMean, o.AmountSigma)
	}
	// The span is checked after subtraction so an overflowing range is rejected too.
	if o.UserIDMax-o.UserIDMin <= 0 {
		return fmt.Errorf("%w: user id range [%d, %d) is empty or too wide", ErrInvalidOptions, o.UserIDMin, o.UserIDMax)
	}
	if o.FlagProbability < 0 || o.FlagProbability > 1 {
		return fmt.Errorf("%w: flag probability %v outside [0, 1]", ErrInvalidOptions, o.FlagProbability)
	}
	if len(o.MerchantWeights) != len(entities.Merchants) {
		return fmt.Errorf("%w: %d merchant weights for %d merchants",
			ErrInvalidOptions, len(o.MerchantWeights), len(entities.Merchants))
	}

	total := 0.0
	for i, w := range o.MerchantWeights {
		if w < 0 || math.IsNaN(w) {
			return fmt.Errorf("%w: weight of %s is %v", ErrInvalidOptions, entities.Merchants[i], w)
		}
		total += w
	}
	if total <= 0 {
		return fmt.Errorf("%w: merchant weights sum to zero", ErrInvalidOptions)
	}

	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
