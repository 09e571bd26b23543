package ports

import "time"

// Ledger generation defaults.
const (
	DefaultLedgerSize  = 500
	DefaultSeed        = 42
	DefaultWindow      = 30 * 24 * time.Hour
	DefaultAmountMean  = 4.0 // log scale
	DefaultAmountSigma = 1.8 // log scale
	DefaultUserIDMin   = 1000
	DefaultUserIDMax   = 9999 // exclusive
)

// Labeling constants. FlagProbability is the share of rule-eligible records that
// end up labeled as fraud; the score bands never overlap.
const (
	FlagProbability = 0.7

	FraudScoreMin = 0.7
	FraudScoreMax = 1.0
	CleanScoreMin = 0.0
	CleanScoreMax = 0.6
)

// Rounding precision of generated values.
const (
	AmountPlaces    = 2
	RiskScorePlaces = 3
	RatePlaces      = 2
)

const DefaultTopK = 10
