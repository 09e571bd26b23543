package services

import (
	"slices"

	amlentities "github.com/sand/fraud-analytics-dashboard/backend/internal/aml/entities"
	"github.com/sand/fraud-analytics-dashboard/backend/internal/entities"
)

// Default rule thresholds.
const (
	DefaultHighAmount      = 10000.0
	DefaultCorridorMinimum = 5000.0
	DefaultCorridorMaximum = 10000.0
)

// LocalRules is the fixed rule set that decides fraud eligibility without any
// external lookup. A record is eligible when any clause matches:
//   - amount above HighAmount
//   - merchant in RiskyMerchants
//   - amount within [CorridorMinimum, CorridorMaximum] and country in RiskyCountries
type LocalRules struct {
	HighAmount      float64
	CorridorMinimum float64
	CorridorMaximum float64
	RiskyMerchants  []entities.Merchant
	RiskyCountries  []entities.Country
}

// DefaultLocalRules returns the production rule set.
func DefaultLocalRules() LocalRules {
	return LocalRules{
		HighAmount:      DefaultHighAmount,
		CorridorMinimum: DefaultCorridorMinimum,
		CorridorMaximum: DefaultCorridorMaximum,
		RiskyMerchants:  []entities.Merchant{entities.MerchantUnknown},
		RiskyCountries:  []entities.Country{entities.CountryIN, entities.CountryBR},
	}
}

// Eligible reports whether the rule set flags the given fields.
func (r LocalRules) Eligible(amount float64, merchant entities.Merchant, country entities.Country) bool {
	return r.highAmount(amount) || r.riskyMerchant(merchant) || r.riskyCorridor(amount, country)
}

// EligibleTransaction applies Eligible to a ledger record.
func (r LocalRules) EligibleTransaction(tx entities.Transaction) bool {
	return r.Eligible(tx.Amount, tx.Merchant, tx.Country)
}

// Reasons lists every matching clause, in rule order. The result is empty,
// never nil, when nothing matches.
func (r LocalRules) Reasons(amount float64, merchant entities.Merchant, country entities.Country) []amlentities.Reason {
	reasons := make([]amlentities.Reason, 0, 3)
	if r.highAmount(amount) {
		reasons = append(reasons, amlentities.ReasonHighAmount)
	}
	if r.riskyMerchant(merchant) {
		reasons = append(reasons, amlentities.ReasonUnknownMerchant)
	}
	if r.riskyCorridor(amount, country) {
		reasons = append(reasons, amlentities.ReasonHighRiskCorridor)
	}
	return reasons
}

func (r LocalRules) highAmount(amount float64) bool {
	return amount > r.HighAmount
}

func (r LocalRules) riskyMerchant(merchant entities.Merchant) bool {
	return slices.Contains(r.RiskyMerchants, merchant)
}

// Both corridor bounds are inclusive.
func (r LocalRules) riskyCorridor(amount float64, country entities.Country) bool {
	return amount >= r.CorridorMinimum && amount <= r.CorridorMaximum &&
		slices.Contains(r.RiskyCountries, country)
}
