package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	amlentities "github.com/sand/fraud-analytics-dashboard/backend/internal/aml/entities"
	"github.com/sand/fraud-analytics-dashboard/backend/internal/entities"
)

func TestLocalRulesEligible(t *testing.T) {
	rules := DefaultLocalRules()

	testCases := []struct {
		name     string
		amount   float64
		merchant entities.Merchant
		country  entities.Country
		expected bool
	}{
		{"small amount, known merchant", 120.50, entities.MerchantAmazon, entities.CountryUS, false},
		{"amount above high threshold", 20000, entities.MerchantAmazon, entities.CountryUS, true},
		{"high threshold itself is not above", 10000, entities.MerchantAmazon, entities.CountryUS, false},
		{"unknown merchant with small amount", 3.10, entities.MerchantUnknown, entities.CountryDE, true},
		{"corridor lower bound in IN", 5000, entities.MerchantApple, entities.CountryIN, true},
		{"corridor upper bound in BR", 10000, entities.MerchantUber, entities.CountryBR, true},
		{"corridor amount outside risky countries", 7500, entities.MerchantUber, entities.CountryFR, false},
		{"just below corridor in BR", 4999.99, entities.MerchantGoogle, entities.CountryBR, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, rules.Eligible(tc.amount, tc.merchant, tc.country))
		})
	}
}

func TestLocalRulesReasons(t *testing.T) {
	rules := DefaultLocalRules()

	reasons := rules.Reasons(8000, entities.MerchantUnknown, entities.CountryIN)
	require.Equal(t, []amlentities.Reason{
		amlentities.ReasonUnknownMerchant,
		amlentities.ReasonHighRiskCorridor,
	}, reasons)

	require.Empty(t, rules.Reasons(10, entities.MerchantNetflix, entities.CountryUK))

	tx := entities.Transaction{Amount: 20000, Merchant: entities.MerchantPayPal, Country: entities.CountryUS}
	require.True(t, rules.EligibleTransaction(tx))
}

func TestLevelForScore(t *testing.T) {
	assert.Equal(t, amlentities.RiskLevelLow, amlentities.LevelForScore(0))
	assert.Equal(t, amlentities.RiskLevelLow, amlentities.LevelForScore(0.399))
	assert.Equal(t, amlentities.RiskLevelMedium, amlentities.LevelForScore(0.4))
	assert.Equal(t, amlentities.RiskLevelMedium, amlentities.LevelForScore(0.6))
	assert.Equal(t, amlentities.RiskLevelHigh, amlentities.LevelForScore(0.7))
	assert.Equal(t, amlentities.RiskLevelHigh, amlentities.LevelForScore(1))
}
