package entities

// RiskLevel is a coarse bucket for a risk score.
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// Risk level thresholds on the [0,1] score scale.
const (
	HighRiskThreshold   = 0.7
	MediumRiskThreshold = 0.4
)

// LevelForScore maps a risk score to its level.
func LevelForScore(score float64) RiskLevel {
	switch {
	case score >= HighRiskThreshold:
		return RiskLevelHigh
	case score >= MediumRiskThreshold:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// Reason names a fraud rule clause that matched a transaction.
type Reason string

const (
	ReasonHighAmount       Reason = "high_amount"
	ReasonUnknownMerchant  Reason = "unknown_merchant"
	ReasonHighRiskCorridor Reason = "high_risk_corridor"
)
