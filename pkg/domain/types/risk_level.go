package types

// RiskLevel is the priority band derived from the likelihood × impact score
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "low"
	RiskLevelMedium   RiskLevel = "medium"
	RiskLevelHigh     RiskLevel = "high"
	RiskLevelCritical RiskLevel = "critical"
)

// RiskLevelForScore maps a score (1-25) onto its priority band
func RiskLevelForScore(score int) RiskLevel {
	switch {
	case score >= 20:
		return RiskLevelCritical
	case score >= 15:
		return RiskLevelHigh
	case score >= 8:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// String returns the string representation of the risk level
func (l RiskLevel) String() string {
	return string(l)
}
