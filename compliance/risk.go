package compliance

const (
	issueRiskWeight          = 35
	warningRiskWeight        = 15
	highModerationRiskWeight = 10

	HighRiskThreshold   = 60
	MediumRiskThreshold = 25
)

// Combines finding counts into a removal-risk estimate in [0,100]. Communities with strict moderation carry a fixed surcharge.
func ComputeRisk(issues, warnings int, highModeration bool) (int, RiskLevel) {
	score := issueRiskWeight*issues + warningRiskWeight*warnings
	if highModeration {
		score += highModerationRiskWeight
	}
	score = min(score, 100)

	switch {
	case score > HighRiskThreshold:
		return score, RiskHigh
	case score > MediumRiskThreshold:
		return score, RiskMedium
	default:
		return score, RiskLow
	}
}
