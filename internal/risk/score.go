package risk

import (
	"github.com/songzhibin97/tokenguard/internal/models"
)

// AggregateScore combines factor scores into a normalized overall score and
// the matching risk level. The score is the weight-normalized mean over
// whichever factors are present; 0.5 when none are.
func AggregateScore(factors map[string]models.RiskFactor) (float64, models.RiskLevel) {
	var totalScore, totalWeight float64
	for _, f := range factors {
		totalScore += f.Score * f.Weight
		totalWeight += f.Weight
	}

	score := 0.5
	if totalWeight > 0 {
		score = totalScore / totalWeight
	}

	return score, LevelForScore(score)
}

// LevelForScore maps a normalized risk score to its risk level band.
func LevelForScore(score float64) models.RiskLevel {
	switch {
	case score >= 0.8:
		return models.RiskLevelCritical
	case score >= 0.6:
		return models.RiskLevelHigh
	case score >= 0.4:
		return models.RiskLevelMedium
	default:
		return models.RiskLevelLow
	}
}

// Confidence reports how complete the evidence behind an assessment is:
// a factor with evidence counts 1.0, one without counts 0.5, averaged.
// Returns 0.5 when there are no factors at all.
func Confidence(factors map[string]models.RiskFactor) float64 {
	if len(factors) == 0 {
		return 0.5
	}

	var sum float64
	for _, f := range factors {
		if len(f.Evidence) > 0 {
			sum += 1.0
		} else {
			sum += 0.5
		}
	}

	return sum / float64(len(factors))
}
