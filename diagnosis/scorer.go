package diagnosis

import (
	"math"

	"github.com/nexahealth/nexahealth-api/refdata/entities"
)

// Risk level thresholds, both boundaries inclusive.
const (
	highRiskThreshold     = 75
	moderateRiskThreshold = 40
	maxRiskScore          = 100
)

// HybridScore aggregates risk weights into a single 0-100 score:
// 0.7 * max(weights) + 0.3 * mean(weights), rounded half away from
// zero (math.Round) and capped at 100. One severe symptom dominates
// while co-occurring milder ones still raise the floor, unlike a plain
// sum which overflows with many minor symptoms.
func HybridScore(weights []int) int {
	if len(weights) == 0 {
		return 0
	}

	maxWeight := 0
	sum := 0
	for _, w := range weights {
		if w > maxWeight {
			maxWeight = w
		}
		sum += w
	}
	mean := float64(sum) / float64(len(weights))

	score := int(math.Round(0.7*float64(maxWeight) + 0.3*mean))
	if score > maxRiskScore {
		score = maxRiskScore
	}
	return score
}

// RiskLevelFor maps a score to its tier: High at 75 and above,
// Moderate at 40 and above, Low otherwise.
func RiskLevelFor(score int) entities.RiskLevel {
	switch {
	case score >= highRiskThreshold:
		return entities.RiskHigh
	case score >= moderateRiskThreshold:
		return entities.RiskModerate
	default:
		return entities.RiskLow
	}
}
