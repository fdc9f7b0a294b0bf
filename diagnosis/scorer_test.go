package diagnosis

import (
	"testing"

	"github.com/nexahealth/nexahealth-api/refdata/entities"
)

func TestHybridScore(t *testing.T) {
	tests := []struct {
		name    string
		weights []int
		want    int
	}{
		{"empty", nil, 0},
		{"single weight is the score", []int{30}, 30},
		// 0.7*40 + 0.3*25 = 35.5; math.Round rounds half away from
		// zero, pinning the boundary at 36.
		{"documented boundary example", []int{10, 40}, 36},
		{"severe symptom dominates", []int{90, 10}, 78},
		{"capped at 100", []int{100, 100, 100}, 100},
		{"zero weights", []int{0, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HybridScore(tt.weights); got != tt.want {
				t.Errorf("HybridScore(%v) = %d, want %d", tt.weights, got, tt.want)
			}
		})
	}
}

func TestHybridScoreStaysInBounds(t *testing.T) {
	sets := [][]int{
		{0}, {100}, {1, 2, 3}, {100, 0}, {55, 55, 55, 55, 55, 55, 55, 55},
		{100, 100, 100, 100, 100, 100, 100, 100, 100, 100},
	}

	for _, weights := range sets {
		score := HybridScore(weights)
		if score < 0 || score > 100 {
			t.Errorf("HybridScore(%v) = %d, out of [0,100]", weights, score)
		}
	}
}

func TestRiskLevelFor(t *testing.T) {
	tests := []struct {
		score int
		want  entities.RiskLevel
	}{
		{0, entities.RiskLow},
		{39, entities.RiskLow},
		{40, entities.RiskModerate}, // boundary inclusive
		{74, entities.RiskModerate},
		{75, entities.RiskHigh}, // boundary inclusive
		{100, entities.RiskHigh},
	}

	for _, tt := range tests {
		if got := RiskLevelFor(tt.score); got != tt.want {
			t.Errorf("RiskLevelFor(%d) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestRiskLevelIsMonotonic(t *testing.T) {
	rank := map[entities.RiskLevel]int{
		entities.RiskLow:      0,
		entities.RiskModerate: 1,
		entities.RiskHigh:     2,
	}

	previous := rank[RiskLevelFor(0)]
	for score := 1; score <= 100; score++ {
		current := rank[RiskLevelFor(score)]
		if current < previous {
			t.Fatalf("risk level decreased at score %d", score)
		}
		previous = current
	}
}
