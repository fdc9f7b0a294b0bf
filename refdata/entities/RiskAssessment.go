package entities

// RiskLevel is the tier a risk score maps to.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
)

// RiskAssessment is the full outcome of a symptom-text diagnosis.
// VerifiedRecommendations is always a subset of RecommendedDrugs.
type RiskAssessment struct {
	MatchedKeywords         []string  `json:"matchedKeywords"`
	RiskScore               int       `json:"riskScore"`
	RiskLevel               RiskLevel `json:"riskLevel"`
	RecommendedDrugs        []string  `json:"recommendedDrugs"`
	VerifiedRecommendations []string  `json:"verifiedRecommendations"`
}
