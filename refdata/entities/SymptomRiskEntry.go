package entities

// SymptomRiskEntry is one row of the symptom risk table. Keyword is
// normalized (trimmed, lowercased) at load time and unique in the table.
type SymptomRiskEntry struct {
	Keyword     string   `json:"keyword"`
	RiskWeight  int      `json:"riskWeight"`
	CommonDrugs []string `json:"commonDrugs"`
}
