package diagnosis

import (
	"sort"
	"strings"

	"github.com/nexahealth/nexahealth-api/refdata"
	"github.com/nexahealth/nexahealth-api/refdata/entities"
	"github.com/nexahealth/nexahealth-api/verification"
)

// minIngredientToken guards the ingredient substring scan against
// short filler words ("of", "a") that would match almost everything.
const minIngredientToken = 3

// Engine is the diagnosis facade: extraction, scoring, recommendation
// and recommendation verification over injected immutable tables.
// Safe for concurrent use; nothing is mutated after construction.
type Engine struct {
	table     *refdata.SymptomTable
	registry  *refdata.DrugRegistry
	extractor *Extractor
	verifier  *verification.Verifier
}

// NewEngine creates an engine over the given tables.
func NewEngine(table *refdata.SymptomTable, registry *refdata.DrugRegistry) *Engine {
	return &Engine{
		table:     table,
		registry:  registry,
		extractor: NewExtractor(table),
		verifier:  verification.NewVerifier(registry),
	}
}

// ExtractKeywords resolves free text to known symptom keywords.
func (e *Engine) ExtractKeywords(text string) []string {
	return e.extractor.Extract(text)
}

// Score aggregates the matched keywords' weights into a bounded score
// and its risk level. Unknown keywords contribute nothing; an empty
// set scores zero at Low.
func (e *Engine) Score(keywords []string) (int, entities.RiskLevel) {
	var weights []int
	for _, keyword := range keywords {
		if entry, ok := e.table.Lookup(keyword); ok {
			weights = append(weights, entry.RiskWeight)
		}
	}

	score := HybridScore(weights)
	return score, RiskLevelFor(score)
}

// Recommend derives candidate drug names for the matched keywords:
// the union of each keyword's configured common drugs and every
// registry product whose ingredients contain a keyword token or a
// recommended drug name as a case-insensitive substring. Deduplicated
// by exact string, sorted.
func (e *Engine) Recommend(keywords []string) []string {
	recommended := make(map[string]bool)
	var tokens []string

	for _, keyword := range keywords {
		entry, ok := e.table.Lookup(keyword)
		if !ok {
			continue
		}
		for _, drug := range entry.CommonDrugs {
			recommended[drug] = true
			tokens = append(tokens, strings.ToLower(drug))
		}
		for _, word := range tokenize(entry.Keyword) {
			if len(word) >= minIngredientToken {
				tokens = append(tokens, word)
			}
		}
	}

	if len(tokens) > 0 {
		for _, drug := range e.registry.Drugs() {
			if ingredientsContainAny(drug.Ingredients, tokens) {
				recommended[drug.ProductName] = true
			}
		}
	}

	names := make([]string, 0, len(recommended))
	for name := range recommended {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AssessRisk runs the full pipeline: extract, score, recommend, and
// cross-check recommendations against the registry.
func (e *Engine) AssessRisk(text string) entities.RiskAssessment {
	keywords := e.ExtractKeywords(text)
	score, level := e.Score(keywords)
	recommended := e.Recommend(keywords)
	verified := e.verifier.VerifyRecommendations(recommended)

	return entities.RiskAssessment{
		MatchedKeywords:         keywords,
		RiskScore:               score,
		RiskLevel:               level,
		RecommendedDrugs:        recommended,
		VerifiedRecommendations: verified,
	}
}

func ingredientsContainAny(ingredients, tokens []string) bool {
	for _, ingredient := range ingredients {
		lowered := strings.ToLower(ingredient)
		for _, token := range tokens {
			if strings.Contains(lowered, token) {
				return true
			}
		}
	}
	return false
}
