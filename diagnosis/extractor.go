// Package diagnosis turns free-text symptom descriptions into known
// symptom keywords, a bounded risk score and over-the-counter drug
// recommendations. All operations are pure reads over tables injected
// at construction time.
package diagnosis

import (
	"sort"
	"strings"

	"github.com/kljensen/snowball/english"
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/nexahealth/nexahealth-api/refdata"
)

// Matching thresholds. Tunable, not structural: they trade recall for
// precision on misspelled input and only apply when the tier before
// them found nothing.
const (
	// wholeInputThreshold is the minimum token-sort similarity for a
	// whole-input fuzzy match.
	wholeInputThreshold = 60
	// wholeInputBestN caps how many whole-input fuzzy matches are kept.
	wholeInputBestN = 3
	// wordMatchThreshold is the minimum similarity for a single word
	// to resolve to a keyword.
	wordMatchThreshold = 70
)

// Extractor resolves free text to symptom keywords using tiered
// matching: exact substring first, then whole-input fuzzy, then
// per-word fuzzy with a stemmed fallback for words fuzzy could not
// resolve. A tier only runs when every tier before it found nothing,
// so well-formed input never picks up fuzzy noise.
type Extractor struct {
	table *refdata.SymptomTable
}

// NewExtractor creates an extractor over the given symptom table.
func NewExtractor(table *refdata.SymptomTable) *Extractor {
	return &Extractor{table: table}
}

// Extract returns the matched keywords for text, sorted and without
// duplicates. It never fails: empty or irrelevant input yields an
// empty result.
func (ex *Extractor) Extract(text string) []string {
	input := normalize(text)
	if input == "" {
		return []string{}
	}

	matched := make(map[string]bool)

	// Tier 1: every keyword occurring verbatim in the input.
	for _, keyword := range ex.table.Keywords() {
		if strings.Contains(input, keyword) {
			matched[keyword] = true
		}
	}
	if len(matched) > 0 {
		return sortedKeywords(matched)
	}

	// Tier 2: the whole input against every keyword, token order
	// ignored. Keeps the best few above the threshold.
	type candidate struct {
		keyword string
		score   int
	}
	var candidates []candidate
	for _, keyword := range ex.table.Keywords() {
		if score := fuzzy.TokenSortRatio(input, keyword); score >= wholeInputThreshold {
			candidates = append(candidates, candidate{keyword, score})
		}
	}
	if len(candidates) > 0 {
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].score > candidates[j].score
		})
		for i := 0; i < len(candidates) && i < wholeInputBestN; i++ {
			matched[candidates[i].keyword] = true
		}
		return sortedKeywords(matched)
	}

	// Tier 3: best fuzzy match per word. Tier 4: words tier 3 could
	// not resolve fall through to stemmed exact matching, which
	// recovers morphological variants like "coughing" → "cough".
	for _, word := range tokenize(input) {
		if keyword, ok := ex.bestWordMatch(word); ok {
			matched[keyword] = true
			continue
		}
		for _, keyword := range ex.table.KeywordsByStem(english.Stem(word, false)) {
			matched[keyword] = true
		}
	}

	return sortedKeywords(matched)
}

// bestWordMatch finds the single best keyword for one word, or false
// when nothing reaches the word threshold.
func (ex *Extractor) bestWordMatch(word string) (string, bool) {
	best := ""
	bestScore := 0

	for _, keyword := range ex.table.Keywords() {
		if score := fuzzy.Ratio(word, keyword); score > bestScore {
			best = keyword
			bestScore = score
		}
	}

	if bestScore >= wordMatchThreshold {
		return best, true
	}
	return "", false
}

func sortedKeywords(set map[string]bool) []string {
	keywords := make([]string, 0, len(set))
	for keyword := range set {
		keywords = append(keywords, keyword)
	}
	sort.Strings(keywords)
	return keywords
}
