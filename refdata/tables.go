// Package refdata loads and validates the two reference datasets the
// engine works over: the symptom risk table and the verified-drug
// registry. Both are immutable after load; lookup indexes and stem
// forms are pre-computed here so request-time matching never mutates
// shared state.
package refdata

import (
	"fmt"
	"strings"

	"github.com/kljensen/snowball/english"
	"github.com/nexahealth/nexahealth-api/refdata/entities"
)

// SymptomTable is the immutable symptom→risk-weight→drugs table.
// Entry order follows the source file, which keeps every iteration
// over the table deterministic.
type SymptomTable struct {
	entries   []entities.SymptomRiskEntry
	keywords  []string
	byKeyword map[string]entities.SymptomRiskEntry
	byStem    map[string][]string // Pre-computed: english.Stem of single-word keywords
}

// NewSymptomTable builds a table from validated entries. Keywords are
// normalized (trimmed, lowercased); duplicates are rejected.
func NewSymptomTable(entries []entities.SymptomRiskEntry) (*SymptomTable, error) {
	t := &SymptomTable{
		entries:   make([]entities.SymptomRiskEntry, 0, len(entries)),
		keywords:  make([]string, 0, len(entries)),
		byKeyword: make(map[string]entities.SymptomRiskEntry, len(entries)),
		byStem:    make(map[string][]string),
	}

	for _, e := range entries {
		keyword := strings.ToLower(strings.TrimSpace(e.Keyword))
		if keyword == "" {
			return nil, fmt.Errorf("empty symptom keyword")
		}
		if _, exists := t.byKeyword[keyword]; exists {
			return nil, fmt.Errorf("duplicate symptom keyword: %q", keyword)
		}
		if e.RiskWeight < 0 || e.RiskWeight > 100 {
			return nil, fmt.Errorf("risk weight out of range for %q: %d", keyword, e.RiskWeight)
		}

		e.Keyword = keyword
		t.entries = append(t.entries, e)
		t.keywords = append(t.keywords, keyword)
		t.byKeyword[keyword] = e

		// Stemmed lookup only applies to single-word keywords; a
		// multi-word keyword has no meaningful single stem.
		if !strings.Contains(keyword, " ") {
			stem := english.Stem(keyword, false)
			t.byStem[stem] = append(t.byStem[stem], keyword)
		}
	}

	return t, nil
}

// Entries returns all table rows in load order.
func (t *SymptomTable) Entries() []entities.SymptomRiskEntry {
	return t.entries
}

// Keywords returns all normalized keywords in load order.
func (t *SymptomTable) Keywords() []string {
	return t.keywords
}

// Lookup finds the entry for a normalized keyword.
func (t *SymptomTable) Lookup(keyword string) (entities.SymptomRiskEntry, bool) {
	e, ok := t.byKeyword[strings.ToLower(strings.TrimSpace(keyword))]
	return e, ok
}

// KeywordsByStem returns the keywords whose stem equals stem, in load order.
func (t *SymptomTable) KeywordsByStem(stem string) []string {
	return t.byStem[stem]
}

// Len returns the number of table rows.
func (t *SymptomTable) Len() int {
	return len(t.entries)
}

// DrugRegistry is the immutable verified-drug registry. Record order
// follows the source file: verification resolves ambiguous product
// names first-match-wins, so load order is part of the contract.
type DrugRegistry struct {
	drugs []entities.VerifiedDrug
}

// NewDrugRegistry builds a registry from validated records. Product
// names may repeat, but only with distinct registration numbers.
func NewDrugRegistry(drugs []entities.VerifiedDrug) (*DrugRegistry, error) {
	seen := make(map[string]bool, len(drugs))

	for i, d := range drugs {
		if strings.TrimSpace(d.ProductName) == "" {
			return nil, fmt.Errorf("record %d: empty product name", i)
		}
		if !entities.ValidDrugStatus(d.Status) {
			return nil, fmt.Errorf("record %d (%s): invalid status %q", i, d.ProductName, d.Status)
		}

		key := strings.ToLower(strings.TrimSpace(d.ProductName)) + "\x00" +
			strings.ToLower(strings.TrimSpace(d.NafdacRegNo))
		if seen[key] {
			return nil, fmt.Errorf("record %d: duplicate product %q with registration %q",
				i, d.ProductName, d.NafdacRegNo)
		}
		seen[key] = true
	}

	return &DrugRegistry{drugs: drugs}, nil
}

// Drugs returns all registry records in load order.
func (r *DrugRegistry) Drugs() []entities.VerifiedDrug {
	return r.drugs
}

// Flagged returns the records whose registry status is flagged, in load order.
func (r *DrugRegistry) Flagged() []entities.VerifiedDrug {
	var flagged []entities.VerifiedDrug
	for _, d := range r.drugs {
		if d.Status == entities.StatusFlagged {
			flagged = append(flagged, d)
		}
	}
	return flagged
}

// Len returns the number of registry records.
func (r *DrugRegistry) Len() int {
	return len(r.drugs)
}
