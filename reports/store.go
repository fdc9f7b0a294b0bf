// Package reports holds user-submitted suspicious-drug reports. The
// store is append-only; the API owns no other persistent state, so the
// in-memory implementation stands in for whatever durable store the
// deployment wires up.
package reports

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Report is one user submission about a suspicious drug purchase.
type Report struct {
	DrugName      string    `json:"drugName"`
	NafdacRegNo   string    `json:"nafdacRegNo,omitempty"`
	PharmacyName  string    `json:"pharmacyName"`
	Description   string    `json:"description"`
	State         string    `json:"state"`
	LGA           string    `json:"lga"`
	StreetAddress string    `json:"streetAddress,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// Validate checks that all required fields are present and non-blank.
func (r *Report) Validate() error {
	required := map[string]string{
		"drugName":     r.DrugName,
		"pharmacyName": r.PharmacyName,
		"description":  r.Description,
		"state":        r.State,
		"lga":          r.LGA,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
	}
	return nil
}

// Store is an append-only report sink.
type Store interface {
	// Append stores a report. The report's timestamp is set if zero.
	Append(report Report) error

	// All returns every stored report in submission order.
	All() []Report
}

// InMemoryStore is a Store backed by a slice. Safe for concurrent use.
type InMemoryStore struct {
	mu      sync.RWMutex
	reports []Report
}

// NewInMemoryStore creates an empty in-memory report store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// Append stores a report.
func (s *InMemoryStore) Append(report Report) error {
	if err := report.Validate(); err != nil {
		return err
	}
	if report.Timestamp.IsZero() {
		report.Timestamp = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, report)
	return nil
}

// All returns every stored report in submission order.
func (s *InMemoryStore) All() []Report {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Report, len(s.reports))
	copy(out, s.reports)
	return out
}
