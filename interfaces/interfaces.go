// Package interfaces defines the core abstractions of the drug-safety
// API to improve testability, maintainability, and separation of concerns.
package interfaces

import (
	"time"

	"github.com/nexahealth/nexahealth-api/refdata"
)

// DataStore defines the contract for reference data storage. It
// provides thread-safe access to the symptom table and drug registry
// with atomic operations for zero-downtime updates.
type DataStore interface {
	// Data retrieval methods
	GetSymptomTable() *refdata.SymptomTable
	GetDrugRegistry() *refdata.DrugRegistry
	GetLastUpdated() time.Time
	IsUpdating() bool
	GetServerStartTime() time.Time
	SetServerStartTime(startTime time.Time)

	// Data update methods
	UpdateData(table *refdata.SymptomTable, registry *refdata.DrugRegistry)
	BeginUpdate() bool
	EndUpdate()
}

// ReferenceLoader defines the contract for loading the two reference
// datasets from their external sources. Either both tables load or the
// load fails as a whole.
type ReferenceLoader interface {
	Load() (*refdata.SymptomTable, *refdata.DrugRegistry, error)
}

// Scheduler defines the contract for job scheduling and health monitoring.
// It manages automated reference data reloads and staleness checks.
type Scheduler interface {
	// Lifecycle management
	Start() error
	Stop()
}

// HealthChecker defines the contract for health check functionality.
type HealthChecker interface {
	// HealthCheck returns current system health status
	HealthCheck() (status string, data map[string]any, httpStatus int)

	// CalculateNextUpdate returns the next scheduled reload time
	CalculateNextUpdate() time.Time
}

// InputValidator defines the contract for validating user-supplied
// strings before they reach the matching engines.
type InputValidator interface {
	// ValidateSymptomText validates free-text symptom input
	ValidateSymptomText(input string) error

	// ValidateDrugName validates a claimed product name
	ValidateDrugName(input string) error

	// ValidateRegNo validates a claimed registration number
	ValidateRegNo(input string) error
}
