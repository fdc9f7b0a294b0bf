// Package data provides thread-safe storage for the reference tables
// backing the drug-safety API. The DataContainer swaps both tables
// atomically so requests always see a consistent pair and reloads
// never block reads.
package data

import (
	"sync/atomic"
	"time"

	"github.com/nexahealth/nexahealth-api/interfaces"
	"github.com/nexahealth/nexahealth-api/logging"
	"github.com/nexahealth/nexahealth-api/refdata"
)

// Compile-time check to ensure DataContainer implements DataStore
var _ interfaces.DataStore = (*DataContainer)(nil)

// DataContainer holds the reference tables with atomic pointers for
// zero-downtime updates.
type DataContainer struct {
	symptomTable    atomic.Value // *refdata.SymptomTable
	drugRegistry    atomic.Value // *refdata.DrugRegistry
	lastUpdated     atomic.Value // time.Time
	updating        atomic.Bool
	serverStartTime atomic.Value // time.Time
}

// NewDataContainer creates a new DataContainer with empty tables.
func NewDataContainer() *DataContainer {
	dc := &DataContainer{}
	emptyTable, _ := refdata.NewSymptomTable(nil)
	dc.symptomTable.Store(emptyTable)
	dc.drugRegistry.Store(&refdata.DrugRegistry{})
	dc.lastUpdated.Store(time.Time{})
	dc.serverStartTime.Store(time.Time{})
	return dc
}

// Thread-safe getters with type check

// GetSymptomTable returns the current symptom risk table.
func (dc *DataContainer) GetSymptomTable() *refdata.SymptomTable {
	if v := dc.symptomTable.Load(); v != nil {
		if table, ok := v.(*refdata.SymptomTable); ok && table != nil {
			return table
		}
	}

	logging.Warn("Symptom table is empty or invalid")
	emptyTable, _ := refdata.NewSymptomTable(nil)
	return emptyTable
}

// GetDrugRegistry returns the current verified-drug registry.
func (dc *DataContainer) GetDrugRegistry() *refdata.DrugRegistry {
	if v := dc.drugRegistry.Load(); v != nil {
		if registry, ok := v.(*refdata.DrugRegistry); ok && registry != nil {
			return registry
		}
	}

	logging.Warn("Drug registry is empty or invalid")
	return &refdata.DrugRegistry{}
}

// GetLastUpdated returns the timestamp of the last data update.
func (dc *DataContainer) GetLastUpdated() time.Time {
	if v := dc.lastUpdated.Load(); v != nil {
		if lastUpdated, ok := v.(time.Time); ok {
			return lastUpdated
		}
	}

	logging.Warn("Could not get the last updated value")
	return time.Time{}
}

// IsUpdating returns true if a data update is currently in progress.
func (dc *DataContainer) IsUpdating() bool {
	return dc.updating.Load()
}

// SetServerStartTime sets the server start time.
func (dc *DataContainer) SetServerStartTime(startTime time.Time) {
	dc.serverStartTime.Store(startTime)
}

// GetServerStartTime returns the server start time.
func (dc *DataContainer) GetServerStartTime() time.Time {
	if v := dc.serverStartTime.Load(); v != nil {
		if startTime, ok := v.(time.Time); ok {
			return startTime
		}
	}

	logging.Warn("Could not get the server start time value")
	return time.Time{}
}

// UpdateData atomically swaps in a new pair of reference tables.
func (dc *DataContainer) UpdateData(table *refdata.SymptomTable, registry *refdata.DrugRegistry) {
	// Atomic swap (zero downtime replacement)
	dc.symptomTable.Store(table)
	dc.drugRegistry.Store(registry)
	dc.lastUpdated.Store(time.Now())
}

// BeginUpdate marks the start of a data update operation.
// Returns true if the update can proceed, false if another update is in progress.
func (dc *DataContainer) BeginUpdate() bool {
	return dc.updating.CompareAndSwap(false, true)
}

// EndUpdate marks the end of a data update operation.
func (dc *DataContainer) EndUpdate() {
	dc.updating.Store(false)
}
