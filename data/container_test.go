package data

import (
	"sync"
	"testing"
	"time"

	"github.com/nexahealth/nexahealth-api/refdata"
	"github.com/nexahealth/nexahealth-api/refdata/entities"
)

func testTables(t *testing.T) (*refdata.SymptomTable, *refdata.DrugRegistry) {
	t.Helper()

	table, err := refdata.NewSymptomTable([]entities.SymptomRiskEntry{
		{Keyword: "fever", RiskWeight: 20, CommonDrugs: []string{"Paracetamol"}},
	})
	if err != nil {
		t.Fatalf("failed to build symptom table: %v", err)
	}

	registry, err := refdata.NewDrugRegistry([]entities.VerifiedDrug{
		{ProductName: "Coartem", NafdacRegNo: "NAFDAC-12345", Status: entities.StatusVerified},
	})
	if err != nil {
		t.Fatalf("failed to build drug registry: %v", err)
	}

	return table, registry
}

func TestNewContainerIsEmptyButUsable(t *testing.T) {
	dc := NewDataContainer()

	if got := dc.GetSymptomTable().Len(); got != 0 {
		t.Errorf("new container symptom table has %d entries, want 0", got)
	}
	if got := dc.GetDrugRegistry().Len(); got != 0 {
		t.Errorf("new container registry has %d records, want 0", got)
	}
	if !dc.GetLastUpdated().IsZero() {
		t.Error("new container reports a last-updated time")
	}
}

func TestUpdateDataSwapsBothTables(t *testing.T) {
	dc := NewDataContainer()
	table, registry := testTables(t)

	before := time.Now()
	dc.UpdateData(table, registry)

	if dc.GetSymptomTable() != table {
		t.Error("symptom table was not swapped")
	}
	if dc.GetDrugRegistry() != registry {
		t.Error("drug registry was not swapped")
	}
	if dc.GetLastUpdated().Before(before) {
		t.Error("last-updated was not refreshed")
	}
}

func TestBeginUpdateIsExclusive(t *testing.T) {
	dc := NewDataContainer()

	if !dc.BeginUpdate() {
		t.Fatal("first BeginUpdate() returned false")
	}
	if dc.BeginUpdate() {
		t.Error("second BeginUpdate() succeeded while update in progress")
	}
	if !dc.IsUpdating() {
		t.Error("IsUpdating() = false during update")
	}

	dc.EndUpdate()
	if dc.IsUpdating() {
		t.Error("IsUpdating() = true after EndUpdate()")
	}
	if !dc.BeginUpdate() {
		t.Error("BeginUpdate() failed after EndUpdate()")
	}
}

func TestServerStartTimeRoundTrip(t *testing.T) {
	dc := NewDataContainer()

	start := time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)
	dc.SetServerStartTime(start)

	if got := dc.GetServerStartTime(); !got.Equal(start) {
		t.Errorf("GetServerStartTime() = %v, want %v", got, start)
	}
}

func TestConcurrentReadsDuringUpdate(t *testing.T) {
	dc := NewDataContainer()
	table, registry := testTables(t)
	dc.UpdateData(table, registry)

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				dc.UpdateData(table, registry)
			}
		}
	}()

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if dc.GetSymptomTable() == nil {
					t.Error("read a nil symptom table")
					return
				}
				if dc.GetDrugRegistry() == nil {
					t.Error("read a nil drug registry")
					return
				}
			}
		}()
	}

	time.Sleep(10 * time.Millisecond)
	close(stop)
	wg.Wait()
}
