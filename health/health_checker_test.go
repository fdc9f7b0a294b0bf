package health

import (
	"net/http"
	"testing"
	"time"

	"github.com/nexahealth/nexahealth-api/refdata"
	"github.com/nexahealth/nexahealth-api/refdata/entities"
)

// stubStore lets tests pin the table sizes and data age directly.
type stubStore struct {
	table       *refdata.SymptomTable
	registry    *refdata.DrugRegistry
	lastUpdated time.Time
	updating    bool
}

func (s *stubStore) GetSymptomTable() *refdata.SymptomTable { return s.table }
func (s *stubStore) GetDrugRegistry() *refdata.DrugRegistry { return s.registry }
func (s *stubStore) GetLastUpdated() time.Time              { return s.lastUpdated }
func (s *stubStore) IsUpdating() bool                       { return s.updating }
func (s *stubStore) GetServerStartTime() time.Time          { return time.Time{} }
func (s *stubStore) SetServerStartTime(time.Time)           {}
func (s *stubStore) BeginUpdate() bool                      { return true }
func (s *stubStore) EndUpdate()                             {}
func (s *stubStore) UpdateData(table *refdata.SymptomTable, registry *refdata.DrugRegistry) {
	s.table = table
	s.registry = registry
}

func populatedStore(t *testing.T, age time.Duration) *stubStore {
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

	return &stubStore{
		table:       table,
		registry:    registry,
		lastUpdated: time.Now().Add(-age),
	}
}

func TestHealthCheckStatuses(t *testing.T) {
	tests := []struct {
		name       string
		age        time.Duration
		wantStatus string
		wantHTTP   int
	}{
		{"fresh data", 1 * time.Hour, "healthy", http.StatusOK},
		{"just under degraded", 24 * time.Hour, "healthy", http.StatusOK},
		{"stale data", 26 * time.Hour, "degraded", http.StatusServiceUnavailable},
		{"very stale data", 49 * time.Hour, "unhealthy", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := NewHealthChecker(populatedStore(t, tt.age))

			status, data, httpStatus := checker.HealthCheck()
			if status != tt.wantStatus {
				t.Errorf("status = %q, want %q", status, tt.wantStatus)
			}
			if httpStatus != tt.wantHTTP {
				t.Errorf("httpStatus = %d, want %d", httpStatus, tt.wantHTTP)
			}
			if data["symptoms"] != 1 || data["drugs"] != 1 {
				t.Errorf("counts = %v/%v, want 1/1", data["symptoms"], data["drugs"])
			}
		})
	}
}

func TestHealthCheckEmptyTablesIsUnhealthy(t *testing.T) {
	emptyTable, _ := refdata.NewSymptomTable(nil)
	store := &stubStore{
		table:       emptyTable,
		registry:    &refdata.DrugRegistry{},
		lastUpdated: time.Now(),
	}
	checker := NewHealthChecker(store)

	status, _, httpStatus := checker.HealthCheck()
	if status != "unhealthy" {
		t.Errorf("status = %q, want unhealthy", status)
	}
	if httpStatus != http.StatusServiceUnavailable {
		t.Errorf("httpStatus = %d, want 503", httpStatus)
	}
}

func TestHealthCheckReportsUpdating(t *testing.T) {
	store := populatedStore(t, time.Hour)
	store.updating = true
	checker := NewHealthChecker(store)

	_, data, _ := checker.HealthCheck()
	if data["is_updating"] != true {
		t.Errorf("is_updating = %v, want true", data["is_updating"])
	}
}

func TestCalculateNextUpdate(t *testing.T) {
	checker := NewHealthChecker(populatedStore(t, time.Hour))

	next := checker.CalculateNextUpdate()
	now := time.Now()

	if !next.After(now) {
		t.Errorf("next update %v is not in the future", next)
	}
	if next.Hour() != 6 || next.Minute() != 0 {
		t.Errorf("next update at %02d:%02d, want 06:00", next.Hour(), next.Minute())
	}
	if next.Sub(now) > 24*time.Hour {
		t.Errorf("next update %v is more than a day away", next)
	}
}
