package scheduler

import (
	"errors"
	"testing"

	"github.com/nexahealth/nexahealth-api/data"
	"github.com/nexahealth/nexahealth-api/refdata"
	"github.com/nexahealth/nexahealth-api/refdata/entities"
)

// stubLoader returns fixed tables, or an error, and counts calls.
type stubLoader struct {
	table    *refdata.SymptomTable
	registry *refdata.DrugRegistry
	err      error
	calls    int
}

func (l *stubLoader) Load() (*refdata.SymptomTable, *refdata.DrugRegistry, error) {
	l.calls++
	if l.err != nil {
		return nil, nil, l.err
	}
	return l.table, l.registry, nil
}

func workingLoader(t *testing.T) *stubLoader {
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

	return &stubLoader{table: table, registry: registry}
}

func TestStartPerformsInitialLoad(t *testing.T) {
	container := data.NewDataContainer()
	loader := workingLoader(t)
	s := NewScheduler(container, loader)

	if err := s.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	defer s.Stop()

	if loader.calls != 1 {
		t.Errorf("loader called %d times, want 1", loader.calls)
	}
	if container.GetSymptomTable().Len() != 1 {
		t.Error("symptom table was not published to the container")
	}
	if container.GetDrugRegistry().Len() != 1 {
		t.Error("drug registry was not published to the container")
	}
	if container.GetLastUpdated().IsZero() {
		t.Error("last-updated was not set by the initial load")
	}
}

func TestStartFailsFastOnLoadError(t *testing.T) {
	container := data.NewDataContainer()
	loader := &stubLoader{err: errors.New("dataset unreadable")}
	s := NewScheduler(container, loader)

	err := s.Start()
	if err == nil {
		s.Stop()
		t.Fatal("Start() succeeded despite load failure")
	}

	if container.GetSymptomTable().Len() != 0 {
		t.Error("failed load still published data")
	}
}

func TestReloadSkipsWhenUpdateInProgress(t *testing.T) {
	container := data.NewDataContainer()
	loader := workingLoader(t)
	s := NewScheduler(container, loader)

	if !container.BeginUpdate() {
		t.Fatal("could not mark update in progress")
	}

	if err := s.reload(); err != nil {
		t.Errorf("reload() error: %v", err)
	}
	if loader.calls != 0 {
		t.Errorf("loader called %d times during concurrent update, want 0", loader.calls)
	}

	container.EndUpdate()
}

func TestReloadClearsUpdatingFlag(t *testing.T) {
	container := data.NewDataContainer()
	s := NewScheduler(container, &stubLoader{err: errors.New("boom")})

	if err := s.reload(); err == nil {
		t.Fatal("reload() succeeded with a failing loader")
	}
	if container.IsUpdating() {
		t.Error("updating flag left set after failed reload")
	}
}
