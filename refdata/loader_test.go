package refdata

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nexahealth/nexahealth-api/refdata/entities"
)

const validSymptomCSV = `symptom_keyword,risk_weight,common_drugs
headache,10,"Paracetamol, Ibuprofen"
Fever ,20,"Paracetamol, Artemether"
malaria,30,"Artemether, Lumefantrine"
chest pain,35,"Tramadol, Carvedilol"
vomiting,15,Metoclopramide
`

const validRegistryJSON = `[
  {
    "product_name": "Coartem",
    "nafdac_reg_no": "NAFDAC-12345",
    "dosage_form": "Tablet",
    "strengths": ["20mg/120mg"],
    "ingredients": ["Artemether", "Lumefantrine"],
    "status": "verified"
  },
  {
    "product_name": "Tramol-X",
    "nafdac_reg_no": "B4-3310",
    "dosage_form": "Capsule",
    "strengths": ["50mg"],
    "ingredients": ["Tramadol Hydrochloride"],
    "status": "flagged"
  }
]`

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

func TestLoadSymptomTable(t *testing.T) {
	path := writeTestFile(t, "symptoms.csv", validSymptomCSV)

	table, err := LoadSymptomTable(path)
	if err != nil {
		t.Fatalf("LoadSymptomTable failed: %v", err)
	}

	if table.Len() != 5 {
		t.Errorf("expected 5 entries, got %d", table.Len())
	}

	// Keys are normalized at load time
	entry, ok := table.Lookup("fever")
	if !ok {
		t.Fatal("expected keyword 'fever' after normalization")
	}
	if entry.RiskWeight != 20 {
		t.Errorf("expected weight 20 for fever, got %d", entry.RiskWeight)
	}
	if len(entry.CommonDrugs) != 2 || entry.CommonDrugs[0] != "Paracetamol" {
		t.Errorf("unexpected common drugs: %v", entry.CommonDrugs)
	}

	// Load order is preserved
	if keywords := table.Keywords(); keywords[0] != "headache" || keywords[1] != "fever" {
		t.Errorf("unexpected keyword order: %v", keywords)
	}
}

func TestLoadSymptomTableRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"bad header", "keyword,weight,drugs\nheadache,10,Paracetamol\n"},
		{"non-numeric weight", "symptom_keyword,risk_weight,common_drugs\nheadache,ten,Paracetamol\n"},
		{"negative weight", "symptom_keyword,risk_weight,common_drugs\nheadache,-5,Paracetamol\n"},
		{"weight above scale", "symptom_keyword,risk_weight,common_drugs\nheadache,150,Paracetamol\n"},
		{"duplicate keyword", "symptom_keyword,risk_weight,common_drugs\nfever,20,Paracetamol\nFEVER,30,Ibuprofen\n"},
		{"empty keyword", "symptom_keyword,risk_weight,common_drugs\n ,20,Paracetamol\n"},
		{"no rows", "symptom_keyword,risk_weight,common_drugs\n"},
		{"wrong column count", "symptom_keyword,risk_weight,common_drugs\nheadache,10\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTestFile(t, "symptoms.csv", tt.csv)

			_, err := LoadSymptomTable(path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			var loadErr *DataLoadError
			if !errors.As(err, &loadErr) {
				t.Errorf("expected DataLoadError, got %T", err)
			}
		})
	}
}

func TestLoadDrugRegistry(t *testing.T) {
	path := writeTestFile(t, "drugs.json", validRegistryJSON)

	registry, err := LoadDrugRegistry(path)
	if err != nil {
		t.Fatalf("LoadDrugRegistry failed: %v", err)
	}

	if registry.Len() != 2 {
		t.Errorf("expected 2 records, got %d", registry.Len())
	}

	flagged := registry.Flagged()
	if len(flagged) != 1 || flagged[0].ProductName != "Tramol-X" {
		t.Errorf("unexpected flagged records: %v", flagged)
	}
}

func TestLoadDrugRegistryRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"invalid json", `[{"product_name": }]`},
		{"empty registry", `[]`},
		{"missing product name", `[{"dosage_form": "Tablet", "status": "verified"}]`},
		{"invalid status", `[{"product_name": "Coartem", "status": "approved"}]`},
		{"missing status", `[{"product_name": "Coartem"}]`},
		{"duplicate name and reg no", `[
			{"product_name": "Coartem", "nafdac_reg_no": "NAFDAC-12345", "status": "verified"},
			{"product_name": "coartem", "nafdac_reg_no": "nafdac-12345", "status": "flagged"}
		]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTestFile(t, "drugs.json", tt.json)

			if _, err := LoadDrugRegistry(path); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestLoadIsAllOrNothing(t *testing.T) {
	goodSymptoms := writeTestFile(t, "symptoms.csv", validSymptomCSV)
	badRegistry := writeTestFile(t, "drugs.json", `[]`)

	table, registry, err := Load(goodSymptoms, badRegistry)
	if err == nil {
		t.Fatal("expected error when registry is invalid")
	}
	if table != nil || registry != nil {
		t.Error("expected no partial result on failed load")
	}

	_, _, err = Load(filepath.Join(t.TempDir(), "missing.csv"), badRegistry)
	if err == nil {
		t.Fatal("expected error when symptom file is missing")
	}
}

func TestRegistryAllowsSameNameDifferentRegNo(t *testing.T) {
	drugs := []entities.VerifiedDrug{
		{ProductName: "Coartem", NafdacRegNo: "NAFDAC-12345", Status: entities.StatusVerified},
		{ProductName: "Coartem", NafdacRegNo: "NAFDAC-99999", Status: entities.StatusFlagged},
	}

	registry, err := NewDrugRegistry(drugs)
	if err != nil {
		t.Fatalf("expected same name with different reg no to be allowed: %v", err)
	}
	if registry.Len() != 2 {
		t.Errorf("expected 2 records, got %d", registry.Len())
	}
}

func TestSymptomTableStemIndex(t *testing.T) {
	table, err := NewSymptomTable([]entities.SymptomRiskEntry{
		{Keyword: "vomiting", RiskWeight: 15},
		{Keyword: "chest pain", RiskWeight: 35},
	})
	if err != nil {
		t.Fatalf("NewSymptomTable failed: %v", err)
	}

	// "vomit" is the shared stem of vomiting/vomited
	if got := table.KeywordsByStem("vomit"); len(got) != 1 || got[0] != "vomiting" {
		t.Errorf("expected stem 'vomit' to map to vomiting, got %v", got)
	}

	// Multi-word keywords are not stem-indexed
	if got := table.KeywordsByStem("chest pain"); got != nil {
		t.Errorf("expected no stem entry for multi-word keyword, got %v", got)
	}
}
