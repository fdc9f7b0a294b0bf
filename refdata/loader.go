package refdata

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/nexahealth/nexahealth-api/refdata/entities"
)

// DataLoadError reports a fatal problem with a reference data source.
// The process must not serve requests after one of these.
type DataLoadError struct {
	Source string
	Err    error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("reference data load failed for %s: %v", e.Source, e.Err)
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}

// Load reads both reference datasets. There is no partial load: either
// both tables come back usable or an error does.
func Load(symptomPath, registryPath string) (*SymptomTable, *DrugRegistry, error) {
	table, err := LoadSymptomTable(symptomPath)
	if err != nil {
		return nil, nil, err
	}

	registry, err := LoadDrugRegistry(registryPath)
	if err != nil {
		return nil, nil, err
	}

	return table, registry, nil
}

// symptomHeader is the only accepted column layout for the symptom CSV.
var symptomHeader = []string{"symptom_keyword", "risk_weight", "common_drugs"}

// LoadSymptomTable parses the symptom risk CSV. The header and every
// field are validated strictly; a malformed row fails the whole load.
func LoadSymptomTable(path string) (*SymptomTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &DataLoadError{Source: path, Err: err}
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = len(symptomHeader)

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &DataLoadError{Source: path, Err: err}
	}
	if len(records) < 2 {
		return nil, &DataLoadError{Source: path, Err: fmt.Errorf("no data rows")}
	}

	for i, col := range records[0] {
		if strings.TrimSpace(col) != symptomHeader[i] {
			return nil, &DataLoadError{
				Source: path,
				Err:    fmt.Errorf("unexpected column %q, want %q", col, symptomHeader[i]),
			}
		}
	}

	entries := make([]entities.SymptomRiskEntry, 0, len(records)-1)
	for i, row := range records[1:] {
		weight, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			return nil, &DataLoadError{
				Source: path,
				Err:    fmt.Errorf("row %d: non-numeric risk weight %q", i+2, row[1]),
			}
		}

		entries = append(entries, entities.SymptomRiskEntry{
			Keyword:     row[0],
			RiskWeight:  weight,
			CommonDrugs: splitDrugList(row[2]),
		})
	}

	table, err := NewSymptomTable(entries)
	if err != nil {
		return nil, &DataLoadError{Source: path, Err: err}
	}

	return table, nil
}

// LoadDrugRegistry parses the verified-drug JSON registry.
func LoadDrugRegistry(path string) (*DrugRegistry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &DataLoadError{Source: path, Err: err}
	}

	var drugs []entities.VerifiedDrug
	if err := json.Unmarshal(raw, &drugs); err != nil {
		return nil, &DataLoadError{Source: path, Err: err}
	}
	if len(drugs) == 0 {
		return nil, &DataLoadError{Source: path, Err: fmt.Errorf("no registry records")}
	}

	registry, err := NewDrugRegistry(drugs)
	if err != nil {
		return nil, &DataLoadError{Source: path, Err: err}
	}

	return registry, nil
}

// splitDrugList splits a comma-separated drug list, dropping blanks.
func splitDrugList(raw string) []string {
	var drugs []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			drugs = append(drugs, trimmed)
		}
	}
	return drugs
}
