package entities

// DrugStatus is the registry's own classification of a product.
type DrugStatus string

const (
	StatusVerified DrugStatus = "verified"
	StatusFlagged  DrugStatus = "flagged"
	StatusUnknown  DrugStatus = "unknown"
)

// ValidDrugStatus reports whether s is one of the registry statuses.
func ValidDrugStatus(s DrugStatus) bool {
	switch s {
	case StatusVerified, StatusFlagged, StatusUnknown:
		return true
	}
	return false
}

// VerifiedDrug is one record of the NAFDAC-verified drug registry.
// NafdacRegNo may be empty. Product names are not guaranteed unique;
// lookups resolve first-match-wins in load order.
type VerifiedDrug struct {
	ProductName string     `json:"product_name"`
	NafdacRegNo string     `json:"nafdac_reg_no,omitempty"`
	DosageForm  string     `json:"dosage_form"`
	Strengths   []string   `json:"strengths"`
	Ingredients []string   `json:"ingredients"`
	Status      DrugStatus `json:"status"`
}
