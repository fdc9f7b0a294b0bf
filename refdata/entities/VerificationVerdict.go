package entities

// VerificationStatus classifies the outcome of an identity check.
type VerificationStatus string

const (
	VerdictVerified        VerificationStatus = "verified"
	VerdictFlagged         VerificationStatus = "flagged"
	VerdictUnknown         VerificationStatus = "unknown"
	VerdictPartialMatch    VerificationStatus = "partial_match"
	VerdictConflictWarning VerificationStatus = "conflict_warning"
)

// VerificationVerdict is the result of checking an identity claim
// (product name and/or registration number) against the registry.
// MatchedDrug and MatchScore are nil exactly when no registry record
// matched at all; a matched record whose own registry status is
// unknown still carries the record and a score.
type VerificationVerdict struct {
	Status      VerificationStatus `json:"status"`
	Message     string             `json:"message"`
	MatchedDrug *VerifiedDrug      `json:"matchedDrug,omitempty"`
	MatchScore  *int               `json:"matchScore,omitempty"`
}
