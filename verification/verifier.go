// Package verification checks drug names and identity claims against
// the verified-drug registry. Recommendation verification is a pure
// inclusion filter; identity verification produces a confidence-scored
// verdict. Registry ambiguity (repeated product names) resolves
// first-match-wins in load order.
package verification

import (
	"fmt"
	"strings"

	"github.com/nexahealth/nexahealth-api/refdata"
	"github.com/nexahealth/nexahealth-api/refdata/entities"
)

// Confidence penalties and floor scores for identity verification.
const (
	fullMatchScore      = 100
	namePenalty         = 20
	regNoPenalty        = 40
	partialMatchScore   = 70
	conflictScore       = 50
	confidentThreshold  = 90
	cautionThreshold    = 70
	mismatchedThreshold = 50
)

// Verifier validates drug names and identity claims against the registry.
type Verifier struct {
	registry *refdata.DrugRegistry
}

// NewVerifier creates a verifier over the given registry.
func NewVerifier(registry *refdata.DrugRegistry) *Verifier {
	return &Verifier{registry: registry}
}

// VerifyRecommendations keeps the candidate names backed by the
// registry: an exact product-name match or an occurrence inside any
// ingredient string, both case-insensitive. The result is always a
// subset of names, in input order.
func (v *Verifier) VerifyRecommendations(names []string) []string {
	verified := []string{}
	for _, name := range names {
		if v.knownToRegistry(name) {
			verified = append(verified, name)
		}
	}
	return verified
}

func (v *Verifier) knownToRegistry(name string) bool {
	needle := canon(name)
	if needle == "" {
		return false
	}

	for _, drug := range v.registry.Drugs() {
		if canon(drug.ProductName) == needle {
			return true
		}
		for _, ingredient := range drug.Ingredients {
			if strings.Contains(strings.ToLower(ingredient), needle) {
				return true
			}
		}
	}
	return false
}

// VerifyIdentity validates an explicit identity claim. Matching runs
// by decreasing specificity: name+registration, name only, registration
// only, then unknown. Either input may be empty; both empty degrades to
// the unknown verdict rather than failing.
func (v *Verifier) VerifyIdentity(productName, regNo string) entities.VerificationVerdict {
	name := canon(productName)
	reg := canon(regNo)

	if name != "" && reg != "" {
		for _, drug := range v.registry.Drugs() {
			if canon(drug.ProductName) == name && canon(drug.NafdacRegNo) == reg {
				return v.fullMatchVerdict(drug, productName, regNo)
			}
		}
	}

	if name != "" {
		for _, drug := range v.registry.Drugs() {
			if canon(drug.ProductName) == name {
				return verdict(entities.VerdictPartialMatch, partialMatchScore, drug,
					"Product name matches a NAFDAC-verified drug, but the registration number does not. Please check again.")
			}
		}
	}

	if reg != "" {
		for _, drug := range v.registry.Drugs() {
			if canon(drug.NafdacRegNo) != "" && canon(drug.NafdacRegNo) == reg {
				return verdict(entities.VerdictConflictWarning, conflictScore, drug,
					"NAFDAC registration number is valid, but the product name does not match the official record. This could indicate a counterfeit product.")
			}
		}
	}

	return entities.VerificationVerdict{
		Status:  entities.VerdictUnknown,
		Message: "Drug not found in NAFDAC records with the given information.",
	}
}

// fullMatchVerdict scores a record matched on both fields. The
// penalties re-check each claimed field against the stored record;
// with an exact-match predicate they cannot fire.
func (v *Verifier) fullMatchVerdict(drug entities.VerifiedDrug, claimedName, claimedRegNo string) entities.VerificationVerdict {
	score := fullMatchScore
	if claimedName != "" && canon(claimedName) != canon(drug.ProductName) {
		score -= namePenalty
	}
	if claimedRegNo != "" && canon(claimedRegNo) != canon(drug.NafdacRegNo) {
		score -= regNoPenalty
	}

	var message string
	switch drug.Status {
	case entities.StatusVerified:
		switch {
		case score >= confidentThreshold:
			message = fmt.Sprintf("%s is NAFDAC verified and matches confidently.", drug.ProductName)
		case score >= cautionThreshold:
			message = fmt.Sprintf("%s is verified, but some details may not match fully. Caution advised.", drug.ProductName)
		case score >= mismatchedThreshold:
			message = fmt.Sprintf("%s is verified, but with multiple mismatches. Higher risk of misrepresentation.", drug.ProductName)
		default:
			message = fmt.Sprintf("%s is verified, but data provided appears suspicious. High risk.", drug.ProductName)
		}
	case entities.StatusFlagged:
		message = fmt.Sprintf("Warning: %s has been flagged by multiple reports.", drug.ProductName)
	default:
		message = fmt.Sprintf("%s is not verified by NAFDAC.", drug.ProductName)
	}

	return verdict(entities.VerificationStatus(drug.Status), score, drug, message)
}

func verdict(status entities.VerificationStatus, score int, drug entities.VerifiedDrug, message string) entities.VerificationVerdict {
	matched := drug
	return entities.VerificationVerdict{
		Status:      status,
		Message:     message,
		MatchedDrug: &matched,
		MatchScore:  &score,
	}
}

// canon normalizes a field for comparison: trimmed and lowercased.
func canon(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
