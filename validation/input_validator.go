// Package validation provides input validation for the drug-safety API.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nexahealth/nexahealth-api/interfaces"
)

// Field length limits. Symptom text is prose; names and registration
// numbers are short identifiers.
const (
	maxSymptomTextLength = 1000
	maxDrugNameLength    = 120
	maxRegNoLength       = 40
)

// Registration numbers: letters, digits, separators (e.g. NAFDAC-12345, A4-100157)
var regNoRegex = regexp.MustCompile(`^[a-zA-Z0-9\-/\. ]+$`)

// Dangerous patterns screened out of all free-text fields. Kept to
// patterns that cannot occur in legitimate symptom prose or product
// names; strings.Contains is faster than regex for these.
var dangerousPatterns = []string{
	"<script", "</script>", "javascript:", "vbscript:", "onload=", "onerror=",
	"onclick=", "onmouseover=", "eval(", "expression(", "@import",
	// SQL injection patterns
	"' or ", "\" or ", "union select", "drop table", "delete from", "insert into",
	"xp_", "sp_", "exec(", "execute(",
	// Command injection patterns
	"`", "$(", "${",
	// Path traversal patterns
	"../", "..\\", "%2e%2e", "file://",
}

// InputValidatorImpl implements the interfaces.InputValidator interface
type InputValidatorImpl struct{}

// NewInputValidator creates a new input validator
func NewInputValidator() interfaces.InputValidator {
	return &InputValidatorImpl{}
}

// ValidateSymptomText validates free-text symptom input. Empty input is
// allowed here: the extraction engine treats it as a valid no-match.
func (v *InputValidatorImpl) ValidateSymptomText(input string) error {
	if len(input) > maxSymptomTextLength {
		return fmt.Errorf("symptom text too long: %d characters (max %d)", len(input), maxSymptomTextLength)
	}
	return checkDangerousPatterns(input)
}

// ValidateDrugName validates a claimed product name.
func (v *InputValidatorImpl) ValidateDrugName(input string) error {
	if len(input) > maxDrugNameLength {
		return fmt.Errorf("product name too long: %d characters (max %d)", len(input), maxDrugNameLength)
	}
	return checkDangerousPatterns(input)
}

// ValidateRegNo validates a claimed registration number.
func (v *InputValidatorImpl) ValidateRegNo(input string) error {
	if input == "" {
		return nil
	}
	if len(input) > maxRegNoLength {
		return fmt.Errorf("registration number too long: %d characters (max %d)", len(input), maxRegNoLength)
	}
	if !regNoRegex.MatchString(input) {
		return fmt.Errorf("registration number contains invalid characters")
	}
	return nil
}

func checkDangerousPatterns(input string) error {
	lowered := strings.ToLower(input)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lowered, pattern) {
			return fmt.Errorf("input contains disallowed pattern")
		}
	}
	return nil
}
