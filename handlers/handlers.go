// Package handlers provides HTTP request handlers for the drug-safety
// API endpoints: symptom diagnosis, drug identity verification,
// flagged-drug listing, report submission, and health checks, with
// input validation and consistent JSON responses.
package handlers

import (
	"encoding/json"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/nexahealth/nexahealth-api/data"
	"github.com/nexahealth/nexahealth-api/diagnosis"
	"github.com/nexahealth/nexahealth-api/interfaces"
	"github.com/nexahealth/nexahealth-api/logging"
	"github.com/nexahealth/nexahealth-api/metrics"
	"github.com/nexahealth/nexahealth-api/refdata/entities"
	"github.com/nexahealth/nexahealth-api/verification"
)

// RespondWithJSON writes a JSON response
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
	w.WriteHeader(code)
	w.Write(body)
}

// RespondWithError writes a JSON error response
func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, map[string]string{"error": msg})
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logging.Warn("Malformed request body", "error", err, "path", r.URL.Path)
		RespondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}

// DiagnoseRequest is the body of POST /diagnose.
type DiagnoseRequest struct {
	Symptoms string `json:"symptoms"`
}

// SuggestedDrug is one registry-enriched recommendation.
type SuggestedDrug struct {
	Name       string `json:"name"`
	DosageForm string `json:"dosageForm"`
	UseCase    string `json:"useCase"`
}

// DiagnoseResponse is the body of a successful diagnosis.
type DiagnoseResponse struct {
	DiagnosisType   string             `json:"diagnosisType"`
	Result          entities.RiskLevel `json:"result"`
	Score           int                `json:"score"`
	MatchedKeywords []string           `json:"matchedKeywords"`
	SuggestedDrugs  []SuggestedDrug    `json:"suggestedDrugs"`
	VerifiedDrugs   []string           `json:"verifiedDrugs"`
}

// Diagnose assesses risk for free-text symptoms and recommends drugs
func Diagnose(dataContainer *data.DataContainer, validator interfaces.InputValidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DiagnoseRequest
		if !decodeJSONBody(w, r, &req) {
			return
		}

		if err := validator.ValidateSymptomText(req.Symptoms); err != nil {
			logging.Warn("Unusual user input", "error", err)
			RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		registry := dataContainer.GetDrugRegistry()
		engine := diagnosis.NewEngine(dataContainer.GetSymptomTable(), registry)
		assessment := engine.AssessRisk(req.Symptoms)

		metrics.DiagnosisTotal.WithLabelValues(string(assessment.RiskLevel)).Inc()

		suggested := make([]SuggestedDrug, 0, len(assessment.RecommendedDrugs))
		for _, name := range assessment.RecommendedDrugs {
			suggested = append(suggested, enrichSuggestion(name, registry.Drugs()))
		}

		RespondWithJSON(w, http.StatusOK, DiagnoseResponse{
			DiagnosisType:   "risk",
			Result:          assessment.RiskLevel,
			Score:           assessment.RiskScore,
			MatchedKeywords: assessment.MatchedKeywords,
			SuggestedDrugs:  suggested,
			VerifiedDrugs:   assessment.VerifiedRecommendations,
		})
	}
}

// enrichSuggestion fills dosage form and use case from the registry
// when the recommended name is an official product; first record wins.
func enrichSuggestion(name string, drugs []entities.VerifiedDrug) SuggestedDrug {
	for _, drug := range drugs {
		if equalsFold(drug.ProductName, name) {
			useCase := "General use"
			if len(drug.Ingredients) > 0 {
				useCase = "Used for treatment involving: " + strings.Join(drug.Ingredients, ", ")
			}
			return SuggestedDrug{
				Name:       drug.ProductName,
				DosageForm: orDefault(drug.DosageForm, "N/A"),
				UseCase:    useCase,
			}
		}
	}
	return SuggestedDrug{Name: name, DosageForm: "N/A", UseCase: "Not specified"}
}

// ExtractRequest is the body of POST /extract-keywords.
type ExtractRequest struct {
	Text string `json:"text"`
}

// ExtractKeywords resolves free text to known symptom keywords
func ExtractKeywords(dataContainer *data.DataContainer, validator interfaces.InputValidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ExtractRequest
		if !decodeJSONBody(w, r, &req) {
			return
		}

		if err := validator.ValidateSymptomText(req.Text); err != nil {
			RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		engine := diagnosis.NewEngine(dataContainer.GetSymptomTable(), dataContainer.GetDrugRegistry())
		RespondWithJSON(w, http.StatusOK, map[string][]string{
			"keywords": engine.ExtractKeywords(req.Text),
		})
	}
}

// VerifyRecommendationsRequest is the body of POST /verify-recommendations.
type VerifyRecommendationsRequest struct {
	Drugs []string `json:"drugs"`
}

// VerifyRecommendations filters drug names down to registry-backed ones
func VerifyRecommendations(dataContainer *data.DataContainer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req VerifyRecommendationsRequest
		if !decodeJSONBody(w, r, &req) {
			return
		}

		verifier := verification.NewVerifier(dataContainer.GetDrugRegistry())
		RespondWithJSON(w, http.StatusOK, map[string][]string{
			"verified": verifier.VerifyRecommendations(req.Drugs),
		})
	}
}

// VerifyDrugRequest is the body of POST /verify-drug. Both fields are
// optional; at least one is expected for a useful answer.
type VerifyDrugRequest struct {
	ProductName string `json:"product_name"`
	NafdacRegNo string `json:"nafdac_reg_no"`
}

// VerifyDrugResponse flattens the verdict and the matched record.
type VerifyDrugResponse struct {
	Status      entities.VerificationStatus `json:"status"`
	Message     string                      `json:"message"`
	ProductName string                      `json:"product_name,omitempty"`
	DosageForm  string                      `json:"dosage_form,omitempty"`
	Strengths   []string                    `json:"strengths,omitempty"`
	Ingredients []string                    `json:"ingredients,omitempty"`
	NafdacRegNo string                      `json:"nafdac_reg_no,omitempty"`
	MatchScore  *int                        `json:"match_score,omitempty"`
}

// VerifyDrug checks an identity claim against the registry
func VerifyDrug(dataContainer *data.DataContainer, validator interfaces.InputValidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req VerifyDrugRequest
		if !decodeJSONBody(w, r, &req) {
			return
		}

		if err := validator.ValidateDrugName(req.ProductName); err != nil {
			RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := validator.ValidateRegNo(req.NafdacRegNo); err != nil {
			RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		verifier := verification.NewVerifier(dataContainer.GetDrugRegistry())
		verdict := verifier.VerifyIdentity(req.ProductName, req.NafdacRegNo)

		metrics.VerificationTotal.WithLabelValues(string(verdict.Status)).Inc()

		resp := VerifyDrugResponse{
			Status:     verdict.Status,
			Message:    verdict.Message,
			MatchScore: verdict.MatchScore,
		}
		if verdict.MatchedDrug != nil {
			resp.ProductName = verdict.MatchedDrug.ProductName
			resp.DosageForm = verdict.MatchedDrug.DosageForm
			resp.Strengths = verdict.MatchedDrug.Strengths
			resp.Ingredients = verdict.MatchedDrug.Ingredients
			resp.NafdacRegNo = verdict.MatchedDrug.NafdacRegNo
		}

		RespondWithJSON(w, http.StatusOK, resp)
	}
}

// Flagged lists registry records flagged by official reports
func Flagged(dataContainer *data.DataContainer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flagged := dataContainer.GetDrugRegistry().Flagged()
		if flagged == nil {
			flagged = []entities.VerifiedDrug{}
		}
		RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"count": len(flagged),
			"drugs": flagged,
		})
	}
}

// HealthResponse defines the structure for consistent JSON ordering
type HealthResponse struct {
	Status        string         `json:"status"`
	UptimeSeconds float64        `json:"uptime_seconds"`
	NextUpdate    string         `json:"next_update"`
	Data          map[string]any `json:"data"`
	System        map[string]any `json:"system"`
}

// HealthCheck returns server health information
func HealthCheck(dataContainer *data.DataContainer, checker interfaces.HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		status, healthData, httpStatus := checker.HealthCheck()
		uptime := time.Since(dataContainer.GetServerStartTime())

		response := HealthResponse{
			Status:        status,
			UptimeSeconds: uptime.Seconds(),
			NextUpdate:    checker.CalculateNextUpdate().Format(time.RFC3339),
			Data:          healthData,
			System: map[string]any{
				"goroutines": runtime.NumGoroutine(),
				"memory": map[string]any{
					"alloc_mb":       int(m.Alloc / 1024 / 1024),
					"total_alloc_mb": int(m.TotalAlloc / 1024 / 1024),
					"sys_mb":         int(m.Sys / 1024 / 1024),
					"num_gc":         m.NumGC,
				},
			},
		}

		RespondWithJSON(w, httpStatus, response)
	}
}

func equalsFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
