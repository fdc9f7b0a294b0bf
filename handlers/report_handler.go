package handlers

import (
	"net/http"

	"github.com/nexahealth/nexahealth-api/logging"
	"github.com/nexahealth/nexahealth-api/reports"
)

// ReportResponse is the body of a report submission outcome.
type ReportResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// SubmitReport accepts a suspicious-drug report into the append-only store
func SubmitReport(store reports.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var report reports.Report
		if !decodeJSONBody(w, r, &report) {
			return
		}

		if err := store.Append(report); err != nil {
			RespondWithJSON(w, http.StatusBadRequest, ReportResponse{
				Message: err.Error(),
				Status:  "error",
			})
			return
		}

		logging.Info("Report submitted",
			"drug_name", report.DrugName,
			"state", report.State,
			"lga", report.LGA)

		RespondWithJSON(w, http.StatusOK, ReportResponse{
			Message: "Report submitted successfully.",
			Status:  "success",
		})
	}
}
