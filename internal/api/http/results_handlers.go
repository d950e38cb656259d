package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/examtrack/examtrack/internal/result"
)

// GET /api/results
func ListResultsHandler(svc *result.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results, err := svc.ListAll(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to fetch results", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, results)
	}
}

// GET /api/results/{type}
func ListResultsByTypeHandler(svc *result.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t := result.ExamType(chi.URLParam(r, "type"))
		results, err := svc.ListByType(r.Context(), t)
		if err != nil {
			var verr *result.ValidationError
			if errors.As(err, &verr) {
				writeError(w, http.StatusBadRequest, verr.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "Failed to fetch results", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, results)
	}
}

// POST /api/results
func CreateResultHandler(svc *result.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in result.ExamResult
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
			return
		}
		if msg := validateNumbers(in); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		created, err := svc.Create(r.Context(), in)
		if err != nil {
			var verr *result.ValidationError
			switch {
			case errors.As(err, &verr):
				writeError(w, http.StatusBadRequest, "Nick and examType are required", verr.Error())
				return
			case errors.Is(err, result.ErrSidecarWrite):
				// The row committed; respond 201 but flag that the error
				// descriptions may not have been recorded.
				log.Printf("result %d created with unrecorded error descriptions: %v", created.ID, err)
				writeJSON(w, http.StatusCreated, struct {
					result.ExamResult
					Warning string `json:"warning"`
				}{created, "error descriptions may not have been saved"})
				return
			default:
				writeError(w, http.StatusInternalServerError, "Failed to save result", err.Error())
				return
			}
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

// DELETE /api/results/{id}
func DeleteResultHandler(svc *result.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusNotFound, "Result not found")
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			if errors.Is(err, result.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Result not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "Failed to delete result", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Result deleted successfully"})
	}
}

// GET /api/stats
func StatsHandler(svc *result.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Stats(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to generate statistics", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

// validateNumbers rejects malformed numeric input before it reaches the
// store; the store itself does not re-check arithmetic consistency.
func validateNumbers(in result.ExamResult) string {
	if in.TotalPoints < 0 || in.MaxPoints < 0 {
		return "Points must not be negative"
	}
	if in.BonusPoints != nil && *in.BonusPoints < 0 {
		return "Bonus points must not be negative"
	}
	if in.Errors != nil && *in.Errors < 0 {
		return "Errors count must not be negative"
	}
	if in.Percentage < 0 {
		return "Percentage must not be negative"
	}
	for _, qr := range in.QuestionResults {
		if qr.PointsEarned < 0 {
			return "Question points must not be negative"
		}
	}
	return ""
}
