package http

import (
	"encoding/json"
	"net/http"

	"github.com/examtrack/examtrack/internal/result"
	"github.com/examtrack/examtrack/internal/scoring"
)

type scoreRequest struct {
	ExamType result.ExamType `json:"examType"`

	// question-based ("sprawdzanie")
	Questions         []scoring.QuestionInput `json:"questions,omitempty"`
	Errors            int                     `json:"errors,omitempty"`
	ErrorDescriptions []string                `json:"errorDescriptions,omitempty"`

	// spelling ("ortografia")
	Percentage int `json:"percentage,omitempty"`

	// documents ("dokumenty")
	MaxPoints      int `json:"maxPoints,omitempty"`
	AchievedPoints int `json:"achievedPoints,omitempty"`

	BonusPoints int `json:"bonusPoints,omitempty"`
}

type scoreResponse struct {
	TotalPoints     int                      `json:"totalPoints"`
	MaxPoints       int                      `json:"maxPoints"`
	Percentage      float64                  `json:"percentage"`
	Passed          bool                     `json:"passed"`
	Errors          int                      `json:"errors"`
	BonusPoints     int                      `json:"bonusPoints"`
	QuestionResults []scoring.QuestionResult `json:"questionResults,omitempty"`
	ErrorsList      []scoring.ErrorNote      `json:"errorsList"`
}

// POST /api/score computes a result record from raw per-exam-type inputs
// without persisting anything, so thin clients do not have to reimplement
// the scoring rules.
func ScoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req scoreRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
			return
		}

		var out scoring.Outcome
		var err error
		switch req.ExamType {
		case result.TypeChecking:
			out, err = scoring.ScoreChecking(req.Questions, req.Errors, req.BonusPoints, req.ErrorDescriptions)
		case result.TypeSpelling:
			out, err = scoring.ScoreSpelling(req.Percentage)
		case result.TypeDocuments:
			out, err = scoring.ScoreDocuments(req.MaxPoints, req.AchievedPoints, req.BonusPoints)
		default:
			writeError(w, http.StatusBadRequest, "Unknown exam type")
			return
		}
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid scoring input", err.Error())
			return
		}

		notes := out.ErrorsList
		if notes == nil {
			notes = []scoring.ErrorNote{}
		}
		writeJSON(w, http.StatusOK, scoreResponse{
			TotalPoints:     out.TotalPoints,
			MaxPoints:       out.MaxPoints,
			Percentage:      out.Percentage,
			Passed:          out.Passed,
			Errors:          out.Errors,
			BonusPoints:     out.BonusPoints,
			QuestionResults: out.QuestionResults,
			ErrorsList:      notes,
		})
	}
}
