package result

import (
	"github.com/examtrack/examtrack/internal/scoring"
)

type ExamType string

const (
	TypeChecking  ExamType = "sprawdzanie"
	TypeSpelling  ExamType = "ortografia"
	TypeDocuments ExamType = "dokumenty"
)

func (t ExamType) Valid() bool {
	switch t {
	case TypeChecking, TypeSpelling, TypeDocuments:
		return true
	}
	return false
}

// ExamResult is one submitted exam attempt. The id and timestamp are assigned
// by the store on insert; client-supplied values for either are ignored.
// ErrorsList is not a table column: it lives in the error sidecar and is
// merged in at read time.
type ExamResult struct {
	ID            int64    `json:"id"`
	Nick          string   `json:"nick"`
	Date          string   `json:"date,omitempty"`
	Attempt       *int     `json:"attempt,omitempty"`
	TotalPoints   int      `json:"totalPoints"`
	MaxPoints     int      `json:"maxPoints"`
	Percentage    float64  `json:"percentage"`
	Passed        bool     `json:"passed"`
	Timestamp     string   `json:"timestamp"`
	ExamType      ExamType `json:"examType"`
	Errors        *int     `json:"errors,omitempty"`
	BonusPoints   *int     `json:"bonusPoints,omitempty"`
	Notes         string   `json:"notes,omitempty"`
	ConductorName string   `json:"conductorName,omitempty"`
	ConductorID   string   `json:"conductorId,omitempty"`

	QuestionResults []scoring.QuestionResult `json:"questionResults,omitempty"`
	ErrorsList      []scoring.ErrorNote      `json:"errorsList"`
}

type TypeCounts struct {
	Checking  int `json:"sprawdzanie"`
	Spelling  int `json:"ortografia"`
	Documents int `json:"dokumenty"`
}

type Stats struct {
	Total    int        `json:"total"`
	Passed   int        `json:"passed"`
	Failed   int        `json:"failed"`
	ByType   TypeCounts `json:"byType"`
	PassRate int        `json:"passRate"`
}
