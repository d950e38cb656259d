package scoring

import (
	"fmt"
	"math"
)

// PassThreshold is the pass percentage shared by all exam types.
const PassThreshold = 75.0

// SpellingWordCount is the fixed word pool of the spelling exam.
const SpellingWordCount = 20

type QuestionInput struct {
	QuestionID   int `json:"questionId"`
	MaxPoints    int `json:"maxPoints"`
	PointsEarned int `json:"pointsEarned"`
}

type QuestionResult struct {
	QuestionID   int  `json:"questionId"`
	PointsEarned int  `json:"pointsEarned"`
	Passed       bool `json:"passed"`
}

// ErrorNote describes one recorded mistake. Notes live in the error sidecar,
// keyed by result id, not in the results table.
type ErrorNote struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

// Outcome is the scored summary handed to the results store.
type Outcome struct {
	TotalPoints     int
	MaxPoints       int
	Percentage      float64
	Passed          bool
	Errors          int
	BonusPoints     int
	QuestionResults []QuestionResult
	ErrorsList      []ErrorNote
}

// Round2 rounds to two decimal places, matching how percentages are stored.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func percentageOf(total, max int) float64 {
	if max <= 0 {
		return 0
	}
	return Round2(float64(total) / float64(max) * 100)
}

// ScoreChecking grades a question-based ("sprawdzanie") exam. Each recorded
// error subtracts one point from the earned sum, floored at zero; bonus
// points widen both the numerator and the denominator. descriptions documents
// the recorded errors in order; missing or blank entries are padded with a
// placeholder so the note list always matches errorsCount.
func ScoreChecking(questions []QuestionInput, errorsCount, bonusPoints int, descriptions []string) (Outcome, error) {
	if errorsCount < 0 {
		return Outcome{}, fmt.Errorf("errors count must not be negative: %d", errorsCount)
	}
	if bonusPoints < 0 {
		return Outcome{}, fmt.Errorf("bonus points must not be negative: %d", bonusPoints)
	}

	earned := 0
	maxSum := 0
	results := make([]QuestionResult, 0, len(questions))
	for _, q := range questions {
		if q.PointsEarned < 0 {
			return Outcome{}, fmt.Errorf("question %d: points earned must not be negative: %d", q.QuestionID, q.PointsEarned)
		}
		if q.MaxPoints < 0 {
			return Outcome{}, fmt.Errorf("question %d: max points must not be negative: %d", q.QuestionID, q.MaxPoints)
		}
		if q.PointsEarned > q.MaxPoints {
			return Outcome{}, fmt.Errorf("question %d: points earned %d exceed max %d", q.QuestionID, q.PointsEarned, q.MaxPoints)
		}
		earned += q.PointsEarned
		maxSum += q.MaxPoints
		results = append(results, QuestionResult{
			QuestionID:   q.QuestionID,
			PointsEarned: q.PointsEarned,
			Passed:       q.PointsEarned > 0,
		})
	}

	afterErrors := earned - errorsCount
	if afterErrors < 0 {
		afterErrors = 0
	}
	total := afterErrors + bonusPoints
	max := maxSum + bonusPoints
	pct := percentageOf(total, max)

	notes := make([]ErrorNote, errorsCount)
	for i := 0; i < errorsCount; i++ {
		desc := ""
		if i < len(descriptions) {
			desc = descriptions[i]
		}
		if desc == "" {
			desc = fmt.Sprintf("Błąd nr %d (brak opisu)", i+1)
		}
		notes[i] = ErrorNote{ID: i + 1, Description: desc}
	}

	return Outcome{
		TotalPoints:     total,
		MaxPoints:       max,
		Percentage:      pct,
		Passed:          pct >= PassThreshold,
		Errors:          errorsCount,
		BonusPoints:     bonusPoints,
		QuestionResults: results,
		ErrorsList:      notes,
	}, nil
}

// ScoreSpelling grades a spelling ("ortografia") exam from the percentage the
// conductor entered. The percentage is kept as entered; points and error
// count are derived from the fixed 20-word pool.
func ScoreSpelling(percentage int) (Outcome, error) {
	if percentage < 0 || percentage > 100 {
		return Outcome{}, fmt.Errorf("percentage out of range: %d", percentage)
	}
	achieved := int(math.Round(float64(percentage) / 100 * SpellingWordCount))
	return Outcome{
		TotalPoints: achieved,
		MaxPoints:   SpellingWordCount,
		Percentage:  float64(percentage),
		Passed:      float64(percentage) >= PassThreshold,
		Errors:      SpellingWordCount - achieved,
	}, nil
}

// ScoreDocuments grades a points-based ("dokumenty") exam.
func ScoreDocuments(maxPoints, achievedPoints, bonusPoints int) (Outcome, error) {
	if maxPoints < 0 {
		return Outcome{}, fmt.Errorf("max points must not be negative: %d", maxPoints)
	}
	if achievedPoints < 0 {
		return Outcome{}, fmt.Errorf("achieved points must not be negative: %d", achievedPoints)
	}
	if bonusPoints < 0 {
		return Outcome{}, fmt.Errorf("bonus points must not be negative: %d", bonusPoints)
	}
	total := achievedPoints + bonusPoints
	max := maxPoints + bonusPoints
	pct := percentageOf(total, max)
	return Outcome{
		TotalPoints: total,
		MaxPoints:   max,
		Percentage:  pct,
		Passed:      pct >= PassThreshold,
		BonusPoints: bonusPoints,
	}, nil
}
