package scoring

import "testing"

func TestScoreChecking(t *testing.T) {
	tests := []struct {
		name        string
		questions   []QuestionInput
		errorsCount int
		bonus       int
		wantTotal   int
		wantMax     int
		wantPct     float64
		wantPassed  bool
	}{
		{
			name: "errors and bonus",
			questions: []QuestionInput{
				{QuestionID: 1, MaxPoints: 2, PointsEarned: 2},
				{QuestionID: 2, MaxPoints: 3, PointsEarned: 0},
			},
			errorsCount: 1, bonus: 1,
			wantTotal: 2, wantMax: 6, wantPct: 33.33, wantPassed: false,
		},
		{
			name: "full marks",
			questions: []QuestionInput{
				{QuestionID: 1, MaxPoints: 2, PointsEarned: 2},
				{QuestionID: 2, MaxPoints: 3, PointsEarned: 3},
			},
			wantTotal: 5, wantMax: 5, wantPct: 100, wantPassed: true,
		},
		{
			name: "errors floor at zero",
			questions: []QuestionInput{
				{QuestionID: 1, MaxPoints: 2, PointsEarned: 1},
			},
			errorsCount: 10,
			wantTotal:   0, wantMax: 2, wantPct: 0, wantPassed: false,
		},
		{
			name:      "no questions no division error",
			questions: nil,
			wantTotal: 0, wantMax: 0, wantPct: 0, wantPassed: false,
		},
		{
			name: "exactly at threshold",
			questions: []QuestionInput{
				{QuestionID: 1, MaxPoints: 4, PointsEarned: 3},
			},
			wantTotal: 3, wantMax: 4, wantPct: 75, wantPassed: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ScoreChecking(tc.questions, tc.errorsCount, tc.bonus, nil)
			if err != nil {
				t.Fatalf("ScoreChecking: %v", err)
			}
			if got.TotalPoints != tc.wantTotal || got.MaxPoints != tc.wantMax {
				t.Errorf("points = %d/%d, want %d/%d", got.TotalPoints, got.MaxPoints, tc.wantTotal, tc.wantMax)
			}
			if got.Percentage != tc.wantPct {
				t.Errorf("percentage = %v, want %v", got.Percentage, tc.wantPct)
			}
			if got.Passed != tc.wantPassed {
				t.Errorf("passed = %v, want %v", got.Passed, tc.wantPassed)
			}
			if got.Passed != (got.Percentage >= PassThreshold) {
				t.Errorf("passed %v inconsistent with percentage %v", got.Passed, got.Percentage)
			}
			if len(got.ErrorsList) != tc.errorsCount {
				t.Errorf("errors list length = %d, want %d", len(got.ErrorsList), tc.errorsCount)
			}
		})
	}
}

func TestScoreCheckingPerQuestionPassed(t *testing.T) {
	got, err := ScoreChecking([]QuestionInput{
		{QuestionID: 1, MaxPoints: 2, PointsEarned: 1},
		{QuestionID: 2, MaxPoints: 3, PointsEarned: 0},
	}, 0, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !got.QuestionResults[0].Passed {
		t.Error("question with earned points should be passed")
	}
	if got.QuestionResults[1].Passed {
		t.Error("question with zero points should not be passed")
	}
}

func TestScoreCheckingErrorDescriptions(t *testing.T) {
	got, err := ScoreChecking([]QuestionInput{
		{QuestionID: 1, MaxPoints: 5, PointsEarned: 5},
	}, 3, 0, []string{"literówka", ""})
	if err != nil {
		t.Fatal(err)
	}
	if len(got.ErrorsList) != 3 {
		t.Fatalf("errors list length = %d, want 3", len(got.ErrorsList))
	}
	if got.ErrorsList[0].Description != "literówka" {
		t.Errorf("first description = %q", got.ErrorsList[0].Description)
	}
	// blank and missing descriptions get a placeholder, never dropped
	for i, n := range got.ErrorsList[1:] {
		if n.Description == "" {
			t.Errorf("description %d is blank, want placeholder", i+2)
		}
	}
	for i, n := range got.ErrorsList {
		if n.ID != i+1 {
			t.Errorf("note %d has id %d", i, n.ID)
		}
	}
}

func TestScoreCheckingRejectsInvalid(t *testing.T) {
	if _, err := ScoreChecking([]QuestionInput{{QuestionID: 1, MaxPoints: 2, PointsEarned: -1}}, 0, 0, nil); err == nil {
		t.Error("negative points earned accepted")
	}
	if _, err := ScoreChecking([]QuestionInput{{QuestionID: 1, MaxPoints: 2, PointsEarned: 3}}, 0, 0, nil); err == nil {
		t.Error("points earned above max accepted")
	}
	if _, err := ScoreChecking(nil, -1, 0, nil); err == nil {
		t.Error("negative errors count accepted")
	}
	if _, err := ScoreChecking(nil, 0, -2, nil); err == nil {
		t.Error("negative bonus accepted")
	}
}

func TestScoreSpelling(t *testing.T) {
	tests := []struct {
		name         string
		percentage   int
		wantAchieved int
		wantErrors   int
		wantPassed   bool
	}{
		{"eighty percent", 80, 16, 4, true},
		{"threshold", 75, 15, 5, true},
		{"below threshold", 74, 15, 5, false},
		{"zero", 0, 0, 20, false},
		{"perfect", 100, 20, 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ScoreSpelling(tc.percentage)
			if err != nil {
				t.Fatal(err)
			}
			if got.TotalPoints != tc.wantAchieved {
				t.Errorf("achieved = %d, want %d", got.TotalPoints, tc.wantAchieved)
			}
			if got.Errors != tc.wantErrors {
				t.Errorf("errors = %d, want %d", got.Errors, tc.wantErrors)
			}
			if got.MaxPoints != SpellingWordCount {
				t.Errorf("max = %d, want %d", got.MaxPoints, SpellingWordCount)
			}
			if got.Percentage != float64(tc.percentage) {
				t.Errorf("percentage = %v, want %d unmodified", got.Percentage, tc.percentage)
			}
			if got.Passed != tc.wantPassed {
				t.Errorf("passed = %v, want %v", got.Passed, tc.wantPassed)
			}
		})
	}

	if _, err := ScoreSpelling(-1); err == nil {
		t.Error("negative percentage accepted")
	}
	if _, err := ScoreSpelling(101); err == nil {
		t.Error("percentage above 100 accepted")
	}
}

func TestScoreDocuments(t *testing.T) {
	got, err := ScoreDocuments(100, 80, 5)
	if err != nil {
		t.Fatal(err)
	}
	if got.TotalPoints != 85 || got.MaxPoints != 105 {
		t.Errorf("points = %d/%d, want 85/105", got.TotalPoints, got.MaxPoints)
	}
	if got.Percentage != 80.95 {
		t.Errorf("percentage = %v, want 80.95", got.Percentage)
	}
	if !got.Passed {
		t.Error("should pass at 80.95")
	}

	// zero max points yields zero percentage, no division error
	zero, err := ScoreDocuments(0, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if zero.Percentage != 0 || zero.Passed {
		t.Errorf("zero pool: percentage = %v passed = %v", zero.Percentage, zero.Passed)
	}

	if _, err := ScoreDocuments(-1, 0, 0); err == nil {
		t.Error("negative max accepted")
	}
	if _, err := ScoreDocuments(10, -1, 0); err == nil {
		t.Error("negative achieved accepted")
	}
	if _, err := ScoreDocuments(10, 5, -1); err == nil {
		t.Error("negative bonus accepted")
	}
}

func TestRound2(t *testing.T) {
	cases := map[float64]float64{
		33.333333: 33.33,
		80.952380: 80.95,
		74.995:    75.0,
		0:         0,
	}
	for in, want := range cases {
		if got := Round2(in); got != want {
			t.Errorf("Round2(%v) = %v, want %v", in, got, want)
		}
	}
}
