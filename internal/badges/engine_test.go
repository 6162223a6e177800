package badges

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"learning-service/internal/models"
)

// fakeHistory answers quiz-history count queries from a canned table.
type fakeHistory struct {
	counts map[QuizHistoryFilter]int64
	err    error
}

func (f *fakeHistory) CountQuizzes(_ context.Context, _ string, filter QuizHistoryFilter) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.counts[filter], nil
}

func xpBadge(id string, threshold float64, reward int) models.Badge {
	return models.Badge{
		ID:       id,
		Name:     id,
		XPReward: reward,
		Criteria: models.BadgeCriteria{Type: models.CriteriaXP, Threshold: threshold},
	}
}

func TestEvaluateAwardsAndIsIdempotent(t *testing.T) {
	engine := NewEngine(nil)
	progress := models.NewUserProgress("user-1")
	progress.XP = 500

	catalog := []models.Badge{
		xpBadge("xp-100", 100, 25),
		xpBadge("xp-1000", 1000, 50),
	}

	earned := engine.Evaluate(context.Background(), progress, catalog)
	if len(earned) != 1 || earned[0] != "xp-100" {
		t.Fatalf("Expected only xp-100, got %v", earned)
	}
	if progress.XP != 525 {
		t.Errorf("Expected XP reward applied, got %d", progress.XP)
	}

	// Second pass must not re-award or double the reward.
	earned = engine.Evaluate(context.Background(), progress, catalog)
	if len(earned) != 0 {
		t.Errorf("Expected no new badges, got %v", earned)
	}
	if progress.XP != 525 {
		t.Errorf("Expected XP unchanged, got %d", progress.XP)
	}
	if len(progress.Badges) != 1 {
		t.Errorf("Expected one earned badge, got %d", len(progress.Badges))
	}
}

func TestEvaluateRewardCanCascade(t *testing.T) {
	engine := NewEngine(nil)
	progress := models.NewUserProgress("user-1")
	progress.XP = 90

	// The reward from the first badge pushes XP over the second badge's
	// threshold within the same scan.
	catalog := []models.Badge{
		xpBadge("xp-50", 50, 20),
		xpBadge("xp-100", 100, 20),
	}

	earned := engine.Evaluate(context.Background(), progress, catalog)
	if len(earned) != 2 {
		t.Fatalf("Expected both badges in catalog order, got %v", earned)
	}
	if progress.XP != 130 {
		t.Errorf("Expected 130 XP, got %d", progress.XP)
	}
}

func TestMeetsCriteriaSimpleCounters(t *testing.T) {
	engine := NewEngine(nil)

	progress := models.NewUserProgress("user-1")
	progress.XP = 200
	progress.Streaks.CurrentStreak = 7
	progress.TotalStudyTimeMinutes = 120
	progress.QuizzesTaken = 5
	progress.PerfectQuizzes = 2

	testCases := []struct {
		name     string
		criteria models.BadgeCriteria
		expected bool
	}{
		{"xp met", models.BadgeCriteria{Type: models.CriteriaXP, Threshold: 200}, true},
		{"xp not met", models.BadgeCriteria{Type: models.CriteriaXP, Threshold: 201}, false},
		{"streak met", models.BadgeCriteria{Type: models.CriteriaStreak, Threshold: 7}, true},
		{"streak not met", models.BadgeCriteria{Type: models.CriteriaStreak, Threshold: 8}, false},
		{"study time met", models.BadgeCriteria{Type: models.CriteriaStudyTime, Threshold: 60}, true},
		{"quiz count without metadata", models.BadgeCriteria{Type: models.CriteriaQuizCount, Threshold: 5}, true},
		{"perfect quiz met", models.BadgeCriteria{Type: models.CriteriaPerfectQuiz, Threshold: 2}, true},
		{"unknown type never met", models.BadgeCriteria{Type: "astrology", Threshold: 0}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			badge := models.Badge{ID: "b", Criteria: tc.criteria}
			got := engine.meetsCriteria(context.Background(), badge, progress)
			if got != tc.expected {
				t.Errorf("Expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestMeetsQuizCountWithMinScore(t *testing.T) {
	history := &fakeHistory{counts: map[QuizHistoryFilter]int64{
		{MinScore: 80}: 3,
	}}
	engine := NewEngine(history)

	progress := models.NewUserProgress("user-1")
	badge := models.Badge{ID: "b", Criteria: models.BadgeCriteria{
		Type:      models.CriteriaQuizCount,
		Threshold: 3,
		Metadata:  map[string]interface{}{"minScore": 80.0},
	}}

	if !engine.meetsCriteria(context.Background(), badge, progress) {
		t.Error("Expected criteria met with 3 qualifying quizzes")
	}

	badge.Criteria.Threshold = 4
	if engine.meetsCriteria(context.Background(), badge, progress) {
		t.Error("Expected criteria not met with threshold 4")
	}
}

func TestMeetsQuizScore(t *testing.T) {
	history := &fakeHistory{counts: map[QuizHistoryFilter]int64{
		{MinScore: 90}:                  1,
		{MinScore: 90, Level: "expert"}: 0,
	}}
	engine := NewEngine(history)
	progress := models.NewUserProgress("user-1")

	badge := models.Badge{ID: "b", Criteria: models.BadgeCriteria{
		Type:      models.CriteriaQuizScore,
		Threshold: 90,
	}}
	if !engine.meetsCriteria(context.Background(), badge, progress) {
		t.Error("Expected 90+ quiz to satisfy quiz_score")
	}

	badge.Criteria.Metadata = map[string]interface{}{"level": "expert"}
	if engine.meetsCriteria(context.Background(), badge, progress) {
		t.Error("Expected level-filtered quiz_score to fail")
	}
}

func TestHistoryErrorMeansNotMet(t *testing.T) {
	engine := NewEngine(&fakeHistory{err: errors.New("db down")})
	progress := models.NewUserProgress("user-1")

	badge := models.Badge{ID: "b", Criteria: models.BadgeCriteria{
		Type:      models.CriteriaQuizScore,
		Threshold: 90,
	}}
	if engine.meetsCriteria(context.Background(), badge, progress) {
		t.Error("Expected history error to be treated as not met")
	}
}

func TestNilHistoryMeansNotMet(t *testing.T) {
	engine := NewEngine(nil)
	progress := models.NewUserProgress("user-1")
	progress.QuizzesTaken = 100

	badge := models.Badge{ID: "b", Criteria: models.BadgeCriteria{
		Type:      models.CriteriaQuizCount,
		Threshold: 1,
		Metadata:  map[string]interface{}{"minScore": 80.0},
	}}
	if engine.meetsCriteria(context.Background(), badge, progress) {
		t.Error("Expected minScore query without history to be not met")
	}
}

func TestMeetsMastery(t *testing.T) {
	engine := NewEngine(nil)
	progress := models.NewUserProgress("user-1")
	progress.DifficultyProgress["easy"] = models.DifficultyProgress{Mastered: 10, Total: 12}
	progress.DifficultyProgress["medium"] = models.DifficultyProgress{Mastered: 5, Total: 8}
	progress.DifficultyProgress["hard"] = models.DifficultyProgress{Mastered: 2, Total: 4}
	for i := 0; i < 17; i++ {
		id := fmt.Sprintf("q%d", i)
		progress.Questions[id] = &models.QuestionProgress{QuestionID: id, MasteryLevel: models.MasteryMastered}
	}

	testCases := []struct {
		name     string
		criteria models.BadgeCriteria
		expected bool
	}{
		{
			"overall count met",
			models.BadgeCriteria{Type: models.CriteriaMastery, Threshold: 17},
			true,
		},
		{
			"overall count not met",
			models.BadgeCriteria{Type: models.CriteriaMastery, Threshold: 18},
			false,
		},
		{
			"single difficulty met",
			models.BadgeCriteria{Type: models.CriteriaMastery, Threshold: 10,
				Metadata: map[string]interface{}{"difficulty": "easy"}},
			true,
		},
		{
			"single difficulty not met",
			models.BadgeCriteria{Type: models.CriteriaMastery, Threshold: 10,
				Metadata: map[string]interface{}{"difficulty": "medium"}},
			false,
		},
		{
			"all difficulties met",
			models.BadgeCriteria{Type: models.CriteriaMastery, Threshold: 2,
				Metadata: map[string]interface{}{"all_difficulties": true}},
			true,
		},
		{
			"all difficulties bounded by weakest",
			models.BadgeCriteria{Type: models.CriteriaMastery, Threshold: 3,
				Metadata: map[string]interface{}{"all_difficulties": true}},
			false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			badge := models.Badge{ID: "b", Criteria: tc.criteria}
			got := engine.meetsCriteria(context.Background(), badge, progress)
			if got != tc.expected {
				t.Errorf("Expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestMeetsSpeed(t *testing.T) {
	engine := NewEngine(nil)
	progress := models.NewUserProgress("user-1")
	progress.Questions["q1"] = &models.QuestionProgress{CorrectCount: 3, AverageTimeSeconds: 3.5}
	progress.Questions["q2"] = &models.QuestionProgress{CorrectCount: 1, AverageTimeSeconds: 4.9}
	progress.Questions["q3"] = &models.QuestionProgress{CorrectCount: 2, AverageTimeSeconds: 9.0}
	progress.Questions["q4"] = &models.QuestionProgress{CorrectCount: 0, AverageTimeSeconds: 1.0} // never correct

	t.Run("default max time of five seconds", func(t *testing.T) {
		badge := models.Badge{ID: "b", Criteria: models.BadgeCriteria{
			Type: models.CriteriaSpeed, Threshold: 2,
		}}
		if !engine.meetsCriteria(context.Background(), badge, progress) {
			t.Error("Expected two fast questions to qualify")
		}
		badge.Criteria.Threshold = 3
		if engine.meetsCriteria(context.Background(), badge, progress) {
			t.Error("Expected threshold 3 to fail under default max time")
		}
	})

	t.Run("custom max time", func(t *testing.T) {
		badge := models.Badge{ID: "b", Criteria: models.BadgeCriteria{
			Type: models.CriteriaSpeed, Threshold: 3,
			Metadata: map[string]interface{}{"maxTime": 10.0},
		}}
		if !engine.meetsCriteria(context.Background(), badge, progress) {
			t.Error("Expected relaxed max time to qualify three questions")
		}
	})
}

func TestMeetsCustom(t *testing.T) {
	engine := NewEngine(nil)

	t.Run("consistency king", func(t *testing.T) {
		progress := models.NewUserProgress("user-1")
		progress.Streaks.CurrentStreak = 30
		badge := models.Badge{ID: "consistency_king", Criteria: models.BadgeCriteria{Type: models.CriteriaCustom}}
		if !engine.meetsCriteria(context.Background(), badge, progress) {
			t.Error("Expected 30-day streak to earn consistency_king")
		}
	})

	t.Run("completionist", func(t *testing.T) {
		progress := models.NewUserProgress("user-1")
		progress.DifficultyProgress["easy"] = models.DifficultyProgress{Mastered: 50}
		progress.DifficultyProgress["medium"] = models.DifficultyProgress{Mastered: 150}
		progress.DifficultyProgress["hard"] = models.DifficultyProgress{Mastered: 250}
		badge := models.Badge{ID: "completionist", Criteria: models.BadgeCriteria{Type: models.CriteriaCustom}}
		if !engine.meetsCriteria(context.Background(), badge, progress) {
			t.Error("Expected completionist thresholds to be met")
		}
	})

	t.Run("time-of-day badges are stubbed off", func(t *testing.T) {
		progress := models.NewUserProgress("user-1")
		for _, id := range []string{"early_bird", "night_owl", "mystery"} {
			badge := models.Badge{ID: id, Criteria: models.BadgeCriteria{Type: models.CriteriaCustom}}
			if engine.meetsCriteria(context.Background(), badge, progress) {
				t.Errorf("Expected %s to be unearnable", id)
			}
		}
	})
}

func TestProgressPercent(t *testing.T) {
	engine := NewEngine(nil)
	progress := models.NewUserProgress("user-1")
	progress.XP = 50

	badge := xpBadge("xp-200", 200, 0)
	if got := engine.Progress(context.Background(), badge, progress); got != 25 {
		t.Errorf("Expected 25%%, got %v", got)
	}

	// Overshoot clamps.
	progress.XP = 1000
	if got := engine.Progress(context.Background(), badge, progress); got != 100 {
		t.Errorf("Expected clamp to 100%%, got %v", got)
	}

	// Earned badges always report 100.
	progress.XP = 0
	progress.Badges = append(progress.Badges, models.EarnedBadge{BadgeID: "xp-200"})
	if got := engine.Progress(context.Background(), badge, progress); got != 100 {
		t.Errorf("Expected earned badge at 100%%, got %v", got)
	}

	// Criteria without a linear measure report 0.
	speedBadge := models.Badge{ID: "speedy", Criteria: models.BadgeCriteria{Type: models.CriteriaSpeed, Threshold: 5}}
	if got := engine.Progress(context.Background(), speedBadge, progress); got != 0 {
		t.Errorf("Expected 0%% for speed criteria, got %v", got)
	}
}
