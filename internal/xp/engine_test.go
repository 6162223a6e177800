package xp

import (
	"testing"

	"learning-service/internal/models"
)

func TestStudyQuestionXP(t *testing.T) {
	testCases := []struct {
		name        string
		isCorrect   bool
		isFirstTry  bool
		timeSeconds int
		expected    int
	}{
		{"first try correct", true, true, 60, 20},
		{"retry correct", true, false, 60, 10},
		{"first try correct and fast", true, true, 15, 25},
		{"retry correct and fast", true, false, 29, 15},
		{"wrong answer earns nothing", false, true, 5, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := StudyQuestionXP(tc.isCorrect, tc.isFirstTry, tc.timeSeconds).Total()
			if got != tc.expected {
				t.Errorf("Expected %d XP, got %d", tc.expected, got)
			}
		})
	}
}

func TestMasteryXP(t *testing.T) {
	testCases := []struct {
		name     string
		previous models.MasteryLevel
		current  models.MasteryLevel
		expected int
	}{
		{"newly mastered", models.MasteryFamiliar, models.MasteryMastered, 30},
		{"already mastered", models.MasteryMastered, models.MasteryMastered, 0},
		{"ordinary promotion", models.MasteryNew, models.MasteryLearning, 0},
		{"downgrade from mastered", models.MasteryMastered, models.MasteryFamiliar, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := MasteryXP(tc.previous, tc.current)
			if got != tc.expected {
				t.Errorf("Expected %d XP, got %d", tc.expected, got)
			}
		})
	}
}

func TestStudySessionXP(t *testing.T) {
	testCases := []struct {
		name            string
		questions       int
		correct         int
		durationMinutes int
		expected        int
	}{
		{"short session earns nothing", 5, 5, 10, 0},
		{"base completion at ten questions", 10, 7, 15, 50},
		{"accuracy bonus", 10, 9, 15, 75},
		{"volume bonus stacks", 20, 14, 30, 80},
		{"all bonuses stack", 20, 19, 65, 155}, // 50 + 25 + 30 + 50
		{"accuracy alone is not enough", 5, 5, 10, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := StudySessionXP(tc.questions, tc.correct, tc.durationMinutes).Total()
			if got != tc.expected {
				t.Errorf("Expected %d XP, got %d", tc.expected, got)
			}
		})
	}
}

func TestQuizXP(t *testing.T) {
	testCases := []struct {
		name        string
		score       float64
		questions   int
		timeSeconds int
		expected    int
	}{
		{"base completion only", 60, 10, 300, 25},
		{"good score band", 85, 10, 300, 50},   // 25 + 25
		{"excellent score band", 92, 10, 300, 75}, // 25 + 50
		{"perfect score band", 100, 10, 300, 125}, // 25 + 100
		{"bands are exclusive", 100, 10, 300, 125},
		{"speed bonus per question", 90, 10, 80, 125},   // 25 + 50 + 5*10
		{"slow perfect gets no speed bonus", 100, 10, 600, 125},
		{"fast but failing gets no speed bonus", 40, 10, 80, 25},
		{"long quiz bonus", 60, 50, 3000, 65}, // 25 + 40
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := QuizXP(tc.score, tc.questions, tc.timeSeconds).Total()
			if got != tc.expected {
				t.Errorf("Expected %d XP, got %d", tc.expected, got)
			}
		})
	}
}

func TestQuizQuestionXP(t *testing.T) {
	testCases := []struct {
		name        string
		isCorrect   bool
		timeSeconds int
		points      int
		expected    int
	}{
		{"standard correct", true, 30, 1, 15},
		{"fast correct", true, 5, 1, 20},
		{"weighted question", true, 30, 3, 45},
		{"weighted and fast", true, 5, 3, 50},
		{"wrong answer", false, 5, 3, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := QuizQuestionXP(tc.isCorrect, tc.timeSeconds, tc.points)
			if got != tc.expected {
				t.Errorf("Expected %d XP, got %d", tc.expected, got)
			}
		})
	}
}

func TestStreakMilestoneXP(t *testing.T) {
	testCases := []struct {
		days     int
		expected int
	}{
		{1, 0},
		{3, 50},
		{7, 150},
		{14, 300},
		{30, 1000},
		{60, 2500},
		{90, 5000},
		{180, 10000},
		{365, 25000},
		{100, 0}, // not a milestone
	}

	for _, tc := range testCases {
		if got := StreakMilestoneXP(tc.days); got != tc.expected {
			t.Errorf("Streak %d: expected %d XP, got %d", tc.days, tc.expected, got)
		}
	}
}
