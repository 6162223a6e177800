package srs

import (
	"testing"
	"time"

	"learning-service/internal/models"
)

func day(t time.Time, n int) time.Time {
	return StartOfDay(t).AddDate(0, 0, n)
}

func TestNextReviewDateIntervals(t *testing.T) {
	scheduler := NewScheduler(nil) // Use default interval table
	now := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)

	testCases := []struct {
		name         string
		level        models.MasteryLevel
		isCorrect    bool
		currentDays  int
		expectedDays int
	}{
		{"new correct", models.MasteryNew, true, 0, 1},
		{"learning correct", models.MasteryLearning, true, 0, 3},
		{"familiar correct", models.MasteryFamiliar, true, 0, 7},
		{"mastered first interval", models.MasteryMastered, true, 0, 21},
		{"mastered doubles", models.MasteryMastered, true, 21, 42},
		{"mastered doubles again", models.MasteryMastered, true, 42, 84},
		{"mastered capped at 90", models.MasteryMastered, true, 84, 90},
		{"wrong answer resets to 1 day", models.MasteryMastered, false, 84, 1},
		{"wrong answer while learning", models.MasteryLearning, false, 3, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			next := scheduler.NextReviewDate(tc.level, tc.isCorrect, tc.currentDays, now)
			expected := day(now, tc.expectedDays)
			if !next.Equal(expected) {
				t.Errorf("Expected next review %v, got %v", expected, next)
			}
		})
	}
}

func TestNextReviewDateTruncatesToStartOfDay(t *testing.T) {
	scheduler := NewScheduler(nil)
	now := time.Date(2026, 3, 10, 23, 59, 59, 0, time.UTC)

	next := scheduler.NextReviewDate(models.MasteryNew, true, 0, now)
	if next.Hour() != 0 || next.Minute() != 0 || next.Second() != 0 {
		t.Errorf("Expected midnight boundary, got %v", next)
	}
	if next.Day() != 11 {
		t.Errorf("Expected next day, got %v", next)
	}
}

func TestCurrentInterval(t *testing.T) {
	last := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		next     time.Time
		expected int
	}{
		{"exact seven days", last.AddDate(0, 0, 7), 7},
		{"partial day rounds up", last.Add(25 * time.Hour), 2},
		{"same instant", last, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := CurrentInterval(last, tc.next)
			if got != tc.expected {
				t.Errorf("Expected interval %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestIsDueAndOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name    string
		next    time.Time
		due     bool
		overdue bool
	}{
		{"future review not due", now.AddDate(0, 0, 2), false, false},
		{"due right now", now, true, false},
		{"due earlier today", now.Add(-6 * time.Hour), true, false},
		{"overdue by three days", now.AddDate(0, 0, -3), true, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsDue(tc.next, now); got != tc.due {
				t.Errorf("IsDue: expected %v, got %v", tc.due, got)
			}
			if got := IsOverdue(tc.next, now); got != tc.overdue {
				t.Errorf("IsOverdue: expected %v, got %v", tc.overdue, got)
			}
		})
	}
}

func TestPriority(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		next     time.Time
		level    models.MasteryLevel
		expected int
	}{
		{"long overdue learning", now.AddDate(0, 0, -10), models.MasteryLearning, 115},
		{"moderately overdue familiar", now.AddDate(0, 0, -5), models.MasteryFamiliar, 60},
		{"just due new", now.Add(-2 * time.Hour), models.MasteryNew, 25},
		{"due mastered", now.Add(-2 * time.Hour), models.MasteryMastered, 21},
		{"not due yet", now.AddDate(0, 0, 3), models.MasteryLearning, 15},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Priority(tc.next, tc.level, now)
			if got != tc.expected {
				t.Errorf("Expected priority %d, got %d", tc.expected, got)
			}
		})
	}
}
