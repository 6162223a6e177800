package srs

import (
	"math"
	"time"

	"learning-service/internal/models"
)

// Config holds the interval table for review scheduling, in days.
type Config struct {
	NewInterval      int `json:"new_interval"`
	LearningInterval int `json:"learning_interval"`
	FamiliarInterval int `json:"familiar_interval"`
	MasteredInterval int `json:"mastered_interval"`
	MaxInterval      int `json:"max_interval"`
}

// DefaultConfig returns the standard interval table.
func DefaultConfig() *Config {
	return &Config{
		NewInterval:      1,
		LearningInterval: 3,
		FamiliarInterval: 7,
		MasteredInterval: 21,
		MaxInterval:      90,
	}
}

// Scheduler computes review dates from mastery state and answer outcomes.
type Scheduler struct {
	config *Config
}

// NewScheduler creates a scheduler, using the default interval table when
// config is nil.
func NewScheduler(config *Config) *Scheduler {
	if config == nil {
		config = DefaultConfig()
	}
	return &Scheduler{config: config}
}

// NextReviewDate computes the next review date for a question. A wrong
// answer always resets the interval to one day regardless of mastery.
// For mastered questions the interval doubles on each correct review,
// capped at MaxInterval. The result is truncated to start of day.
func (s *Scheduler) NextReviewDate(level models.MasteryLevel, isCorrect bool, currentIntervalDays int, now time.Time) time.Time {
	var intervalDays int

	if !isCorrect {
		intervalDays = 1
	} else {
		switch level {
		case models.MasteryNew:
			intervalDays = s.config.NewInterval
		case models.MasteryLearning:
			intervalDays = s.config.LearningInterval
		case models.MasteryFamiliar:
			intervalDays = s.config.FamiliarInterval
		case models.MasteryMastered:
			if currentIntervalDays > 0 {
				intervalDays = currentIntervalDays * 2
				if intervalDays > s.config.MaxInterval {
					intervalDays = s.config.MaxInterval
				}
			} else {
				intervalDays = s.config.MasteredInterval
			}
		default:
			intervalDays = s.config.NewInterval
		}
	}

	return StartOfDay(now.AddDate(0, 0, intervalDays))
}

// CurrentInterval derives the interval in days between the last attempt
// and the scheduled review. Callers feed this back into NextReviewDate so
// mastered reviews keep doubling without the scheduler owning state.
func CurrentInterval(lastAttemptDate, nextReviewDate time.Time) int {
	return int(math.Ceil(nextReviewDate.Sub(lastAttemptDate).Hours() / 24))
}

// IsDue reports whether a question's review date has passed.
func IsDue(nextReviewDate, now time.Time) bool {
	return !nextReviewDate.After(now)
}

// IsOverdue reports whether a question is more than one day past due.
func IsOverdue(nextReviewDate, now time.Time) bool {
	return now.Sub(nextReviewDate).Hours()/24 > 1
}

// Priority scores a due question for selection ranking. Higher wins.
// Time component: 100 very overdue (>7d), 50 moderately (>3d), 20 due.
// Mastery component: learning 15, familiar 10, new 5, mastered 1.
func Priority(nextReviewDate time.Time, level models.MasteryLevel, now time.Time) int {
	daysSinceReview := now.Sub(nextReviewDate).Hours() / 24

	priority := 0
	if daysSinceReview > 7 {
		priority += 100
	} else if daysSinceReview > 3 {
		priority += 50
	} else if daysSinceReview > 0 {
		priority += 20
	}

	switch level {
	case models.MasteryLearning:
		priority += 15
	case models.MasteryFamiliar:
		priority += 10
	case models.MasteryNew:
		priority += 5
	case models.MasteryMastered:
		priority += 1
	}

	return priority
}

// StartOfDay truncates a time to midnight in its location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
