package xp

import "learning-service/internal/models"

// Flat event-to-XP table. Not configurable at runtime; save-compatibility
// depends on these values staying put.
const (
	StudyCorrectFirstTry = 20
	StudyCorrectRetry    = 10
	StudyCompleteSession = 50 // requires 10+ questions in the session
	StudyMasterQuestion  = 30
	QuizQuestionCorrect  = 15
	QuizComplete         = 25
	QuizPerfect          = 100
	QuizBonusFast        = 5
)

// Bonus contributes XP on top of a base award.
type Bonus struct {
	Amount int    `json:"amount"`
	Reason string `json:"reason"`
}

// Breakdown is an itemized XP award.
type Breakdown struct {
	Base    int     `json:"base"`
	Bonuses []Bonus `json:"bonuses,omitempty"`
}

// Total sums the base and all bonuses.
func (b Breakdown) Total() int {
	total := b.Base
	for _, bonus := range b.Bonuses {
		total += bonus.Amount
	}
	return total
}

// StudyQuestionXP computes the award for a single study-mode answer.
// Wrong answers earn nothing; a quick correct answer earns a small bonus.
func StudyQuestionXP(isCorrect, isFirstTry bool, timeSpentSeconds int) Breakdown {
	if !isCorrect {
		return Breakdown{}
	}

	base := StudyCorrectRetry
	if isFirstTry {
		base = StudyCorrectFirstTry
	}

	breakdown := Breakdown{Base: base}
	if timeSpentSeconds < 30 {
		breakdown.Bonuses = append(breakdown.Bonuses, Bonus{Amount: 5, Reason: "Speed bonus"})
	}
	return breakdown
}

// MasteryXP awards XP when a question first reaches mastered.
func MasteryXP(previousLevel, newLevel models.MasteryLevel) int {
	if newLevel == models.MasteryMastered && previousLevel != models.MasteryMastered {
		return StudyMasterQuestion
	}
	return 0
}

// StudySessionXP computes the award for completing a study session.
// The base completion bonus needs 10+ questions; accuracy, volume, and
// duration bonuses stack independently.
func StudySessionXP(questionsCompleted, correctAnswers, sessionDurationMinutes int) Breakdown {
	breakdown := Breakdown{}

	if questionsCompleted >= 10 {
		breakdown.Base = StudyCompleteSession
	}

	accuracy := 0.0
	if questionsCompleted > 0 {
		accuracy = float64(correctAnswers) / float64(questionsCompleted)
	}
	if accuracy >= 0.9 && questionsCompleted >= 10 {
		breakdown.Bonuses = append(breakdown.Bonuses, Bonus{Amount: 25, Reason: "90%+ accuracy"})
	}
	if questionsCompleted >= 20 {
		breakdown.Bonuses = append(breakdown.Bonuses, Bonus{Amount: 30, Reason: "20+ questions completed"})
	}
	if sessionDurationMinutes >= 60 {
		breakdown.Bonuses = append(breakdown.Bonuses, Bonus{Amount: 50, Reason: "60+ minute session"})
	}

	return breakdown
}

// QuizXP computes the award for a finished quiz. Score-band bonuses are
// mutually exclusive, highest band wins; the long-quiz bonus is
// independent of score.
func QuizXP(score float64, totalQuestions, totalTimeSeconds int) Breakdown {
	breakdown := Breakdown{Base: QuizComplete}

	if score == 100 {
		breakdown.Bonuses = append(breakdown.Bonuses, Bonus{Amount: QuizPerfect, Reason: "Perfect score!"})
	} else if score >= 90 {
		breakdown.Bonuses = append(breakdown.Bonuses, Bonus{Amount: 50, Reason: "Excellent score (90%+)"})
	} else if score >= 80 {
		breakdown.Bonuses = append(breakdown.Bonuses, Bonus{Amount: 25, Reason: "Good score (80%+)"})
	}

	if totalQuestions > 0 {
		averageTimePerQuestion := float64(totalTimeSeconds) / float64(totalQuestions)
		if averageTimePerQuestion < 10 && score >= 70 {
			breakdown.Bonuses = append(breakdown.Bonuses, Bonus{
				Amount: QuizBonusFast * totalQuestions,
				Reason: "Speed bonus",
			})
		}
	}

	if totalQuestions >= 50 {
		breakdown.Bonuses = append(breakdown.Bonuses, Bonus{Amount: 40, Reason: "Long quiz completed"})
	}

	return breakdown
}

// QuizQuestionXP computes the award for a single correct quiz answer,
// scaled by the question's point value when above the default.
func QuizQuestionXP(isCorrect bool, timeSpentSeconds, points int) int {
	if !isCorrect {
		return 0
	}

	amount := QuizQuestionCorrect
	if points > 1 {
		amount = amount * points
	}
	if timeSpentSeconds < 10 {
		amount += QuizBonusFast
	}
	return amount
}

// streakMilestones maps exact streak lengths to one-time XP awards.
var streakMilestones = map[int]int{
	3:   50,
	7:   150,
	14:  300,
	30:  1000,
	60:  2500,
	90:  5000,
	180: 10000,
	365: 25000,
}

// StreakMilestoneXP returns the award for hitting a streak milestone day,
// zero for non-milestone days.
func StreakMilestoneXP(streakDays int) int {
	return streakMilestones[streakDays]
}
