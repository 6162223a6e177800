package srs

import "learning-service/internal/models"

// Classify computes the new mastery level after an answer. Cumulative
// counters make this a total, idempotent function of its inputs; no
// sliding window is needed.
//
// Transitions move at most one step per call in either direction, so a
// single correct answer can never jump new straight to mastered and a
// single wrong answer can never drop mastered to new.
func Classify(current models.MasteryLevel, isCorrect bool, correctCount, wrongCount int) models.MasteryLevel {
	totalAttempts := correctCount + wrongCount
	accuracy := 0.0
	if totalAttempts > 0 {
		accuracy = float64(correctCount) / float64(totalAttempts)
	}

	if !isCorrect {
		// Downgrade only while accuracy has fallen under the bucket's floor.
		if current == models.MasteryMastered && accuracy < 0.9 {
			return models.MasteryFamiliar
		}
		if current == models.MasteryFamiliar && accuracy < 0.7 {
			return models.MasteryLearning
		}
		if current == models.MasteryLearning && accuracy < 0.5 {
			return models.MasteryNew
		}
		return current
	}

	if current == models.MasteryNew && correctCount >= 1 {
		return models.MasteryLearning
	}
	if current == models.MasteryLearning && correctCount >= 3 {
		return models.MasteryFamiliar
	}
	if current == models.MasteryFamiliar && (correctCount >= 5 || accuracy >= 0.9) {
		return models.MasteryMastered
	}

	return current
}
