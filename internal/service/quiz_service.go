package service

import (
	"context"
	"fmt"
	"time"

	"learning-service/internal/badges"
	"learning-service/internal/models"
	"learning-service/internal/repository"
	"learning-service/internal/xp"
)

// QuizService records finished quizzes: quiz XP, aggregate counters, a
// badge pass, and the persisted result that the quiz-history criteria
// later query.
type QuizService struct {
	ResultRepo   *repository.ResultRepository
	ProgressRepo *repository.ProgressRepository
	BadgeRepo    *repository.BadgeRepository
	badgeEngine  *badges.Engine
}

func NewQuizService(
	resultRepo *repository.ResultRepository,
	progressRepo *repository.ProgressRepository,
	badgeRepo *repository.BadgeRepository,
) *QuizService {
	return &QuizService{
		ResultRepo:   resultRepo,
		ProgressRepo: progressRepo,
		BadgeRepo:    badgeRepo,
		badgeEngine:  badges.NewEngine(resultRepo),
	}
}

// QuizOutcome is what a submitted quiz earned the user.
type QuizOutcome struct {
	Result       *models.QuizResult `json:"result"`
	XPEarned     int                `json:"xp_earned"`
	Breakdown    xp.Breakdown       `json:"breakdown"`
	LeveledUp    bool               `json:"leveled_up"`
	NewLevel     int                `json:"new_level"`
	BadgesEarned []string           `json:"badges_earned"`
}

// SubmitResult stores a quiz result and credits its rewards.
func (s *QuizService) SubmitResult(ctx context.Context, result *models.QuizResult) (*QuizOutcome, error) {
	progress, err := s.ProgressRepo.FindOrCreate(ctx, result.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	result.IsPerfect = result.Score == 100
	breakdown := xp.QuizXP(result.Score, result.TotalQuestions, result.TotalTimeSeconds)
	for i, answer := range result.Answers {
		questionXP := xp.QuizQuestionXP(answer.IsCorrect, answer.TimeSpentSeconds, answer.Points)
		result.Answers[i].XPEarned = questionXP
		if questionXP > 0 {
			breakdown.Bonuses = append(breakdown.Bonuses, xp.Bonus{Amount: questionXP, Reason: "Correct answer"})
		}
	}
	earned := breakdown.Total()

	award := xp.AwardXP(progress.XP, earned)
	progress.XP = award.NewXP
	progress.Level = award.NewLevel

	progress.QuizzesTaken++
	progress.AverageQuizScore = (progress.AverageQuizScore*float64(progress.QuizzesTaken-1) +
		result.Score) / float64(progress.QuizzesTaken)
	if result.Score > progress.BestQuizScore {
		progress.BestQuizScore = result.Score
	}
	if result.IsPerfect {
		progress.PerfectQuizzes++
	}

	// Persist the result before the badge pass so quiz_count and
	// quiz_score criteria see this attempt.
	result.XPEarned = earned
	result.CreatedAt = time.Now()
	if err := s.ResultRepo.Create(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to save quiz result: %w", err)
	}

	catalog, err := s.BadgeRepo.FindAll(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load badge catalog: %w", err)
	}
	newBadges := s.badgeEngine.Evaluate(ctx, progress, catalog)
	progress.Level = xp.LevelFor(progress.XP)
	result.BadgesEarned = newBadges

	if err := s.ProgressRepo.Save(ctx, progress); err != nil {
		return nil, fmt.Errorf("failed to save progress: %w", err)
	}

	return &QuizOutcome{
		Result:       result,
		XPEarned:     earned,
		Breakdown:    breakdown,
		LeveledUp:    award.LeveledUp || progress.Level > award.PreviousLevel,
		NewLevel:     progress.Level,
		BadgesEarned: newBadges,
	}, nil
}

// History returns a user's stored quiz results.
func (s *QuizService) History(ctx context.Context, userID string) ([]models.QuizResult, error) {
	return s.ResultRepo.FindByUser(ctx, userID)
}
