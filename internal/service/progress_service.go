package service

import (
	"context"
	"fmt"
	"time"

	"learning-service/internal/badges"
	"learning-service/internal/models"
	"learning-service/internal/repository"
	"learning-service/internal/selection"
	"learning-service/internal/srs"
	"learning-service/internal/xp"
)

// ProgressService orchestrates one learning event at a time over a
// user's aggregate: load, run the engines, save.
type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	QuestionRepo *repository.QuestionRepository
	BadgeRepo    *repository.BadgeRepository
	scheduler    *srs.Scheduler
	selector     *selection.Selector
	badgeEngine  *badges.Engine
}

func NewProgressService(
	progressRepo *repository.ProgressRepository,
	questionRepo *repository.QuestionRepository,
	badgeRepo *repository.BadgeRepository,
	history badges.QuizHistory,
) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		QuestionRepo: questionRepo,
		BadgeRepo:    badgeRepo,
		scheduler:    srs.NewScheduler(nil), // default interval table
		selector:     selection.NewSelector(),
		badgeEngine:  badges.NewEngine(history),
	}
}

// AnswerOutcome is what a submitted answer earned the user.
type AnswerOutcome struct {
	XPEarned        int                 `json:"xp_earned"`
	NewMasteryLevel models.MasteryLevel `json:"new_mastery_level"`
	NextReviewDate  time.Time           `json:"next_review_date"`
	BadgesEarned    []string            `json:"badges_earned"`
	LeveledUp       bool                `json:"leveled_up"`
	NewLevel        int                 `json:"new_level"`
}

// SubmitAnswer records one study-mode answer: counters, mastery, next
// review date, XP, then a full badge pass, then save.
func (s *ProgressService) SubmitAnswer(ctx context.Context, userID, questionID string, isCorrect bool, timeSpentSeconds int) (*AnswerOutcome, error) {
	question, err := s.QuestionRepo.FindByID(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load question: %w", err)
	}

	progress, err := s.ProgressRepo.FindOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	now := time.Now()
	qp := progress.QuestionProgressFor(questionID)
	firstAttempt := qp.Attempts == 0
	if firstAttempt {
		qp.FirstAttemptDate = now
	}

	qp.Attempts++
	if isCorrect {
		qp.CorrectCount++
		qp.LastCorrectDate = now
	} else {
		qp.WrongCount++
	}

	// Running mean, updated incrementally.
	qp.AverageTimeSeconds = (qp.AverageTimeSeconds*float64(qp.Attempts-1) + float64(timeSpentSeconds)) / float64(qp.Attempts)

	previousMastery := qp.MasteryLevel
	qp.MasteryLevel = srs.Classify(previousMastery, isCorrect, qp.CorrectCount, qp.WrongCount)

	// The prior interval is derived from the stored dates so mastered
	// reviews keep doubling without scheduler-side state.
	currentInterval := srs.CurrentInterval(qp.LastAttemptDate, qp.NextReviewDate)
	if firstAttempt {
		currentInterval = 0
	}
	qp.NextReviewDate = s.scheduler.NextReviewDate(qp.MasteryLevel, isCorrect, currentInterval, now)
	qp.LastAttemptDate = now

	progress.TotalQuestionsAttempted++
	if isCorrect {
		progress.TotalQuestionsCorrect++
	}
	if firstAttempt || previousMastery != qp.MasteryLevel {
		progress.ApplyMasteryTransition(question.Difficulty, previousMastery, qp.MasteryLevel, firstAttempt)
	}

	earned := xp.StudyQuestionXP(isCorrect, firstAttempt, timeSpentSeconds).Total()
	earned += xp.MasteryXP(previousMastery, qp.MasteryLevel)

	award := xp.AwardXP(progress.XP, earned)
	progress.XP = award.NewXP
	progress.Level = award.NewLevel

	newBadges, err := s.evaluateBadges(ctx, progress)
	if err != nil {
		return nil, err
	}

	if err := s.ProgressRepo.Save(ctx, progress); err != nil {
		return nil, fmt.Errorf("failed to save progress: %w", err)
	}

	return &AnswerOutcome{
		XPEarned:        earned,
		NewMasteryLevel: qp.MasteryLevel,
		NextReviewDate:  qp.NextReviewDate,
		BadgesEarned:    newBadges,
		LeveledUp:       award.LeveledUp || progress.Level > award.PreviousLevel,
		NewLevel:        progress.Level,
	}, nil
}

// NextQuestions picks up to count questions with the adaptive selector.
// An empty result means the pool is exhausted, not an error.
func (s *ProgressService) NextQuestions(ctx context.Context, userID string, opts *selection.Options, count int) ([]models.Question, error) {
	progress, err := s.ProgressRepo.FindOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	filter := repository.QuestionFilter{ActiveOnly: true}
	if opts != nil {
		filter.Difficulty = opts.Difficulty
		filter.Category = opts.Category
	}
	available, err := s.QuestionRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}

	byID := make(map[string]models.Question, len(available))
	candidates := make([]selection.Candidate, 0, len(available))
	for _, q := range available {
		byID[q.ID] = q
		candidates = append(candidates, selection.Candidate{
			ID:         q.ID,
			Difficulty: q.Difficulty,
			Category:   q.Category,
			Tags:       q.Tags,
		})
	}

	picked := s.selector.SelectMany(candidates, progress.Questions, time.Now(), count, opts)

	questions := make([]models.Question, 0, len(picked))
	for _, c := range picked {
		questions = append(questions, byID[c.ID])
	}
	return questions, nil
}

// SessionOutcome is what a completed study session earned the user.
type SessionOutcome struct {
	XPEarned      int          `json:"xp_earned"`
	Breakdown     xp.Breakdown `json:"breakdown"`
	LeveledUp     bool         `json:"leveled_up"`
	NewLevel      int          `json:"new_level"`
	BadgesEarned  []string     `json:"badges_earned"`
	CurrentStreak int          `json:"current_streak"`
}

// CompleteSession credits session XP and bonuses, updates session and
// streak stats, and runs a badge pass.
func (s *ProgressService) CompleteSession(ctx context.Context, userID string, questionsCompleted, correctAnswers, durationMinutes int, startTime, endTime time.Time) (*SessionOutcome, error) {
	progress, err := s.ProgressRepo.FindOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	breakdown := xp.StudySessionXP(questionsCompleted, correctAnswers, durationMinutes)
	earned := breakdown.Total()

	progress.TotalStudySessions++
	progress.TotalStudyTimeMinutes += durationMinutes
	progress.LastSessionStart = startTime
	progress.LastSessionEnd = endTime
	progress.AverageSessionDurationMinutes = (progress.AverageSessionDurationMinutes*float64(progress.TotalStudySessions-1) +
		float64(durationMinutes)) / float64(progress.TotalStudySessions)

	earned += updateStreak(&progress.Streaks, time.Now())

	award := xp.AwardXP(progress.XP, earned)
	progress.XP = award.NewXP
	progress.Level = award.NewLevel

	newBadges, err := s.evaluateBadges(ctx, progress)
	if err != nil {
		return nil, err
	}

	if err := s.ProgressRepo.Save(ctx, progress); err != nil {
		return nil, fmt.Errorf("failed to save progress: %w", err)
	}

	return &SessionOutcome{
		XPEarned:      earned,
		Breakdown:     breakdown,
		LeveledUp:     award.LeveledUp || progress.Level > award.PreviousLevel,
		NewLevel:      progress.Level,
		BadgesEarned:  newBadges,
		CurrentStreak: progress.Streaks.CurrentStreak,
	}, nil
}

// GetProgress loads a user's aggregate, lazily creating one.
func (s *ProgressService) GetProgress(ctx context.Context, userID string) (*models.UserProgress, error) {
	return s.ProgressRepo.FindOrCreate(ctx, userID)
}

// ToggleBookmark flips the bookmark flag on a question's progress entry
// and returns the new state. Bookmarks are independent of mastery.
func (s *ProgressService) ToggleBookmark(ctx context.Context, userID, questionID string) (bool, error) {
	progress, err := s.ProgressRepo.FindOrCreate(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to load progress: %w", err)
	}

	qp := progress.QuestionProgressFor(questionID)
	qp.IsBookmarked = !qp.IsBookmarked

	if err := s.ProgressRepo.Save(ctx, progress); err != nil {
		return false, fmt.Errorf("failed to save progress: %w", err)
	}
	return qp.IsBookmarked, nil
}

// evaluateBadges runs a full catalog pass and keeps the level consistent
// with XP added by badge rewards.
func (s *ProgressService) evaluateBadges(ctx context.Context, progress *models.UserProgress) ([]string, error) {
	catalog, err := s.BadgeRepo.FindAll(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load badge catalog: %w", err)
	}

	newBadges := s.badgeEngine.Evaluate(ctx, progress, catalog)
	progress.Level = xp.LevelFor(progress.XP)
	return newBadges, nil
}

// updateStreak applies the daily streak rules and returns any milestone
// XP. Same-day activity changes nothing; a consecutive day increments; a
// single missed day is a grace period; anything longer resets to 1.
func updateStreak(streaks *models.StreakData, now time.Time) int {
	today := srs.StartOfDay(now)
	lastActivity := srs.StartOfDay(streaks.LastActivityDate)
	daysSince := int(today.Sub(lastActivity).Hours() / 24)

	milestoneXP := 0
	switch {
	case daysSince == 0:
		// Same day, nothing to do.
	case daysSince == 1:
		streaks.CurrentStreak++
		if streaks.CurrentStreak > streaks.LongestStreak {
			streaks.LongestStreak = streaks.CurrentStreak
		}
		milestoneXP = xp.StreakMilestoneXP(streaks.CurrentStreak)
	case daysSince == 2:
		// Grace period, one missed day does not break the streak.
		streaks.MissedDays++
	default:
		streaks.CurrentStreak = 1
		streaks.StreakStartDate = today
	}

	streaks.LastActivityDate = today
	return milestoneXP
}
