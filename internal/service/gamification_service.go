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

// GamificationService serves read-side views: level profile, badge
// listings with progress, streak info.
type GamificationService struct {
	ProgressRepo *repository.ProgressRepository
	BadgeRepo    *repository.BadgeRepository
	badgeEngine  *badges.Engine
}

func NewGamificationService(
	progressRepo *repository.ProgressRepository,
	badgeRepo *repository.BadgeRepository,
	history badges.QuizHistory,
) *GamificationService {
	return &GamificationService{
		ProgressRepo: progressRepo,
		BadgeRepo:    badgeRepo,
		badgeEngine:  badges.NewEngine(history),
	}
}

// Profile is the gamification summary for one user.
type Profile struct {
	XP               int                                   `json:"xp"`
	Level            int                                   `json:"level"`
	LevelTitle       string                                `json:"level_title"`
	LevelProgress    int                                   `json:"level_progress"`
	XPForNextLevel   int                                   `json:"xp_for_next_level"`
	BadgeCount       int                                   `json:"badge_count"`
	CurrentStreak    int                                   `json:"current_streak"`
	LongestStreak    int                                   `json:"longest_streak"`
	QuizzesTaken     int                                   `json:"quizzes_taken"`
	PerfectQuizzes   int                                   `json:"perfect_quizzes"`
	MasteredCount    int                                   `json:"mastered_count"`
	DifficultyCounts map[string]models.DifficultyProgress `json:"difficulty_counts"`
}

func (s *GamificationService) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	progress, err := s.ProgressRepo.FindOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	return &Profile{
		XP:               progress.XP,
		Level:            progress.Level,
		LevelTitle:       xp.LevelTitle(progress.Level),
		LevelProgress:    xp.LevelProgress(progress.XP),
		XPForNextLevel:   xp.XPForNextLevel(progress.XP),
		BadgeCount:       len(progress.Badges),
		CurrentStreak:    progress.Streaks.CurrentStreak,
		LongestStreak:    progress.Streaks.LongestStreak,
		QuizzesTaken:     progress.QuizzesTaken,
		PerfectQuizzes:   progress.PerfectQuizzes,
		MasteredCount:    progress.MasteredCount(),
		DifficultyCounts: progress.DifficultyProgress,
	}, nil
}

// BadgeStatus is a catalog badge together with the user's standing.
type BadgeStatus struct {
	Badge    models.Badge `json:"badge"`
	Earned   bool         `json:"earned"`
	EarnedAt *time.Time   `json:"earned_at,omitempty"`
	Progress float64      `json:"progress"`
}

// ListBadges returns the discoverable catalog with per-badge progress.
// Secret badges stay hidden until earned.
func (s *GamificationService) ListBadges(ctx context.Context, userID string) ([]BadgeStatus, error) {
	progress, err := s.ProgressRepo.FindOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	catalog, err := s.BadgeRepo.FindAll(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load badge catalog: %w", err)
	}

	statuses := make([]BadgeStatus, 0, len(catalog))
	for _, badge := range catalog {
		earned := progress.HasBadge(badge.ID)
		if badge.IsSecret && !earned {
			continue
		}

		status := BadgeStatus{
			Badge:    badge,
			Earned:   earned,
			Progress: s.badgeEngine.Progress(ctx, badge, progress),
		}
		for _, eb := range progress.Badges {
			if eb.BadgeID == badge.ID {
				earnedAt := eb.EarnedAt
				status.EarnedAt = &earnedAt
			}
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// GetStreak returns the user's streak record.
func (s *GamificationService) GetStreak(ctx context.Context, userID string) (*models.StreakData, error) {
	progress, err := s.ProgressRepo.FindOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}
	streaks := progress.Streaks
	return &streaks, nil
}
