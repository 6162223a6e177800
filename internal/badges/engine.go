package badges

import (
	"context"
	"time"

	"learning-service/internal/models"
)

// QuizHistoryFilter narrows a quiz-history count query.
type QuizHistoryFilter struct {
	MinScore float64
	Level    string
}

// QuizHistory is the quiz-result collaborator needed by quiz_count and
// quiz_score criteria. Implemented by the result repository.
type QuizHistory interface {
	CountQuizzes(ctx context.Context, userID string, filter QuizHistoryFilter) (int64, error)
}

// Engine evaluates badge criteria against a user's aggregate progress.
type Engine struct {
	history QuizHistory
}

// NewEngine creates a badge engine. history may be nil, in which case
// quiz_count and quiz_score criteria are never met.
func NewEngine(history QuizHistory) *Engine {
	return &Engine{history: history}
}

// Evaluate scans the whole catalog and awards every badge whose criteria
// the user now meets, appending to progress.Badges and adding each
// badge's XP reward. Already-earned badges are skipped, so repeated calls
// are idempotent. The full-catalog scan is deliberate: it tolerates
// out-of-order and bulk updates without incremental bookkeeping.
func (e *Engine) Evaluate(ctx context.Context, progress *models.UserProgress, catalog []models.Badge) []string {
	var newlyEarned []string

	for _, badge := range catalog {
		if progress.HasBadge(badge.ID) {
			continue
		}
		if !e.meetsCriteria(ctx, badge, progress) {
			continue
		}

		progress.Badges = append(progress.Badges, models.EarnedBadge{
			BadgeID:  badge.ID,
			EarnedAt: time.Now(),
		})
		progress.XP += badge.XPReward
		newlyEarned = append(newlyEarned, badge.ID)
	}

	return newlyEarned
}

// meetsCriteria checks a single badge. Badge catalogs are externally
// authored, so a malformed or unknown criteria type is treated as not
// met instead of failing the whole evaluation.
func (e *Engine) meetsCriteria(ctx context.Context, badge models.Badge, progress *models.UserProgress) bool {
	criteria := badge.Criteria

	switch criteria.Type {
	case models.CriteriaXP:
		return float64(progress.XP) >= criteria.Threshold
	case models.CriteriaStreak:
		return float64(progress.Streaks.CurrentStreak) >= criteria.Threshold
	case models.CriteriaStudyTime:
		return float64(progress.TotalStudyTimeMinutes) >= criteria.Threshold
	case models.CriteriaQuizCount:
		return e.meetsQuizCount(ctx, criteria, progress)
	case models.CriteriaQuizScore:
		return e.meetsQuizScore(ctx, criteria, progress)
	case models.CriteriaPerfectQuiz:
		return float64(progress.PerfectQuizzes) >= criteria.Threshold
	case models.CriteriaMastery:
		return meetsMastery(criteria, progress)
	case models.CriteriaSpeed:
		return meetsSpeed(criteria, progress)
	case models.CriteriaCustom:
		return meetsCustom(badge.ID, progress)
	default:
		return false
	}
}

func (e *Engine) meetsQuizCount(ctx context.Context, criteria models.BadgeCriteria, progress *models.UserProgress) bool {
	minScore, hasMinScore := metadataNumber(criteria.Metadata, "minScore")
	if !hasMinScore {
		return float64(progress.QuizzesTaken) >= criteria.Threshold
	}
	if e.history == nil {
		return false
	}

	count, err := e.history.CountQuizzes(ctx, progress.UserID, QuizHistoryFilter{MinScore: minScore})
	if err != nil {
		return false
	}
	return float64(count) >= criteria.Threshold
}

func (e *Engine) meetsQuizScore(ctx context.Context, criteria models.BadgeCriteria, progress *models.UserProgress) bool {
	if e.history == nil {
		return false
	}

	filter := QuizHistoryFilter{MinScore: criteria.Threshold}
	if level, ok := metadataString(criteria.Metadata, "level"); ok {
		filter.Level = level
	}

	count, err := e.history.CountQuizzes(ctx, progress.UserID, filter)
	if err != nil {
		return false
	}
	return count > 0
}

func meetsMastery(criteria models.BadgeCriteria, progress *models.UserProgress) bool {
	threshold := int(criteria.Threshold)

	if all, ok := metadataBool(criteria.Metadata, "all_difficulties"); ok && all {
		// Threshold must be met independently in every difficulty.
		return progress.DifficultyProgress["easy"].Mastered >= threshold &&
			progress.DifficultyProgress["medium"].Mastered >= threshold &&
			progress.DifficultyProgress["hard"].Mastered >= threshold
	}

	if difficulty, ok := metadataString(criteria.Metadata, "difficulty"); ok {
		return progress.DifficultyProgress[difficulty].Mastered >= threshold
	}

	return progress.MasteredCount() >= threshold
}

func meetsSpeed(criteria models.BadgeCriteria, progress *models.UserProgress) bool {
	maxTime, ok := metadataNumber(criteria.Metadata, "maxTime")
	if !ok {
		maxTime = 5
	}

	fastCorrect := 0
	for _, qp := range progress.Questions {
		if qp.CorrectCount > 0 && qp.AverageTimeSeconds < maxTime {
			fastCorrect++
		}
	}
	return float64(fastCorrect) >= criteria.Threshold
}

// meetsCustom handles badges whose rules cannot be expressed as a
// threshold over one counter. The set is closed: a new custom badge
// needs a new case here, not just catalog data.
func meetsCustom(badgeID string, progress *models.UserProgress) bool {
	switch badgeID {
	case "completionist":
		return progress.DifficultyProgress["easy"].Mastered >= 50 &&
			progress.DifficultyProgress["medium"].Mastered >= 150 &&
			progress.DifficultyProgress["hard"].Mastered >= 250
	case "consistency_king":
		return progress.Streaks.CurrentStreak >= 30
	case "early_bird", "night_owl":
		// Needs per-session timestamp tracking.
		return false
	default:
		return false
	}
}

// Progress reports how far along a user is toward an unearned badge as a
// percentage. Earned badges report 100; criteria without a meaningful
// linear measure report 0.
func (e *Engine) Progress(ctx context.Context, badge models.Badge, progress *models.UserProgress) float64 {
	if progress.HasBadge(badge.ID) {
		return 100
	}

	criteria := badge.Criteria
	if criteria.Threshold <= 0 {
		return 0
	}

	switch criteria.Type {
	case models.CriteriaXP:
		return clampPercent(float64(progress.XP) / criteria.Threshold * 100)
	case models.CriteriaStreak:
		return clampPercent(float64(progress.Streaks.CurrentStreak) / criteria.Threshold * 100)
	case models.CriteriaStudyTime:
		return clampPercent(float64(progress.TotalStudyTimeMinutes) / criteria.Threshold * 100)
	case models.CriteriaQuizCount:
		count := float64(progress.QuizzesTaken)
		if minScore, ok := metadataNumber(criteria.Metadata, "minScore"); ok && e.history != nil {
			if n, err := e.history.CountQuizzes(ctx, progress.UserID, QuizHistoryFilter{MinScore: minScore}); err == nil {
				count = float64(n)
			}
		}
		return clampPercent(count / criteria.Threshold * 100)
	case models.CriteriaPerfectQuiz:
		return clampPercent(float64(progress.PerfectQuizzes) / criteria.Threshold * 100)
	case models.CriteriaMastery:
		return clampPercent(float64(progress.MasteredCount()) / criteria.Threshold * 100)
	default:
		return 0
	}
}

func clampPercent(v float64) float64 {
	if v > 100 {
		return 100
	}
	if v < 0 {
		return 0
	}
	return v
}

func metadataNumber(metadata map[string]interface{}, key string) (float64, bool) {
	if metadata == nil {
		return 0, false
	}
	switch v := metadata[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func metadataString(metadata map[string]interface{}, key string) (string, bool) {
	if metadata == nil {
		return "", false
	}
	s, ok := metadata[key].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

func metadataBool(metadata map[string]interface{}, key string) (bool, bool) {
	if metadata == nil {
		return false, false
	}
	b, ok := metadata[key].(bool)
	return b, ok
}
