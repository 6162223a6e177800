package models

import "time"

// MasteryLevel tracks how well a user knows a single question.
type MasteryLevel string

const (
	MasteryNew      MasteryLevel = "new"
	MasteryLearning MasteryLevel = "learning"
	MasteryFamiliar MasteryLevel = "familiar"
	MasteryMastered MasteryLevel = "mastered"
)

// QuestionProgress is the per-question learning state for one user.
type QuestionProgress struct {
	QuestionID         string       `bson:"question_id" json:"question_id"`
	MasteryLevel       MasteryLevel `bson:"mastery_level" json:"mastery_level"`
	Attempts           int          `bson:"attempts" json:"attempts"`
	CorrectCount       int          `bson:"correct_count" json:"correct_count"`
	WrongCount         int          `bson:"wrong_count" json:"wrong_count"`
	LastAttemptDate    time.Time    `bson:"last_attempt_date" json:"last_attempt_date"`
	NextReviewDate     time.Time    `bson:"next_review_date" json:"next_review_date"`
	AverageTimeSeconds float64      `bson:"average_time_seconds" json:"average_time_seconds"`
	FirstAttemptDate   time.Time    `bson:"first_attempt_date,omitempty" json:"first_attempt_date,omitempty"`
	LastCorrectDate    time.Time    `bson:"last_correct_date,omitempty" json:"last_correct_date,omitempty"`
	IsBookmarked       bool         `bson:"is_bookmarked" json:"is_bookmarked"`
}

// DifficultyProgress counts questions per mastery bucket within one difficulty.
type DifficultyProgress struct {
	Mastered int `bson:"mastered" json:"mastered"`
	Familiar int `bson:"familiar" json:"familiar"`
	Learning int `bson:"learning" json:"learning"`
	New      int `bson:"new" json:"new"`
	Total    int `bson:"total" json:"total"`
}

type StreakData struct {
	CurrentStreak    int       `bson:"current_streak" json:"current_streak"`
	LongestStreak    int       `bson:"longest_streak" json:"longest_streak"`
	LastActivityDate time.Time `bson:"last_activity_date" json:"last_activity_date"`
	StreakStartDate  time.Time `bson:"streak_start_date,omitempty" json:"streak_start_date,omitempty"`
	MissedDays       int       `bson:"missed_days" json:"missed_days"`
}

type EarnedBadge struct {
	BadgeID  string    `bson:"badge_id" json:"badge_id"`
	EarnedAt time.Time `bson:"earned_at" json:"earned_at"`
}

// UserProgress is the per-user aggregate the whole engine operates on.
// It is loaded, mutated by exactly one event, and written back; there is
// no locking here, single-writer-per-user is the persistence layer's job.
type UserProgress struct {
	ID                            string                        `bson:"_id,omitempty" json:"id"`
	UserID                        string                        `bson:"user_id" json:"user_id"`
	Questions                     map[string]*QuestionProgress  `bson:"questions" json:"questions"`
	XP                            int                           `bson:"xp" json:"xp"`
	Level                         int                           `bson:"level" json:"level"`
	Badges                        []EarnedBadge                 `bson:"badges" json:"badges"`
	Streaks                       StreakData                    `bson:"streaks" json:"streaks"`
	TotalStudyTimeMinutes         int                           `bson:"total_study_time_minutes" json:"total_study_time_minutes"`
	TotalQuestionsAttempted       int                           `bson:"total_questions_attempted" json:"total_questions_attempted"`
	TotalQuestionsCorrect         int                           `bson:"total_questions_correct" json:"total_questions_correct"`
	TotalStudySessions            int                           `bson:"total_study_sessions" json:"total_study_sessions"`
	AverageSessionDurationMinutes float64                       `bson:"average_session_duration_minutes" json:"average_session_duration_minutes"`
	QuizzesTaken                  int                           `bson:"quizzes_taken" json:"quizzes_taken"`
	AverageQuizScore              float64                       `bson:"average_quiz_score" json:"average_quiz_score"`
	BestQuizScore                 float64                       `bson:"best_quiz_score" json:"best_quiz_score"`
	PerfectQuizzes                int                           `bson:"perfect_quizzes" json:"perfect_quizzes"`
	DifficultyProgress            map[string]DifficultyProgress `bson:"difficulty_progress" json:"difficulty_progress"`
	LastSessionStart              time.Time                     `bson:"last_session_start,omitempty" json:"last_session_start,omitempty"`
	LastSessionEnd                time.Time                     `bson:"last_session_end,omitempty" json:"last_session_end,omitempty"`
	CreatedAt                     time.Time                     `bson:"created_at" json:"created_at"`
	UpdatedAt                     time.Time                     `bson:"updated_at" json:"updated_at"`
}

// NewUserProgress creates the lazily-initialized aggregate for a first
// interaction: all counters zeroed, mastery map empty, level 1.
func NewUserProgress(userID string) *UserProgress {
	now := time.Now()
	return &UserProgress{
		UserID:    userID,
		Questions: map[string]*QuestionProgress{},
		Level:     1,
		Badges:    []EarnedBadge{},
		Streaks:   StreakData{LastActivityDate: now},
		DifficultyProgress: map[string]DifficultyProgress{
			"easy":   {},
			"medium": {},
			"hard":   {},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// QuestionProgressFor returns the progress entry for a question, creating
// a zeroed one on first contact.
func (p *UserProgress) QuestionProgressFor(questionID string) *QuestionProgress {
	if p.Questions == nil {
		p.Questions = map[string]*QuestionProgress{}
	}
	qp, ok := p.Questions[questionID]
	if !ok {
		qp = &QuestionProgress{
			QuestionID:   questionID,
			MasteryLevel: MasteryNew,
		}
		p.Questions[questionID] = qp
	}
	return qp
}

// ApplyMasteryTransition keeps the per-difficulty tallies in sync with a
// mastery change. Every mutation of DifficultyProgress goes through here
// so the incremental counters have a single audit point.
func (p *UserProgress) ApplyMasteryTransition(difficulty string, from, to MasteryLevel, firstAttempt bool) {
	dp := p.DifficultyProgress[difficulty]
	if firstAttempt {
		dp.Total++
	} else {
		decrementBucket(&dp, from)
	}
	incrementBucket(&dp, to)
	p.DifficultyProgress[difficulty] = dp
}

func incrementBucket(dp *DifficultyProgress, level MasteryLevel) {
	switch level {
	case MasteryMastered:
		dp.Mastered++
	case MasteryFamiliar:
		dp.Familiar++
	case MasteryLearning:
		dp.Learning++
	case MasteryNew:
		dp.New++
	}
}

func decrementBucket(dp *DifficultyProgress, level MasteryLevel) {
	switch level {
	case MasteryMastered:
		if dp.Mastered > 0 {
			dp.Mastered--
		}
	case MasteryFamiliar:
		if dp.Familiar > 0 {
			dp.Familiar--
		}
	case MasteryLearning:
		if dp.Learning > 0 {
			dp.Learning--
		}
	case MasteryNew:
		if dp.New > 0 {
			dp.New--
		}
	}
}

// MasteredCount derives the total mastered questions from the progress map.
func (p *UserProgress) MasteredCount() int {
	count := 0
	for _, qp := range p.Questions {
		if qp.MasteryLevel == MasteryMastered {
			count++
		}
	}
	return count
}

// HasBadge reports whether a badge was already earned.
func (p *UserProgress) HasBadge(badgeID string) bool {
	for _, b := range p.Badges {
		if b.BadgeID == badgeID {
			return true
		}
	}
	return false
}
