package models

import "time"

type QuizAnswer struct {
	QuestionID       string  `bson:"question_id" json:"question_id"`
	UserAnswer       string  `bson:"user_answer" json:"user_answer"`
	IsCorrect        bool    `bson:"is_correct" json:"is_correct"`
	TimeSpentSeconds int     `bson:"time_spent_seconds" json:"time_spent_seconds"`
	Difficulty       string  `bson:"difficulty" json:"difficulty"`
	Category         string  `bson:"category" json:"category"`
	Points           int     `bson:"points" json:"points"`
	XPEarned         int     `bson:"xp_earned" json:"xp_earned"`
	PointsEarned     float64 `bson:"points_earned" json:"points_earned"`
}

// QuizResult is one finished quiz attempt. The badge engine queries this
// collection for quiz_count and quiz_score criteria.
type QuizResult struct {
	ID               string       `bson:"_id,omitempty" json:"id"`
	UserID           string       `bson:"user_id" json:"user_id"`
	Level            string       `bson:"level,omitempty" json:"level,omitempty"`
	Framework        string       `bson:"framework,omitempty" json:"framework,omitempty"`
	Score            float64      `bson:"score" json:"score"`
	CorrectAnswers   int          `bson:"correct_answers" json:"correct_answers"`
	IncorrectAnswers int          `bson:"incorrect_answers" json:"incorrect_answers"`
	TotalQuestions   int          `bson:"total_questions" json:"total_questions"`
	TotalTimeSeconds int          `bson:"total_time_seconds" json:"total_time_seconds"`
	StartTime        time.Time    `bson:"start_time" json:"start_time"`
	EndTime          time.Time    `bson:"end_time" json:"end_time"`
	Answers          []QuizAnswer `bson:"answers" json:"answers"`
	XPEarned         int          `bson:"xp_earned" json:"xp_earned"`
	BadgesEarned     []string     `bson:"badges_earned" json:"badges_earned"`
	IsPerfect        bool         `bson:"is_perfect" json:"is_perfect"`
	CreatedAt        time.Time    `bson:"created_at" json:"created_at"`
}
