package models

import "time"

// Badge criteria types. Catalogs are authored externally, so unknown
// values must be tolerated (treated as never met), never rejected.
const (
	CriteriaXP          = "xp"
	CriteriaStreak      = "streak"
	CriteriaStudyTime   = "study_time"
	CriteriaQuizCount   = "quiz_count"
	CriteriaQuizScore   = "quiz_score"
	CriteriaPerfectQuiz = "perfect_quiz"
	CriteriaMastery     = "mastery"
	CriteriaSpeed       = "speed"
	CriteriaCustom      = "custom"
)

type BadgeCriteria struct {
	Type      string                 `bson:"type" json:"type"`
	Threshold float64                `bson:"threshold" json:"threshold"`
	Metadata  map[string]interface{} `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

type Badge struct {
	ID          string        `bson:"_id,omitempty" json:"id"`
	Name        string        `bson:"name" json:"name"`
	Description string        `bson:"description" json:"description"`
	Icon        string        `bson:"icon" json:"icon"`
	Tier        string        `bson:"tier,omitempty" json:"tier,omitempty"`
	Criteria    BadgeCriteria `bson:"criteria" json:"criteria"`
	XPReward    int           `bson:"xp_reward" json:"xp_reward"`
	IsSecret    bool          `bson:"is_secret" json:"is_secret"`
	Category    string        `bson:"category" json:"category"`
	Rarity      string        `bson:"rarity" json:"rarity"`
	CreatedAt   time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at" json:"updated_at"`
}
