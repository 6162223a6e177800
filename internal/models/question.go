package models

import "time"

type Option struct {
	ID   string `bson:"id" json:"id"`
	Text string `bson:"text" json:"text"`
}

type Question struct {
	ID                   string    `bson:"_id,omitempty" json:"id"`
	Content              string    `bson:"content" json:"content"`
	Type                 string    `bson:"type" json:"type"`
	Options              []Option  `bson:"options" json:"options"`
	CorrectAnswer        string    `bson:"correct_answer" json:"correct_answer"`
	Explanation          string    `bson:"explanation" json:"explanation"`
	Difficulty           string    `bson:"difficulty" json:"difficulty"`
	Category             string    `bson:"category" json:"category"`
	Tags                 []string  `bson:"tags" json:"tags"`
	Framework            string    `bson:"framework,omitempty" json:"framework,omitempty"`
	Points               int       `bson:"points" json:"points"`
	EstimatedTimeSeconds int       `bson:"estimated_time_seconds" json:"estimated_time_seconds"`
	IsActive             bool      `bson:"is_active" json:"is_active"`
	CreatedAt            time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt            time.Time `bson:"updated_at" json:"updated_at"`
}
