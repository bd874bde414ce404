package model

import "time"

type PatternType string

const (
	PatternProductiveHours    PatternType = "productive_hours"
	PatternCategoryPreference PatternType = "category_preference"
)

// Pattern holds one derived behavioral statistic per (user, type). The
// repository upserts on that pair, so recomputation replaces the row.
type Pattern struct {
	UserID          string      `bson:"user_id" json:"user_id"`
	PatternType     PatternType `bson:"pattern_type" json:"pattern_type"`
	PatternData     PatternData `bson:"pattern_data" json:"pattern_data"`
	ConfidenceScore float64     `bson:"confidence_score" json:"confidence_score"`
	UpdatedAt       time.Time   `bson:"updated_at" json:"updated_at"`
}

type PatternData struct {
	Hours       []int                `bson:"hours,omitempty" json:"hours,omitempty"`
	Preferences []CategoryPreference `bson:"preferences,omitempty" json:"preferences,omitempty"`
}

type CategoryPreference struct {
	Category string `bson:"category" json:"category"`
	Count    int    `bson:"count" json:"count"`
}
