package model

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Task struct {
	TaskID        string    `bson:"_id,omitempty" json:"id"`
	UserID        string    `bson:"user_id" json:"user_id"`
	Title         string    `bson:"title" json:"title" binding:"required"`
	Description   string    `bson:"description,omitempty" json:"description,omitempty"`
	ScheduledDate time.Time `bson:"scheduled_date" json:"scheduled_date"`
	Completed     bool      `bson:"completed" json:"completed"`
	Priority      Priority  `bson:"priority" json:"priority"`
	Category      string    `bson:"category,omitempty" json:"category,omitempty"`
	IsOutdoor     bool      `bson:"is_outdoor" json:"is_outdoor"`
	NotionID      string    `bson:"notion_id,omitempty" json:"notion_id,omitempty"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}
