package model

import "time"

// AnalyticsEntry pairs when a task was scheduled with when it was actually
// completed. Append-only, one entry per completion event.
type AnalyticsEntry struct {
	EntryID       string    `bson:"_id,omitempty" json:"id"`
	UserID        string    `bson:"user_id" json:"user_id"`
	TaskID        string    `bson:"task_id" json:"task_id"`
	ScheduledTime time.Time `bson:"scheduled_time" json:"scheduled_time"`
	CompletedTime time.Time `bson:"completed_time" json:"completed_time"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}
