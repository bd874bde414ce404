package model

import (
	"encoding/json"
	"errors"
	"time"
)

type SuggestionType string
type SuggestionStatus string

const (
	SuggestionNewTask      SuggestionType = "new_task"
	SuggestionReschedule   SuggestionType = "reschedule"
	SuggestionReprioritize SuggestionType = "reprioritize"
	SuggestionBreakDown    SuggestionType = "break_down"
	SuggestionTimeBlock    SuggestionType = "time_block"

	SuggestionPending     SuggestionStatus = "pending"
	SuggestionAutoApplied SuggestionStatus = "auto_applied"
	SuggestionAccepted    SuggestionStatus = "accepted"
	SuggestionRejected    SuggestionStatus = "rejected"
)

// SuggestionData wraps what the model proposed. Data is kept as raw JSON
// because its shape depends on the suggestion type; decode it through the
// typed accessors below.
type SuggestionData struct {
	Title      string          `bson:"title" json:"title"`
	Reason     string          `bson:"reason" json:"reason"`
	Data       json.RawMessage `bson:"data" json:"data"`
	Confidence float64         `bson:"confidence" json:"confidence"`
}

type Suggestion struct {
	SuggestionID   string           `bson:"_id,omitempty" json:"id"`
	UserID         string           `bson:"user_id" json:"user_id"`
	SuggestionType SuggestionType   `bson:"suggestion_type" json:"suggestion_type"`
	SuggestionData SuggestionData   `bson:"suggestion_data" json:"suggestion_data"`
	Status         SuggestionStatus `bson:"status" json:"status"`
	CreatedAt      time.Time        `bson:"created_at" json:"created_at"`
	AppliedAt      time.Time        `bson:"applied_at,omitempty" json:"applied_at,omitempty"`
}

// Per-type payload shapes.

type NewTaskData struct {
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Priority      Priority  `json:"priority,omitempty"`
	Category      string    `json:"category,omitempty"`
	IsOutdoor     bool      `json:"is_outdoor,omitempty"`
	ScheduledDate time.Time `json:"scheduled_date"`
}

type RescheduleData struct {
	TaskID  string    `json:"task_id"`
	NewTime time.Time `json:"new_time"`
}

type ReprioritizeData struct {
	TaskID      string   `json:"task_id"`
	NewPriority Priority `json:"new_priority"`
}

type BreakDownData struct {
	TaskID   string   `json:"task_id"`
	Subtasks []string `json:"subtasks"`
}

type TimeBlockData struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label,omitempty"`
}

var ErrBadSuggestionData = errors.New("suggestion data does not match its type")

func (s *Suggestion) NewTaskData() (*NewTaskData, error) {
	var d NewTaskData
	if err := json.Unmarshal(s.SuggestionData.Data, &d); err != nil {
		return nil, ErrBadSuggestionData
	}
	if d.Title == "" {
		return nil, ErrBadSuggestionData
	}
	return &d, nil
}

func (s *Suggestion) RescheduleData() (*RescheduleData, error) {
	var d RescheduleData
	if err := json.Unmarshal(s.SuggestionData.Data, &d); err != nil {
		return nil, ErrBadSuggestionData
	}
	if d.TaskID == "" || d.NewTime.IsZero() {
		return nil, ErrBadSuggestionData
	}
	return &d, nil
}

func (s *Suggestion) ReprioritizeData() (*ReprioritizeData, error) {
	var d ReprioritizeData
	if err := json.Unmarshal(s.SuggestionData.Data, &d); err != nil {
		return nil, ErrBadSuggestionData
	}
	if d.TaskID == "" {
		return nil, ErrBadSuggestionData
	}
	switch d.NewPriority {
	case PriorityLow, PriorityMedium, PriorityHigh:
	default:
		return nil, ErrBadSuggestionData
	}
	return &d, nil
}
