package usecase

import (
	"context"
	"time"

	"main/model"
)

// Store interfaces consumed by the services. The mongo repositories in
// repository/ satisfy them; tests swap in in-memory fakes.

type TaskStore interface {
	CreateTask(ctx context.Context, task *model.Task) error
	GetUserTasks(ctx context.Context, userID string) ([]*model.Task, error)
	GetTaskByID(ctx context.Context, userID, taskID string) (*model.Task, error)
	GetTasksInRange(ctx context.Context, userID string, from, to time.Time) ([]*model.Task, error)
	UpdateTask(ctx context.Context, taskID, userID string, updates *model.Task) error
	SetScheduledDate(ctx context.Context, taskID, userID string, newTime time.Time) error
	SetPriority(ctx context.Context, taskID, userID string, priority model.Priority) error
	GetOverdueTasks(ctx context.Context, cutoff time.Time) ([]*model.Task, error)
	GetTasksDueBetween(ctx context.Context, from, to time.Time) ([]*model.Task, error)
	DistinctUserIDs(ctx context.Context) ([]string, error)
}

type SuggestionStore interface {
	CreateSuggestion(ctx context.Context, s *model.Suggestion) error
	GetSuggestionByID(ctx context.Context, userID, suggestionID string) (*model.Suggestion, error)
	GetUserSuggestions(ctx context.Context, userID string, status model.SuggestionStatus) ([]*model.Suggestion, error)
	TransitionStatus(ctx context.Context, userID, suggestionID string, from, to model.SuggestionStatus) error
}

type PatternStore interface {
	UpsertPattern(ctx context.Context, p *model.Pattern) error
	GetUserPatterns(ctx context.Context, userID string) ([]*model.Pattern, error)
}

type AnalyticsStore interface {
	AppendEntry(ctx context.Context, entry *model.AnalyticsEntry) error
	GetRecentEntries(ctx context.Context, userID string, limit int64) ([]*model.AnalyticsEntry, error)
}

type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*model.Profile, error)
	UpsertProfile(ctx context.Context, profile *model.Profile) error
}

type PushStore interface {
	SaveSubscription(ctx context.Context, sub *model.PushSubscription) error
	GetUserSubscriptions(ctx context.Context, userID string) ([]*model.PushSubscription, error)
	DeleteSubscription(ctx context.Context, userID, endpoint string) error
}

// ReminderMarker is the dedup set guarding repeat reminders per task.
type ReminderMarker interface {
	MarkNotified(ctx context.Context, taskID string) (bool, error)
	ClearNotified(ctx context.Context, taskID string) error
}
