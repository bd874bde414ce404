package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"main/model"
	"main/repository"

	"github.com/google/uuid"
)

// SuggestionService owns the suggestion lifecycle: pending suggestions can
// be accepted (applying their task mutation) or rejected. auto_applied is a
// terminal state set by the analysis engine.
type SuggestionService struct {
	suggestions SuggestionStore
	tasks       TaskStore
}

func NewSuggestionService(suggestions SuggestionStore, tasks TaskStore) *SuggestionService {
	return &SuggestionService{suggestions: suggestions, tasks: tasks}
}

// List returns a user's suggestions, optionally filtered by status
func (svc *SuggestionService) List(ctx context.Context, userID string, status model.SuggestionStatus) ([]*model.Suggestion, error) {
	return svc.suggestions.GetUserSuggestions(ctx, userID, status)
}

// Apply accepts a pending suggestion and performs its task mutation. Only
// pending suggestions transition; re-applying an accepted one fails with
// ErrAlreadyResolved instead of repeating the mutation.
func (svc *SuggestionService) Apply(ctx context.Context, userID, suggestionID string) error {
	suggestion, err := svc.suggestions.GetSuggestionByID(ctx, userID, suggestionID)
	if err != nil {
		if errors.Is(err, repository.ErrSuggestionNotFound) {
			return ErrSuggestionNotFound
		}
		return err
	}

	if suggestion.Status != model.SuggestionPending {
		return ErrAlreadyResolved
	}

	if err := svc.mutateTask(ctx, suggestion); err != nil {
		// Suggestion stays pending so the user can retry or reject.
		return err
	}

	err = svc.suggestions.TransitionStatus(ctx, userID, suggestionID, model.SuggestionPending, model.SuggestionAccepted)
	if err != nil {
		if errors.Is(err, repository.ErrSuggestionNotFound) {
			// Lost the race with a concurrent apply/reject.
			return ErrAlreadyResolved
		}
		return err
	}
	return nil
}

// Reject declines a pending suggestion. No task mutation ever happens here.
func (svc *SuggestionService) Reject(ctx context.Context, userID, suggestionID string) error {
	err := svc.suggestions.TransitionStatus(ctx, userID, suggestionID, model.SuggestionPending, model.SuggestionRejected)
	if err != nil {
		if errors.Is(err, repository.ErrSuggestionNotFound) {
			// Either missing, foreign, or already resolved; tell them apart
			// for the caller.
			if _, lookupErr := svc.suggestions.GetSuggestionByID(ctx, userID, suggestionID); lookupErr == nil {
				return ErrAlreadyResolved
			}
			return ErrSuggestionNotFound
		}
		return err
	}
	return nil
}

func (svc *SuggestionService) mutateTask(ctx context.Context, suggestion *model.Suggestion) error {
	switch suggestion.SuggestionType {
	case model.SuggestionNewTask:
		data, err := suggestion.NewTaskData()
		if err != nil {
			return err
		}
		return svc.tasks.CreateTask(ctx, taskFromSuggestion(suggestion.UserID, data))

	case model.SuggestionReschedule:
		data, err := suggestion.RescheduleData()
		if err != nil {
			return err
		}
		if err := svc.tasks.SetScheduledDate(ctx, data.TaskID, suggestion.UserID, data.NewTime); err != nil {
			if errors.Is(err, repository.ErrTaskNotFound) {
				return ErrTaskNotFound
			}
			return err
		}
		return nil

	case model.SuggestionReprioritize:
		data, err := suggestion.ReprioritizeData()
		if err != nil {
			return err
		}
		if err := svc.tasks.SetPriority(ctx, data.TaskID, suggestion.UserID, data.NewPriority); err != nil {
			if errors.Is(err, repository.ErrTaskNotFound) {
				return ErrTaskNotFound
			}
			return err
		}
		return nil

	case model.SuggestionBreakDown, model.SuggestionTimeBlock:
		// Advisory only: accepting records the decision, the user acts on
		// the suggestion content themselves.
		return nil

	default:
		return fmt.Errorf("unknown suggestion type %q", suggestion.SuggestionType)
	}
}

// taskFromSuggestion builds the Task a new_task suggestion describes,
// defaulting priority to medium and the schedule to now.
func taskFromSuggestion(userID string, data *model.NewTaskData) *model.Task {
	now := time.Now()
	task := &model.Task{
		TaskID:        uuid.New().String(),
		UserID:        userID,
		Title:         data.Title,
		Description:   data.Description,
		ScheduledDate: data.ScheduledDate,
		Priority:      data.Priority,
		Category:      data.Category,
		IsOutdoor:     data.IsOutdoor,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}
	if task.ScheduledDate.IsZero() {
		task.ScheduledDate = now
	}
	return task
}
