package usecase

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"main/model"
	"main/repository"
	"main/utils"

	"github.com/google/uuid"
)

// TaskService handles direct task CRUD plus the cron-driven overdue
// rescheduling. Completion events feed the analytics log the pattern and
// analysis services read from.
type TaskService struct {
	tasks     TaskStore
	analytics AnalyticsStore
	notified  ReminderMarker
}

func NewTaskService(tasks TaskStore, analytics AnalyticsStore, notified ReminderMarker) *TaskService {
	return &TaskService{tasks: tasks, analytics: analytics, notified: notified}
}

// Create validates and inserts a task
func (svc *TaskService) Create(ctx context.Context, task *model.Task) error {
	if task.UserID == "" {
		return errors.New("user ID is required")
	}
	if task.Title == "" {
		return errors.New("task title is required")
	}
	if !utils.ValidatePriority(task.Priority) {
		return ErrInvalidPriority
	}
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}

	now := time.Now()
	if task.TaskID == "" {
		task.TaskID = uuid.New().String()
	}
	if task.ScheduledDate.IsZero() {
		task.ScheduledDate = now
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = now
	}

	return svc.tasks.CreateTask(ctx, task)
}

// GetUserTasks returns a user's tasks, incomplete first, then by schedule
func (svc *TaskService) GetUserTasks(ctx context.Context, userID string) ([]*model.Task, error) {
	tasks, err := svc.tasks.GetUserTasks(ctx, userID)
	if err != nil {
		return nil, err
	}

	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].Completed != tasks[j].Completed {
			return !tasks[i].Completed
		}
		if !tasks[i].ScheduledDate.Equal(tasks[j].ScheduledDate) {
			return tasks[i].ScheduledDate.Before(tasks[j].ScheduledDate)
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})

	return tasks, nil
}

// GetTasksInRange returns the user's tasks inside [from, to)
func (svc *TaskService) GetTasksInRange(ctx context.Context, userID string, from, to time.Time) ([]*model.Task, error) {
	return svc.tasks.GetTasksInRange(ctx, userID, from, to)
}

// Update applies partial changes to an owned task
func (svc *TaskService) Update(ctx context.Context, taskID, userID string, updates *model.Task) (*model.Task, error) {
	existing, err := svc.tasks.GetTaskByID(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	if updates.Title != "" {
		existing.Title = updates.Title
	}
	if updates.Description != "" {
		existing.Description = updates.Description
	}
	if updates.Priority != "" {
		if !utils.ValidatePriority(updates.Priority) {
			return nil, ErrInvalidPriority
		}
		existing.Priority = updates.Priority
	}
	if updates.Category != "" {
		existing.Category = updates.Category
	}
	if !updates.ScheduledDate.IsZero() {
		existing.ScheduledDate = updates.ScheduledDate
	}
	existing.IsOutdoor = updates.IsOutdoor
	existing.UpdatedAt = time.Now()

	if err := svc.tasks.UpdateTask(ctx, taskID, userID, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// ToggleComplete flips completion. Completing a task appends its analytics
// entry and releases the reminder-dedup claim so a future reschedule can
// notify again.
func (svc *TaskService) ToggleComplete(ctx context.Context, taskID, userID string) (*model.Task, error) {
	existing, err := svc.tasks.GetTaskByID(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	existing.Completed = !existing.Completed
	existing.UpdatedAt = time.Now()

	if err := svc.tasks.UpdateTask(ctx, taskID, userID, existing); err != nil {
		return nil, err
	}

	if existing.Completed {
		entry := &model.AnalyticsEntry{
			EntryID:       uuid.New().String(),
			UserID:        userID,
			TaskID:        taskID,
			ScheduledTime: existing.ScheduledDate,
			CompletedTime: time.Now(),
			CreatedAt:     time.Now(),
		}
		if err := svc.analytics.AppendEntry(ctx, entry); err != nil {
			log.Printf("failed to record completion analytics for task %s: %v", taskID, err)
		}
		if svc.notified != nil {
			if err := svc.notified.ClearNotified(ctx, taskID); err != nil {
				log.Printf("failed to clear reminder flag for task %s: %v", taskID, err)
			}
		}
	}

	return existing, nil
}

// GetStats summarizes a user's tasks
func (svc *TaskService) GetStats(ctx context.Context, userID string) (*model.TaskStats, error) {
	tasks, err := svc.tasks.GetUserTasks(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &model.TaskStats{Total: len(tasks)}
	now := time.Now()
	endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())

	for _, task := range tasks {
		if task.Completed {
			stats.Completed++
		} else {
			stats.Pending++
		}

		switch task.Priority {
		case model.PriorityHigh:
			stats.HighPriority++
		case model.PriorityMedium:
			stats.MediumPriority++
		case model.PriorityLow:
			stats.LowPriority++
		}

		if !task.Completed {
			if task.ScheduledDate.Before(now) {
				stats.Overdue++
			} else if task.ScheduledDate.Before(endOfDay) {
				stats.DueToday++
			}
		}

		if task.IsOutdoor {
			stats.Outdoor++
		}
	}

	return stats, nil
}

// RescheduleOverdue pushes every incomplete overdue task (all users) to the
// same time next day. Returns how many tasks moved.
func (svc *TaskService) RescheduleOverdue(ctx context.Context) (int, error) {
	overdue, err := svc.tasks.GetOverdueTasks(ctx, time.Now())
	if err != nil {
		return 0, err
	}

	rescheduled := 0
	for _, task := range overdue {
		newTime := task.ScheduledDate.AddDate(0, 0, 1)
		if err := svc.tasks.SetScheduledDate(ctx, task.TaskID, task.UserID, newTime); err != nil {
			log.Printf("failed to reschedule task %s: %v", task.TaskID, err)
			continue
		}
		if svc.notified != nil {
			if err := svc.notified.ClearNotified(ctx, task.TaskID); err != nil {
				log.Printf("failed to clear reminder flag for task %s: %v", task.TaskID, err)
			}
		}
		rescheduled++
	}

	return rescheduled, nil
}
