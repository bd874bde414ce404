package usecase

import (
	"context"
	"testing"
	"time"

	"main/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTaskFixture() (*TaskService, *fakeTaskStore, *fakeAnalyticsStore, *fakeMarker) {
	tasks := newFakeTaskStore()
	analytics := &fakeAnalyticsStore{}
	marker := newFakeMarker()
	return NewTaskService(tasks, analytics, marker), tasks, analytics, marker
}

func TestCreateTaskDefaults(t *testing.T) {
	svc, tasks, _, _ := newTaskFixture()

	task := &model.Task{UserID: "user-1", Title: "Buy groceries"}
	require.NoError(t, svc.Create(context.Background(), task))

	assert.NotEmpty(t, task.TaskID)
	assert.Equal(t, model.PriorityMedium, task.Priority)
	assert.False(t, task.ScheduledDate.IsZero())
	assert.False(t, task.CreatedAt.IsZero())
	assert.Len(t, tasks.tasks, 1)
}

func TestCreateTaskValidation(t *testing.T) {
	svc, _, _, _ := newTaskFixture()

	err := svc.Create(context.Background(), &model.Task{UserID: "user-1"})
	assert.Error(t, err)

	err = svc.Create(context.Background(), &model.Task{Title: "No owner"})
	assert.Error(t, err)

	err = svc.Create(context.Background(), &model.Task{
		UserID: "user-1", Title: "Bad priority", Priority: "urgent",
	})
	assert.ErrorIs(t, err, ErrInvalidPriority)
}

func TestGetUserTasksOrdering(t *testing.T) {
	svc, tasks, _, _ := newTaskFixture()

	base := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	tasks.tasks["done"] = &model.Task{TaskID: "done", UserID: "user-1",
		Completed: true, ScheduledDate: base}
	tasks.tasks["later"] = &model.Task{TaskID: "later", UserID: "user-1",
		ScheduledDate: base.Add(48 * time.Hour)}
	tasks.tasks["soon"] = &model.Task{TaskID: "soon", UserID: "user-1",
		ScheduledDate: base.Add(time.Hour)}

	got, err := svc.GetUserTasks(context.Background(), "user-1")
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, "soon", got[0].TaskID)
	assert.Equal(t, "later", got[1].TaskID)
	assert.Equal(t, "done", got[2].TaskID)
}

func TestUpdateTaskPartial(t *testing.T) {
	svc, tasks, _, _ := newTaskFixture()

	tasks.tasks["t1"] = &model.Task{
		TaskID: "t1", UserID: "user-1", Title: "Old title",
		Description: "keep me", Priority: model.PriorityLow,
		ScheduledDate: time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
	}

	updated, err := svc.Update(context.Background(), "t1", "user-1", &model.Task{
		Title:    "New title",
		Priority: model.PriorityHigh,
	})
	require.NoError(t, err)

	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, "keep me", updated.Description)
	assert.Equal(t, model.PriorityHigh, updated.Priority)
	assert.Equal(t, time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC), updated.ScheduledDate)
}

func TestUpdateMissingTask(t *testing.T) {
	svc, _, _, _ := newTaskFixture()

	_, err := svc.Update(context.Background(), "missing", "user-1", &model.Task{Title: "x"})

	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestToggleCompleteRecordsAnalytics(t *testing.T) {
	svc, tasks, analytics, marker := newTaskFixture()

	scheduled := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	tasks.tasks["t1"] = &model.Task{
		TaskID: "t1", UserID: "user-1", Title: "Report", ScheduledDate: scheduled,
	}
	marker.claimed["t1"] = true

	updated, err := svc.ToggleComplete(context.Background(), "t1", "user-1")
	require.NoError(t, err)

	assert.True(t, updated.Completed)
	require.Len(t, analytics.entries, 1)
	entry := analytics.entries[0]
	assert.Equal(t, "user-1", entry.UserID)
	assert.Equal(t, "t1", entry.TaskID)
	assert.Equal(t, scheduled, entry.ScheduledTime)
	assert.False(t, entry.CompletedTime.IsZero())
	// Completion releases the reminder claim.
	assert.False(t, marker.claimed["t1"])
}

func TestToggleCompleteBackToIncomplete(t *testing.T) {
	svc, tasks, analytics, _ := newTaskFixture()

	tasks.tasks["t1"] = &model.Task{
		TaskID: "t1", UserID: "user-1", Title: "Report", Completed: true,
	}

	updated, err := svc.ToggleComplete(context.Background(), "t1", "user-1")
	require.NoError(t, err)

	assert.False(t, updated.Completed)
	assert.Empty(t, analytics.entries)
}

func TestGetStats(t *testing.T) {
	svc, tasks, _, _ := newTaskFixture()

	now := time.Now()
	tasks.tasks["a"] = &model.Task{TaskID: "a", UserID: "user-1",
		Priority: model.PriorityHigh, ScheduledDate: now.Add(-24 * time.Hour)}
	tasks.tasks["b"] = &model.Task{TaskID: "b", UserID: "user-1", Completed: true,
		Priority: model.PriorityLow, ScheduledDate: now.Add(-48 * time.Hour), IsOutdoor: true}
	tasks.tasks["c"] = &model.Task{TaskID: "c", UserID: "user-1",
		Priority: model.PriorityMedium, ScheduledDate: now.Add(7 * 24 * time.Hour)}

	stats, err := svc.GetStats(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 2, stats.Pending)
	assert.Equal(t, 1, stats.HighPriority)
	assert.Equal(t, 1, stats.MediumPriority)
	assert.Equal(t, 1, stats.LowPriority)
	assert.Equal(t, 1, stats.Overdue)
	assert.Equal(t, 1, stats.Outdoor)
}

func TestRescheduleOverdue(t *testing.T) {
	svc, tasks, _, marker := newTaskFixture()

	overdueAt := time.Now().Add(-36 * time.Hour)
	tasks.tasks["late"] = &model.Task{TaskID: "late", UserID: "user-1",
		ScheduledDate: overdueAt}
	tasks.tasks["done"] = &model.Task{TaskID: "done", UserID: "user-1",
		Completed: true, ScheduledDate: overdueAt}
	tasks.tasks["future"] = &model.Task{TaskID: "future", UserID: "user-2",
		ScheduledDate: time.Now().Add(24 * time.Hour)}
	marker.claimed["late"] = true

	moved, err := svc.RescheduleOverdue(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, moved)
	// Same clock time, next day.
	assert.Equal(t, overdueAt.AddDate(0, 0, 1), tasks.tasks["late"].ScheduledDate)
	assert.Equal(t, overdueAt, tasks.tasks["done"].ScheduledDate)
	assert.False(t, marker.claimed["late"])
}
