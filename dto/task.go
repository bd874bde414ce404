package dto

import (
	"main/model"
	"time"
)

type TaskResponse struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
	ScheduledDate time.Time      `json:"scheduled_date"`
	Completed     bool           `json:"completed"`
	Priority      model.Priority `json:"priority"`
	Category      string         `json:"category,omitempty"`
	IsOutdoor     bool           `json:"is_outdoor"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	TimeUntil     string         `json:"time_until,omitempty"` // Computed field
}

func ToTaskResponse(task *model.Task) TaskResponse {
	response := TaskResponse{
		ID:            task.TaskID,
		Title:         task.Title,
		Description:   task.Description,
		ScheduledDate: task.ScheduledDate,
		Completed:     task.Completed,
		Priority:      task.Priority,
		Category:      task.Category,
		IsOutdoor:     task.IsOutdoor,
		CreatedAt:     task.CreatedAt,
		UpdatedAt:     task.UpdatedAt,
	}

	if !task.Completed {
		if task.ScheduledDate.Before(time.Now()) {
			response.TimeUntil = "Overdue"
		} else {
			response.TimeUntil = time.Until(task.ScheduledDate).Round(time.Minute).String()
		}
	}

	return response
}

func ToTaskResponses(tasks []*model.Task) []TaskResponse {
	responses := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		responses[i] = ToTaskResponse(task)
	}
	return responses
}
