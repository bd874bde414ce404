package handler

import (
	"fmt"

	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// CronHandler exposes the scheduler-triggered jobs. Routes using it are
// guarded by the cron secret, not a user token.
type CronHandler struct {
	tasks     *usecase.TaskService
	analysis  *usecase.AnalysisService
	reminders *usecase.ReminderService
}

func NewCronHandler(tasks *usecase.TaskService, analysis *usecase.AnalysisService, reminders *usecase.ReminderService) *CronHandler {
	return &CronHandler{tasks: tasks, analysis: analysis, reminders: reminders}
}

// RescheduleOverdue moves every incomplete overdue task to the next day
func (h *CronHandler) RescheduleOverdue(c *gin.Context) {
	count, err := h.tasks.RescheduleOverdue(c.Request.Context())
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	if count == 0 {
		utils.Success(c, gin.H{"message": "No overdue tasks to reschedule"})
		return
	}
	utils.Success(c, gin.H{
		"message":     fmt.Sprintf("Successfully rescheduled %d tasks", count),
		"rescheduled": count,
	})
}

// AnalyzeAll runs the suggestion engine for every user with tasks
func (h *CronHandler) AnalyzeAll(c *gin.Context) {
	result, err := h.analysis.AnalyzeAllUsers(c.Request.Context())
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, result)
}

// Reminders scans for tasks about to start and claims their notifications
func (h *CronHandler) Reminders(c *gin.Context) {
	result, err := h.reminders.Scan(c.Request.Context())
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, result)
}
