package handler

import (
	"errors"
	"time"

	"main/dto"
	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	service *usecase.TaskService
}

func NewTaskHandler(service *usecase.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	var req struct {
		Title         string         `json:"title" binding:"required"`
		Description   string         `json:"description"`
		ScheduledDate time.Time      `json:"scheduled_date"`
		Priority      model.Priority `json:"priority"`
		Category      string         `json:"category"`
		IsOutdoor     bool           `json:"is_outdoor"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	task := &model.Task{
		UserID:        userID.(string),
		Title:         req.Title,
		Description:   req.Description,
		ScheduledDate: req.ScheduledDate,
		Priority:      req.Priority,
		Category:      req.Category,
		IsOutdoor:     req.IsOutdoor,
	}

	if err := h.service.Create(c.Request.Context(), task); err != nil {
		if errors.Is(err, usecase.ErrInvalidPriority) {
			utils.BadRequest(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.Created(c, dto.ToTaskResponse(task))
}

func (h *TaskHandler) GetTasks(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	tasks, err := h.service.GetUserTasks(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, dto.ToTaskResponses(tasks))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		utils.BadRequest(c, "Task ID is required")
		return
	}

	var req struct {
		Title         string         `json:"title"`
		Description   string         `json:"description"`
		ScheduledDate time.Time      `json:"scheduled_date"`
		Priority      model.Priority `json:"priority"`
		Category      string         `json:"category"`
		IsOutdoor     bool           `json:"is_outdoor"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	updates := &model.Task{
		Title:         req.Title,
		Description:   req.Description,
		ScheduledDate: req.ScheduledDate,
		Priority:      req.Priority,
		Category:      req.Category,
		IsOutdoor:     req.IsOutdoor,
	}

	task, err := h.service.Update(c.Request.Context(), taskID, userID.(string), updates)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrTaskNotFound):
			utils.NotFound(c, "Task not found")
		case errors.Is(err, usecase.ErrInvalidPriority):
			utils.BadRequest(c, err.Error())
		default:
			utils.InternalError(c, err.Error())
		}
		return
	}

	utils.Success(c, dto.ToTaskResponse(task))
}

func (h *TaskHandler) ToggleComplete(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		utils.BadRequest(c, "Task ID is required")
		return
	}

	task, err := h.service.ToggleComplete(c.Request.Context(), taskID, userID.(string))
	if err != nil {
		if errors.Is(err, usecase.ErrTaskNotFound) {
			utils.NotFound(c, "Task not found")
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, dto.ToTaskResponse(task))
}

func (h *TaskHandler) GetStats(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	stats, err := h.service.GetStats(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, stats)
}
