package handler

import (
	"errors"
	"time"

	"main/dto"
	"main/llm"
	"main/middleware"
	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type AIHandler struct {
	analysis    *usecase.AnalysisService
	suggestions *usecase.SuggestionService
}

func NewAIHandler(analysis *usecase.AnalysisService, suggestions *usecase.SuggestionService) *AIHandler {
	return &AIHandler{analysis: analysis, suggestions: suggestions}
}

// Analyze runs the suggestion engine for the authenticated user
func (h *AIHandler) Analyze(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	start := time.Now()
	result, err := h.analysis.AnalyzeAndSuggest(c.Request.Context(), userID.(string))
	middleware.LLMCallDuration.WithLabelValues("analyze").Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, usecase.ErrNoStructuredResult) || errors.Is(err, llm.ErrUpstream) {
			middleware.ErrorsTotal.WithLabelValues("upstream").Inc()
			utils.BadGateway(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	for _, s := range result.Suggestions {
		middleware.SuggestionsGenerated.WithLabelValues(string(s.SuggestionType), string(s.Status)).Inc()
	}

	utils.Success(c, gin.H{
		"suggestions": dto.ToSuggestionResponses(result.Suggestions),
		"message":     result.Message,
	})
}

// ListSuggestions returns the user's suggestions, optionally by status
func (h *AIHandler) ListSuggestions(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	status := model.SuggestionStatus(c.Query("status"))
	switch status {
	case "", model.SuggestionPending, model.SuggestionAutoApplied, model.SuggestionAccepted, model.SuggestionRejected:
	default:
		utils.BadRequest(c, "Invalid status filter")
		return
	}

	suggestions, err := h.suggestions.List(c.Request.Context(), userID.(string), status)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, dto.ToSuggestionResponses(suggestions))
}

// ApplySuggestion accepts a pending suggestion
func (h *AIHandler) ApplySuggestion(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	suggestionID := c.Param("id")
	if suggestionID == "" {
		utils.BadRequest(c, "Suggestion ID is required")
		return
	}

	err := h.suggestions.Apply(c.Request.Context(), userID.(string), suggestionID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrSuggestionNotFound):
			utils.NotFound(c, "Suggestion not found")
		case errors.Is(err, usecase.ErrAlreadyResolved):
			utils.Conflict(c, "Suggestion has already been resolved")
		case errors.Is(err, usecase.ErrTaskNotFound):
			utils.NotFound(c, "Referenced task not found")
		case errors.Is(err, model.ErrBadSuggestionData):
			utils.BadRequest(c, err.Error())
		default:
			utils.InternalError(c, err.Error())
		}
		return
	}

	middleware.SuggestionsResolved.WithLabelValues("accepted").Inc()
	utils.Success(c, gin.H{"message": "Suggestion applied"})
}

// RejectSuggestion declines a pending suggestion
func (h *AIHandler) RejectSuggestion(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	suggestionID := c.Param("id")
	if suggestionID == "" {
		utils.BadRequest(c, "Suggestion ID is required")
		return
	}

	err := h.suggestions.Reject(c.Request.Context(), userID.(string), suggestionID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrSuggestionNotFound):
			utils.NotFound(c, "Suggestion not found")
		case errors.Is(err, usecase.ErrAlreadyResolved):
			utils.Conflict(c, "Suggestion has already been resolved")
		default:
			utils.InternalError(c, err.Error())
		}
		return
	}

	middleware.SuggestionsResolved.WithLabelValues("rejected").Inc()
	utils.Success(c, gin.H{"message": "Suggestion rejected"})
}
