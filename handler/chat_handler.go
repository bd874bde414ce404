package handler

import (
	"errors"
	"time"

	"main/llm"
	"main/middleware"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chat     *usecase.ChatService
	generate *usecase.GenerationService
}

func NewChatHandler(chat *usecase.ChatService, generate *usecase.GenerationService) *ChatHandler {
	return &ChatHandler{chat: chat, generate: generate}
}

// Chat handles one conversational turn
func (h *ChatHandler) Chat(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	var req struct {
		Message             string        `json:"message" binding:"required"`
		ConversationHistory []llm.Message `json:"conversation_history"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	start := time.Now()
	reply, err := h.chat.Chat(c.Request.Context(), userID.(string), req.Message, req.ConversationHistory)
	middleware.LLMCallDuration.WithLabelValues("chat").Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, llm.ErrUpstream) {
			middleware.ErrorsTotal.WithLabelValues("upstream").Inc()
			utils.BadGateway(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, reply)
}

// GenerateTasks creates a week of tasks from the user's recent habits
func (h *ChatHandler) GenerateTasks(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	start := time.Now()
	result, err := h.generate.GenerateWeek(c.Request.Context(), userID.(string))
	middleware.LLMCallDuration.WithLabelValues("generate").Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, llm.ErrUpstream) || errors.Is(err, usecase.ErrNoStructuredResult) {
			middleware.ErrorsTotal.WithLabelValues("upstream").Inc()
			utils.BadGateway(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, result)
}

// Motivation returns a short quote for the dashboard
func (h *ChatHandler) Motivation(c *gin.Context) {
	start := time.Now()
	quote, err := h.chat.Motivation(c.Request.Context())
	middleware.LLMCallDuration.WithLabelValues("motivation").Observe(time.Since(start).Seconds())
	if err != nil {
		middleware.ErrorsTotal.WithLabelValues("upstream").Inc()
		utils.BadGateway(c, err.Error())
		return
	}

	utils.Success(c, gin.H{"quote": quote})
}
