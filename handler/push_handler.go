package handler

import (
	"time"

	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PushHandler struct {
	push usecase.PushStore
}

func NewPushHandler(push usecase.PushStore) *PushHandler {
	return &PushHandler{push: push}
}

// Subscribe registers a browser push subscription
func (h *PushHandler) Subscribe(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	var req struct {
		Endpoint string `json:"endpoint" binding:"required"`
		P256dh   string `json:"p256dh" binding:"required"`
		Auth     string `json:"auth" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	sub := &model.PushSubscription{
		SubscriptionID: uuid.New().String(),
		UserID:         userID.(string),
		Endpoint:       req.Endpoint,
		P256dh:         req.P256dh,
		Auth:           req.Auth,
		CreatedAt:      time.Now(),
	}
	if err := h.push.SaveSubscription(c.Request.Context(), sub); err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.Created(c, sub)
}

// Unsubscribe removes a subscription by endpoint
func (h *PushHandler) Unsubscribe(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	var req struct {
		Endpoint string `json:"endpoint" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.push.DeleteSubscription(c.Request.Context(), userID.(string), req.Endpoint); err != nil {
		utils.NotFound(c, err.Error())
		return
	}

	utils.Success(c, gin.H{"message": "Subscription removed"})
}
