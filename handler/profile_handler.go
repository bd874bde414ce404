package handler

import (
	"errors"
	"time"

	"main/model"
	"main/repository"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profiles usecase.ProfileStore
}

func NewProfileHandler(profiles usecase.ProfileStore) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	profile, err := h.profiles.GetProfile(c.Request.Context(), userID.(string))
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			// A fresh user simply has defaults.
			utils.Success(c, model.Profile{UserID: userID.(string)})
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, profile)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	var req struct {
		Timezone     string `json:"timezone"`
		NotionAPIKey string `json:"notion_api_key"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if req.Timezone != "" {
		if _, err := time.LoadLocation(req.Timezone); err != nil {
			utils.BadRequest(c, "Unknown timezone")
			return
		}
	}

	profile := &model.Profile{
		UserID:       userID.(string),
		Timezone:     req.Timezone,
		NotionAPIKey: req.NotionAPIKey,
	}
	if existing, err := h.profiles.GetProfile(c.Request.Context(), userID.(string)); err == nil {
		profile.CreatedAt = existing.CreatedAt
		if profile.Timezone == "" {
			profile.Timezone = existing.Timezone
		}
		if profile.NotionAPIKey == "" {
			profile.NotionAPIKey = existing.NotionAPIKey
		}
	}

	if err := h.profiles.UpsertProfile(c.Request.Context(), profile); err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, profile)
}
