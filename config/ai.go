package config

import (
	"strings"
	"time"

	"main/model"
	"main/utils"
)

// AIConfig configures the chat-completions client and the suggestion engine.
type AIConfig struct {
	BaseURL             string
	APIKey              string
	Model               string
	MaxTokens           int
	Temperature         float64
	Timeout             time.Duration
	AutoApplyThreshold  float64
	AutoApplyTypes      []model.SuggestionType
	AnalyticsWindowSize int64
}

func LoadAIConfig() AIConfig {
	cfg := AIConfig{
		BaseURL:             utils.GetEnvAsString("AI_BASE_URL", "https://api.openai.com/v1/chat/completions"),
		APIKey:              utils.GetEnvAsString("OPENAI_API_KEY", ""),
		Model:               utils.GetEnvAsString("AI_MODEL", "gpt-4o-mini"),
		MaxTokens:           utils.GetEnvAsInt("AI_MAX_TOKENS", 4000),
		Temperature:         utils.GetEnvAsFloat("AI_TEMPERATURE", 0.7),
		Timeout:             utils.GetEnvAsDuration("AI_TIMEOUT", 30*time.Second),
		AutoApplyThreshold:  utils.GetEnvAsFloat("AI_AUTO_APPLY_THRESHOLD", 0.8),
		AnalyticsWindowSize: int64(utils.GetEnvAsInt("AI_ANALYTICS_WINDOW", 50)),
	}

	// Only new_task suggestions are materialized automatically unless
	// operators widen the set. Other high-confidence types are still
	// stored as auto_applied without touching tasks.
	raw := utils.GetEnvAsString("AI_AUTO_APPLY_TYPES", string(model.SuggestionNewTask))
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			cfg.AutoApplyTypes = append(cfg.AutoApplyTypes, model.SuggestionType(t))
		}
	}
	return cfg
}
