package dto

import (
	"encoding/json"
	"time"

	"main/model"
)

type SuggestionResponse struct {
	ID         string                 `json:"id"`
	Type       model.SuggestionType   `json:"type"`
	Title      string                 `json:"title"`
	Reason     string                 `json:"reason"`
	Data       json.RawMessage        `json:"data"`
	Confidence float64                `json:"confidence"`
	Status     model.SuggestionStatus `json:"status"`
	CreatedAt  time.Time              `json:"created_at"`
	AppliedAt  *time.Time             `json:"applied_at,omitempty"`
}

func ToSuggestionResponse(s *model.Suggestion) SuggestionResponse {
	response := SuggestionResponse{
		ID:         s.SuggestionID,
		Type:       s.SuggestionType,
		Title:      s.SuggestionData.Title,
		Reason:     s.SuggestionData.Reason,
		Data:       s.SuggestionData.Data,
		Confidence: s.SuggestionData.Confidence,
		Status:     s.Status,
		CreatedAt:  s.CreatedAt,
	}
	if !s.AppliedAt.IsZero() {
		response.AppliedAt = &s.AppliedAt
	}
	return response
}

func ToSuggestionResponses(suggestions []*model.Suggestion) []SuggestionResponse {
	responses := make([]SuggestionResponse, len(suggestions))
	for i, s := range suggestions {
		responses[i] = ToSuggestionResponse(s)
	}
	return responses
}
