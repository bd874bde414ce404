package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"main/config"
	"main/llm"
	"main/model"

	"github.com/google/uuid"
)

const plannerSystemPrompt = `You are an autonomous AI task planner agent. Analyze user behavior patterns and tasks to make intelligent suggestions.

Your capabilities:
1. Suggest new tasks based on patterns and goals
2. Optimize task scheduling based on user preferences
3. Reprioritize tasks based on deadlines and context
4. Break down complex tasks into subtasks
5. Identify time slots for maximum productivity

Provide actionable, specific suggestions with reasoning.`

const suggestionToolName = "create_suggestion"

var suggestionToolSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "suggestions": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "type": {
            "type": "string",
            "enum": ["new_task", "reschedule", "reprioritize", "break_down", "time_block"]
          },
          "title": {"type": "string"},
          "reason": {"type": "string"},
          "data": {
            "type": "object",
            "description": "Task details including title, description, priority, category, scheduled_date, etc."
          },
          "confidence": {
            "type": "number",
            "description": "Confidence score 0-1"
          }
        },
        "required": ["type", "title", "reason", "data", "confidence"]
      }
    }
  },
  "required": ["suggestions"]
}`)

// rawSuggestion mirrors one element of the tool-call payload.
type rawSuggestion struct {
	Type       model.SuggestionType `json:"type"`
	Title      string               `json:"title"`
	Reason     string               `json:"reason"`
	Data       json.RawMessage      `json:"data"`
	Confidence float64              `json:"confidence"`
}

// AnalysisResult is what an analysis run hands back to the caller.
type AnalysisResult struct {
	Suggestions []*model.Suggestion `json:"suggestions"`
	Message     string              `json:"message"`
}

// AnalysisService builds the behavioral context, asks the model for
// suggestions, stores them, auto-applies the confident ones and refreshes
// the user's patterns — all in one synchronous pass. There is no rollback:
// a failure partway leaves earlier writes in place and surfaces one error.
type AnalysisService struct {
	tasks       TaskStore
	patterns    PatternStore
	analytics   AnalyticsStore
	suggestions SuggestionStore
	chat        llm.Chat
	patternSvc  *PatternService
	cfg         config.AIConfig
}

func NewAnalysisService(tasks TaskStore, patterns PatternStore, analytics AnalyticsStore, suggestions SuggestionStore, chat llm.Chat, patternSvc *PatternService, cfg config.AIConfig) *AnalysisService {
	return &AnalysisService{
		tasks:       tasks,
		patterns:    patterns,
		analytics:   analytics,
		suggestions: suggestions,
		chat:        chat,
		patternSvc:  patternSvc,
		cfg:         cfg,
	}
}

// AnalyzeAndSuggest runs the full analyze flow for one user.
func (svc *AnalysisService) AnalyzeAndSuggest(ctx context.Context, userID string) (*AnalysisResult, error) {
	tasks, err := svc.tasks.GetUserTasks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	patterns, err := svc.patterns.GetUserPatterns(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load patterns: %w", err)
	}
	window := svc.cfg.AnalyticsWindowSize
	if window <= 0 {
		window = 50
	}
	analytics, err := svc.analytics.GetRecentEntries(ctx, userID, window)
	if err != nil {
		return nil, fmt.Errorf("failed to load analytics: %w", err)
	}

	analysisContext := BuildAnalysisContext(tasks, patterns, analytics, time.Now())

	result, err := svc.chat.CompleteWithTools(ctx,
		[]llm.Message{
			{Role: "system", Content: plannerSystemPrompt},
			{Role: "user", Content: analysisContext},
		},
		[]llm.Tool{{
			Type: "function",
			Function: llm.ToolFunction{
				Name:        suggestionToolName,
				Description: "Create a task suggestion, scheduling recommendation, or prioritization change",
				Parameters:  suggestionToolSchema,
			},
		}},
		suggestionToolName,
	)
	if err != nil {
		return nil, err
	}

	toolCall, err := result.FirstToolCall(suggestionToolName)
	if err != nil {
		return nil, ErrNoStructuredResult
	}

	var payload struct {
		Suggestions []rawSuggestion `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(toolCall.Function.Arguments), &payload); err != nil {
		return nil, ErrNoStructuredResult
	}

	stored := make([]*model.Suggestion, 0, len(payload.Suggestions))
	for i := range payload.Suggestions {
		suggestion, err := svc.storeSuggestion(ctx, userID, &payload.Suggestions[i])
		if err != nil {
			return nil, err
		}
		stored = append(stored, suggestion)
	}

	// Pattern refresh is part of the same call, reusing the snapshot the
	// analysis was built from.
	if err := svc.patternSvc.UpdateUserPatterns(ctx, userID, tasks, analytics); err != nil {
		return nil, fmt.Errorf("failed to update patterns: %w", err)
	}

	return &AnalysisResult{
		Suggestions: stored,
		Message:     fmt.Sprintf("Generated %d intelligent suggestions", len(stored)),
	}, nil
}

func (svc *AnalysisService) storeSuggestion(ctx context.Context, userID string, raw *rawSuggestion) (*model.Suggestion, error) {
	status := model.SuggestionPending
	if raw.Confidence > svc.cfg.AutoApplyThreshold {
		status = model.SuggestionAutoApplied
	}

	suggestion := &model.Suggestion{
		SuggestionID:   uuid.New().String(),
		UserID:         userID,
		SuggestionType: raw.Type,
		SuggestionData: model.SuggestionData{
			Title:      raw.Title,
			Reason:     raw.Reason,
			Data:       raw.Data,
			Confidence: raw.Confidence,
		},
		Status:    status,
		CreatedAt: time.Now(),
	}

	if err := svc.suggestions.CreateSuggestion(ctx, suggestion); err != nil {
		return nil, fmt.Errorf("failed to store suggestion: %w", err)
	}

	// Only the configured types (new_task by default) are materialized on
	// high confidence. The rest keep the auto_applied status without any
	// task mutation, preserving the historical behavior.
	if status == model.SuggestionAutoApplied && svc.autoApplicable(raw.Type) {
		if err := svc.materializeNewTask(ctx, suggestion); err != nil {
			log.Printf("auto-apply skipped for suggestion %s: %v", suggestion.SuggestionID, err)
		}
	}

	return suggestion, nil
}

func (svc *AnalysisService) autoApplicable(t model.SuggestionType) bool {
	for _, allowed := range svc.cfg.AutoApplyTypes {
		if t == allowed {
			return true
		}
	}
	return false
}

func (svc *AnalysisService) materializeNewTask(ctx context.Context, s *model.Suggestion) error {
	data, err := s.NewTaskData()
	if err != nil {
		return err
	}
	return svc.tasks.CreateTask(ctx, taskFromSuggestion(s.UserID, data))
}

// BuildAnalysisContext renders the deterministic textual summary the model
// analyzes. Line order follows the stored order of its inputs.
func BuildAnalysisContext(tasks []*model.Task, patterns []*model.Pattern, analytics []*model.AnalyticsEntry, now time.Time) string {
	var incomplete, completed []*model.Task
	for _, t := range tasks {
		if t.Completed {
			completed = append(completed, t)
		} else {
			incomplete = append(incomplete, t)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Current Date/Time: %s\n\n", now.UTC().Format(time.RFC3339))

	b.WriteString("TASK OVERVIEW:\n")
	fmt.Fprintf(&b, "- Total tasks: %d\n", len(tasks))
	fmt.Fprintf(&b, "- Incomplete: %d\n", len(incomplete))
	fmt.Fprintf(&b, "- Completed: %d\n\n", len(completed))

	b.WriteString("INCOMPLETE TASKS:\n")
	for _, t := range incomplete {
		category := t.Category
		if category == "" {
			category = "uncategorized"
		}
		fmt.Fprintf(&b, "- [%s] %s (%s) - Scheduled: %s\n",
			t.Priority, t.Title, category, t.ScheduledDate.UTC().Format(time.RFC3339))
	}

	b.WriteString("\nRECENT COMPLETION PATTERNS:\n")
	recent := analytics
	if len(recent) > 10 {
		recent = recent[:10]
	}
	for _, a := range recent {
		fmt.Fprintf(&b, "- Completed at %s (scheduled for %s)\n",
			a.CompletedTime.UTC().Format(time.RFC3339), a.ScheduledTime.UTC().Format(time.RFC3339))
	}

	b.WriteString("\nIDENTIFIED PATTERNS:\n")
	for _, p := range patterns {
		data, _ := json.Marshal(p.PatternData)
		fmt.Fprintf(&b, "- %s: %s (confidence: %g)\n", p.PatternType, data, p.ConfidenceScore)
	}

	b.WriteString(`
ANALYZE:
1. What new tasks should be suggested based on patterns?
2. Should any tasks be rescheduled for better productivity?
3. Should task priorities be adjusted?
4. Should any complex tasks be broken down?
5. What optimal time blocks can be suggested?

Provide specific, actionable suggestions with high confidence scores for auto-application.`)

	return b.String()
}
