package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"main/config"
	"main/llm"
	"main/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAIConfig() config.AIConfig {
	return config.AIConfig{
		AutoApplyThreshold:  0.8,
		AutoApplyTypes:      []model.SuggestionType{model.SuggestionNewTask},
		AnalyticsWindowSize: 50,
	}
}

func newAnalysisFixture(chat *fakeChat) (*AnalysisService, *fakeTaskStore, *fakeSuggestionStore, *fakePatternStore) {
	tasks := newFakeTaskStore()
	suggestions := newFakeSuggestionStore()
	patterns := newFakePatternStore()
	analytics := &fakeAnalyticsStore{}
	svc := NewAnalysisService(tasks, patterns, analytics, suggestions, chat, NewPatternService(patterns), testAIConfig())
	return svc, tasks, suggestions, patterns
}

func TestAnalyzeAndSuggestAutoAppliesConfidentNewTask(t *testing.T) {
	chat := &fakeChat{result: toolCallResult("create_suggestion", `{
		"suggestions": [{
			"type": "new_task",
			"title": "Morning review",
			"reason": "You complete planning tasks early",
			"data": {"title": "Morning review", "priority": "high", "category": "Work"},
			"confidence": 0.92
		}]
	}`)}
	svc, tasks, suggestions, _ := newAnalysisFixture(chat)

	result, err := svc.AnalyzeAndSuggest(context.Background(), "user-1")
	require.NoError(t, err)

	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, "Generated 1 intelligent suggestions", result.Message)

	stored := result.Suggestions[0]
	assert.Equal(t, model.SuggestionAutoApplied, stored.Status)
	assert.Equal(t, model.SuggestionNewTask, stored.SuggestionType)
	assert.Len(t, suggestions.suggestions, 1)

	// The confident new_task was materialized exactly once.
	require.Len(t, tasks.created, 1)
	task := tasks.created[0]
	assert.Equal(t, "user-1", task.UserID)
	assert.Equal(t, "Morning review", task.Title)
	assert.Equal(t, model.PriorityHigh, task.Priority)
	assert.Equal(t, "Work", task.Category)
	assert.False(t, task.ScheduledDate.IsZero())
}

func TestAnalyzeAndSuggestKeepsModestConfidencePending(t *testing.T) {
	chat := &fakeChat{result: toolCallResult("create_suggestion", `{
		"suggestions": [{
			"type": "new_task",
			"title": "Weekly retro",
			"reason": "Pattern match",
			"data": {"title": "Weekly retro"},
			"confidence": 0.8
		}]
	}`)}
	svc, tasks, _, _ := newAnalysisFixture(chat)

	result, err := svc.AnalyzeAndSuggest(context.Background(), "user-1")
	require.NoError(t, err)

	// Threshold is strictly greater-than, so 0.8 stays pending.
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, model.SuggestionPending, result.Suggestions[0].Status)
	assert.Empty(t, tasks.created)
}

func TestAnalyzeAndSuggestNonMaterializedType(t *testing.T) {
	chat := &fakeChat{result: toolCallResult("create_suggestion", `{
		"suggestions": [{
			"type": "time_block",
			"title": "Deep work block",
			"reason": "Best hours are 9-11",
			"data": {"start": "2026-09-01T09:00:00Z", "end": "2026-09-01T11:00:00Z"},
			"confidence": 0.95
		}]
	}`)}
	svc, tasks, _, _ := newAnalysisFixture(chat)

	result, err := svc.AnalyzeAndSuggest(context.Background(), "user-1")
	require.NoError(t, err)

	// Confident but not in the auto-apply set: status flips, no task insert.
	assert.Equal(t, model.SuggestionAutoApplied, result.Suggestions[0].Status)
	assert.Empty(t, tasks.created)
}

func TestAnalyzeAndSuggestNoToolCall(t *testing.T) {
	chat := &fakeChat{result: &llm.Result{Content: "I have some thoughts but no structured output."}}
	svc, _, _, _ := newAnalysisFixture(chat)

	_, err := svc.AnalyzeAndSuggest(context.Background(), "user-1")

	assert.ErrorIs(t, err, ErrNoStructuredResult)
}

func TestAnalyzeAndSuggestMalformedArguments(t *testing.T) {
	chat := &fakeChat{result: toolCallResult("create_suggestion", `not json`)}
	svc, _, _, _ := newAnalysisFixture(chat)

	_, err := svc.AnalyzeAndSuggest(context.Background(), "user-1")

	assert.ErrorIs(t, err, ErrNoStructuredResult)
}

func TestAnalyzeAndSuggestRefreshesPatterns(t *testing.T) {
	chat := &fakeChat{result: toolCallResult("create_suggestion", `{"suggestions": []}`)}
	svc, tasks, _, patterns := newAnalysisFixture(chat)

	tasks.tasks["t1"] = &model.Task{TaskID: "t1", UserID: "user-1", Title: "Report", Category: "Work"}
	tasks.tasks["t2"] = &model.Task{TaskID: "t2", UserID: "user-1", Title: "Run", Category: "Gym"}

	result, err := svc.AnalyzeAndSuggest(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Empty(t, result.Suggestions)
	pref := patterns.patterns["user-1/"+string(model.PatternCategoryPreference)]
	require.NotNil(t, pref)
	assert.Len(t, pref.PatternData.Preferences, 2)
}

func TestAnalyzeAndSuggestForcesTool(t *testing.T) {
	chat := &fakeChat{result: toolCallResult("create_suggestion", `{"suggestions": []}`)}
	svc, _, _, _ := newAnalysisFixture(chat)

	_, err := svc.AnalyzeAndSuggest(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, "create_suggestion", chat.force)
	require.Len(t, chat.tools, 1)
	assert.Equal(t, "create_suggestion", chat.tools[0].Function.Name)
	require.Len(t, chat.messages, 2)
	assert.Equal(t, "system", chat.messages[0].Role)
	assert.Contains(t, chat.messages[1].Content, "TASK OVERVIEW:")
}

func TestBuildAnalysisContext(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	tasks := []*model.Task{
		{Title: "Write report", Priority: model.PriorityHigh, Category: "Work",
			ScheduledDate: time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)},
		{Title: "Old chore", Completed: true, Priority: model.PriorityLow,
			ScheduledDate: time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)},
	}
	patterns := []*model.Pattern{{
		PatternType:     model.PatternProductiveHours,
		PatternData:     model.PatternData{Hours: []int{9, 14}},
		ConfidenceScore: 0.7,
	}}
	analytics := []*model.AnalyticsEntry{{
		ScheduledTime: time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC),
		CompletedTime: time.Date(2026, 8, 30, 10, 30, 0, 0, time.UTC),
	}}

	ctx := BuildAnalysisContext(tasks, patterns, analytics, now)

	assert.True(t, strings.HasPrefix(ctx, "Current Date/Time: 2026-08-31T12:00:00Z"))
	assert.Contains(t, ctx, "- Total tasks: 2")
	assert.Contains(t, ctx, "- Incomplete: 1")
	assert.Contains(t, ctx, "- Completed: 1")
	assert.Contains(t, ctx, "- [high] Write report (Work) - Scheduled: 2026-09-01T09:00:00Z")
	assert.NotContains(t, ctx, "Old chore")
	assert.Contains(t, ctx, "- Completed at 2026-08-30T10:30:00Z (scheduled for 2026-08-30T09:00:00Z)")
	assert.Contains(t, ctx, `- productive_hours: {"hours":[9,14]} (confidence: 0.7)`)
	assert.Contains(t, ctx, "ANALYZE:")
}

func TestBuildAnalysisContextUncategorized(t *testing.T) {
	ctx := BuildAnalysisContext([]*model.Task{
		{Title: "Loose end", Priority: model.PriorityMedium,
			ScheduledDate: time.Date(2026, 9, 2, 8, 0, 0, 0, time.UTC)},
	}, nil, nil, time.Now())

	assert.Contains(t, ctx, "(uncategorized)")
}
