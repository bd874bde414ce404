package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"main/llm"
	"main/model"
)

// GenerationService proposes a week of tasks modeled on what the user
// actually did over the previous one.
type GenerationService struct {
	chat  llm.Chat
	tasks *TaskService
}

func NewGenerationService(chat llm.Chat, tasks *TaskService) *GenerationService {
	return &GenerationService{chat: chat, tasks: tasks}
}

// GenerateResult reports what was created.
type GenerateResult struct {
	Message string        `json:"message"`
	Tasks   []*model.Task `json:"tasks"`
}

// GenerateWeek summarizes the past 7 days of tasks, asks the model for 5-7
// new ones matching the user's habits, and inserts them.
func (svc *GenerationService) GenerateWeek(ctx context.Context, userID string) (*GenerateResult, error) {
	since := time.Now().AddDate(0, 0, -7)
	pastTasks, err := svc.tasks.GetTasksInRange(ctx, userID, since, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("failed to load recent tasks: %w", err)
	}
	if len(pastTasks) == 0 {
		return &GenerateResult{Message: "No tasks found in the past week to learn from"}, nil
	}

	prompt := buildGenerationPrompt(pastTasks)

	result, err := svc.chat.Complete(ctx, []llm.Message{
		{Role: "system", Content: "You are a task planning assistant. Generate practical, realistic tasks based on user patterns. Return only valid JSON."},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return nil, err
	}

	generated, err := parseGeneratedTasks(result.Content)
	if err != nil {
		return nil, err
	}

	inserted := make([]*model.Task, 0, len(generated))
	for _, g := range generated {
		task := &model.Task{
			UserID:        userID,
			Title:         g.Title,
			Description:   g.Description,
			Priority:      g.Priority,
			Category:      g.Category,
			IsOutdoor:     g.IsOutdoor,
			ScheduledDate: g.ScheduledDate,
		}
		if err := svc.tasks.Create(ctx, task); err != nil {
			return nil, fmt.Errorf("failed to insert generated task: %w", err)
		}
		inserted = append(inserted, task)
	}

	return &GenerateResult{
		Message: fmt.Sprintf("Successfully generated %d tasks based on your patterns", len(inserted)),
		Tasks:   inserted,
	}, nil
}

type generatedTask struct {
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Priority      model.Priority `json:"priority"`
	Category      string         `json:"category"`
	IsOutdoor     bool           `json:"is_outdoor"`
	ScheduledDate time.Time      `json:"scheduled_date"`
}

func buildGenerationPrompt(pastTasks []*model.Task) string {
	categorySet := make(map[string]bool)
	priorities := make(map[model.Priority]int)
	hourSum, outdoor := 0, 0
	for _, t := range pastTasks {
		if t.Category != "" {
			categorySet[t.Category] = true
		}
		priorities[t.Priority]++
		hourSum += t.ScheduledDate.Hour()
		if t.IsOutdoor {
			outdoor++
		}
	}

	categories := make([]string, 0, len(categorySet))
	for c := range categorySet {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	priorityJSON, _ := json.Marshal(priorities)

	recent := pastTasks
	if len(recent) > 10 {
		recent = recent[:10]
	}
	var recentLines []string
	for _, t := range recent {
		category := t.Category
		if category == "" {
			category = "general"
		}
		recentLines = append(recentLines, fmt.Sprintf("- %s (%s, %s)", t.Title, t.Priority, category))
	}

	return fmt.Sprintf(`Based on the following user's task patterns from the past week, generate 5-7 new tasks for the upcoming week that match their preferences and habits.

Task Analysis:
- Categories used: %s
- Priority distribution: %s
- Common task times: %d:00
- Outdoor tasks: %d out of %d

Recent tasks:
%s

Generate tasks that:
1. Match their typical categories and priorities
2. Are scheduled at similar times they usually work
3. Include a mix of routine and productive tasks
4. Consider if they do outdoor activities

Return ONLY a JSON array of task objects with this structure:
[
  {
    "title": "task title",
    "description": "brief description",
    "priority": "low|medium|high",
    "category": "category name",
    "is_outdoor": true,
    "scheduled_date": "ISO date string for upcoming week"
  }
]`,
		strings.Join(categories, ", "),
		priorityJSON,
		hourSum/len(pastTasks),
		outdoor, len(pastTasks),
		strings.Join(recentLines, "\n"))
}

// parseGeneratedTasks tolerates prose around the JSON array by slicing out
// the outermost brackets before decoding.
func parseGeneratedTasks(content string) ([]generatedTask, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end <= start {
		return nil, ErrNoStructuredResult
	}

	var tasks []generatedTask
	if err := json.Unmarshal([]byte(content[start:end+1]), &tasks); err != nil {
		return nil, ErrNoStructuredResult
	}
	return tasks, nil
}
