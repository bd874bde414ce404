package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"main/llm"
	"main/model"
)

const chatToolAddTask = "add_task"
const chatToolUpdateTask = "update_task"
const chatToolListTasks = "list_tasks"

var chatTools = []llm.Tool{
	{
		Type: "function",
		Function: llm.ToolFunction{
			Name:        chatToolAddTask,
			Description: "Add a new task for the user",
			Parameters: json.RawMessage(`{
  "type": "object",
  "properties": {
    "title": {"type": "string"},
    "description": {"type": "string"},
    "scheduled_date": {"type": "string", "description": "ISO 8601 datetime string in UTC"},
    "priority": {"type": "string", "enum": ["low", "medium", "high"]},
    "category": {"type": "string"},
    "is_outdoor": {"type": "boolean"}
  },
  "required": ["title", "scheduled_date"]
}`),
		},
	},
	{
		Type: "function",
		Function: llm.ToolFunction{
			Name:        chatToolUpdateTask,
			Description: "Update an existing task",
			Parameters: json.RawMessage(`{
  "type": "object",
  "properties": {
    "task_id": {"type": "string"},
    "title": {"type": "string"},
    "description": {"type": "string"},
    "scheduled_date": {"type": "string"},
    "priority": {"type": "string", "enum": ["low", "medium", "high"]},
    "completed": {"type": "boolean"},
    "is_outdoor": {"type": "boolean"}
  },
  "required": ["task_id"]
}`),
		},
	},
	{
		Type: "function",
		Function: llm.ToolFunction{
			Name:        chatToolListTasks,
			Description: "List user's tasks for a specific date range",
			Parameters: json.RawMessage(`{
  "type": "object",
  "properties": {
    "start_date": {"type": "string"},
    "end_date": {"type": "string"}
  }
}`),
		},
	},
}

// ChatReply is the assistant's answer plus whether a task mutation happened.
type ChatReply struct {
	Response string `json:"response"`
	Action   bool   `json:"action"`
}

// ChatService is the conversational assistant. The model decides whether to
// answer in text or call one of the task tools; tool calls are executed
// against the task service and summarized back to the user.
type ChatService struct {
	chat     llm.Chat
	tasks    *TaskService
	profiles ProfileStore
}

func NewChatService(chat llm.Chat, tasks *TaskService, profiles ProfileStore) *ChatService {
	return &ChatService{chat: chat, tasks: tasks, profiles: profiles}
}

func (svc *ChatService) Chat(ctx context.Context, userID, message string, history []llm.Message) (*ChatReply, error) {
	loc := svc.userLocation(ctx, userID)
	now := time.Now().In(loc)

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: "system", Content: chatSystemPrompt(now, loc)})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: "user", Content: message})

	result, err := svc.chat.CompleteWithTools(ctx, messages, chatTools, "")
	if err != nil {
		return nil, err
	}

	call, err := result.FirstToolCall("")
	if err != nil {
		// Plain conversational answer, nothing to execute.
		return &ChatReply{Response: result.Content}, nil
	}

	return svc.execute(ctx, userID, call)
}

func (svc *ChatService) execute(ctx context.Context, userID string, call *llm.ToolCall) (*ChatReply, error) {
	switch call.Function.Name {
	case chatToolAddTask:
		var args struct {
			Title         string         `json:"title"`
			Description   string         `json:"description"`
			ScheduledDate time.Time      `json:"scheduled_date"`
			Priority      model.Priority `json:"priority"`
			Category      string         `json:"category"`
			IsOutdoor     bool           `json:"is_outdoor"`
		}
		if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
			return nil, fmt.Errorf("bad add_task arguments: %w", err)
		}

		task := &model.Task{
			UserID:        userID,
			Title:         args.Title,
			Description:   args.Description,
			ScheduledDate: args.ScheduledDate,
			Priority:      args.Priority,
			Category:      args.Category,
			IsOutdoor:     args.IsOutdoor,
		}
		if err := svc.tasks.Create(ctx, task); err != nil {
			return &ChatReply{Response: fmt.Sprintf("I encountered an error adding the task: %v", err)}, nil
		}
		return &ChatReply{
			Response: fmt.Sprintf("Task added. %q is scheduled for %s.", task.Title, task.ScheduledDate.Format(time.RFC1123)),
			Action:   true,
		}, nil

	case chatToolUpdateTask:
		var args struct {
			TaskID        string         `json:"task_id"`
			Title         string         `json:"title"`
			Description   string         `json:"description"`
			ScheduledDate time.Time      `json:"scheduled_date"`
			Priority      model.Priority `json:"priority"`
			Completed     *bool          `json:"completed"`
			IsOutdoor     *bool          `json:"is_outdoor"`
		}
		if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
			return nil, fmt.Errorf("bad update_task arguments: %w", err)
		}

		existing, err := svc.tasks.tasks.GetTaskByID(ctx, userID, args.TaskID)
		if err != nil {
			return &ChatReply{Response: "I couldn't find that task."}, nil
		}

		updates := &model.Task{
			Title:         args.Title,
			Description:   args.Description,
			ScheduledDate: args.ScheduledDate,
			Priority:      args.Priority,
			IsOutdoor:     existing.IsOutdoor,
		}
		if args.IsOutdoor != nil {
			updates.IsOutdoor = *args.IsOutdoor
		}
		if _, err := svc.tasks.Update(ctx, args.TaskID, userID, updates); err != nil {
			return &ChatReply{Response: fmt.Sprintf("I encountered an error updating the task: %v", err)}, nil
		}
		if args.Completed != nil && *args.Completed != existing.Completed {
			if _, err := svc.tasks.ToggleComplete(ctx, args.TaskID, userID); err != nil {
				return &ChatReply{Response: fmt.Sprintf("I encountered an error updating the task: %v", err)}, nil
			}
		}
		return &ChatReply{Response: "Task updated.", Action: true}, nil

	case chatToolListTasks:
		var args struct {
			StartDate time.Time `json:"start_date"`
			EndDate   time.Time `json:"end_date"`
		}
		if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
			return nil, fmt.Errorf("bad list_tasks arguments: %w", err)
		}

		tasks, err := svc.tasks.GetTasksInRange(ctx, userID, args.StartDate, args.EndDate)
		if err != nil {
			return nil, err
		}
		if len(tasks) == 0 {
			return &ChatReply{Response: "You don't have any tasks in this period."}, nil
		}

		var b strings.Builder
		b.WriteString("Here are your tasks:\n\n")
		for _, t := range tasks {
			fmt.Fprintf(&b, "- %s - %s (%s priority)", t.Title, t.ScheduledDate.Format(time.RFC1123), t.Priority)
			if t.Completed {
				b.WriteString(" [done]")
			}
			b.WriteString("\n")
		}
		return &ChatReply{Response: b.String()}, nil

	default:
		return nil, fmt.Errorf("unknown chat tool %q", call.Function.Name)
	}
}

// Motivation asks the model for a short motivational quote for the
// dashboard.
func (svc *ChatService) Motivation(ctx context.Context) (string, error) {
	result, err := svc.chat.Complete(ctx, []llm.Message{
		{Role: "system", Content: "You are a motivational coach. Reply with one short, original motivational quote about productivity. No attribution, no quotes around it."},
		{Role: "user", Content: "Give me today's quote."},
	})
	if err != nil {
		return "", err
	}
	quote := strings.TrimSpace(result.Content)
	if quote == "" {
		return "", errors.New("model returned an empty quote")
	}
	return quote, nil
}

func (svc *ChatService) userLocation(ctx context.Context, userID string) *time.Location {
	profile, err := svc.profiles.GetProfile(ctx, userID)
	if err != nil || profile.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(profile.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func chatSystemPrompt(now time.Time, loc *time.Location) string {
	return fmt.Sprintf(`You are Aurora, an AI task planning assistant. You help users manage their tasks naturally and intelligently.

IMPORTANT: Current date and time for the user (%s): %s

Your capabilities:
1. Add new tasks with details (title, description, date/time, priority, category, whether it's outdoor)
2. Modify existing tasks
3. Mark tasks as complete
4. Suggest task priorities and scheduling
5. Answer questions about tasks

When users request to add a task, extract the title (required), optional
description, the scheduled date/time, priority (low/medium/high, default
medium), optional category and whether it is an outdoor task. User times are
in the %s timezone; convert them to UTC before returning an ISO 8601
datetime. Always calculate relative dates like "today" and "tomorrow" from
the current date above.

Be conversational, helpful, and proactive in organizing tasks efficiently.`,
		loc.String(), now.Format("Monday, January 2, 2006, 3:04 PM"), loc.String())
}
