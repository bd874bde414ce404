package usecase

import (
	"context"
	"sort"
	"time"

	"main/llm"
	"main/model"
	"main/repository"
)

// In-memory store fakes. They mirror the mongo repositories' contracts,
// including the sentinel errors the services translate.

type fakeTaskStore struct {
	tasks map[string]*model.Task

	createErr error
	created   []*model.Task
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[string]*model.Task)}
}

func (f *fakeTaskStore) CreateTask(_ context.Context, task *model.Task) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.tasks[task.TaskID] = task
	f.created = append(f.created, task)
	return nil
}

func (f *fakeTaskStore) GetUserTasks(_ context.Context, userID string) ([]*model.Task, error) {
	var out []*model.Task
	for _, t := range f.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TaskID < out[j].TaskID })
	return out, nil
}

func (f *fakeTaskStore) GetTaskByID(_ context.Context, userID, taskID string) (*model.Task, error) {
	t, ok := f.tasks[taskID]
	if !ok || t.UserID != userID {
		return nil, repository.ErrTaskNotFound
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTaskStore) GetTasksInRange(_ context.Context, userID string, from, to time.Time) ([]*model.Task, error) {
	var out []*model.Task
	for _, t := range f.tasks {
		if t.UserID != userID {
			continue
		}
		if !from.IsZero() && t.ScheduledDate.Before(from) {
			continue
		}
		if !to.IsZero() && !t.ScheduledDate.Before(to) {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledDate.Before(out[j].ScheduledDate) })
	return out, nil
}

func (f *fakeTaskStore) UpdateTask(_ context.Context, taskID, userID string, updates *model.Task) error {
	t, ok := f.tasks[taskID]
	if !ok || t.UserID != userID {
		return repository.ErrTaskNotFound
	}
	copied := *updates
	copied.TaskID = taskID
	copied.UserID = userID
	f.tasks[taskID] = &copied
	return nil
}

func (f *fakeTaskStore) SetScheduledDate(_ context.Context, taskID, userID string, newTime time.Time) error {
	t, ok := f.tasks[taskID]
	if !ok || t.UserID != userID {
		return repository.ErrTaskNotFound
	}
	t.ScheduledDate = newTime
	t.UpdatedAt = time.Now()
	return nil
}

func (f *fakeTaskStore) SetPriority(_ context.Context, taskID, userID string, priority model.Priority) error {
	t, ok := f.tasks[taskID]
	if !ok || t.UserID != userID {
		return repository.ErrTaskNotFound
	}
	t.Priority = priority
	t.UpdatedAt = time.Now()
	return nil
}

func (f *fakeTaskStore) GetOverdueTasks(_ context.Context, cutoff time.Time) ([]*model.Task, error) {
	var out []*model.Task
	for _, t := range f.tasks {
		if !t.Completed && t.ScheduledDate.Before(cutoff) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TaskID < out[j].TaskID })
	return out, nil
}

func (f *fakeTaskStore) GetTasksDueBetween(_ context.Context, from, to time.Time) ([]*model.Task, error) {
	var out []*model.Task
	for _, t := range f.tasks {
		if t.Completed {
			continue
		}
		if t.ScheduledDate.Before(from) || !t.ScheduledDate.Before(to) {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TaskID < out[j].TaskID })
	return out, nil
}

func (f *fakeTaskStore) DistinctUserIDs(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	for _, t := range f.tasks {
		seen[t.UserID] = true
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

type fakeSuggestionStore struct {
	suggestions map[string]*model.Suggestion
}

func newFakeSuggestionStore() *fakeSuggestionStore {
	return &fakeSuggestionStore{suggestions: make(map[string]*model.Suggestion)}
}

func (f *fakeSuggestionStore) CreateSuggestion(_ context.Context, s *model.Suggestion) error {
	f.suggestions[s.SuggestionID] = s
	return nil
}

func (f *fakeSuggestionStore) GetSuggestionByID(_ context.Context, userID, suggestionID string) (*model.Suggestion, error) {
	s, ok := f.suggestions[suggestionID]
	if !ok || s.UserID != userID {
		return nil, repository.ErrSuggestionNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSuggestionStore) GetUserSuggestions(_ context.Context, userID string, status model.SuggestionStatus) ([]*model.Suggestion, error) {
	var out []*model.Suggestion
	for _, s := range f.suggestions {
		if s.UserID != userID {
			continue
		}
		if status != "" && s.Status != status {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeSuggestionStore) TransitionStatus(_ context.Context, userID, suggestionID string, from, to model.SuggestionStatus) error {
	s, ok := f.suggestions[suggestionID]
	if !ok || s.UserID != userID || s.Status != from {
		return repository.ErrSuggestionNotFound
	}
	s.Status = to
	if to == model.SuggestionAccepted {
		s.AppliedAt = time.Now()
	}
	return nil
}

type fakePatternStore struct {
	patterns map[string]*model.Pattern
	upserts  int
}

func newFakePatternStore() *fakePatternStore {
	return &fakePatternStore{patterns: make(map[string]*model.Pattern)}
}

func (f *fakePatternStore) UpsertPattern(_ context.Context, p *model.Pattern) error {
	f.patterns[p.UserID+"/"+string(p.PatternType)] = p
	f.upserts++
	return nil
}

func (f *fakePatternStore) GetUserPatterns(_ context.Context, userID string) ([]*model.Pattern, error) {
	var out []*model.Pattern
	for _, p := range f.patterns {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PatternType < out[j].PatternType })
	return out, nil
}

type fakeAnalyticsStore struct {
	entries []*model.AnalyticsEntry
}

func (f *fakeAnalyticsStore) AppendEntry(_ context.Context, entry *model.AnalyticsEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeAnalyticsStore) GetRecentEntries(_ context.Context, userID string, limit int64) ([]*model.AnalyticsEntry, error) {
	var out []*model.AnalyticsEntry
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakePushStore struct {
	subs map[string][]*model.PushSubscription
}

func newFakePushStore() *fakePushStore {
	return &fakePushStore{subs: make(map[string][]*model.PushSubscription)}
}

func (f *fakePushStore) SaveSubscription(_ context.Context, sub *model.PushSubscription) error {
	f.subs[sub.UserID] = append(f.subs[sub.UserID], sub)
	return nil
}

func (f *fakePushStore) GetUserSubscriptions(_ context.Context, userID string) ([]*model.PushSubscription, error) {
	return f.subs[userID], nil
}

func (f *fakePushStore) DeleteSubscription(_ context.Context, userID, endpoint string) error {
	kept := f.subs[userID][:0]
	for _, s := range f.subs[userID] {
		if s.Endpoint != endpoint {
			kept = append(kept, s)
		}
	}
	f.subs[userID] = kept
	return nil
}

type fakeProfileStore struct {
	profiles map[string]*model.Profile
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: make(map[string]*model.Profile)}
}

func (f *fakeProfileStore) GetProfile(_ context.Context, userID string) (*model.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, repository.ErrProfileNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeProfileStore) UpsertProfile(_ context.Context, profile *model.Profile) error {
	f.profiles[profile.UserID] = profile
	return nil
}

// fakeMarker is the in-memory dedup set.
type fakeMarker struct {
	claimed map[string]bool
}

func newFakeMarker() *fakeMarker {
	return &fakeMarker{claimed: make(map[string]bool)}
}

func (f *fakeMarker) MarkNotified(_ context.Context, taskID string) (bool, error) {
	if f.claimed[taskID] {
		return false, nil
	}
	f.claimed[taskID] = true
	return true, nil
}

func (f *fakeMarker) ClearNotified(_ context.Context, taskID string) error {
	delete(f.claimed, taskID)
	return nil
}

// fakeChat returns canned model responses and records what it was asked.
type fakeChat struct {
	result *llm.Result
	err    error

	messages []llm.Message
	tools    []llm.Tool
	force    string
}

func (f *fakeChat) Complete(_ context.Context, messages []llm.Message) (*llm.Result, error) {
	f.messages = messages
	return f.result, f.err
}

func (f *fakeChat) CompleteWithTools(_ context.Context, messages []llm.Message, tools []llm.Tool, force string) (*llm.Result, error) {
	f.messages = messages
	f.tools = tools
	f.force = force
	return f.result, f.err
}

// toolCallResult wraps a create_suggestion payload as a model response.
func toolCallResult(name, arguments string) *llm.Result {
	call := llm.ToolCall{ID: "call_1", Type: "function"}
	call.Function.Name = name
	call.Function.Arguments = arguments
	return &llm.Result{ToolCalls: []llm.ToolCall{call}}
}
