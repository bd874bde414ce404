package usecase

import (
	"context"
	"log"
	"time"

	"main/model"
)

// ReminderScanResult reports one reminder run.
type ReminderScanResult struct {
	Due      int `json:"due"`
	Notified int `json:"notified"`
	Skipped  int `json:"skipped"`
}

// ReminderService finds tasks about to start and claims a one-shot
// notification per task through the dedup set. Actual push delivery happens
// outside this service; it hands the payloads to a sender callback.
type ReminderService struct {
	tasks    TaskStore
	push     PushStore
	notified ReminderMarker
	lead     time.Duration
	window   time.Duration
	send     func(sub *model.PushSubscription, task *model.Task)
}

func NewReminderService(tasks TaskStore, push PushStore, notified ReminderMarker) *ReminderService {
	return &ReminderService{
		tasks:    tasks,
		push:     push,
		notified: notified,
		lead:     30 * time.Minute,
		window:   time.Minute,
		send:     logSend,
	}
}

// Scan claims reminders for tasks starting in [now+lead, now+lead+window).
// A task already claimed (still in the dedup set) is skipped.
func (svc *ReminderService) Scan(ctx context.Context) (*ReminderScanResult, error) {
	from := time.Now().Add(svc.lead)
	to := from.Add(svc.window)

	due, err := svc.tasks.GetTasksDueBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	result := &ReminderScanResult{Due: len(due)}
	for _, task := range due {
		won, err := svc.notified.MarkNotified(ctx, task.TaskID)
		if err != nil {
			return result, err
		}
		if !won {
			result.Skipped++
			continue
		}

		subs, err := svc.push.GetUserSubscriptions(ctx, task.UserID)
		if err != nil {
			return result, err
		}
		for _, sub := range subs {
			svc.send(sub, task)
		}
		result.Notified++
	}

	return result, nil
}

// logSend records the would-be notification. Delivery transport (web-push
// with VAPID keys) is a separate collaborator.
func logSend(sub *model.PushSubscription, task *model.Task) {
	log.Printf("reminder for task %q (user %s) -> endpoint %s", task.Title, task.UserID, sub.Endpoint)
}
