package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// NotifiedCache is the shared "already notified" set for task reminders,
// keyed by task id. Entries expire on their own TTL and are cleared early
// when a task is completed, so a rescheduled task can notify again.
type NotifiedCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewNotifiedCache(redisURL string, ttl time.Duration) (*NotifiedCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &NotifiedCache{client: client, ttl: ttl}, nil
}

// MarkNotified claims the reminder for a task. Returns true when this
// caller won the claim; false when the task was already notified.
func (nc *NotifiedCache) MarkNotified(ctx context.Context, taskID string) (bool, error) {
	key := notifiedKey(taskID)
	ok, err := nc.client.SetNX(ctx, key, time.Now().Format(time.RFC3339), nc.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark task notified: %v", err)
	}
	return ok, nil
}

// ClearNotified drops the claim, typically on task completion or reschedule
func (nc *NotifiedCache) ClearNotified(ctx context.Context, taskID string) error {
	if err := nc.client.Del(ctx, notifiedKey(taskID)).Err(); err != nil {
		return fmt.Errorf("failed to clear notified flag: %v", err)
	}
	return nil
}

func notifiedKey(taskID string) string {
	return fmt.Sprintf("notified:%s", taskID)
}
