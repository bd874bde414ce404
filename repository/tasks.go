package repository

import (
	"context"
	"errors"
	"os"
	"time"

	"main/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrTaskNotFound = errors.New("task not found")

type TasksRepo struct {
	MongoCollection *mongo.Collection
}

func GetTasksRepo(client *mongo.Client) *TasksRepo {
	dbName := os.Getenv("MONGO_DB")
	return &TasksRepo{
		MongoCollection: client.Database(dbName).Collection("tasks"),
	}
}

// CreateTask inserts a new task
func (r *TasksRepo) CreateTask(ctx context.Context, task *model.Task) error {
	if task.UserID == "" {
		return errors.New("user ID is required")
	}
	_, err := r.MongoCollection.InsertOne(ctx, task)
	return err
}

// GetUserTasks retrieves all tasks for a user
func (r *TasksRepo) GetUserTasks(ctx context.Context, userID string) ([]*model.Task, error) {
	var tasks []*model.Task
	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTaskByID retrieves one task, scoped to its owner
func (r *TasksRepo) GetTaskByID(ctx context.Context, userID, taskID string) (*model.Task, error) {
	filter := bson.M{
		"_id":     taskID,
		"user_id": userID,
	}

	var task model.Task
	err := r.MongoCollection.FindOne(ctx, filter).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

// GetTasksInRange retrieves a user's tasks with scheduled_date inside
// [from, to), ordered by scheduled_date ascending. Zero bounds are open.
func (r *TasksRepo) GetTasksInRange(ctx context.Context, userID string, from, to time.Time) ([]*model.Task, error) {
	rangeFilter := bson.M{}
	if !from.IsZero() {
		rangeFilter["$gte"] = from
	}
	if !to.IsZero() {
		rangeFilter["$lt"] = to
	}

	filter := bson.M{"user_id": userID}
	if len(rangeFilter) > 0 {
		filter["scheduled_date"] = rangeFilter
	}

	opts := options.Find().SetSort(bson.D{{Key: "scheduled_date", Value: 1}})
	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tasks []*model.Task
	if err = cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateTask replaces mutable task fields
func (r *TasksRepo) UpdateTask(ctx context.Context, taskID, userID string, updates *model.Task) error {
	filter := bson.M{
		"_id":     taskID,
		"user_id": userID, // Ensure user owns this task
	}

	update := bson.M{
		"$set": bson.M{
			"title":          updates.Title,
			"description":    updates.Description,
			"scheduled_date": updates.ScheduledDate,
			"completed":      updates.Completed,
			"priority":       updates.Priority,
			"category":       updates.Category,
			"is_outdoor":     updates.IsOutdoor,
			"updated_at":     time.Now(),
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// SetScheduledDate moves a task to a new time
func (r *TasksRepo) SetScheduledDate(ctx context.Context, taskID, userID string, newTime time.Time) error {
	filter := bson.M{
		"_id":     taskID,
		"user_id": userID,
	}
	update := bson.M{
		"$set": bson.M{
			"scheduled_date": newTime,
			"updated_at":     time.Now(),
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// SetPriority changes a task's priority
func (r *TasksRepo) SetPriority(ctx context.Context, taskID, userID string, priority model.Priority) error {
	filter := bson.M{
		"_id":     taskID,
		"user_id": userID,
	}
	update := bson.M{
		"$set": bson.M{
			"priority":   priority,
			"updated_at": time.Now(),
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// GetOverdueTasks finds incomplete tasks across all users scheduled before
// the cutoff. Used by the rescheduling cron.
func (r *TasksRepo) GetOverdueTasks(ctx context.Context, cutoff time.Time) ([]*model.Task, error) {
	filter := bson.M{
		"completed":      false,
		"scheduled_date": bson.M{"$lt": cutoff},
	}

	cursor, err := r.MongoCollection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tasks []*model.Task
	if err = cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTasksDueBetween finds incomplete tasks across all users scheduled in
// [from, to). Used by the reminder scan.
func (r *TasksRepo) GetTasksDueBetween(ctx context.Context, from, to time.Time) ([]*model.Task, error) {
	filter := bson.M{
		"completed":      false,
		"scheduled_date": bson.M{"$gte": from, "$lt": to},
	}

	cursor, err := r.MongoCollection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tasks []*model.Task
	if err = cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// DistinctUserIDs lists every user id that owns at least one task
func (r *TasksRepo) DistinctUserIDs(ctx context.Context) ([]string, error) {
	raw, err := r.MongoCollection.Distinct(ctx, "user_id", bson.M{})
	if err != nil {
		return nil, err
	}

	userIDs := make([]string, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(string); ok && id != "" {
			userIDs = append(userIDs, id)
		}
	}
	return userIDs, nil
}
