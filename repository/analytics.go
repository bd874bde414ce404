package repository

import (
	"context"
	"errors"
	"os"

	"main/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AnalyticsRepo struct {
	MongoCollection *mongo.Collection
}

func GetAnalyticsRepo(client *mongo.Client) *AnalyticsRepo {
	dbName := os.Getenv("MONGO_DB")
	return &AnalyticsRepo{
		MongoCollection: client.Database(dbName).Collection("task_analytics"),
	}
}

// AppendEntry records one completion event. Entries are never updated.
func (r *AnalyticsRepo) AppendEntry(ctx context.Context, entry *model.AnalyticsEntry) error {
	if entry.UserID == "" {
		return errors.New("user ID is required")
	}
	_, err := r.MongoCollection.InsertOne(ctx, entry)
	return err
}

// GetRecentEntries returns the newest entries for a user, newest first
func (r *AnalyticsRepo) GetRecentEntries(ctx context.Context, userID string, limit int64) ([]*model.AnalyticsEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*model.AnalyticsEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
