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

type PatternsRepo struct {
	MongoCollection *mongo.Collection
}

func GetPatternsRepo(client *mongo.Client) *PatternsRepo {
	dbName := os.Getenv("MONGO_DB")
	return &PatternsRepo{
		MongoCollection: client.Database(dbName).Collection("user_patterns"),
	}
}

// UpsertPattern replaces the single row for (user_id, pattern_type),
// creating it when absent. Recomputation never appends.
func (r *PatternsRepo) UpsertPattern(ctx context.Context, p *model.Pattern) error {
	if p.UserID == "" {
		return errors.New("user ID is required")
	}

	p.UpdatedAt = time.Now()
	filter := bson.M{
		"user_id":      p.UserID,
		"pattern_type": p.PatternType,
	}

	opts := options.Replace().SetUpsert(true)
	_, err := r.MongoCollection.ReplaceOne(ctx, filter, p, opts)
	return err
}

// GetUserPatterns retrieves all derived patterns for a user
func (r *PatternsRepo) GetUserPatterns(ctx context.Context, userID string) ([]*model.Pattern, error) {
	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var patterns []*model.Pattern
	if err = cursor.All(ctx, &patterns); err != nil {
		return nil, err
	}
	return patterns, nil
}
