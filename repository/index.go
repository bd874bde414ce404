package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func SetupIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	taskIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "scheduled_date", Value: 1},
			},
			Options: options.Index().SetName("user_tasks_schedule"),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "completed", Value: 1},
			},
			Options: options.Index().SetName("user_tasks_completed"),
		},
		// Prevents duplicate Notion imports. Partial so tasks without a
		// notion_id are not constrained.
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "notion_id", Value: 1},
			},
			Options: options.Index().
				SetName("user_notion_unique").
				SetUnique(true).
				SetPartialFilterExpression(bson.D{
					{Key: "notion_id", Value: bson.D{{Key: "$exists", Value: true}}},
				}),
		},
	}

	patternIndexes := []mongo.IndexModel{
		// One pattern row per (user, type); the repo upserts against this.
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "pattern_type", Value: 1},
			},
			Options: options.Index().SetName("user_pattern_unique").SetUnique(true),
		},
	}

	analyticsIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("user_analytics_date"),
		},
	}

	suggestionIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "status", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("user_suggestions_status"),
		},
	}

	pushIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "endpoint", Value: 1},
			},
			Options: options.Index().SetName("user_push_endpoint").SetUnique(true),
		},
	}

	for coll, indexes := range map[string][]mongo.IndexModel{
		"tasks":              taskIndexes,
		"user_patterns":      patternIndexes,
		"task_analytics":     analyticsIndexes,
		"ai_suggestions":     suggestionIndexes,
		"push_subscriptions": pushIndexes,
	} {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", coll, err)
		}
		log.Printf("Indexes ready for collection %s", coll)
	}

	return nil
}
