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

type PushRepo struct {
	MongoCollection *mongo.Collection
}

func GetPushRepo(client *mongo.Client) *PushRepo {
	dbName := os.Getenv("MONGO_DB")
	return &PushRepo{
		MongoCollection: client.Database(dbName).Collection("push_subscriptions"),
	}
}

// SaveSubscription stores a browser push subscription. Re-registering an
// endpoint refreshes its keys and keeps the original document.
func (r *PushRepo) SaveSubscription(ctx context.Context, sub *model.PushSubscription) error {
	if sub.UserID == "" {
		return errors.New("user ID is required")
	}

	filter := bson.M{
		"user_id":  sub.UserID,
		"endpoint": sub.Endpoint,
	}
	update := bson.M{
		"$set": bson.M{
			"p256dh": sub.P256dh,
			"auth":   sub.Auth,
		},
		"$setOnInsert": bson.M{
			"_id":        sub.SubscriptionID,
			"user_id":    sub.UserID,
			"endpoint":   sub.Endpoint,
			"created_at": sub.CreatedAt,
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.MongoCollection.UpdateOne(ctx, filter, update, opts)
	return err
}

// GetUserSubscriptions lists a user's push subscriptions
func (r *PushRepo) GetUserSubscriptions(ctx context.Context, userID string) ([]*model.PushSubscription, error) {
	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var subs []*model.PushSubscription
	if err = cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// DeleteSubscription removes a subscription by endpoint
func (r *PushRepo) DeleteSubscription(ctx context.Context, userID, endpoint string) error {
	filter := bson.M{
		"user_id":  userID,
		"endpoint": endpoint,
	}
	result, err := r.MongoCollection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return errors.New("subscription not found")
	}
	return nil
}
