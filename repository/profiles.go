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

var ErrProfileNotFound = errors.New("profile not found")

type ProfilesRepo struct {
	MongoCollection *mongo.Collection
}

func GetProfilesRepo(client *mongo.Client) *ProfilesRepo {
	dbName := os.Getenv("MONGO_DB")
	return &ProfilesRepo{
		MongoCollection: client.Database(dbName).Collection("profiles"),
	}
}

// GetProfile loads a user's profile
func (r *ProfilesRepo) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	var profile model.Profile
	err := r.MongoCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// UpsertProfile creates or replaces a user's profile settings
func (r *ProfilesRepo) UpsertProfile(ctx context.Context, profile *model.Profile) error {
	if profile.UserID == "" {
		return errors.New("user ID is required")
	}

	now := time.Now()
	profile.UpdatedAt = now
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}

	opts := options.Replace().SetUpsert(true)
	_, err := r.MongoCollection.ReplaceOne(ctx, bson.M{"_id": profile.UserID}, profile, opts)
	return err
}
