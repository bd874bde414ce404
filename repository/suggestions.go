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

var ErrSuggestionNotFound = errors.New("suggestion not found")

type SuggestionsRepo struct {
	MongoCollection *mongo.Collection
}

func GetSuggestionsRepo(client *mongo.Client) *SuggestionsRepo {
	dbName := os.Getenv("MONGO_DB")
	return &SuggestionsRepo{
		MongoCollection: client.Database(dbName).Collection("ai_suggestions"),
	}
}

// CreateSuggestion stores a freshly generated suggestion
func (r *SuggestionsRepo) CreateSuggestion(ctx context.Context, s *model.Suggestion) error {
	if s.UserID == "" {
		return errors.New("user ID is required")
	}
	_, err := r.MongoCollection.InsertOne(ctx, s)
	return err
}

// GetSuggestionByID loads a suggestion scoped to its owner. A suggestion
// belonging to another user is indistinguishable from a missing one.
func (r *SuggestionsRepo) GetSuggestionByID(ctx context.Context, userID, suggestionID string) (*model.Suggestion, error) {
	filter := bson.M{
		"_id":     suggestionID,
		"user_id": userID,
	}

	var s model.Suggestion
	err := r.MongoCollection.FindOne(ctx, filter).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSuggestionNotFound
		}
		return nil, err
	}
	return &s, nil
}

// GetUserSuggestions lists a user's suggestions newest first, optionally
// filtered by status.
func (r *SuggestionsRepo) GetUserSuggestions(ctx context.Context, userID string, status model.SuggestionStatus) ([]*model.Suggestion, error) {
	filter := bson.M{"user_id": userID}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var suggestions []*model.Suggestion
	if err = cursor.All(ctx, &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}

// TransitionStatus moves a suggestion from one status to another and stamps
// applied_at when the new status is terminal. The compare on the current
// status makes a second apply/reject on the same suggestion a no-match.
func (r *SuggestionsRepo) TransitionStatus(ctx context.Context, userID, suggestionID string, from, to model.SuggestionStatus) error {
	filter := bson.M{
		"_id":     suggestionID,
		"user_id": userID,
		"status":  from,
	}

	set := bson.M{"status": to}
	if to == model.SuggestionAccepted {
		set["applied_at"] = time.Now()
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrSuggestionNotFound
	}
	return nil
}
