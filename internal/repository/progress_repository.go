package repository

import (
	"context"
	"time"

	"learning-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProgressRepository struct {
	Col *mongo.Collection
}

func NewProgressRepository(db *mongo.Database) *ProgressRepository {
	return &ProgressRepository{Col: db.Collection("user_progress")}
}

// FindByUser loads a user's aggregate, returning mongo.ErrNoDocuments
// when the user has no record yet.
func (r *ProgressRepository) FindByUser(ctx context.Context, userID string) (*models.UserProgress, error) {
	var progress models.UserProgress
	err := r.Col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&progress)
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// FindOrCreate loads a user's aggregate, lazily creating a zeroed one on
// first interaction.
func (r *ProgressRepository) FindOrCreate(ctx context.Context, userID string) (*models.UserProgress, error) {
	progress, err := r.FindByUser(ctx, userID)
	if err == nil {
		return progress, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	progress = models.NewUserProgress(userID)
	res, err := r.Col.InsertOne(ctx, progress)
	if err != nil {
		return nil, err
	}
	if id, ok := res.InsertedID.(string); ok {
		progress.ID = id
	}
	return progress, nil
}

// Save writes the mutated aggregate back. The engine assumes this
// read-mutate-save cycle runs one event at a time per user.
func (r *ProgressRepository) Save(ctx context.Context, progress *models.UserProgress) error {
	progress.UpdatedAt = time.Now()
	opts := options.Replace().SetUpsert(true)
	_, err := r.Col.ReplaceOne(ctx, bson.M{"user_id": progress.UserID}, progress, opts)
	return err
}
