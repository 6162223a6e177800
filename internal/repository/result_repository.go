package repository

import (
	"context"

	"learning-service/internal/badges"
	"learning-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type ResultRepository struct {
	Col *mongo.Collection
}

func NewResultRepository(db *mongo.Database) *ResultRepository {
	return &ResultRepository{Col: db.Collection("quiz_results")}
}

func (r *ResultRepository) Create(ctx context.Context, result *models.QuizResult) error {
	_, err := r.Col.InsertOne(ctx, result)
	return err
}

func (r *ResultRepository) FindByUser(ctx context.Context, userID string) ([]models.QuizResult, error) {
	cur, err := r.Col.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var results []models.QuizResult
	for cur.Next(ctx) {
		var res models.QuizResult
		if err := cur.Decode(&res); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// CountQuizzes implements badges.QuizHistory for quiz_count and
// quiz_score criteria.
func (r *ResultRepository) CountQuizzes(ctx context.Context, userID string, filter badges.QuizHistoryFilter) (int64, error) {
	query := bson.M{"user_id": userID}
	if filter.MinScore > 0 {
		query["score"] = bson.M{"$gte": filter.MinScore}
	}
	if filter.Level != "" {
		query["level"] = filter.Level
	}
	return r.Col.CountDocuments(ctx, query)
}
