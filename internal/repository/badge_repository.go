package repository

import (
	"context"

	"learning-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type BadgeRepository struct {
	Col *mongo.Collection
}

func NewBadgeRepository(db *mongo.Database) *BadgeRepository {
	return &BadgeRepository{Col: db.Collection("badges")}
}

// FindAll returns the badge catalog. Secret badges are included only when
// requested; evaluation always wants the full catalog, discovery listings
// do not.
func (r *BadgeRepository) FindAll(ctx context.Context, includeSecret bool) ([]models.Badge, error) {
	query := bson.M{}
	if !includeSecret {
		query["is_secret"] = false
	}

	cur, err := r.Col.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var badges []models.Badge
	for cur.Next(ctx) {
		var b models.Badge
		if err := cur.Decode(&b); err != nil {
			return nil, err
		}
		badges = append(badges, b)
	}
	return badges, nil
}

func (r *BadgeRepository) FindByID(ctx context.Context, id string) (*models.Badge, error) {
	var badge models.Badge
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&badge)
	if err != nil {
		return nil, err
	}
	return &badge, nil
}

func (r *BadgeRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Badge, error) {
	cur, err := r.Col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var badges []models.Badge
	for cur.Next(ctx) {
		var b models.Badge
		if err := cur.Decode(&b); err != nil {
			return nil, err
		}
		badges = append(badges, b)
	}
	return badges, nil
}

func (r *BadgeRepository) Create(ctx context.Context, badge *models.Badge) error {
	_, err := r.Col.InsertOne(ctx, badge)
	return err
}
