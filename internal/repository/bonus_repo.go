package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"globetrotter/internal/model"
)

// BonusRepo handles MongoDB operations for stored bonus questions
type BonusRepo interface {
	Create(ctx context.Context, q *model.BonusQuestion) error
	GetByEmojiSet(ctx context.Context, emojiSet []string) (*model.BonusQuestion, error)
	GetRandom(ctx context.Context) (*model.BonusQuestion, error)
}

type bonusRepo struct {
	collection *mongo.Collection
}

// NewBonusRepo creates a new bonus question repository
func NewBonusRepo(db *mongo.Database) BonusRepo {
	return &bonusRepo{
		collection: db.Collection("bonus_questions"),
	}
}

func (r *bonusRepo) Create(ctx context.Context, q *model.BonusQuestion) error {
	if q.ID == "" {
		q.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.collection.InsertOne(ctx, q)
	return err
}

// GetByEmojiSet looks for a question whose stored emoji set overlaps the
// given one.
func (r *bonusRepo) GetByEmojiSet(ctx context.Context, emojiSet []string) (*model.BonusQuestion, error) {
	var q model.BonusQuestion
	err := r.collection.FindOne(ctx, bson.M{"emojiSet": bson.M{"$in": emojiSet}}).Decode(&q)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *bonusRepo) GetRandom(ctx context.Context) (*model.BonusQuestion, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sample", Value: bson.M{"size": 1}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var qs []model.BonusQuestion
	if err = cursor.All(ctx, &qs); err != nil {
		return nil, err
	}
	if len(qs) == 0 {
		return nil, nil
	}
	return &qs[0], nil
}
