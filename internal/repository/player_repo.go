package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"globetrotter/internal/model"
)

// PlayerRepo handles MongoDB operations for player profiles
type PlayerRepo interface {
	GetOrCreate(ctx context.Context, username string) (*model.Player, error)
	GetByUsername(ctx context.Context, username string) (*model.Player, error)
	AddGameResult(ctx context.Context, username string, score, correctAnswers int, emojis []string) error
}

type playerRepo struct {
	collection *mongo.Collection
}

// NewPlayerRepo creates a new player repository
func NewPlayerRepo(db *mongo.Database) PlayerRepo {
	return &playerRepo{
		collection: db.Collection("players"),
	}
}

func (r *playerRepo) GetOrCreate(ctx context.Context, username string) (*model.Player, error) {
	player, err := r.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if player != nil {
		return player, nil
	}

	player = &model.Player{
		ID:           primitive.NewObjectID().Hex(),
		Username:     username,
		RecentEmojis: []string{},
		CreatedAt:    time.Now(),
	}
	if _, err := r.collection.InsertOne(ctx, player); err != nil {
		return nil, err
	}
	return player, nil
}

func (r *playerRepo) GetByUsername(ctx context.Context, username string) (*model.Player, error) {
	var player model.Player
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&player)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &player, nil
}

// AddGameResult folds one finished game into the player's aggregates and
// keeps the trailing emoji collection.
func (r *playerRepo) AddGameResult(ctx context.Context, username string, score, correctAnswers int, emojis []string) error {
	update := bson.M{
		"$inc": bson.M{
			"totalScore":     score,
			"gamesPlayed":    1,
			"correctAnswers": correctAnswers,
		},
		"$set": bson.M{
			"recentEmojis": emojis,
		},
	}
	opts := options.Update().SetUpsert(false)
	_, err := r.collection.UpdateOne(ctx, bson.M{"username": username}, update, opts)
	return err
}
