package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"globetrotter/internal/model"
)

// GameRepo handles MongoDB operations for game records
type GameRepo interface {
	Create(ctx context.Context, game *model.Game) error
	GetByID(ctx context.Context, id string) (*model.Game, error)
	GetByPlayer(ctx context.Context, username string) ([]*model.Game, error)
	AppendAnswer(ctx context.Context, id string, city, emoji string) error
	ApplyScorePatch(ctx context.Context, id string, patch model.ScorePatch) error
	Finalize(ctx context.Context, id string, stats model.FinalStats) error
}

type gameRepo struct {
	collection *mongo.Collection
}

// NewGameRepo creates a new game repository
func NewGameRepo(db *mongo.Database) GameRepo {
	return &gameRepo{
		collection: db.Collection("games"),
	}
}

func (r *gameRepo) Create(ctx context.Context, game *model.Game) error {
	if game.ID == "" {
		game.ID = primitive.NewObjectID().Hex()
	}
	if game.CreatedAt.IsZero() {
		game.CreatedAt = time.Now()
	}
	if game.Status == "" {
		game.Status = model.GameActive
	}
	if game.DestinationsPlayed == nil {
		game.DestinationsPlayed = []string{}
	}
	if game.CorrectAnswers == nil {
		game.CorrectAnswers = []string{}
	}
	if game.EmojisCollected == nil {
		game.EmojisCollected = []string{}
	}
	_, err := r.collection.InsertOne(ctx, game)
	return err
}

func (r *gameRepo) GetByID(ctx context.Context, id string) (*model.Game, error) {
	var game model.Game
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&game)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *gameRepo) GetByPlayer(ctx context.Context, username string) ([]*model.Game, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"playerUsername": username})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var games []*model.Game
	if err = cursor.All(ctx, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// AppendAnswer records one correctly answered destination.
func (r *gameRepo) AppendAnswer(ctx context.Context, id string, city, emoji string) error {
	update := bson.M{
		"$push": bson.M{
			"destinationsPlayed": city,
			"correctAnswers":     city,
			"emojisCollected":    emoji,
		},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (r *gameRepo) ApplyScorePatch(ctx context.Context, id string, patch model.ScorePatch) error {
	set := bson.M{}
	inc := bson.M{}
	if patch.Score != nil {
		set["score"] = *patch.Score
	}
	if patch.BonusAnsweredDelta != 0 {
		inc["bonusQuestionsAnswered"] = patch.BonusAnsweredDelta
	}
	if patch.BonusCorrectDelta != 0 {
		inc["bonusQuestionsCorrect"] = patch.BonusCorrectDelta
	}
	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(inc) > 0 {
		update["$inc"] = inc
	}
	if len(update) == 0 {
		return nil
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (r *gameRepo) Finalize(ctx context.Context, id string, stats model.FinalStats) error {
	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"status":          model.GameEnded,
			"score":           stats.Score,
			"correctCount":    stats.CorrectCount,
			"emojisCollected": stats.Emojis,
			"endedAt":         now,
		},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}
