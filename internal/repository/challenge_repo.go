package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"globetrotter/internal/model"
)

// ChallengeRepo handles MongoDB operations for friend challenges
type ChallengeRepo interface {
	Create(ctx context.Context, challenge *model.Challenge) error
	GetByCode(ctx context.Context, code string) (*model.Challenge, error)
	AddParticipant(ctx context.Context, id string, participant model.ChallengeParticipant) error
	AddParticipantScore(ctx context.Context, id, username string, delta int) error
}

type challengeRepo struct {
	collection *mongo.Collection
}

// NewChallengeRepo creates a new challenge repository
func NewChallengeRepo(db *mongo.Database) ChallengeRepo {
	return &challengeRepo{
		collection: db.Collection("challenges"),
	}
}

func (r *challengeRepo) Create(ctx context.Context, challenge *model.Challenge) error {
	if challenge.ID == "" {
		challenge.ID = primitive.NewObjectID().Hex()
	}
	if challenge.CreatedAt.IsZero() {
		challenge.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, challenge)
	return err
}

func (r *challengeRepo) GetByCode(ctx context.Context, code string) (*model.Challenge, error) {
	var challenge model.Challenge
	err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&challenge)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (r *challengeRepo) AddParticipant(ctx context.Context, id string, participant model.ChallengeParticipant) error {
	update := bson.M{
		"$push": bson.M{"participants": participant},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// AddParticipantScore bumps the matching participant's score in place.
func (r *challengeRepo) AddParticipantScore(ctx context.Context, id, username string, delta int) error {
	filter := bson.M{"_id": id, "participants.username": username}
	update := bson.M{
		"$inc": bson.M{"participants.$.score": delta},
	}
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}
