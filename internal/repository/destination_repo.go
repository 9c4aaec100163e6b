package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"globetrotter/internal/model"
)

// DestinationRepo handles MongoDB operations for destinations
type DestinationRepo interface {
	Create(ctx context.Context, dest *model.Destination) error
	GetByID(ctx context.Context, id string) (*model.Destination, error)
	GetRandom(ctx context.Context, n int) ([]model.Destination, error)
	Count(ctx context.Context) (int64, error)
}

type destinationRepo struct {
	collection *mongo.Collection
}

// NewDestinationRepo creates a new destination repository
func NewDestinationRepo(db *mongo.Database) DestinationRepo {
	return &destinationRepo{
		collection: db.Collection("destinations"),
	}
}

func (r *destinationRepo) Create(ctx context.Context, dest *model.Destination) error {
	if dest.ID == "" {
		dest.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.collection.InsertOne(ctx, dest)
	return err
}

func (r *destinationRepo) GetByID(ctx context.Context, id string) (*model.Destination, error) {
	var dest model.Destination
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&dest)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &dest, nil
}

// GetRandom draws n destinations uniformly via a $sample aggregation.
func (r *destinationRepo) GetRandom(ctx context.Context, n int) ([]model.Destination, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sample", Value: bson.M{"size": n}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var dests []model.Destination
	if err = cursor.All(ctx, &dests); err != nil {
		return nil, err
	}
	return dests, nil
}

func (r *destinationRepo) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
