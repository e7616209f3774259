package db

import (
	"context"
	"time"

	"github.com/Umesh-JNU/jeff-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SubTripCollection defines the interface for sub-trip database operations.
type SubTripCollection interface {
	InsertSubTrip(ctx context.Context, subTrip models.SubTrip) (*models.SubTrip, error)
	FindSubTripByTrip(ctx context.Context, tripID primitive.ObjectID) (*models.SubTrip, error)
	UpdateSubTrip(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.SubTrip, error)
	DeleteByTrip(ctx context.Context, tripID primitive.ObjectID) (int64, error)
}

// MongoSubTripCollection implements SubTripCollection for MongoDB
type MongoSubTripCollection struct {
	Collection *mongo.Collection
}

// InsertSubTrip inserts a sub-trip record and returns it with its generated
// identifier.
func (c *MongoSubTripCollection) InsertSubTrip(ctx context.Context, subTrip models.SubTrip) (*models.SubTrip, error) {
	subTrip.ID = primitive.NewObjectID()
	subTrip.CreatedAt = time.Now()
	subTrip.UpdatedAt = time.Now()
	if subTrip.Docs == nil {
		subTrip.Docs = []string{}
	}

	_, err := c.Collection.InsertOne(ctx, subTrip)
	if err != nil {
		return nil, err
	}
	return &subTrip, nil
}

// FindSubTripByTrip finds the sub-trip owned by a trip, if any.
func (c *MongoSubTripCollection) FindSubTripByTrip(ctx context.Context, tripID primitive.ObjectID) (*models.SubTrip, error) {
	var subTrip models.SubTrip
	err := c.Collection.FindOne(ctx, bson.M{"trip": tripID}).Decode(&subTrip)
	if err != nil {
		return nil, err
	}
	return &subTrip, nil
}

// UpdateSubTrip applies a $set update and returns the new value.
func (c *MongoSubTripCollection) UpdateSubTrip(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.SubTrip, error) {
	update["updated_at"] = time.Now()

	var subTrip models.SubTrip
	err := c.Collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&subTrip)
	if err != nil {
		return nil, err
	}
	return &subTrip, nil
}

// DeleteByTrip removes every sub-trip owned by a trip. Used by the trip
// deletion cascade.
func (c *MongoSubTripCollection) DeleteByTrip(ctx context.Context, tripID primitive.ObjectID) (int64, error) {
	result, err := c.Collection.DeleteMany(ctx, bson.M{"trip": tripID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
