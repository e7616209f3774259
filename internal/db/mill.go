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

// MillCollection defines the interface for mill database operations.
type MillCollection interface {
	InsertMill(ctx context.Context, mill models.Mill) (*models.Mill, error)
	FindMillByID(ctx context.Context, id string) (*models.Mill, error)
	FindMills(ctx context.Context, search string, page, perPage int64) ([]models.Mill, int64, error)
	UpdateMill(ctx context.Context, id string, update bson.M) (*models.Mill, error)
	DeleteMill(ctx context.Context, id string) error
}

// MongoMillCollection implements MillCollection for MongoDB
type MongoMillCollection struct {
	Collection *mongo.Collection
}

// InsertMill inserts a mill record and returns it with its generated
// identifier.
func (c *MongoMillCollection) InsertMill(ctx context.Context, mill models.Mill) (*models.Mill, error) {
	mill.ID = primitive.NewObjectID()
	mill.CreatedAt = time.Now()
	mill.UpdatedAt = time.Now()

	_, err := c.Collection.InsertOne(ctx, mill)
	if err != nil {
		return nil, err
	}
	return &mill, nil
}

// FindMillByID finds a mill by its ID.
func (c *MongoMillCollection) FindMillByID(ctx context.Context, id string) (*models.Mill, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var mill models.Mill
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&mill)
	if err != nil {
		return nil, err
	}

	return &mill, nil
}

// FindMills lists mills newest-first with an optional name search.
func (c *MongoMillCollection) FindMills(ctx context.Context, search string, page, perPage int64) ([]models.Mill, int64, error) {
	filter := bson.M{}
	if search != "" {
		filter["mill_name"] = bson.M{"$regex": search, "$options": "i"}
	}

	total, err := c.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if perPage > 0 {
		opts.SetSkip((page - 1) * perPage).SetLimit(perPage)
	}

	cursor, err := c.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var mills []models.Mill
	if err := cursor.All(ctx, &mills); err != nil {
		return nil, 0, err
	}

	return mills, total, nil
}

// UpdateMill applies a partial update and returns the new value.
func (c *MongoMillCollection) UpdateMill(ctx context.Context, id string, update bson.M) (*models.Mill, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	update["updated_at"] = time.Now()

	var mill models.Mill
	err = c.Collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mill)
	if err != nil {
		return nil, err
	}

	return &mill, nil
}

// DeleteMill deletes a mill by its ID.
func (c *MongoMillCollection) DeleteMill(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
