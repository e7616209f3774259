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

// LocationCollection defines the interface for location database operations.
type LocationCollection interface {
	InsertLocation(ctx context.Context, location models.Location) (*models.Location, error)
	FindLocationByID(ctx context.Context, id string) (*models.Location, error)
	FindLocations(ctx context.Context, search string, page, perPage int64) ([]models.Location, int64, error)
	UpdateLocation(ctx context.Context, id string, update bson.M) (*models.Location, error)
	DeleteLocation(ctx context.Context, id string) error
}

// MongoLocationCollection implements LocationCollection for MongoDB
type MongoLocationCollection struct {
	Collection *mongo.Collection
}

// InsertLocation inserts a location record and returns it with its
// generated identifier.
func (c *MongoLocationCollection) InsertLocation(ctx context.Context, location models.Location) (*models.Location, error) {
	location.ID = primitive.NewObjectID()
	location.CreatedAt = time.Now()
	location.UpdatedAt = time.Now()

	_, err := c.Collection.InsertOne(ctx, location)
	if err != nil {
		return nil, err
	}
	return &location, nil
}

// FindLocationByID finds a location by its ID.
func (c *MongoLocationCollection) FindLocationByID(ctx context.Context, id string) (*models.Location, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var location models.Location
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&location)
	if err != nil {
		return nil, err
	}

	return &location, nil
}

// FindLocations lists locations newest-first with an optional name search.
func (c *MongoLocationCollection) FindLocations(ctx context.Context, search string, page, perPage int64) ([]models.Location, int64, error) {
	filter := bson.M{}
	if search != "" {
		filter["name"] = bson.M{"$regex": search, "$options": "i"}
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

	var locations []models.Location
	if err := cursor.All(ctx, &locations); err != nil {
		return nil, 0, err
	}

	return locations, total, nil
}

// UpdateLocation applies a partial update and returns the new value.
func (c *MongoLocationCollection) UpdateLocation(ctx context.Context, id string, update bson.M) (*models.Location, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	update["updated_at"] = time.Now()

	var location models.Location
	err = c.Collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&location)
	if err != nil {
		return nil, err
	}

	return &location, nil
}

// DeleteLocation deletes a location by its ID.
func (c *MongoLocationCollection) DeleteLocation(ctx context.Context, id string) error {
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
