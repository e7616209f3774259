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

// TruckCollection defines the interface for truck database operations.
// Claim and Release exist for the trip lifecycle engine only; clients never
// flip availability directly.
type TruckCollection interface {
	InsertTruck(ctx context.Context, truck models.Truck) error
	FindTruckByID(ctx context.Context, id string) (*models.Truck, error)
	FindTrucks(ctx context.Context, search string, page, perPage int64) ([]models.Truck, int64, error)
	UpdateTruck(ctx context.Context, id string, update bson.M) (*models.Truck, error)
	DeleteTruck(ctx context.Context, id string) error
	ClaimTruck(ctx context.Context, id primitive.ObjectID) (bool, error)
	ReleaseTruck(ctx context.Context, id primitive.ObjectID) error
}

// MongoTruckCollection implements TruckCollection for MongoDB
type MongoTruckCollection struct {
	Collection *mongo.Collection
}

// InsertTruck inserts a truck record into the collection.
func (c *MongoTruckCollection) InsertTruck(ctx context.Context, truck models.Truck) error {
	truck.IsAvail = true
	truck.CreatedAt = time.Now()
	truck.UpdatedAt = time.Now()
	_, err := c.Collection.InsertOne(ctx, truck)
	return err
}

// FindTruckByID finds a truck by its ID.
func (c *MongoTruckCollection) FindTruckByID(ctx context.Context, id string) (*models.Truck, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var truck models.Truck
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&truck)
	if err != nil {
		return nil, err
	}

	return &truck, nil
}

// FindTrucks lists trucks newest-first with an optional name search.
func (c *MongoTruckCollection) FindTrucks(ctx context.Context, search string, page, perPage int64) ([]models.Truck, int64, error) {
	filter := bson.M{}
	if search != "" {
		filter["truck_id"] = bson.M{"$regex": search, "$options": "i"}
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

	var trucks []models.Truck
	if err := cursor.All(ctx, &trucks); err != nil {
		return nil, 0, err
	}

	return trucks, total, nil
}

// UpdateTruck applies a partial update to a truck and returns the new value.
func (c *MongoTruckCollection) UpdateTruck(ctx context.Context, id string, update bson.M) (*models.Truck, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	update["updated_at"] = time.Now()

	var truck models.Truck
	err = c.Collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&truck)
	if err != nil {
		return nil, err
	}

	return &truck, nil
}

// DeleteTruck deletes a truck by its ID.
func (c *MongoTruckCollection) DeleteTruck(ctx context.Context, id string) error {
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

// ClaimTruck atomically marks a truck unavailable. The filter requires
// is_avail to still be true, so of two concurrent claims exactly one
// observes a modified count of 1.
func (c *MongoTruckCollection) ClaimTruck(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := c.Collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "is_avail": true},
		bson.M{"$set": bson.M{"is_avail": false, "updated_at": time.Now()}},
	)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount == 1, nil
}

// ReleaseTruck marks a truck available again.
func (c *MongoTruckCollection) ReleaseTruck(ctx context.Context, id primitive.ObjectID) error {
	_, err := c.Collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_avail": true, "updated_at": time.Now()}},
	)
	return err
}
