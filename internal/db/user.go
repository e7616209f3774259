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

// UserCollection defines the interface for user database operations
type UserCollection interface {
	InsertUser(ctx context.Context, user models.User) error
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	FindUserByMobile(ctx context.Context, mobileNo string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUsers(ctx context.Context, role models.Role, search string, page, perPage int64) ([]models.User, int64, error)
	UpdateUser(ctx context.Context, id string, update bson.M) (*models.User, error)
	MarkRegistered(ctx context.Context, id string) error
	DeleteUser(ctx context.Context, id string) error
	DeleteStaleUnregistered(ctx context.Context, olderThan time.Time) (int64, error)
}

// MongoUserCollection implements UserCollection for MongoDB
type MongoUserCollection struct {
	Collection *mongo.Collection
}

// InsertUser inserts a new user into the database
func (c *MongoUserCollection) InsertUser(ctx context.Context, user models.User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	_, err := c.Collection.InsertOne(ctx, user)
	return err
}

// FindUserByID finds a user by their ID
func (c *MongoUserCollection) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&user)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// FindUserByMobile finds a user by their mobile number
func (c *MongoUserCollection) FindUserByMobile(ctx context.Context, mobileNo string) (*models.User, error) {
	var user models.User
	err := c.Collection.FindOne(ctx, bson.M{"mobile_no": mobileNo}).Decode(&user)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// FindUserByEmail finds a user by their email
func (c *MongoUserCollection) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := c.Collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// FindUsers lists users newest-first with an optional role filter and
// firstname search, returning the page and the total count for the filter.
func (c *MongoUserCollection) FindUsers(ctx context.Context, role models.Role, search string, page, perPage int64) ([]models.User, int64, error) {
	filter := bson.M{}
	if role != "" {
		filter["role"] = role
	}
	if search != "" {
		filter["firstname"] = bson.M{"$regex": search, "$options": "i"}
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

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// UpdateUser applies a partial update to a user and returns the new value.
func (c *MongoUserCollection) UpdateUser(ctx context.Context, id string, update bson.M) (*models.User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	update["updated_at"] = time.Now()

	var user models.User
	err = c.Collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// MarkRegistered flags a user as OTP-verified.
func (c *MongoUserCollection) MarkRegistered(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = c.Collection.UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"is_registered": true, "updated_at": time.Now()}},
	)
	return err
}

// DeleteUser deletes a user from the database
func (c *MongoUserCollection) DeleteUser(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}

// DeleteStaleUnregistered removes users that never completed OTP
// verification and are older than the cutoff.
func (c *MongoUserCollection) DeleteStaleUnregistered(ctx context.Context, olderThan time.Time) (int64, error) {
	result, err := c.Collection.DeleteMany(ctx, bson.M{
		"is_registered": false,
		"created_at":    bson.M{"$lt": olderThan},
	})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
