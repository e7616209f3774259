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

// UserLogCollection defines the interface for check-in/check-out logs.
type UserLogCollection interface {
	OpenLog(ctx context.Context, userID primitive.ObjectID) (*models.UserLog, error)
	CloseLatestLog(ctx context.Context, userID primitive.ObjectID) (*models.UserLog, error)
	FindLogsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.UserLog, error)
}

// MongoUserLogCollection implements UserLogCollection for MongoDB
type MongoUserLogCollection struct {
	Collection *mongo.Collection
}

// OpenLog starts a new check-in span for a user.
func (c *MongoUserLogCollection) OpenLog(ctx context.Context, userID primitive.ObjectID) (*models.UserLog, error) {
	log := models.UserLog{
		ID:    primitive.NewObjectID(),
		User:  userID,
		Start: time.Now(),
	}
	_, err := c.Collection.InsertOne(ctx, log)
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// CloseLatestLog stamps the end time on the user's most recent open span.
// mongo.ErrNoDocuments means the user has no open check-in.
func (c *MongoUserLogCollection) CloseLatestLog(ctx context.Context, userID primitive.ObjectID) (*models.UserLog, error) {
	var log models.UserLog
	err := c.Collection.FindOneAndUpdate(
		ctx,
		bson.M{"user": userID, "end": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"end": time.Now()}},
		options.FindOneAndUpdate().
			SetSort(bson.D{{Key: "start", Value: -1}}).
			SetReturnDocument(options.After),
	).Decode(&log)
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// FindLogsByUser lists a user's spans newest-first.
func (c *MongoUserLogCollection) FindLogsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.UserLog, error) {
	cursor, err := c.Collection.Find(
		ctx,
		bson.M{"user": userID},
		options.Find().SetSort(bson.D{{Key: "start", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []models.UserLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
