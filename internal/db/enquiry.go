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

// EnquiryCollection defines the interface for enquiry database operations.
type EnquiryCollection interface {
	InsertEnquiry(ctx context.Context, enquiry models.Enquiry) (*models.Enquiry, error)
	FindEnquiryByID(ctx context.Context, id string) (*models.Enquiry, error)
	FindEnquiries(ctx context.Context, search string, page, perPage int64) ([]models.Enquiry, int64, error)
	UpdateEnquiry(ctx context.Context, id string, update bson.M) (*models.Enquiry, error)
	DeleteEnquiry(ctx context.Context, id string) error
}

// MongoEnquiryCollection implements EnquiryCollection for MongoDB
type MongoEnquiryCollection struct {
	Collection *mongo.Collection
}

// InsertEnquiry inserts an enquiry record and returns it with its generated
// identifier.
func (c *MongoEnquiryCollection) InsertEnquiry(ctx context.Context, enquiry models.Enquiry) (*models.Enquiry, error) {
	enquiry.ID = primitive.NewObjectID()
	enquiry.CreatedAt = time.Now()
	enquiry.UpdatedAt = time.Now()

	_, err := c.Collection.InsertOne(ctx, enquiry)
	if err != nil {
		return nil, err
	}
	return &enquiry, nil
}

// FindEnquiryByID finds an enquiry by its ID.
func (c *MongoEnquiryCollection) FindEnquiryByID(ctx context.Context, id string) (*models.Enquiry, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var enquiry models.Enquiry
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&enquiry)
	if err != nil {
		return nil, err
	}

	return &enquiry, nil
}

// FindEnquiries lists enquiries newest-first with an optional email search.
func (c *MongoEnquiryCollection) FindEnquiries(ctx context.Context, search string, page, perPage int64) ([]models.Enquiry, int64, error) {
	filter := bson.M{}
	if search != "" {
		filter["email"] = bson.M{"$regex": search, "$options": "i"}
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

	var enquiries []models.Enquiry
	if err := cursor.All(ctx, &enquiries); err != nil {
		return nil, 0, err
	}

	return enquiries, total, nil
}

// UpdateEnquiry applies a partial update and returns the new value.
func (c *MongoEnquiryCollection) UpdateEnquiry(ctx context.Context, id string, update bson.M) (*models.Enquiry, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	update["updated_at"] = time.Now()

	var enquiry models.Enquiry
	err = c.Collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&enquiry)
	if err != nil {
		return nil, err
	}

	return &enquiry, nil
}

// DeleteEnquiry deletes an enquiry by its ID.
func (c *MongoEnquiryCollection) DeleteEnquiry(ctx context.Context, id string) error {
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
