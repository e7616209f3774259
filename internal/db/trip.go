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

// TripCollection defines the interface for trip database operations. All
// status-sensitive writes filter on status "on-going" so a completed trip
// can never be resurrected.
type TripCollection interface {
	InsertTrip(ctx context.Context, trip models.Trip) error
	FindTripByID(ctx context.Context, id string) (*models.Trip, error)
	FindOngoingByCurrentDriver(ctx context.Context, driverID primitive.ObjectID) (*models.Trip, error)
	FindOngoingByDriver(ctx context.Context, driverID primitive.ObjectID) (*models.Trip, error)
	AppendDriverShift(ctx context.Context, id primitive.ObjectID, shift models.DriverShift) (*models.Trip, error)
	UpdateOngoing(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Trip, error)
	HasOtherOngoingForTruck(ctx context.Context, truckID, exceptTrip primitive.ObjectID) (bool, error)
	DeleteTrip(ctx context.Context, id primitive.ObjectID) error
	FindTripDetail(ctx context.Context, id primitive.ObjectID) (*models.TripDetail, error)
	History(ctx context.Context, driverID primitive.ObjectID) ([]models.TripHistory, error)
	ListTrips(ctx context.Context, status models.TripStatus, page, perPage int64) (*models.TripPage, error)
}

// MongoTripCollection implements TripCollection for MongoDB
type MongoTripCollection struct {
	Collection *mongo.Collection
}

// InsertTrip inserts a trip record into the collection. The caller stamps
// the timestamps so the value it holds matches the stored document.
func (c *MongoTripCollection) InsertTrip(ctx context.Context, trip models.Trip) error {
	_, err := c.Collection.InsertOne(ctx, trip)
	return err
}

// FindTripByID finds a trip by its ID regardless of status.
func (c *MongoTripCollection) FindTripByID(ctx context.Context, id string) (*models.Trip, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var trip models.Trip
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&trip)
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

// FindOngoingByCurrentDriver finds the on-going trip whose last shift entry
// is the given driver. A driver who handed off stays in the sequence but no
// longer matches here, so handing off frees them to start a new trip.
func (c *MongoTripCollection) FindOngoingByCurrentDriver(ctx context.Context, driverID primitive.ObjectID) (*models.Trip, error) {
	filter := bson.M{
		"status": models.TripOngoing,
		"$expr": bson.M{
			"$eq": bson.A{bson.M{"$last": "$driver.d_id"}, driverID},
		},
	}

	var trip models.Trip
	err := c.Collection.FindOne(ctx, filter).Decode(&trip)
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

// FindOngoingByDriver finds the on-going trip with the driver anywhere in
// the shift sequence. Used for lookup, not for exclusivity checks.
func (c *MongoTripCollection) FindOngoingByDriver(ctx context.Context, driverID primitive.ObjectID) (*models.Trip, error) {
	filter := bson.M{
		"status":      models.TripOngoing,
		"driver.d_id": driverID,
	}

	var trip models.Trip
	err := c.Collection.FindOne(ctx, filter).Decode(&trip)
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

// AppendDriverShift pushes a shift entry onto an on-going trip's driver
// sequence and returns the updated trip.
func (c *MongoTripCollection) AppendDriverShift(ctx context.Context, id primitive.ObjectID, shift models.DriverShift) (*models.Trip, error) {
	var trip models.Trip
	err := c.Collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id, "status": models.TripOngoing},
		bson.M{
			"$push": bson.M{"driver": shift},
			"$set":  bson.M{"updated_at": time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&trip)
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

// UpdateOngoing applies a $set update to a trip that is still on-going and
// returns the new value. mongo.ErrNoDocuments means no matching on-going
// trip exists.
func (c *MongoTripCollection) UpdateOngoing(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Trip, error) {
	update["updated_at"] = time.Now()

	var trip models.Trip
	err := c.Collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id, "status": models.TripOngoing},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&trip)
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

// HasOtherOngoingForTruck reports whether any on-going trip other than
// exceptTrip still claims the truck.
func (c *MongoTripCollection) HasOtherOngoingForTruck(ctx context.Context, truckID, exceptTrip primitive.ObjectID) (bool, error) {
	count, err := c.Collection.CountDocuments(ctx, bson.M{
		"truck":  truckID,
		"status": models.TripOngoing,
		"_id":    bson.M{"$ne": exceptTrip},
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteTrip deletes a trip by its ID.
func (c *MongoTripCollection) DeleteTrip(ctx context.Context, id primitive.ObjectID) error {
	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// tripLookups joins the truck and all four location roles onto a trip.
func tripLookups() []bson.D {
	stages := []bson.D{
		{{Key: "$lookup", Value: bson.M{
			"from": "trucks", "localField": "truck", "foreignField": "_id", "as": "truck_detail",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$truck_detail", "preserveNullAndEmptyArrays": true}}},
	}
	for field, as := range map[string]string{
		"source_loc": "source_detail",
		"load_loc":   "load_detail",
		"unload_loc": "unload_detail",
		"end_loc":    "end_detail",
	} {
		stages = append(stages,
			bson.D{{Key: "$lookup", Value: bson.M{
				"from": "locations", "localField": field, "foreignField": "_id", "as": as,
			}}},
			bson.D{{Key: "$unwind", Value: bson.M{"path": "$" + as, "preserveNullAndEmptyArrays": true}}},
		)
	}
	return stages
}

// FindTripDetail fetches one trip with truck and locations resolved.
func (c *MongoTripCollection) FindTripDetail(ctx context.Context, id primitive.ObjectID) (*models.TripDetail, error) {
	pipeline := []bson.D{
		{{Key: "$match", Value: bson.M{"_id": id}}},
	}
	pipeline = append(pipeline, tripLookups()...)

	cursor, err := c.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var details []models.TripDetail
	if err := cursor.All(ctx, &details); err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return &details[0], nil
}

// History lists a driver's completed trips newest-first, each with its
// source location and, when a sub-trip exists, the sub-trip and its
// destination. Trips without a sub-trip still appear with those fields
// absent (outer join).
func (c *MongoTripCollection) History(ctx context.Context, driverID primitive.ObjectID) ([]models.TripHistory, error) {
	pipeline := []bson.D{
		{{Key: "$match", Value: bson.M{
			"status":      models.TripCompleted,
			"driver.d_id": driverID,
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from": "locations", "localField": "source_loc", "foreignField": "_id", "as": "source_detail",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$source_detail", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$lookup", Value: bson.M{
			"from": "subtrips", "localField": "_id", "foreignField": "trip", "as": "sub_trip",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$sub_trip", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$lookup", Value: bson.M{
			"from": "locations", "localField": "sub_trip.dest", "foreignField": "_id", "as": "sub_trip_dest",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$sub_trip_dest", "preserveNullAndEmptyArrays": true}}},
	}

	cursor, err := c.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var history []models.TripHistory
	if err := cursor.All(ctx, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// ListTrips returns one page of trips newest-first with references resolved
// plus the total count for the filter. Page and count come out of a single
// $facet pipeline so they observe the same snapshot of the collection.
func (c *MongoTripCollection) ListTrips(ctx context.Context, status models.TripStatus, page, perPage int64) (*models.TripPage, error) {
	match := bson.M{}
	if status != "" {
		match["status"] = status
	}

	dataStages := []bson.D{}
	if perPage > 0 {
		dataStages = append(dataStages,
			bson.D{{Key: "$skip", Value: (page - 1) * perPage}},
			bson.D{{Key: "$limit", Value: perPage}},
		)
	}
	dataStages = append(dataStages, tripLookups()...)

	pipeline := []bson.D{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$facet", Value: bson.M{
			"data":  dataStages,
			"count": []bson.D{{{Key: "$count", Value: "total"}}},
		}}},
	}

	cursor, err := c.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var facets []struct {
		Data  []models.TripDetail `bson:"data"`
		Count []struct {
			Total int64 `bson:"total"`
		} `bson:"count"`
	}
	if err := cursor.All(ctx, &facets); err != nil {
		return nil, err
	}

	tripPage := &models.TripPage{Trips: []models.TripDetail{}}
	if len(facets) > 0 {
		if facets[0].Data != nil {
			tripPage.Trips = facets[0].Data
		}
		if len(facets[0].Count) > 0 {
			tripPage.Total = facets[0].Count[0].Total
		}
	}
	return tripPage, nil
}
