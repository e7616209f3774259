package trips

import (
	"context"
	"errors"
	"time"

	"github.com/Umesh-JNU/jeff-backend/internal/apperror"
	"github.com/Umesh-JNU/jeff-backend/internal/db"
	"github.com/Umesh-JNU/jeff-backend/internal/models"
	"github.com/Umesh-JNU/jeff-backend/internal/storage"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Service is the trip lifecycle engine. It owns trips and sub-trips,
// truck-availability locking, driver shift handoffs, and the read-side
// aggregations. Multi-write operations run inside a transaction; the truck
// claim is additionally an atomic conditional update so exclusivity holds
// even on a store without transaction support.
type Service struct {
	trips    db.TripCollection
	subTrips db.SubTripCollection
	trucks   db.TruckCollection
	tx       db.TxRunner
	uploader storage.Uploader
}

// NewService creates a trip lifecycle service.
func NewService(trips db.TripCollection, subTrips db.SubTripCollection, trucks db.TruckCollection, tx db.TxRunner, uploader storage.Uploader) *Service {
	return &Service{
		trips:    trips,
		subTrips: subTrips,
		trucks:   trucks,
		tx:       tx,
		uploader: uploader,
	}
}

// Create opens a new trip for the calling driver. Preconditions, first
// failure wins: the truck reference is supplied, the truck exists and is
// available, and the driver has no on-going trip of their own.
func (s *Service) Create(ctx context.Context, driverID string, req models.CreateTripRequest) (*models.Trip, error) {
	if req.Truck == "" {
		return nil, apperror.BadRequest("Truck is required for a trip.")
	}
	if req.Desc == "" {
		return nil, apperror.BadRequest("Trip description is required.")
	}
	if len(req.Desc) > 250 {
		return nil, apperror.BadRequest("Trip description should have maximum 250 characters")
	}
	if req.SourceLoc == "" || req.LoadLoc == "" {
		return nil, apperror.BadRequest("Source and load locations are required.")
	}
	if req.StartMilage <= 0 {
		return nil, apperror.BadRequest("Start milage is required.")
	}

	driverOID, err := primitive.ObjectIDFromHex(driverID)
	if err != nil {
		return nil, apperror.BadRequest("Invalid User ID")
	}
	truckOID, err := primitive.ObjectIDFromHex(req.Truck)
	if err != nil {
		return nil, apperror.BadRequest("Invalid Truck ID")
	}
	sourceOID, err := primitive.ObjectIDFromHex(req.SourceLoc)
	if err != nil {
		return nil, apperror.BadRequest("Invalid Location ID")
	}
	loadOID, err := primitive.ObjectIDFromHex(req.LoadLoc)
	if err != nil {
		return nil, apperror.BadRequest("Invalid Location ID")
	}

	truck, err := s.trucks.FindTruckByID(ctx, req.Truck)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("Truck not found.")
		}
		return nil, apperror.Internal(err)
	}
	if !truck.IsAvail {
		return nil, apperror.Conflict("Truck already in use.")
	}

	_, err = s.trips.FindOngoingByCurrentDriver(ctx, driverOID)
	if err == nil {
		return nil, apperror.Conflict("Current trip is not completed yet.")
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.Internal(err)
	}

	now := time.Now()
	trip := models.Trip{
		ID:          primitive.NewObjectID(),
		Desc:        req.Desc,
		Dispatch:    req.Dispatch,
		Truck:       truckOID,
		SourceLoc:   sourceOID,
		LoadLoc:     loadOID,
		StartMilage: req.StartMilage,
		Driver:      []models.DriverShift{{DriverID: driverOID, Time: now}},
		Status:      models.TripOngoing,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		claimed, err := s.trucks.ClaimTruck(ctx, truckOID)
		if err != nil {
			return apperror.Internal(err)
		}
		if !claimed {
			// Lost the race since the availability check above.
			return apperror.Conflict("Truck already in use.")
		}
		if err := s.trips.InsertTrip(ctx, trip); err != nil {
			return apperror.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"trip": trip.ID.Hex(), "truck": req.Truck, "driver": driverID}).
		Info("trip created")
	return &trip, nil
}

// ShiftChange hands an on-going trip to an incoming driver by appending to
// the driver sequence. The outgoing driver stays recorded; only the last
// entry holds the exclusivity lock from then on. Returns the trip with its
// truck and location references resolved.
func (s *Service) ShiftChange(ctx context.Context, tripID, driverID string) (*models.TripDetail, error) {
	tripOID, err := primitive.ObjectIDFromHex(tripID)
	if err != nil {
		return nil, apperror.BadRequest("Invalid Trip ID")
	}
	driverOID, err := primitive.ObjectIDFromHex(driverID)
	if err != nil {
		return nil, apperror.BadRequest("Invalid User ID")
	}

	_, err = s.trips.FindOngoingByCurrentDriver(ctx, driverOID)
	if err == nil {
		return nil, apperror.Conflict("Current trip is not completed yet.")
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.Internal(err)
	}

	shift := models.DriverShift{DriverID: driverOID, Time: time.Now()}
	if _, err := s.trips.AppendDriverShift(ctx, tripOID, shift); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("No on-going trip found.")
		}
		return nil, apperror.Internal(err)
	}

	detail, err := s.trips.FindTripDetail(ctx, tripOID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	log.WithFields(log.Fields{"trip": tripID, "driver": driverID}).Info("shift change")
	return detail, nil
}

// CurrentTrip finds the caller's trip. With a trip id it fetches that trip
// regardless of status; otherwise it finds the on-going trip the driver
// appears in anywhere in the shift sequence.
func (s *Service) CurrentTrip(ctx context.Context, driverID, tripID string) (*models.TripDetail, error) {
	var tripOID primitive.ObjectID
	if tripID != "" {
		oid, err := primitive.ObjectIDFromHex(tripID)
		if err != nil {
			return nil, apperror.BadRequest("Invalid Trip ID")
		}
		tripOID = oid
	} else {
		driverOID, err := primitive.ObjectIDFromHex(driverID)
		if err != nil {
			return nil, apperror.BadRequest("Invalid User ID")
		}
		trip, err := s.trips.FindOngoingByDriver(ctx, driverOID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, apperror.NotFound("No on-going trip")
			}
			return nil, apperror.Internal(err)
		}
		tripOID = trip.ID
	}

	detail, err := s.trips.FindTripDetail(ctx, tripOID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("Trip not found.")
		}
		return nil, apperror.Internal(err)
	}
	return detail, nil
}

// ApplyTripMilestone records a milestone on an on-going trip. Completion
// sets the final mileage and end time, flips the status, and releases the
// truck in the same transaction unless another on-going trip still claims
// it.
func (s *Service) ApplyTripMilestone(ctx context.Context, tripID string, m models.Milestone) (*models.Trip, error) {
	tripOID, err := primitive.ObjectIDFromHex(tripID)
	if err != nil {
		return nil, apperror.BadRequest("Invalid Trip ID")
	}
	if err := m.ValidForTrip(); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	now := time.Now()

	if m.Kind != models.MilestoneComplete {
		update := bson.M{string(m.Kind): now}
		trip, err := s.trips.UpdateOngoing(ctx, tripOID, update)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, apperror.NotFound("No on-going trip found.")
			}
			return nil, apperror.Internal(err)
		}
		return trip, nil
	}

	if m.EndMilage <= 0 {
		return nil, apperror.BadRequest("End milage is required.")
	}

	var completed *models.Trip
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		trip, err := s.trips.UpdateOngoing(ctx, tripOID, bson.M{
			"end_milage": m.EndMilage,
			"end_time":   now,
			"status":     models.TripCompleted,
		})
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return apperror.NotFound("No on-going trip found.")
			}
			return apperror.Internal(err)
		}

		inUse, err := s.trips.HasOtherOngoingForTruck(ctx, trip.Truck, trip.ID)
		if err != nil {
			return apperror.Internal(err)
		}
		if !inUse {
			if err := s.trucks.ReleaseTruck(ctx, trip.Truck); err != nil {
				return apperror.Internal(err)
			}
		}

		completed = trip
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields := log.Fields{"trip": tripID, "end_milage": m.EndMilage}
	if driver, ok := completed.CurrentDriver(); ok {
		fields["driver"] = driver.Hex()
	}
	log.WithFields(fields).Info("trip completed")
	return completed, nil
}

// CreateSubTrip attaches the second leg to an existing trip. At most one
// sub-trip may exist per trip; document attachments are pushed to the
// upload gateway before the record is inserted.
func (s *Service) CreateSubTrip(ctx context.Context, req models.CreateSubTripRequest, files []storage.File) (*models.SubTrip, error) {
	if req.Trip == "" {
		return nil, apperror.BadRequest("Trip Reference is required.")
	}
	if req.Mill == "" {
		return nil, apperror.BadRequest("Mill is required for a trip.")
	}
	if req.ProdDetail == "" {
		return nil, apperror.BadRequest("Product detail is required.")
	}
	if req.SlipID == "" {
		return nil, apperror.BadRequest("Slip ID is required.")
	}
	if req.BlockName == "" {
		return nil, apperror.BadRequest("Block Name is required.")
	}

	tripOID, err := primitive.ObjectIDFromHex(req.Trip)
	if err != nil {
		return nil, apperror.BadRequest("Invalid Trip ID")
	}
	millOID, err := primitive.ObjectIDFromHex(req.Mill)
	if err != nil {
		return nil, apperror.BadRequest("Invalid Mill ID")
	}
	sourceOID, err := primitive.ObjectIDFromHex(req.Source)
	if err != nil {
		return nil, apperror.BadRequest("Invalid Location ID")
	}
	destOID, err := primitive.ObjectIDFromHex(req.Dest)
	if err != nil {
		return nil, apperror.BadRequest("Invalid Location ID")
	}

	if _, err := s.trips.FindTripByID(ctx, req.Trip); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("Trip not found.")
		}
		return nil, apperror.Internal(err)
	}

	_, err = s.subTrips.FindSubTripByTrip(ctx, tripOID)
	if err == nil {
		return nil, apperror.Conflict("Trip already started.")
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.Internal(err)
	}

	var docs []string
	if len(files) > 0 {
		docs, err = s.uploader.StoreMany(ctx, files, "trip-docs")
		if err != nil {
			return nil, err
		}
	}

	subTrip := models.SubTrip{
		Trip:       tripOID,
		Mill:       millOID,
		Source:     sourceOID,
		Dest:       destOID,
		ProdDetail: req.ProdDetail,
		SlipID:     req.SlipID,
		BlockName:  req.BlockName,
		BlockNo:    req.BlockNo,
		Docs:       docs,
	}

	created, err := s.subTrips.InsertSubTrip(ctx, subTrip)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	log.WithFields(log.Fields{"trip": req.Trip, "sub_trip": created.ID.Hex()}).Info("sub-trip created")
	return created, nil
}

// ApplySubTripMilestone records an unload milestone or the weighbridge
// readings on a sub-trip. Recording weights is not terminal; the parent
// trip completes independently.
func (s *Service) ApplySubTripMilestone(ctx context.Context, subTripID string, m models.Milestone) (*models.SubTrip, error) {
	subTripOID, err := primitive.ObjectIDFromHex(subTripID)
	if err != nil {
		return nil, apperror.BadRequest("Invalid SubTrip ID")
	}
	if err := m.ValidForSubTrip(); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	var update bson.M
	if m.Kind == models.MilestoneWeights {
		update = bson.M{
			"gross_wt": m.GrossWt,
			"tare_wt":  m.TareWt,
			"net_wt":   m.NetWt,
		}
	} else {
		update = bson.M{string(m.Kind): time.Now()}
	}

	subTrip, err := s.subTrips.UpdateSubTrip(ctx, subTripOID, update)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("SubTrip not found.")
		}
		return nil, apperror.Internal(err)
	}
	return subTrip, nil
}

// Delete removes a trip and its sub-trips. The truck is released first
// unless some other on-going trip still claims it, so deleting the holding
// trip never strands the truck as permanently unavailable.
func (s *Service) Delete(ctx context.Context, tripID string) error {
	tripOID, err := primitive.ObjectIDFromHex(tripID)
	if err != nil {
		return apperror.BadRequest("Invalid Trip ID")
	}

	trip, err := s.trips.FindTripByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperror.NotFound("Trip not found")
		}
		return apperror.Internal(err)
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		inUse, err := s.trips.HasOtherOngoingForTruck(ctx, trip.Truck, tripOID)
		if err != nil {
			return apperror.Internal(err)
		}
		if !inUse {
			if err := s.trucks.ReleaseTruck(ctx, trip.Truck); err != nil {
				return apperror.Internal(err)
			}
		}

		if _, err := s.subTrips.DeleteByTrip(ctx, tripOID); err != nil {
			return apperror.Internal(err)
		}
		if err := s.trips.DeleteTrip(ctx, tripOID); err != nil {
			return apperror.Internal(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.WithField("trip", tripID).Info("trip deleted")
	return nil
}

// History lists the driver's completed trips with source location and
// sub-trip destination resolved; trips without a sub-trip still appear.
func (s *Service) History(ctx context.Context, driverID string) ([]models.TripHistory, error) {
	driverOID, err := primitive.ObjectIDFromHex(driverID)
	if err != nil {
		return nil, apperror.BadRequest("Invalid User ID")
	}

	history, err := s.trips.History(ctx, driverOID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if history == nil {
		history = []models.TripHistory{}
	}
	return history, nil
}

// List returns one admin page of trips with the total count for the filter.
func (s *Service) List(ctx context.Context, status models.TripStatus, page, perPage int64) (*models.TripPage, error) {
	if status != "" && status != models.TripOngoing && status != models.TripCompleted {
		return nil, apperror.BadRequest("Invalid trip status filter.")
	}
	if page < 1 {
		page = 1
	}

	tripPage, err := s.trips.ListTrips(ctx, status, page, perPage)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return tripPage, nil
}
