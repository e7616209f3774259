package handlers

import (
	"context"
	"time"

	"github.com/Umesh-JNU/jeff-backend/internal/models"
	"github.com/Umesh-JNU/jeff-backend/internal/storage"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockUserCollection is a mock implementation of db.UserCollection
type MockUserCollection struct {
	mock.Mock
}

func (m *MockUserCollection) InsertUser(ctx context.Context, user models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserCollection) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserCollection) FindUserByMobile(ctx context.Context, mobileNo string) (*models.User, error) {
	args := m.Called(ctx, mobileNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserCollection) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserCollection) FindUsers(ctx context.Context, role models.Role, search string, page, perPage int64) ([]models.User, int64, error) {
	args := m.Called(ctx, role, search, page, perPage)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserCollection) UpdateUser(ctx context.Context, id string, update bson.M) (*models.User, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserCollection) MarkRegistered(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserCollection) DeleteUser(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserCollection) DeleteStaleUnregistered(ctx context.Context, olderThan time.Time) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserLogCollection is a mock implementation of db.UserLogCollection
type MockUserLogCollection struct {
	mock.Mock
}

func (m *MockUserLogCollection) OpenLog(ctx context.Context, userID primitive.ObjectID) (*models.UserLog, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserLog), args.Error(1)
}

func (m *MockUserLogCollection) CloseLatestLog(ctx context.Context, userID primitive.ObjectID) (*models.UserLog, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserLog), args.Error(1)
}

func (m *MockUserLogCollection) FindLogsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.UserLog, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserLog), args.Error(1)
}

// MockOTPGateway is a mock implementation of otp.Gateway
type MockOTPGateway struct {
	mock.Mock
}

func (m *MockOTPGateway) Send(ctx context.Context, phoneNo string) error {
	args := m.Called(ctx, phoneNo)
	return args.Error(0)
}

func (m *MockOTPGateway) Verify(ctx context.Context, phoneNo, code string) (bool, error) {
	args := m.Called(ctx, phoneNo, code)
	return args.Bool(0), args.Error(1)
}

// MockUploader is a mock implementation of storage.Uploader
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Store(ctx context.Context, file storage.File, dir string) (string, error) {
	args := m.Called(ctx, file, dir)
	return args.String(0), args.Error(1)
}

func (m *MockUploader) StoreMany(ctx context.Context, files []storage.File, dir string) ([]string, error) {
	args := m.Called(ctx, files, dir)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockTruckCollection is a mock implementation of db.TruckCollection
type MockTruckCollection struct {
	mock.Mock
}

func (m *MockTruckCollection) InsertTruck(ctx context.Context, truck models.Truck) error {
	args := m.Called(ctx, truck)
	return args.Error(0)
}

func (m *MockTruckCollection) FindTruckByID(ctx context.Context, id string) (*models.Truck, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Truck), args.Error(1)
}

func (m *MockTruckCollection) FindTrucks(ctx context.Context, search string, page, perPage int64) ([]models.Truck, int64, error) {
	args := m.Called(ctx, search, page, perPage)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Truck), args.Get(1).(int64), args.Error(2)
}

func (m *MockTruckCollection) UpdateTruck(ctx context.Context, id string, update bson.M) (*models.Truck, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Truck), args.Error(1)
}

func (m *MockTruckCollection) DeleteTruck(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTruckCollection) ClaimTruck(ctx context.Context, id primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTruckCollection) ReleaseTruck(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTripCollection is a mock implementation of db.TripCollection
type MockTripCollection struct {
	mock.Mock
}

func (m *MockTripCollection) InsertTrip(ctx context.Context, trip models.Trip) error {
	args := m.Called(ctx, trip)
	return args.Error(0)
}

func (m *MockTripCollection) FindTripByID(ctx context.Context, id string) (*models.Trip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trip), args.Error(1)
}

func (m *MockTripCollection) FindOngoingByCurrentDriver(ctx context.Context, driverID primitive.ObjectID) (*models.Trip, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trip), args.Error(1)
}

func (m *MockTripCollection) FindOngoingByDriver(ctx context.Context, driverID primitive.ObjectID) (*models.Trip, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trip), args.Error(1)
}

func (m *MockTripCollection) AppendDriverShift(ctx context.Context, id primitive.ObjectID, shift models.DriverShift) (*models.Trip, error) {
	args := m.Called(ctx, id, shift)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trip), args.Error(1)
}

func (m *MockTripCollection) UpdateOngoing(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Trip, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trip), args.Error(1)
}

func (m *MockTripCollection) HasOtherOngoingForTruck(ctx context.Context, truckID, exceptTrip primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, truckID, exceptTrip)
	return args.Bool(0), args.Error(1)
}

func (m *MockTripCollection) DeleteTrip(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTripCollection) FindTripDetail(ctx context.Context, id primitive.ObjectID) (*models.TripDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TripDetail), args.Error(1)
}

func (m *MockTripCollection) History(ctx context.Context, driverID primitive.ObjectID) ([]models.TripHistory, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TripHistory), args.Error(1)
}

func (m *MockTripCollection) ListTrips(ctx context.Context, status models.TripStatus, page, perPage int64) (*models.TripPage, error) {
	args := m.Called(ctx, status, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TripPage), args.Error(1)
}

// MockSubTripCollection is a mock implementation of db.SubTripCollection
type MockSubTripCollection struct {
	mock.Mock
}

func (m *MockSubTripCollection) InsertSubTrip(ctx context.Context, subTrip models.SubTrip) (*models.SubTrip, error) {
	args := m.Called(ctx, subTrip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubTrip), args.Error(1)
}

func (m *MockSubTripCollection) FindSubTripByTrip(ctx context.Context, tripID primitive.ObjectID) (*models.SubTrip, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubTrip), args.Error(1)
}

func (m *MockSubTripCollection) UpdateSubTrip(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.SubTrip, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubTrip), args.Error(1)
}

func (m *MockSubTripCollection) DeleteByTrip(ctx context.Context, tripID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, tripID)
	return args.Get(0).(int64), args.Error(1)
}

// MockLocationCollection is a mock implementation of db.LocationCollection
type MockLocationCollection struct {
	mock.Mock
}

func (m *MockLocationCollection) InsertLocation(ctx context.Context, location models.Location) (*models.Location, error) {
	args := m.Called(ctx, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Location), args.Error(1)
}

func (m *MockLocationCollection) FindLocationByID(ctx context.Context, id string) (*models.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Location), args.Error(1)
}

func (m *MockLocationCollection) FindLocations(ctx context.Context, search string, page, perPage int64) ([]models.Location, int64, error) {
	args := m.Called(ctx, search, page, perPage)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Location), args.Get(1).(int64), args.Error(2)
}

func (m *MockLocationCollection) UpdateLocation(ctx context.Context, id string, update bson.M) (*models.Location, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Location), args.Error(1)
}

func (m *MockLocationCollection) DeleteLocation(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMillCollection is a mock implementation of db.MillCollection
type MockMillCollection struct {
	mock.Mock
}

func (m *MockMillCollection) InsertMill(ctx context.Context, mill models.Mill) (*models.Mill, error) {
	args := m.Called(ctx, mill)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mill), args.Error(1)
}

func (m *MockMillCollection) FindMillByID(ctx context.Context, id string) (*models.Mill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mill), args.Error(1)
}

func (m *MockMillCollection) FindMills(ctx context.Context, search string, page, perPage int64) ([]models.Mill, int64, error) {
	args := m.Called(ctx, search, page, perPage)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Mill), args.Get(1).(int64), args.Error(2)
}

func (m *MockMillCollection) UpdateMill(ctx context.Context, id string, update bson.M) (*models.Mill, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mill), args.Error(1)
}

func (m *MockMillCollection) DeleteMill(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEnquiryCollection is a mock implementation of db.EnquiryCollection
type MockEnquiryCollection struct {
	mock.Mock
}

func (m *MockEnquiryCollection) InsertEnquiry(ctx context.Context, enquiry models.Enquiry) (*models.Enquiry, error) {
	args := m.Called(ctx, enquiry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Enquiry), args.Error(1)
}

func (m *MockEnquiryCollection) FindEnquiryByID(ctx context.Context, id string) (*models.Enquiry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Enquiry), args.Error(1)
}

func (m *MockEnquiryCollection) FindEnquiries(ctx context.Context, search string, page, perPage int64) ([]models.Enquiry, int64, error) {
	args := m.Called(ctx, search, page, perPage)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Enquiry), args.Get(1).(int64), args.Error(2)
}

func (m *MockEnquiryCollection) UpdateEnquiry(ctx context.Context, id string, update bson.M) (*models.Enquiry, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Enquiry), args.Error(1)
}

func (m *MockEnquiryCollection) DeleteEnquiry(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// passthroughTx runs the transaction body directly.
type passthroughTx struct{}

func (passthroughTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
