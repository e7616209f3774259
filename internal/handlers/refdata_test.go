package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Umesh-JNU/jeff-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestTruckHandler_CreateTruck(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		trucks := new(MockTruckCollection)
		handler := NewTruckHandler(trucks)

		trucks.On("InsertTruck", mock.Anything, mock.MatchedBy(func(truck models.Truck) bool {
			return truck.TruckID == "TRK-12" && truck.PlateNo == "MH12AB1234"
		})).Return(nil)

		req := jsonRequest("POST", "/api/v1/truck", map[string]string{
			"truck_id": "TRK-12",
			"plate_no": "MH12AB1234",
			"name":     "Tata 407",
		})
		w := httptest.NewRecorder()
		handler.CreateTruck(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("missing plate number", func(t *testing.T) {
		trucks := new(MockTruckCollection)
		handler := NewTruckHandler(trucks)

		req := jsonRequest("POST", "/api/v1/truck", map[string]string{"truck_id": "TRK-12"})
		w := httptest.NewRecorder()
		handler.CreateTruck(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		trucks.AssertNotCalled(t, "InsertTruck", mock.Anything, mock.Anything)
	})
}

func TestTruckHandler_GetTruck_NotFound(t *testing.T) {
	trucks := new(MockTruckCollection)
	handler := NewTruckHandler(trucks)

	truckID := primitive.NewObjectID()
	trucks.On("FindTruckByID", mock.Anything, truckID.Hex()).
		Return(nil, mongo.ErrNoDocuments)

	req := withURLParam(httptest.NewRequest("GET", "/api/v1/truck/"+truckID.Hex(), nil), "id", truckID.Hex())
	w := httptest.NewRecorder()
	handler.GetTruck(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Truck not found.", errorMessage(t, w))
}

func TestLocationHandler_CreateLocation(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		locations := new(MockLocationCollection)
		handler := NewLocationHandler(locations)

		locations.On("InsertLocation", mock.Anything, mock.MatchedBy(func(loc models.Location) bool {
			return loc.Name == "Field 12" && loc.Lat == 18.52 && loc.Long == 73.85
		})).Return(&models.Location{ID: primitive.NewObjectID(), Name: "Field 12", Lat: 18.52, Long: 73.85}, nil)

		req := jsonRequest("POST", "/api/v1/location", map[string]interface{}{
			"name": "Field 12",
			"lat":  18.52,
			"long": 73.85,
		})
		w := httptest.NewRecorder()
		handler.CreateLocation(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "Field 12")
	})

	t.Run("duplicate name", func(t *testing.T) {
		locations := new(MockLocationCollection)
		handler := NewLocationHandler(locations)

		dupErr := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
		locations.On("InsertLocation", mock.Anything, mock.Anything).Return(nil, dupErr)

		req := jsonRequest("POST", "/api/v1/location", map[string]interface{}{"name": "Field 12"})
		w := httptest.NewRecorder()
		handler.CreateLocation(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Location with this name already exists.", errorMessage(t, w))
	})

	t.Run("missing name", func(t *testing.T) {
		locations := new(MockLocationCollection)
		handler := NewLocationHandler(locations)

		req := jsonRequest("POST", "/api/v1/location", map[string]interface{}{"lat": 18.52})
		w := httptest.NewRecorder()
		handler.CreateLocation(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestMillHandler_CreateMill(t *testing.T) {
	t.Run("mill gets its address in one transaction", func(t *testing.T) {
		mills := new(MockMillCollection)
		locations := new(MockLocationCollection)
		handler := NewMillHandler(mills, locations, passthroughTx{})

		addressID := primitive.NewObjectID()
		locations.On("InsertLocation", mock.Anything, mock.Anything).
			Return(&models.Location{ID: addressID, Name: "Mill Gate"}, nil)
		mills.On("InsertMill", mock.Anything, mock.MatchedBy(func(mill models.Mill) bool {
			return mill.MillName == "Shree Sugar" && mill.Address == addressID
		})).Return(&models.Mill{ID: primitive.NewObjectID(), MillName: "Shree Sugar", Address: addressID}, nil)

		req := jsonRequest("POST", "/api/v1/mill", map[string]interface{}{
			"mill_name": "Shree Sugar",
			"name":      "Mill Gate",
			"lat":       18.4,
			"long":      73.9,
		})
		w := httptest.NewRecorder()
		handler.CreateMill(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "Shree Sugar")
	})

	t.Run("address insert failure aborts mill creation", func(t *testing.T) {
		mills := new(MockMillCollection)
		locations := new(MockLocationCollection)
		handler := NewMillHandler(mills, locations, passthroughTx{})

		locations.On("InsertLocation", mock.Anything, mock.Anything).
			Return(nil, assert.AnError)

		req := jsonRequest("POST", "/api/v1/mill", map[string]interface{}{"mill_name": "Shree Sugar"})
		w := httptest.NewRecorder()
		handler.CreateMill(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		mills.AssertNotCalled(t, "InsertMill", mock.Anything, mock.Anything)
	})

	t.Run("missing mill name", func(t *testing.T) {
		mills := new(MockMillCollection)
		handler := NewMillHandler(mills, new(MockLocationCollection), passthroughTx{})

		req := jsonRequest("POST", "/api/v1/mill", map[string]interface{}{})
		w := httptest.NewRecorder()
		handler.CreateMill(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
