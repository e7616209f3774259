package handlers

import (
	"errors"
	"net/http"

	"github.com/Umesh-JNU/jeff-backend/internal/apperror"
	"github.com/Umesh-JNU/jeff-backend/internal/db"
	"github.com/Umesh-JNU/jeff-backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// TruckHandler handles truck reference-data requests. Availability is
// intentionally absent from the update surface; only the trip lifecycle
// flips it.
type TruckHandler struct {
	trucks db.TruckCollection
}

// NewTruckHandler creates a new truck handler
func NewTruckHandler(trucks db.TruckCollection) *TruckHandler {
	return &TruckHandler{trucks: trucks}
}

// CreateTruck registers a new truck, available by default.
func (h *TruckHandler) CreateTruck(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TruckID string `json:"truck_id"`
		PlateNo string `json:"plate_no"`
		Name    string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.TruckID == "" || req.PlateNo == "" {
		writeError(w, apperror.BadRequest("Truck ID and plate number are required."))
		return
	}

	truck := models.Truck{
		TruckID: req.TruckID,
		PlateNo: req.PlateNo,
		Name:    req.Name,
	}
	if err := h.trucks.InsertTruck(r.Context(), truck); err != nil {
		writeError(w, apperror.Internal(err))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"truck": truck})
}

// GetTruck fetches one truck.
func (h *TruckHandler) GetTruck(w http.ResponseWriter, r *http.Request) {
	truck, err := h.trucks.FindTruckByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, apperror.NotFound("Truck not found."))
			return
		}
		writeError(w, apperror.BadRequest("Invalid Truck ID"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"truck": truck})
}

// ListTrucks lists trucks newest-first with search and pagination.
func (h *TruckHandler) ListTrucks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	trucks, total, err := h.trucks.FindTrucks(
		r.Context(),
		query.Get("keyword"),
		parseInt64(query.Get("currentPage"), 1),
		parseInt64(query.Get("resultPerPage"), 0),
	)
	if err != nil {
		writeError(w, apperror.Internal(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"trucks": trucks, "truckCount": total})
}

// UpdateTruck updates identification fields on a truck.
func (h *TruckHandler) UpdateTruck(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TruckID string `json:"truck_id"`
		PlateNo string `json:"plate_no"`
		Name    string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	update := bson.M{}
	if req.TruckID != "" {
		update["truck_id"] = req.TruckID
	}
	if req.PlateNo != "" {
		update["plate_no"] = req.PlateNo
	}
	if req.Name != "" {
		update["name"] = req.Name
	}

	truck, err := h.trucks.UpdateTruck(r.Context(), chi.URLParam(r, "id"), update)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, apperror.NotFound("Truck not found."))
			return
		}
		writeError(w, apperror.BadRequest("Invalid Truck ID"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"truck": truck})
}

// DeleteTruck removes a truck record.
func (h *TruckHandler) DeleteTruck(w http.ResponseWriter, r *http.Request) {
	if err := h.trucks.DeleteTruck(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, apperror.NotFound("Truck not found."))
			return
		}
		writeError(w, apperror.BadRequest("Invalid Truck ID"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Truck Deleted successfully."})
}
