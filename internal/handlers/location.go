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

// LocationHandler handles location reference-data requests.
type LocationHandler struct {
	locations db.LocationCollection
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(locations db.LocationCollection) *LocationHandler {
	return &LocationHandler{locations: locations}
}

// CreateLocation registers a named coordinate.
func (h *LocationHandler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string  `json:"name"`
		Lat  float64 `json:"lat"`
		Long float64 `json:"long"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Name == "" {
		writeError(w, apperror.BadRequest("Location name is required."))
		return
	}

	location, err := h.locations.InsertLocation(r.Context(), models.Location{
		Name: req.Name,
		Lat:  req.Lat,
		Long: req.Long,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			writeError(w, apperror.Conflict("Location with this name already exists."))
			return
		}
		writeError(w, apperror.Internal(err))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"location": location})
}

// GetLocation fetches one location.
func (h *LocationHandler) GetLocation(w http.ResponseWriter, r *http.Request) {
	location, err := h.locations.FindLocationByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, apperror.NotFound("Location not found."))
			return
		}
		writeError(w, apperror.BadRequest("Invalid Location ID"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"location": location})
}

// ListLocations lists locations newest-first with search and pagination.
func (h *LocationHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	locations, total, err := h.locations.FindLocations(
		r.Context(),
		query.Get("keyword"),
		parseInt64(query.Get("currentPage"), 1),
		parseInt64(query.Get("resultPerPage"), 0),
	)
	if err != nil {
		writeError(w, apperror.Internal(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"locations": locations, "locationCount": total})
}

// UpdateLocation renames or moves a location.
func (h *LocationHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string   `json:"name"`
		Lat  *float64 `json:"lat"`
		Long *float64 `json:"long"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	update := bson.M{}
	if req.Name != "" {
		update["name"] = req.Name
	}
	if req.Lat != nil {
		update["lat"] = *req.Lat
	}
	if req.Long != nil {
		update["long"] = *req.Long
	}

	location, err := h.locations.UpdateLocation(r.Context(), chi.URLParam(r, "id"), update)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, apperror.NotFound("Location not found."))
			return
		}
		writeError(w, apperror.BadRequest("Invalid Location ID"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"location": location})
}

// DeleteLocation removes a location record.
func (h *LocationHandler) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	if err := h.locations.DeleteLocation(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, apperror.NotFound("Location not found."))
			return
		}
		writeError(w, apperror.BadRequest("Invalid Location ID"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Location Deleted successfully."})
}
