package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/Umesh-JNU/jeff-backend/internal/apperror"
	"github.com/Umesh-JNU/jeff-backend/internal/db"
	"github.com/Umesh-JNU/jeff-backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MillHandler handles mill reference-data requests.
type MillHandler struct {
	mills     db.MillCollection
	locations db.LocationCollection
	tx        db.TxRunner
}

// NewMillHandler creates a new mill handler
func NewMillHandler(mills db.MillCollection, locations db.LocationCollection, tx db.TxRunner) *MillHandler {
	return &MillHandler{mills: mills, locations: locations, tx: tx}
}

// CreateMill registers a mill along with its address location. Both inserts
// run in one transaction so a mill never exists without an address.
func (h *MillHandler) CreateMill(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MillName string  `json:"mill_name"`
		Name     string  `json:"name"`
		Lat      float64 `json:"lat"`
		Long     float64 `json:"long"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.MillName == "" {
		writeError(w, apperror.BadRequest("Mill name is required."))
		return
	}

	var mill *models.Mill
	err := h.tx.WithTransaction(r.Context(), func(ctx context.Context) error {
		location, err := h.locations.InsertLocation(ctx, models.Location{
			Name: req.Name,
			Lat:  req.Lat,
			Long: req.Long,
		})
		if err != nil {
			return apperror.Internal(err)
		}

		mill, err = h.mills.InsertMill(ctx, models.Mill{
			MillName: req.MillName,
			Address:  location.ID,
		})
		if err != nil {
			return apperror.Internal(err)
		}
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"mill": mill})
}

// GetMill fetches one mill.
func (h *MillHandler) GetMill(w http.ResponseWriter, r *http.Request) {
	mill, err := h.mills.FindMillByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, apperror.NotFound("Mill not found."))
			return
		}
		writeError(w, apperror.BadRequest("Invalid mill ID"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"mill": mill})
}

// ListMills lists mills newest-first with search and pagination.
func (h *MillHandler) ListMills(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	mills, total, err := h.mills.FindMills(
		r.Context(),
		query.Get("keyword"),
		parseInt64(query.Get("currentPage"), 1),
		parseInt64(query.Get("resultPerPage"), 0),
	)
	if err != nil {
		writeError(w, apperror.Internal(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"mills": mills, "millCount": total})
}

// UpdateMill renames a mill.
func (h *MillHandler) UpdateMill(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MillName string `json:"mill_name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	update := bson.M{}
	if req.MillName != "" {
		update["mill_name"] = req.MillName
	}

	mill, err := h.mills.UpdateMill(r.Context(), chi.URLParam(r, "id"), update)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, apperror.NotFound("Mill not found."))
			return
		}
		writeError(w, apperror.BadRequest("Invalid mill ID"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"mill": mill})
}

// DeleteMill removes a mill record.
func (h *MillHandler) DeleteMill(w http.ResponseWriter, r *http.Request) {
	if err := h.mills.DeleteMill(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, apperror.NotFound("Mill not found."))
			return
		}
		writeError(w, apperror.BadRequest("Invalid mill ID"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Mill Deleted successfully."})
}
