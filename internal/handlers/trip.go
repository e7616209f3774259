package handlers

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/Umesh-JNU/jeff-backend/internal/apperror"
	"github.com/Umesh-JNU/jeff-backend/internal/middleware"
	"github.com/Umesh-JNU/jeff-backend/internal/models"
	"github.com/Umesh-JNU/jeff-backend/internal/storage"
	"github.com/Umesh-JNU/jeff-backend/internal/trips"
	"github.com/go-chi/chi/v5"
)

// TripHandler exposes the trip lifecycle engine over HTTP.
type TripHandler struct {
	service *trips.Service
}

// NewTripHandler creates a new trip handler
func NewTripHandler(service *trips.Service) *TripHandler {
	return &TripHandler{service: service}
}

// CreateTrip opens a trip for the authenticated driver.
func (h *TripHandler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("User context not found"))
		return
	}

	var req models.CreateTripRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	trip, err := h.service.Create(r.Context(), claims.UserID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"trip": trip})
}

// GetCurrentTrip returns the caller's on-going trip, or a specific trip the
// caller participated in when ?id= is supplied.
func (h *TripHandler) GetCurrentTrip(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("User context not found"))
		return
	}

	trip, err := h.service.CurrentTrip(r.Context(), claims.UserID, r.URL.Query().Get("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"trip": trip})
}

// UpdateTrip records a milestone on an on-going trip; the complete
// milestone finishes the trip and frees its truck.
func (h *TripHandler) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	var milestone models.Milestone
	if err := decodeJSON(r, &milestone); err != nil {
		writeError(w, err)
		return
	}

	trip, err := h.service.ApplyTripMilestone(r.Context(), chi.URLParam(r, "id"), milestone)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"trip": trip})
}

// ShiftChange hands the trip to the authenticated (incoming) driver.
func (h *TripHandler) ShiftChange(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("User context not found"))
		return
	}

	trip, err := h.service.ShiftChange(r.Context(), chi.URLParam(r, "id"), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"trip": trip})
}

// CreateSubTrip starts the second leg of a trip. Accepts multipart form
// data so slip documents can ride along; plain JSON works when there are no
// attachments.
func (h *TripHandler) CreateSubTrip(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSubTripRequest
	var files []storage.File

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeError(w, apperror.BadRequest("File size is too large"))
			return
		}
		req = models.CreateSubTripRequest{
			Trip:       r.FormValue("trip"),
			Mill:       r.FormValue("mill_id"),
			Source:     r.FormValue("source"),
			Dest:       r.FormValue("dest"),
			ProdDetail: r.FormValue("prod_detail"),
			SlipID:     r.FormValue("slip_id"),
			BlockName:  r.FormValue("block_name"),
			BlockNo:    r.FormValue("block_no"),
		}

		if r.MultipartForm != nil {
			if headers := r.MultipartForm.File["docs"]; len(headers) > 5 {
				writeError(w, apperror.BadRequest("File limit reached"))
				return
			} else {
				for _, header := range headers {
					file, err := header.Open()
					if err != nil {
						writeError(w, apperror.BadRequest("Failed to read file"))
						return
					}
					content, err := io.ReadAll(file)
					file.Close()
					if err != nil {
						writeError(w, apperror.BadRequest("Failed to read file"))
						return
					}
					files = append(files, storage.File{
						Name:        header.Filename,
						ContentType: header.Header.Get("Content-Type"),
						Content:     content,
					})
				}
			}
		}
	} else {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
	}

	subTrip, err := h.service.CreateSubTrip(r.Context(), req, files)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"subTrip": subTrip})
}

// UpdateSubTrip records an unload milestone or weighbridge readings.
func (h *TripHandler) UpdateSubTrip(w http.ResponseWriter, r *http.Request) {
	var milestone models.Milestone
	if err := decodeJSON(r, &milestone); err != nil {
		writeError(w, err)
		return
	}

	subTrip, err := h.service.ApplySubTripMilestone(r.Context(), chi.URLParam(r, "id"), milestone)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"subTrip": subTrip})
}

// DeleteTrip removes a trip, its sub-trips, and re-evaluates the truck.
func (h *TripHandler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Trip Deleted successfully."})
}

// GetHistory lists the caller's completed trips with locations resolved.
func (h *TripHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("User context not found"))
		return
	}

	history, err := h.service.History(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"trips": history})
}

// ListTrips returns one admin page of trips plus the filtered total.
func (h *TripHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := parseInt64(query.Get("currentPage"), 1)
	perPage := parseInt64(query.Get("resultPerPage"), 0)

	tripPage, err := h.service.List(r.Context(), models.TripStatus(query.Get("status")), page, perPage)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tripPage)
}

func parseInt64(s string, fallback int64) int64 {
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
