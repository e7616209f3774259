package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Umesh-JNU/jeff-backend/internal/apperror"
	"github.com/Umesh-JNU/jeff-backend/internal/db"
	"github.com/Umesh-JNU/jeff-backend/internal/middleware"
	"github.com/Umesh-JNU/jeff-backend/internal/models"
	"github.com/Umesh-JNU/jeff-backend/internal/storage"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// EnquiryHandler handles user-raised support enquiries and their admin
// review surface.
type EnquiryHandler struct {
	enquiries db.EnquiryCollection
	uploader  storage.Uploader
}

// NewEnquiryHandler creates a new enquiry handler
func NewEnquiryHandler(enquiries db.EnquiryCollection, uploader storage.Uploader) *EnquiryHandler {
	return &EnquiryHandler{enquiries: enquiries, uploader: uploader}
}

// CreateEnquiry files an enquiry for the authenticated user. Accepts
// multipart form data so a photo can ride along; plain JSON works when
// there is no attachment.
func (h *EnquiryHandler) CreateEnquiry(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("User context not found"))
		return
	}
	userOID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		writeError(w, apperror.BadRequest("Invalid User ID"))
		return
	}

	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		MobileNo string `json:"mobile_no"`
		Message  string `json:"message"`
	}
	var image string

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeError(w, apperror.BadRequest("File size is too large"))
			return
		}
		req.Name = r.FormValue("name")
		req.Email = r.FormValue("email")
		req.MobileNo = r.FormValue("mobile_no")
		req.Message = r.FormValue("message")

		if file, header, err := r.FormFile("image"); err == nil {
			upload, err := readImage(file, header.Filename, header.Header.Get("Content-Type"))
			file.Close()
			if err != nil {
				writeError(w, err)
				return
			}
			image, err = h.uploader.Store(r.Context(), *upload, "enquiry")
			if err != nil {
				writeError(w, err)
				return
			}
		}
	} else if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if req.Email == "" {
		writeError(w, apperror.BadRequest("Email is required."))
		return
	}
	if req.Message == "" {
		writeError(w, apperror.BadRequest("Message is required."))
		return
	}

	enquiry, err := h.enquiries.InsertEnquiry(r.Context(), models.Enquiry{
		User:     userOID,
		Name:     req.Name,
		Email:    req.Email,
		MobileNo: req.MobileNo,
		Message:  req.Message,
		Image:    image,
	})
	if err != nil {
		writeError(w, apperror.Internal(err))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"enquiry": enquiry})
}

// ListEnquiries lists enquiries newest-first with email search and
// pagination.
func (h *EnquiryHandler) ListEnquiries(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	enquiries, total, err := h.enquiries.FindEnquiries(
		r.Context(),
		query.Get("keyword"),
		parseInt64(query.Get("currentPage"), 1),
		parseInt64(query.Get("resultPerPage"), 0),
	)
	if err != nil {
		writeError(w, apperror.Internal(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"enquiries": enquiries, "enquiryCount": total})
}

// GetEnquiry fetches one enquiry.
func (h *EnquiryHandler) GetEnquiry(w http.ResponseWriter, r *http.Request) {
	enquiry, err := h.enquiries.FindEnquiryByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, apperror.NotFound("Enquiry not found."))
			return
		}
		writeError(w, apperror.BadRequest("Invalid Enquiry ID"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"enquiry": enquiry})
}

// UpdateEnquiry amends the text fields of an enquiry.
func (h *EnquiryHandler) UpdateEnquiry(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	update := bson.M{}
	if req.Name != "" {
		update["name"] = req.Name
	}
	if req.Email != "" {
		update["email"] = req.Email
	}
	if req.Message != "" {
		update["message"] = req.Message
	}

	enquiry, err := h.enquiries.UpdateEnquiry(r.Context(), chi.URLParam(r, "id"), update)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, apperror.NotFound("Enquiry not found."))
			return
		}
		writeError(w, apperror.BadRequest("Invalid Enquiry ID"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"enquiry": enquiry})
}

// DeleteEnquiry removes an enquiry record.
func (h *EnquiryHandler) DeleteEnquiry(w http.ResponseWriter, r *http.Request) {
	if err := h.enquiries.DeleteEnquiry(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, apperror.NotFound("Enquiry not found."))
			return
		}
		writeError(w, apperror.BadRequest("Invalid Enquiry ID"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Enquiry Deleted successfully."})
}
