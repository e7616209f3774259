package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Umesh-JNU/jeff-backend/internal/apperror"
	"github.com/Umesh-JNU/jeff-backend/internal/auth"
	"github.com/Umesh-JNU/jeff-backend/internal/db"
	"github.com/Umesh-JNU/jeff-backend/internal/models"
	"github.com/Umesh-JNU/jeff-backend/internal/storage"
	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// staleUserAge is how long an unverified registration may linger before the
// admin listing sweeps it away.
const staleUserAge = 10 * time.Minute

// AdminHandler handles the admin portal: password login, user management,
// and direct image uploads.
type AdminHandler struct {
	authService *auth.Service
	users       db.UserCollection
	logs        db.UserLogCollection
	uploader    storage.Uploader
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(authService *auth.Service, users db.UserCollection, logs db.UserLogCollection, uploader storage.Uploader) *AdminHandler {
	return &AdminHandler{
		authService: authService,
		users:       users,
		logs:        logs,
		uploader:    uploader,
	}
}

// Login authenticates an admin with email and password.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.AdminLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, apperror.BadRequest("Please enter your email and password"))
		return
	}

	user, err := h.users.FindUserByEmail(r.Context(), req.Email)
	if err != nil {
		writeError(w, apperror.Unauthorized("Invalid email or password"))
		return
	}
	if !h.authService.CheckPassword(req.Password, user.PasswordHash) {
		writeError(w, apperror.Unauthorized("Invalid email or password"))
		return
	}
	if user.Role != models.RoleAdmin {
		writeError(w, apperror.Unauthorized("Only Admin can access the portal."))
		return
	}

	token, err := h.authService.GenerateToken(user)
	if err != nil {
		writeError(w, apperror.Internal(err))
		return
	}

	writeJSON(w, http.StatusOK, models.LoginResponse{Token: token, User: *user})
}

// ListUsers pages through users with an optional role filter and name
// search. Unverified registrations older than ten minutes are swept first
// so abandoned sign-ups never clutter the listing.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	if removed, err := h.users.DeleteStaleUnregistered(r.Context(), time.Now().Add(-staleUserAge)); err != nil {
		log.WithError(err).Warn("stale user sweep failed")
	} else if removed > 0 {
		log.WithField("removed", removed).Info("swept stale unregistered users")
	}

	query := r.URL.Query()
	users, total, err := h.users.FindUsers(
		r.Context(),
		models.Role(query.Get("role")),
		query.Get("keyword"),
		parseInt64(query.Get("currentPage"), 1),
		parseInt64(query.Get("resultPerPage"), 0),
	)
	if err != nil {
		writeError(w, apperror.Internal(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"users": users, "usersCount": total})
}

// GetUser fetches one user by id along with their check-in history.
func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.FindUserByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, apperror.NotFound("User not found."))
			return
		}
		writeError(w, apperror.BadRequest("Invalid User ID"))
		return
	}

	logs, err := h.logs.FindLogsByUser(r.Context(), user.ID)
	if err != nil {
		writeError(w, apperror.Internal(err))
		return
	}
	if logs == nil {
		logs = []models.UserLog{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user, "logs": logs})
}

// CreateSalePerson registers a sale-person account directly, already
// verified since no OTP round-trip happens for staff.
func (h *AdminHandler) CreateSalePerson(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.authService.ValidateMobile(req.MobileNo); err != nil {
		writeError(w, apperror.BadRequest(err.Error()))
		return
	}

	if _, err := h.users.FindUserByMobile(r.Context(), req.MobileNo); err == nil {
		writeError(w, apperror.Conflict("Already registered mobile number."))
		return
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		writeError(w, apperror.Internal(err))
		return
	}

	salePerson := models.User{
		ID:           primitive.NewObjectID(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		MobileNo:     req.MobileNo,
		CountryCode:  req.CountryCode,
		Role:         models.RoleSalePerson,
		IsRegistered: true,
	}
	if err := h.users.InsertUser(r.Context(), salePerson); err != nil {
		writeError(w, apperror.Internal(err))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"salePerson": salePerson})
}

// DeleteUser removes any user account by id.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.users.FindUserByID(r.Context(), id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, apperror.NotFound("User not found"))
			return
		}
		writeError(w, apperror.BadRequest("Invalid User ID"))
		return
	}

	if err := h.users.DeleteUser(r.Context(), id); err != nil {
		writeError(w, apperror.Internal(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "User Deleted successfully."})
}

// UploadImage stores a single image and returns its URL.
func (h *AdminHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, apperror.BadRequest("File size is too large"))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, apperror.BadRequest("Invalid File (Image/PDF)."))
		return
	}
	defer file.Close()

	upload, err := readImage(file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		writeError(w, err)
		return
	}

	url, err := h.uploader.Store(r.Context(), *upload, "uploads")
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"data": map[string]string{"location": url},
	})
}

// UploadImages stores multiple images and returns their URLs.
func (h *AdminHandler) UploadImages(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, apperror.BadRequest("File size is too large"))
		return
	}

	headers := r.MultipartForm.File["images"]
	if len(headers) == 0 {
		writeError(w, apperror.BadRequest("Invalid Image"))
		return
	}
	if len(headers) > 5 {
		writeError(w, apperror.BadRequest("File limit reached"))
		return
	}

	var files []storage.File
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			writeError(w, apperror.BadRequest("Invalid Image"))
			return
		}
		upload, err := readImage(file, header.Filename, header.Header.Get("Content-Type"))
		file.Close()
		if err != nil {
			writeError(w, err)
			return
		}
		files = append(files, *upload)
	}

	urls, err := h.uploader.StoreMany(r.Context(), files, "uploads")
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"data": map[string][]string{"location": urls},
	})
}

// readImage reads an uploaded part, rejecting non-image payloads.
func readImage(file io.Reader, name, contentType string) (*storage.File, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, apperror.BadRequest("File must be an image")
	}
	content, err := io.ReadAll(file)
	if err != nil {
		return nil, apperror.BadRequest("Failed to read file")
	}
	return &storage.File{Name: name, ContentType: contentType, Content: content}, nil
}
