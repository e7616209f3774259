package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/Umesh-JNU/jeff-backend/internal/apperror"
	"github.com/Umesh-JNU/jeff-backend/internal/auth"
	"github.com/Umesh-JNU/jeff-backend/internal/db"
	"github.com/Umesh-JNU/jeff-backend/internal/middleware"
	"github.com/Umesh-JNU/jeff-backend/internal/models"
	"github.com/Umesh-JNU/jeff-backend/internal/otp"
	"github.com/Umesh-JNU/jeff-backend/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const maxUploadBytes = 12 << 20

// UserHandler handles registration, OTP login, profile, and the
// check-in/check-out log.
type UserHandler struct {
	authService *auth.Service
	users       db.UserCollection
	userLogs    db.UserLogCollection
	otpGateway  otp.Gateway
	uploader    storage.Uploader
	tx          db.TxRunner
}

// NewUserHandler creates a new user handler
func NewUserHandler(authService *auth.Service, users db.UserCollection, userLogs db.UserLogCollection, otpGateway otp.Gateway, uploader storage.Uploader, tx db.TxRunner) *UserHandler {
	return &UserHandler{
		authService: authService,
		users:       users,
		userLogs:    userLogs,
		otpGateway:  otpGateway,
		uploader:    uploader,
		tx:          tx,
	}
}

// Register creates an unverified user and dispatches an OTP. The insert and
// the OTP dispatch run in one transaction: if the provider rejects the
// number, no user record survives.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.authService.ValidateMobile(req.MobileNo); err != nil {
		writeError(w, apperror.BadRequest(err.Error()))
		return
	}
	if req.CountryCode == "" {
		writeError(w, apperror.BadRequest("Country code is required."))
		return
	}
	if req.Role == "" {
		req.Role = models.RoleDriver
	}
	if !models.IsValidRole(req.Role) || req.Role == models.RoleAdmin {
		writeError(w, apperror.BadRequest("Invalid role"))
		return
	}

	if _, err := h.users.FindUserByMobile(r.Context(), req.MobileNo); err == nil {
		writeError(w, apperror.Conflict("Already registered mobile number."))
		return
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		writeError(w, apperror.Internal(err))
		return
	}

	user := models.User{
		ID:          primitive.NewObjectID(),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		MobileNo:    req.MobileNo,
		CountryCode: req.CountryCode,
		Role:        req.Role,
	}

	err := h.tx.WithTransaction(r.Context(), func(ctx context.Context) error {
		if err := h.users.InsertUser(ctx, user); err != nil {
			return apperror.Internal(err)
		}
		return h.otpGateway.Send(ctx, user.PhoneNumber())
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "OTP sent successfully"})
}

// Login re-sends an OTP to a registered mobile number.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.MobileNo == "" {
		writeError(w, apperror.BadRequest("Please enter your mobile number"))
		return
	}

	user, err := h.findUserByMobile(r, req.MobileNo)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.otpGateway.Send(r.Context(), user.PhoneNumber()); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "OTP sent successfully"})
}

// ResendOTP re-dispatches the code; identical contract to Login.
func (h *UserHandler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	h.Login(w, r)
}

// VerifyOTP checks the code, marks the user registered, and issues a token.
func (h *UserHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyOTPRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Code == "" {
		writeError(w, apperror.BadRequest("Please send OTP"))
		return
	}
	if req.MobileNo == "" {
		writeError(w, apperror.BadRequest("Mobile Number is required."))
		return
	}

	user, err := h.findUserByMobile(r, req.MobileNo)
	if err != nil {
		writeError(w, err)
		return
	}

	valid, err := h.otpGateway.Verify(r.Context(), user.PhoneNumber(), req.Code)
	if err != nil {
		writeError(w, err)
		return
	}
	if !valid {
		writeError(w, apperror.BadRequest("Invalid / Expired OTP."))
		return
	}

	if !user.IsRegistered {
		if err := h.users.MarkRegistered(r.Context(), user.ID.Hex()); err != nil {
			writeError(w, apperror.Internal(err))
			return
		}
		user.IsRegistered = true
	}

	token, err := h.authService.GenerateToken(user)
	if err != nil {
		writeError(w, apperror.Internal(err))
		return
	}

	writeJSON(w, http.StatusOK, models.LoginResponse{
		Token:   token,
		User:    *user,
		Message: "OTP verified successfully",
	})
}

// GetProfile returns the current user's profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("User context not found"))
		return
	}

	user, err := h.users.FindUserByID(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, apperror.NotFound("User Not Found"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// UpdateProfile updates name and email, optionally replacing the profile
// image through the upload gateway. Mobile number and password are never
// writable here.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("User context not found"))
		return
	}

	update := bson.M{}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeError(w, apperror.BadRequest("File size is too large"))
			return
		}
		for _, field := range []string{"firstname", "lastname", "email"} {
			if v := r.FormValue(field); v != "" {
				update[field] = v
			}
		}

		if file, header, err := r.FormFile("profile_img"); err == nil {
			defer file.Close()
			if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
				writeError(w, apperror.BadRequest("File must be an image"))
				return
			}
			content, err := io.ReadAll(file)
			if err != nil {
				writeError(w, apperror.BadRequest("Failed to read file"))
				return
			}
			url, err := h.uploader.Store(r.Context(), storage.File{
				Name:        header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Content:     content,
			}, "jeff")
			if err != nil {
				writeError(w, err)
				return
			}
			update["profile_url"] = url
		}
	} else {
		var body struct {
			FirstName string `json:"firstname"`
			LastName  string `json:"lastname"`
			Email     string `json:"email"`
		}
		if err := decodeJSON(r, &body); err != nil {
			writeError(w, err)
			return
		}
		if body.FirstName != "" {
			update["firstname"] = body.FirstName
		}
		if body.LastName != "" {
			update["lastname"] = body.LastName
		}
		if body.Email != "" {
			update["email"] = body.Email
		}
	}

	user, err := h.users.UpdateUser(r.Context(), claims.UserID, update)
	if err != nil {
		writeError(w, apperror.Internal(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Profile Updated Successfully.",
		"user":    user,
	})
}

// UpdatePassword changes the admin portal password.
func (h *UserHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("User context not found"))
		return
	}

	var req struct {
		CurPassword     string `json:"curPassword"`
		NewPassword     string `json:"newPassword"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if req.CurPassword == "" {
		writeError(w, apperror.BadRequest("Current Password is required."))
		return
	}
	if req.NewPassword == "" || req.ConfirmPassword == "" {
		writeError(w, apperror.BadRequest("Password or Confirm Password is required."))
		return
	}
	if req.NewPassword != req.ConfirmPassword {
		writeError(w, apperror.BadRequest("Please confirm your password."))
		return
	}
	if err := h.authService.ValidatePassword(req.NewPassword); err != nil {
		writeError(w, apperror.BadRequest(err.Error()))
		return
	}

	user, err := h.users.FindUserByID(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, apperror.NotFound("User Not Found."))
		return
	}

	if !h.authService.CheckPassword(req.CurPassword, user.PasswordHash) {
		writeError(w, apperror.BadRequest("Current Password is invalid."))
		return
	}

	hash, err := h.authService.HashPassword(req.NewPassword)
	if err != nil {
		writeError(w, apperror.Internal(err))
		return
	}

	if _, err := h.users.UpdateUser(r.Context(), claims.UserID, bson.M{"password": hash}); err != nil {
		writeError(w, apperror.Internal(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Password Updated Successfully."})
}

// DeleteAccount removes the calling user.
func (h *UserHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("User context not found"))
		return
	}

	if err := h.users.DeleteUser(r.Context(), claims.UserID); err != nil {
		writeError(w, apperror.Internal(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "User Deleted successfully."})
}

// CheckIn opens a work span for the calling driver.
func (h *UserHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
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

	userLog, err := h.userLogs.OpenLog(r.Context(), userOID)
	if err != nil {
		writeError(w, apperror.Internal(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"log": userLog})
}

// CheckOut closes the caller's latest open work span.
func (h *UserHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
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

	userLog, err := h.userLogs.CloseLatestLog(r.Context(), userOID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeError(w, apperror.NotFound("No open check-in found."))
			return
		}
		writeError(w, apperror.Internal(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"log": userLog})
}

// findUserByMobile resolves a user or reports the standard not-registered
// error.
func (h *UserHandler) findUserByMobile(r *http.Request, mobileNo string) (*models.User, error) {
	user, err := h.users.FindUserByMobile(r.Context(), mobileNo)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("User with mobile number is not registered.")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}
