package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Umesh-JNU/jeff-backend/internal/auth"
	"github.com/Umesh-JNU/jeff-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAuthMiddleware_Authenticate(t *testing.T) {
	authService, _ := auth.NewService()
	middleware := NewAuthMiddleware(authService)

	// Test successful authentication
	t.Run("valid token", func(t *testing.T) {
		user := &models.User{
			ID:       primitive.NewObjectID(),
			MobileNo: "9876543210",
			Role:     models.RoleDriver,
		}
		token, _ := authService.GenerateToken(user)

		req := httptest.NewRequest("GET", "/api/v1/trip/current", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		handlerCalled := false
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerCalled = true
			claims, ok := GetUserFromContext(r.Context())
			assert.True(t, ok)
			assert.Equal(t, user.MobileNo, claims.MobileNo)
			assert.Equal(t, user.Role, claims.Role)
		})

		middleware.Authenticate(handler).ServeHTTP(w, req)
		assert.True(t, handlerCalled)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	// Test missing authorization header
	t.Run("missing authorization header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/trip/current", nil)
		w := httptest.NewRecorder()

		handlerCalled := false
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerCalled = true
		})

		middleware.Authenticate(handler).ServeHTTP(w, req)
		assert.False(t, handlerCalled)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	// Test invalid token
	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/trip/current", nil)
		req.Header.Set("Authorization", "Bearer invalid-token")
		w := httptest.NewRecorder()

		handlerCalled := false
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerCalled = true
		})

		middleware.Authenticate(handler).ServeHTTP(w, req)
		assert.False(t, handlerCalled)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthMiddleware_RequireRole(t *testing.T) {
	authService, _ := auth.NewService()
	middleware := NewAuthMiddleware(authService)

	callWithRole := func(role models.Role, required models.Role) *httptest.ResponseRecorder {
		claims := &models.Claims{
			UserID:   primitive.NewObjectID().Hex(),
			MobileNo: "9876543210",
			Role:     role,
		}
		req := httptest.NewRequest("GET", "/api/v1/trip", nil)
		ctx := context.WithValue(req.Context(), UserContextKey, claims)
		w := httptest.NewRecorder()

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		middleware.RequireRole(required)(handler).ServeHTTP(w, req.WithContext(ctx))
		return w
	}

	t.Run("matching role", func(t *testing.T) {
		w := callWithRole(models.RoleDriver, models.RoleDriver)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("admin passes any role check", func(t *testing.T) {
		w := callWithRole(models.RoleAdmin, models.RoleDriver)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("insufficient role", func(t *testing.T) {
		w := callWithRole(models.RoleDriver, models.RoleAdmin)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing claims", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/trip", nil)
		w := httptest.NewRecorder()
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
		middleware.RequireRole(models.RoleAdmin)(handler).ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestGetUserFromContext(t *testing.T) {
	claims := &models.Claims{UserID: primitive.NewObjectID().Hex(), Role: models.RoleDriver}
	ctx := context.WithValue(context.Background(), UserContextKey, claims)

	got, ok := GetUserFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, claims, got)

	_, ok = GetUserFromContext(context.Background())
	assert.False(t, ok)
}
