package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/Umesh-JNU/jeff-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func newEnquiryHandler() (*EnquiryHandler, *MockEnquiryCollection, *MockUploader) {
	enquiries := new(MockEnquiryCollection)
	uploader := new(MockUploader)
	return NewEnquiryHandler(enquiries, uploader), enquiries, uploader
}

func TestEnquiryHandler_CreateEnquiry(t *testing.T) {
	userID := primitive.NewObjectID()

	t.Run("json body", func(t *testing.T) {
		handler, enquiries, uploader := newEnquiryHandler()

		enquiries.On("InsertEnquiry", mock.Anything, mock.MatchedBy(func(e models.Enquiry) bool {
			return e.User == userID && e.Email == "ravi@example.com" && e.Message == "App crashes on login" && e.Image == ""
		})).Return(&models.Enquiry{ID: primitive.NewObjectID(), User: userID, Email: "ravi@example.com"}, nil)

		req := jsonRequest("POST", "/api/v1/enquiry", map[string]string{
			"name":    "Ravi",
			"email":   "ravi@example.com",
			"message": "App crashes on login",
		})
		w := httptest.NewRecorder()
		handler.CreateEnquiry(w, authedRequest(req, userID.Hex(), models.RoleDriver))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "ravi@example.com")
		uploader.AssertNotCalled(t, "Store", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("multipart with image", func(t *testing.T) {
		handler, enquiries, uploader := newEnquiryHandler()

		uploader.On("Store", mock.Anything, mock.AnythingOfType("storage.File"), "enquiry").
			Return("https://bucket/enquiry/photo.jpg", nil)
		enquiries.On("InsertEnquiry", mock.Anything, mock.MatchedBy(func(e models.Enquiry) bool {
			return e.Image == "https://bucket/enquiry/photo.jpg" && e.Email == "ravi@example.com"
		})).Return(&models.Enquiry{ID: primitive.NewObjectID()}, nil)

		req := multipartEnquiryRequest(t, map[string]string{
			"email":   "ravi@example.com",
			"message": "Broken weighbridge slip",
		}, "photo.jpg")
		w := httptest.NewRecorder()
		handler.CreateEnquiry(w, authedRequest(req, userID.Hex(), models.RoleDriver))

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("missing message", func(t *testing.T) {
		handler, enquiries, _ := newEnquiryHandler()

		req := jsonRequest("POST", "/api/v1/enquiry", map[string]string{"email": "ravi@example.com"})
		w := httptest.NewRecorder()
		handler.CreateEnquiry(w, authedRequest(req, userID.Hex(), models.RoleDriver))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Message is required.", errorMessage(t, w))
		enquiries.AssertNotCalled(t, "InsertEnquiry", mock.Anything, mock.Anything)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		handler, _, _ := newEnquiryHandler()

		req := jsonRequest("POST", "/api/v1/enquiry", map[string]string{"email": "x@y.z", "message": "hi"})
		w := httptest.NewRecorder()
		handler.CreateEnquiry(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestEnquiryHandler_ListEnquiries(t *testing.T) {
	handler, enquiries, _ := newEnquiryHandler()

	enquiries.On("FindEnquiries", mock.Anything, "ravi", int64(2), int64(10)).
		Return([]models.Enquiry{{ID: primitive.NewObjectID(), Email: "ravi@example.com"}}, int64(11), nil)

	req := httptest.NewRequest("GET", "/api/v1/enquiry?keyword=ravi&currentPage=2&resultPerPage=10", nil)
	w := httptest.NewRecorder()
	handler.ListEnquiries(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"enquiryCount":11`)
}

func TestEnquiryHandler_GetEnquiry(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		handler, enquiries, _ := newEnquiryHandler()

		enquiryID := primitive.NewObjectID()
		enquiries.On("FindEnquiryByID", mock.Anything, enquiryID.Hex()).
			Return(&models.Enquiry{ID: enquiryID, Email: "ravi@example.com"}, nil)

		req := withURLParam(httptest.NewRequest("GET", "/api/v1/enquiry/"+enquiryID.Hex(), nil), "id", enquiryID.Hex())
		w := httptest.NewRecorder()
		handler.GetEnquiry(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		handler, enquiries, _ := newEnquiryHandler()

		enquiryID := primitive.NewObjectID()
		enquiries.On("FindEnquiryByID", mock.Anything, enquiryID.Hex()).
			Return(nil, mongo.ErrNoDocuments)

		req := withURLParam(httptest.NewRequest("GET", "/api/v1/enquiry/"+enquiryID.Hex(), nil), "id", enquiryID.Hex())
		w := httptest.NewRecorder()
		handler.GetEnquiry(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Enquiry not found.", errorMessage(t, w))
	})
}

func TestEnquiryHandler_UpdateEnquiry(t *testing.T) {
	handler, enquiries, _ := newEnquiryHandler()

	enquiryID := primitive.NewObjectID()
	enquiries.On("UpdateEnquiry", mock.Anything, enquiryID.Hex(), mock.MatchedBy(func(update bson.M) bool {
		_, hasName := update["name"]
		return update["message"] == "Resolved over the phone" && !hasName
	})).Return(&models.Enquiry{ID: enquiryID, Message: "Resolved over the phone"}, nil)

	req := withURLParam(jsonRequest("PUT", "/api/v1/enquiry/"+enquiryID.Hex(), map[string]string{
		"message": "Resolved over the phone",
	}), "id", enquiryID.Hex())
	w := httptest.NewRecorder()
	handler.UpdateEnquiry(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEnquiryHandler_DeleteEnquiry(t *testing.T) {
	t.Run("existing enquiry", func(t *testing.T) {
		handler, enquiries, _ := newEnquiryHandler()

		enquiryID := primitive.NewObjectID()
		enquiries.On("DeleteEnquiry", mock.Anything, enquiryID.Hex()).Return(nil)

		req := withURLParam(httptest.NewRequest("DELETE", "/api/v1/enquiry/"+enquiryID.Hex(), nil), "id", enquiryID.Hex())
		w := httptest.NewRecorder()
		handler.DeleteEnquiry(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Enquiry Deleted successfully.")
	})

	t.Run("unknown enquiry", func(t *testing.T) {
		handler, enquiries, _ := newEnquiryHandler()

		enquiryID := primitive.NewObjectID()
		enquiries.On("DeleteEnquiry", mock.Anything, enquiryID.Hex()).Return(mongo.ErrNoDocuments)

		req := withURLParam(httptest.NewRequest("DELETE", "/api/v1/enquiry/"+enquiryID.Hex(), nil), "id", enquiryID.Hex())
		w := httptest.NewRecorder()
		handler.DeleteEnquiry(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func multipartEnquiryRequest(t *testing.T, fields map[string]string, imageName string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="`+imageName+`"`)
	header.Set("Content-Type", "image/jpeg")
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/api/v1/enquiry", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}
