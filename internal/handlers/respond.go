package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Umesh-JNU/jeff-backend/internal/apperror"
	log "github.com/sirupsen/logrus"
)

// writeJSON writes a success payload.
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError is the single boundary translator: every handler error funnels
// through here and comes out as a status code plus a uniform
// {success:false, error:{message}} body.
func writeError(w http.ResponseWriter, err error) {
	status := apperror.StatusOf(err)
	if status >= http.StatusInternalServerError {
		log.WithError(err).Error("request failed")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error": map[string]string{
			"message": apperror.MessageOf(err),
		},
	})
}

// decodeJSON unmarshals a request body into dst.
func decodeJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.BadRequest("Invalid JSON")
	}
	return nil
}
