package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/centralops/erp-backend/utils"
)

// decodeJSON decodes the request body into dst and validates it; on failure
// it writes the 400 response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body")
		return false
	}
	if err := utils.ValidateStruct(dst); err != nil {
		_ = utils.WriteBadRequest(w, err.Error())
		return false
	}
	return true
}

// idParam parses the {id} URL parameter as a UUID; on failure it writes the
// 400 response and returns false.
func idParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid ID")
		return uuid.Nil, false
	}
	return id, true
}
