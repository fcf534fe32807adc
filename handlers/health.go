package handlers

import (
	"net/http"

	"github.com/centralops/erp-backend/app"
	"github.com/centralops/erp-backend/utils"
)

// HealthCheck reports process liveness
func HealthCheck(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteOK(w, map[string]string{"status": "ok"})
	}
}

// ReadinessCheck reports whether the backing store is reachable
func ReadinessCheck(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.DB != nil {
			if err := deps.DB.HealthCheck(r.Context()); err != nil {
				_ = utils.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		_ = utils.WriteOK(w, map[string]string{"status": "ready"})
	}
}
