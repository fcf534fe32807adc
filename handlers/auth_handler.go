package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/centralops/erp-backend/app"
	"github.com/centralops/erp-backend/middleware"
	"github.com/centralops/erp-backend/services"
	"github.com/centralops/erp-backend/utils"
)

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginHandler verifies credentials and returns a signed token
func LoginHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		result, err := deps.AuthService.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidCredentials):
				_ = utils.WriteUnauthorized(w, "Invalid email or password")
			case errors.Is(err, services.ErrAccountDisabled):
				_ = utils.WriteForbidden(w, "Account is disabled")
			default:
				deps.Logger.Error("login failed", zap.Error(err))
				_ = utils.WriteInternalServerError(w, "")
			}
			return
		}

		_ = utils.WriteOK(w, result)
	}
}

// CurrentUserHandler returns the authenticated principal's identity claims
func CurrentUserHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := middleware.IdentityFromContext(r.Context())
		if identity == nil {
			_ = utils.WriteUnauthorized(w, "Authentication required")
			return
		}

		_ = utils.WriteOK(w, map[string]interface{}{
			"id":    identity.SubjectID,
			"email": identity.Email,
			"role":  identity.Role,
		})
	}
}
