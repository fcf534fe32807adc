package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/centralops/erp-backend/app"
	"github.com/centralops/erp-backend/models"
	"github.com/centralops/erp-backend/repositories"
	"github.com/centralops/erp-backend/utils"
)

// CreateUserRequest is the payload for creating a user account
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=admin manager user"`
}

// UpdateUserRequest is the payload for updating a user account
type UpdateUserRequest struct {
	Name   string `json:"name" validate:"omitempty"`
	Role   string `json:"role" validate:"omitempty,oneof=admin manager user"`
	Active *bool  `json:"active"`
}

// ListUsersHandler lists all user accounts
func ListUsersHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := deps.Users.List(r.Context())
		if err != nil {
			deps.Logger.Error("failed to list users", zap.Error(err))
			_ = utils.WriteInternalServerError(w, "")
			return
		}
		_ = utils.WriteOK(w, users)
	}
}

// CreateUserHandler creates a new user account
func CreateUserHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateUserRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		if _, err := deps.Users.GetByEmail(r.Context(), req.Email); err == nil {
			_ = utils.WriteConflict(w, "Email already registered")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			deps.Logger.Error("failed to hash password", zap.Error(err))
			_ = utils.WriteInternalServerError(w, "")
			return
		}

		role := models.UserRole(req.Role)
		if role == "" {
			role = models.RoleUser
		}

		user := models.NewUser(req.Email, req.Name, string(hash), role)
		if err := deps.Users.Create(r.Context(), user); err != nil {
			deps.Logger.Error("failed to create user", zap.Error(err))
			_ = utils.WriteInternalServerError(w, "")
			return
		}

		_ = utils.WriteCreated(w, user)
	}
}

// GetUserHandler retrieves a user account by ID
func GetUserHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		user, err := deps.Users.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				_ = utils.WriteNotFound(w, "User not found")
				return
			}
			deps.Logger.Error("failed to get user", zap.Error(err))
			_ = utils.WriteInternalServerError(w, "")
			return
		}

		_ = utils.WriteOK(w, user)
	}
}

// UpdateUserHandler updates a user account
func UpdateUserHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		var req UpdateUserRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		user, err := deps.Users.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				_ = utils.WriteNotFound(w, "User not found")
				return
			}
			deps.Logger.Error("failed to get user", zap.Error(err))
			_ = utils.WriteInternalServerError(w, "")
			return
		}

		if req.Name != "" {
			user.Name = req.Name
		}
		if req.Role != "" {
			user.Role = models.UserRole(req.Role)
		}
		if req.Active != nil {
			user.Active = *req.Active
		}

		if err := deps.Users.Update(r.Context(), user); err != nil {
			deps.Logger.Error("failed to update user", zap.Error(err))
			_ = utils.WriteInternalServerError(w, "")
			return
		}

		_ = utils.WriteOK(w, user)
	}
}

// DeleteUserHandler removes a user account
func DeleteUserHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		if err := deps.Users.Delete(r.Context(), id); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				_ = utils.WriteNotFound(w, "User not found")
				return
			}
			deps.Logger.Error("failed to delete user", zap.Error(err))
			_ = utils.WriteInternalServerError(w, "")
			return
		}

		utils.WriteNoContent(w)
	}
}
