package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/centralops/erp-backend/app"
	"github.com/centralops/erp-backend/models"
	"github.com/centralops/erp-backend/repositories"
	"github.com/centralops/erp-backend/utils"
)

// CreateEmployeeRequest is the payload for creating an employee record
type CreateEmployeeRequest struct {
	Email      string `json:"email" validate:"required,email"`
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	Department string `json:"department" validate:"required"`
	Position   string `json:"position" validate:"required"`
}

// UpdateEmployeeRequest is the payload for updating an employee record
type UpdateEmployeeRequest struct {
	Department string `json:"department"`
	Position   string `json:"position"`
	Status     string `json:"status" validate:"omitempty,oneof=active on_leave terminated"`
}

// ListEmployeesHandler lists all employee records
func ListEmployeesHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		employees, err := deps.Employees.List(r.Context())
		if err != nil {
			deps.Logger.Error("failed to list employees", zap.Error(err))
			_ = utils.WriteInternalServerError(w, "")
			return
		}
		_ = utils.WriteOK(w, employees)
	}
}

// CreateEmployeeHandler creates a new employee record
func CreateEmployeeHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateEmployeeRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		employee := models.NewEmployee(req.Email, req.FirstName, req.LastName, req.Department, req.Position)
		if err := deps.Employees.Create(r.Context(), employee); err != nil {
			deps.Logger.Error("failed to create employee", zap.Error(err))
			_ = utils.WriteInternalServerError(w, "")
			return
		}

		_ = utils.WriteCreated(w, employee)
	}
}

// GetEmployeeHandler retrieves an employee record by ID
func GetEmployeeHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		employee, err := deps.Employees.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				_ = utils.WriteNotFound(w, "Employee not found")
				return
			}
			deps.Logger.Error("failed to get employee", zap.Error(err))
			_ = utils.WriteInternalServerError(w, "")
			return
		}

		_ = utils.WriteOK(w, employee)
	}
}

// UpdateEmployeeHandler updates an employee record
func UpdateEmployeeHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		var req UpdateEmployeeRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		employee, err := deps.Employees.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				_ = utils.WriteNotFound(w, "Employee not found")
				return
			}
			deps.Logger.Error("failed to get employee", zap.Error(err))
			_ = utils.WriteInternalServerError(w, "")
			return
		}

		if req.Department != "" {
			employee.Department = req.Department
		}
		if req.Position != "" {
			employee.Position = req.Position
		}
		if req.Status != "" {
			employee.Status = models.EmployeeStatus(req.Status)
		}

		if err := deps.Employees.Update(r.Context(), employee); err != nil {
			deps.Logger.Error("failed to update employee", zap.Error(err))
			_ = utils.WriteInternalServerError(w, "")
			return
		}

		_ = utils.WriteOK(w, employee)
	}
}

// DeleteEmployeeHandler removes an employee record
func DeleteEmployeeHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		if err := deps.Employees.Delete(r.Context(), id); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				_ = utils.WriteNotFound(w, "Employee not found")
				return
			}
			deps.Logger.Error("failed to delete employee", zap.Error(err))
			_ = utils.WriteInternalServerError(w, "")
			return
		}

		utils.WriteNoContent(w)
	}
}
