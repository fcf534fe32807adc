package models

import (
	"time"

	"github.com/google/uuid"
)

// EmployeeStatus classifies an employee's current employment state
type EmployeeStatus string

const (
	EmployeeActive     EmployeeStatus = "active"
	EmployeeOnLeave    EmployeeStatus = "on_leave"
	EmployeeTerminated EmployeeStatus = "terminated"
)

// Employee represents an HR personnel record
type Employee struct {
	ID         uuid.UUID      `json:"id" db:"id"`
	Email      string         `json:"email" db:"email"`
	FirstName  string         `json:"first_name" db:"first_name"`
	LastName   string         `json:"last_name" db:"last_name"`
	Department string         `json:"department" db:"department"`
	Position   string         `json:"position" db:"position"`
	Status     EmployeeStatus `json:"status" db:"status"`
	HiredAt    time.Time      `json:"hired_at" db:"hired_at"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Employee model
func (Employee) TableName() string {
	return "employees"
}

// NewEmployee creates a new Employee instance
func NewEmployee(email, firstName, lastName, department, position string) *Employee {
	now := time.Now()
	return &Employee{
		ID:         uuid.New(),
		Email:      email,
		FirstName:  firstName,
		LastName:   lastName,
		Department: department,
		Position:   position,
		Status:     EmployeeActive,
		HiredAt:    now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
