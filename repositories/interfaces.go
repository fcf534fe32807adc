package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/centralops/erp-backend/models"
)

// ErrNotFound is returned when a record does not exist
var ErrNotFound = errors.New("record not found")

// UserRepository defines data access for user accounts
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// EmployeeRepository defines data access for HR employee records
type EmployeeRepository interface {
	Create(ctx context.Context, employee *models.Employee) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Employee, error)
	List(ctx context.Context) ([]*models.Employee, error)
	Update(ctx context.Context, employee *models.Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// NotificationRepository defines data access for the notification feed
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	// ListFor returns broadcast notifications plus, when recipient is
	// non-nil, the recipient's targeted notifications.
	ListFor(ctx context.Context, recipient *uuid.UUID) ([]*models.Notification, error)
}
