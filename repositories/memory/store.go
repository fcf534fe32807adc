// Package memory provides in-memory implementations of the repository
// interfaces, used when no database is configured. Data does not survive a
// restart; the store is seeded with a default admin account so the API is
// usable out of the box.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/centralops/erp-backend/models"
	"github.com/centralops/erp-backend/repositories"
)

// Store holds all in-memory collections behind one mutex
type Store struct {
	mu            sync.RWMutex
	users         map[uuid.UUID]*models.User
	employees     map[uuid.UUID]*models.Employee
	notifications []*models.Notification
	logger        *zap.Logger
}

// NewStore creates an empty in-memory store
func NewStore(logger *zap.Logger) *Store {
	return &Store{
		users:     make(map[uuid.UUID]*models.User),
		employees: make(map[uuid.UUID]*models.Employee),
		logger:    logger,
	}
}

// SeedDefaultAdmin creates the default admin account when no users exist
func (s *Store) SeedDefaultAdmin(email, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.users) > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.NewUser(email, "Administrator", string(hash), models.RoleAdmin)
	s.users[admin.ID] = admin
	s.logger.Info("seeded default admin account", zap.String("email", email))
	return nil
}

// Users returns the user repository view of the store
func (s *Store) Users() repositories.UserRepository { return (*userStore)(s) }

// Employees returns the employee repository view of the store
func (s *Store) Employees() repositories.EmployeeRepository { return (*employeeStore)(s) }

// Notifications returns the notification repository view of the store
func (s *Store) Notifications() repositories.NotificationRepository { return (*notificationStore)(s) }

type userStore Store

func (s *userStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *userStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *userStore) List(ctx context.Context) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]*models.User, 0, len(s.users))
	for _, user := range s.users {
		copied := *user
		users = append(users, &copied)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

func (s *userStore) Update(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	user.UpdatedAt = time.Now()
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *userStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

type employeeStore Store

func (s *employeeStore) Create(ctx context.Context, employee *models.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *employee
	s.employees[employee.ID] = &copied
	return nil
}

func (s *employeeStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	employee, ok := s.employees[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *employee
	return &copied, nil
}

func (s *employeeStore) List(ctx context.Context) ([]*models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	employees := make([]*models.Employee, 0, len(s.employees))
	for _, employee := range s.employees {
		copied := *employee
		employees = append(employees, &copied)
	}
	sort.Slice(employees, func(i, j int) bool {
		return employees[i].CreatedAt.Before(employees[j].CreatedAt)
	})
	return employees, nil
}

func (s *employeeStore) Update(ctx context.Context, employee *models.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.employees[employee.ID]; !ok {
		return repositories.ErrNotFound
	}
	employee.UpdatedAt = time.Now()
	copied := *employee
	s.employees[employee.ID] = &copied
	return nil
}

func (s *employeeStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.employees[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.employees, id)
	return nil
}

type notificationStore Store

func (s *notificationStore) Create(ctx context.Context, notification *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *notification
	s.notifications = append(s.notifications, &copied)
	return nil
}

func (s *notificationStore) ListFor(ctx context.Context, recipient *uuid.UUID) ([]*models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*models.Notification
	for _, notification := range s.notifications {
		if notification.IsBroadcast() || (recipient != nil && notification.RecipientID != nil && *notification.RecipientID == *recipient) {
			copied := *notification
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}
