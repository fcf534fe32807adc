package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/centralops/erp-backend/models"
	"github.com/centralops/erp-backend/repositories"
)

func TestSeedDefaultAdmin(t *testing.T) {
	store := NewStore(zap.NewNop())
	require.NoError(t, store.SeedDefaultAdmin("admin@example.com", "admin123"))

	admin, err := store.Users().GetByEmail(context.Background(), "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin123")))

	// Seeding again must not create a second account.
	require.NoError(t, store.SeedDefaultAdmin("admin@example.com", "admin123"))
	users, err := store.Users().List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserStoreCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewStore(zap.NewNop())
	users := store.Users()

	user := models.NewUser("a@b.com", "Alice", "hash", models.RoleUser)
	require.NoError(t, users.Create(ctx, user))

	got, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	got.Name = "Alicia"
	require.NoError(t, users.Update(ctx, got))

	updated, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.Name)

	require.NoError(t, users.Delete(ctx, user.ID))
	_, err = users.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	assert.ErrorIs(t, users.Delete(ctx, user.ID), repositories.ErrNotFound)
}

func TestUserStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewStore(zap.NewNop())
	users := store.Users()

	user := models.NewUser("a@b.com", "Alice", "hash", models.RoleUser)
	require.NoError(t, users.Create(ctx, user))

	got, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	got.Name = "mutated"

	fresh, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", fresh.Name)
}

func TestEmployeeStoreCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewStore(zap.NewNop())
	employees := store.Employees()

	emp := models.NewEmployee("e@b.com", "Bob", "Stone", "finance", "analyst")
	require.NoError(t, employees.Create(ctx, emp))

	listed, err := employees.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "finance", listed[0].Department)

	emp.Status = models.EmployeeOnLeave
	require.NoError(t, employees.Update(ctx, emp))

	got, err := employees.GetByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EmployeeOnLeave, got.Status)

	require.NoError(t, employees.Delete(ctx, emp.ID))
	_, err = employees.GetByID(ctx, emp.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestNotificationFeedVisibility(t *testing.T) {
	ctx := context.Background()
	store := NewStore(zap.NewNop())
	notifications := store.Notifications()

	alice := uuid.New()
	bob := uuid.New()

	require.NoError(t, notifications.Create(ctx, models.NewNotification(nil, "all hands", "friday")))
	require.NoError(t, notifications.Create(ctx, models.NewNotification(&alice, "review due", "monday")))
	require.NoError(t, notifications.Create(ctx, models.NewNotification(&bob, "badge expiring", "renew")))

	t.Run("anonymous sees broadcasts only", func(t *testing.T) {
		feed, err := notifications.ListFor(ctx, nil)
		require.NoError(t, err)
		require.Len(t, feed, 1)
		assert.Equal(t, "all hands", feed[0].Title)
	})

	t.Run("recipient sees broadcasts plus own", func(t *testing.T) {
		feed, err := notifications.ListFor(ctx, &alice)
		require.NoError(t, err)
		require.Len(t, feed, 2)
		for _, n := range feed {
			assert.NotEqual(t, "badge expiring", n.Title)
		}
	})
}
