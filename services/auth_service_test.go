package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/centralops/erp-backend/auth"
	"github.com/centralops/erp-backend/models"
	"github.com/centralops/erp-backend/repositories/memory"
)

func newTestAuthService(t *testing.T) (*AuthService, *memory.Store, *auth.TokenService) {
	t.Helper()
	store := memory.NewStore(zap.NewNop())
	tokens := auth.NewTokenService("service-test-secret", "erp-backend", time.Hour)
	return NewAuthService(store.Users(), tokens, zap.NewNop()), store, tokens
}

func seedUser(t *testing.T, store *memory.Store, email, password string, role models.UserRole, active bool) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.NewUser(email, "Test User", string(hash), role)
	user.Active = active
	require.NoError(t, store.Users().Create(context.Background(), user))
	return user
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials issue a verifiable token", func(t *testing.T) {
		svc, store, tokens := newTestAuthService(t)
		user := seedUser(t, store, "alice@example.com", "s3cret-pass", models.RoleManager, true)

		result, err := svc.Login(ctx, "alice@example.com", "s3cret-pass")
		require.NoError(t, err)
		require.NotEmpty(t, result.Token)
		assert.Equal(t, user.ID, result.User.ID)

		identity, err := tokens.ValidateToken(ctx, result.Token)
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), identity.SubjectID)
		assert.Equal(t, "alice@example.com", identity.Email)
		assert.Equal(t, "manager", identity.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, store, _ := newTestAuthService(t)
		seedUser(t, store, "alice@example.com", "s3cret-pass", models.RoleUser, true)

		_, err := svc.Login(ctx, "alice@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email is indistinguishable from wrong password", func(t *testing.T) {
		svc, _, _ := newTestAuthService(t)

		_, err := svc.Login(ctx, "nobody@example.com", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("disabled account", func(t *testing.T) {
		svc, store, _ := newTestAuthService(t)
		seedUser(t, store, "gone@example.com", "s3cret-pass", models.RoleUser, false)

		_, err := svc.Login(ctx, "gone@example.com", "s3cret-pass")
		assert.ErrorIs(t, err, ErrAccountDisabled)
	})
}
