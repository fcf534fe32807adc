package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/centralops/erp-backend/app"
	"github.com/centralops/erp-backend/auth"
	"github.com/centralops/erp-backend/config"
	"github.com/centralops/erp-backend/middleware"
	"github.com/centralops/erp-backend/models"
	"github.com/centralops/erp-backend/repositories/memory"
	"github.com/centralops/erp-backend/services"
)

const testSecret = "routes-test-secret"

func newTestServer(t *testing.T) (http.Handler, *memory.Store, *auth.TokenService) {
	t.Helper()

	logger := zap.NewNop()
	store := memory.NewStore(logger)
	tokens := auth.NewTokenService(testSecret, "erp-backend", time.Hour)

	deps := &app.Dependencies{
		Config:         &config.Config{Environment: "test"},
		Logger:         logger,
		Users:          store.Users(),
		Employees:      store.Employees(),
		Notifications:  store.Notifications(),
		TokenService:   tokens,
		AuthService:    services.NewAuthService(store.Users(), tokens, logger),
		AuthMiddleware: middleware.NewAuthMiddleware(tokens, logger),
	}

	return SetupRoutes(deps), store, tokens
}

func seedUser(t *testing.T, store *memory.Store, email, password string, role models.UserRole) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.NewUser(email, "Test User", string(hash), role)
	require.NoError(t, store.Users().Create(context.Background(), user))
	return user
}

func tokenFor(t *testing.T, tokens *auth.TokenService, user *models.User) string {
	t.Helper()
	signed, err := tokens.Issue(user.ID.String(), user.Email, string(user.Role))
	require.NoError(t, err)
	return signed
}

func doRequest(handler http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestLoginFlow(t *testing.T) {
	handler, store, _ := newTestServer(t)
	seedUser(t, store, "admin@example.com", "admin-pass", models.RoleAdmin)

	t.Run("login returns a token usable on protected routes", func(t *testing.T) {
		w := doRequest(handler, http.MethodPost, "/api/v1/auth/login", "",
			map[string]string{"email": "admin@example.com", "password": "admin-pass"})
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Success bool `json:"success"`
			Data    struct {
				Token string `json:"token"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Success)
		require.NotEmpty(t, body.Data.Token)

		me := doRequest(handler, http.MethodGet, "/api/v1/auth/me", body.Data.Token, nil)
		assert.Equal(t, http.StatusOK, me.Code)
	})

	t.Run("bad credentials get 401", func(t *testing.T) {
		w := doRequest(handler, http.MethodPost, "/api/v1/auth/login", "",
			map[string]string{"email": "admin@example.com", "password": "nope"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestProtectedRouteGates(t *testing.T) {
	handler, store, tokens := newTestServer(t)
	admin := seedUser(t, store, "admin@example.com", "pw", models.RoleAdmin)
	manager := seedUser(t, store, "manager@example.com", "pw", models.RoleManager)
	regular := seedUser(t, store, "user@example.com", "pw", models.RoleUser)

	t.Run("users listing requires admin", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized,
			doRequest(handler, http.MethodGet, "/api/v1/users/", "", nil).Code)

		assert.Equal(t, http.StatusForbidden,
			doRequest(handler, http.MethodGet, "/api/v1/users/", tokenFor(t, tokens, regular), nil).Code)

		assert.Equal(t, http.StatusOK,
			doRequest(handler, http.MethodGet, "/api/v1/users/", tokenFor(t, tokens, admin), nil).Code)
	})

	t.Run("employee reads allow managers, writes only admins", func(t *testing.T) {
		managerToken := tokenFor(t, tokens, manager)

		assert.Equal(t, http.StatusOK,
			doRequest(handler, http.MethodGet, "/api/v1/employees/", managerToken, nil).Code)

		create := map[string]string{
			"email": "new@example.com", "first_name": "New", "last_name": "Hire",
			"department": "sales", "position": "rep",
		}
		assert.Equal(t, http.StatusForbidden,
			doRequest(handler, http.MethodPost, "/api/v1/employees/", managerToken, create).Code)

		assert.Equal(t, http.StatusCreated,
			doRequest(handler, http.MethodPost, "/api/v1/employees/", tokenFor(t, tokens, admin), create).Code)
	})

	t.Run("expired token is rejected with the expired flag", func(t *testing.T) {
		expired, err := tokens.IssueWithTTL(admin.ID.String(), admin.Email, "admin", -time.Second)
		require.NoError(t, err)

		w := doRequest(handler, http.MethodGet, "/api/v1/users/", expired, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, true, body["expired"])
	})
}

func TestNotificationFeed(t *testing.T) {
	handler, store, tokens := newTestServer(t)
	admin := seedUser(t, store, "admin@example.com", "pw", models.RoleAdmin)
	regular := seedUser(t, store, "user@example.com", "pw", models.RoleUser)

	adminToken := tokenFor(t, tokens, admin)

	// Broadcast plus one targeted notification.
	require.Equal(t, http.StatusCreated,
		doRequest(handler, http.MethodPost, "/api/v1/notifications", adminToken,
			map[string]string{"title": "all hands", "body": "friday"}).Code)
	require.Equal(t, http.StatusCreated,
		doRequest(handler, http.MethodPost, "/api/v1/notifications", adminToken,
			map[string]string{"recipient_id": regular.ID.String(), "title": "review", "body": "due"}).Code)

	count := func(w *httptest.ResponseRecorder) int {
		var body struct {
			Data []json.RawMessage `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		return len(body.Data)
	}

	t.Run("anonymous request sees broadcasts only", func(t *testing.T) {
		w := doRequest(handler, http.MethodGet, "/api/v1/notifications", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, count(w))
	})

	t.Run("garbage token still succeeds as anonymous", func(t *testing.T) {
		w := doRequest(handler, http.MethodGet, "/api/v1/notifications", "not-a-real-token", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, count(w))
	})

	t.Run("authenticated recipient also sees targeted notifications", func(t *testing.T) {
		w := doRequest(handler, http.MethodGet, "/api/v1/notifications", tokenFor(t, tokens, regular), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 2, count(w))
	})

	t.Run("posting requires a privileged role", func(t *testing.T) {
		w := doRequest(handler, http.MethodPost, "/api/v1/notifications", tokenFor(t, tokens, regular),
			map[string]string{"title": "spam", "body": "spam"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
