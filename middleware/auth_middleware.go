package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/centralops/erp-backend/auth"
	"github.com/centralops/erp-backend/utils"
)

// TokenValidator defines the interface for verifying bearer tokens
type TokenValidator interface {
	// ValidateToken verifies a token and returns the decoded identity.
	// Implementations report failures via auth.ErrTokenExpired and
	// auth.ErrTokenInvalid; any other error is treated as an internal fault.
	ValidateToken(ctx context.Context, token string) (*auth.Identity, error)
}

// AuthMiddleware provides the authentication and authorization gates that
// protect every non-public route
type AuthMiddleware struct {
	validator TokenValidator
	logger    *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(validator TokenValidator, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		validator: validator,
		logger:    logger,
	}
}

// RequireAuth is a middleware that requires a valid bearer token. On success
// the decoded identity is attached to the request context; on failure the
// response is written here and the chain halts.
//
// A request that already carries an identity (attached by an upstream
// middleware) passes through without re-verification.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if IdentityFromContext(ctx) != nil {
			next.ServeHTTP(w, r)
			return
		}

		token := extractBearerToken(r)
		if token == "" {
			m.logger.Warn("missing token",
				zap.String("request_id", chimw.GetReqID(ctx)),
				zap.String("path", r.URL.Path))
			_ = utils.WriteUnauthorized(w, "Access token is required")
			return
		}

		identity, err := m.validator.ValidateToken(ctx, token)
		if err != nil {
			m.rejectTokenError(w, r, err)
			return
		}

		m.logger.Debug("authentication successful",
			zap.String("request_id", chimw.GetReqID(ctx)),
			zap.String("sub", identity.SubjectID),
			zap.String("role", identity.Role))

		next.ServeHTTP(w, r.WithContext(WithIdentity(ctx, identity)))
	})
}

// OptionalAuth attaches an identity when a valid token is present and
// proceeds without one otherwise. It never rejects: missing, malformed and
// expired tokens all result in an unauthenticated pass-through. An identity
// attached by an upstream middleware is preserved.
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if IdentityFromContext(ctx) != nil {
			next.ServeHTTP(w, r)
			return
		}

		token := extractBearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		identity, err := m.validator.ValidateToken(ctx, token)
		if err != nil {
			m.logger.Debug("optional auth token rejected",
				zap.String("request_id", chimw.GetReqID(ctx)),
				zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(ctx, identity)))
	})
}

// RequireAdmin requires an authenticated identity with the admin role
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := IdentityFromContext(r.Context())
		if !identity.IsAdmin() {
			m.logger.Warn("admin access denied",
				zap.String("request_id", chimw.GetReqID(r.Context())),
				zap.String("role", roleOf(identity)))
			_ = utils.WriteForbidden(w, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole returns a middleware that requires an authenticated identity
// with exactly the given role. The match is case-sensitive.
func (m *AuthMiddleware) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := IdentityFromContext(r.Context())
			if !identity.HasRole(role) {
				m.logger.Warn("role check failed",
					zap.String("request_id", chimw.GetReqID(r.Context())),
					zap.String("required_role", role),
					zap.String("role", roleOf(identity)))
				_ = utils.WriteForbidden(w, "Forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAnyRole returns a middleware that passes when the identity's role is
// a member of the given set. An empty set means any authenticated identity
// passes. Unlike the single-role gates, an unauthenticated request is
// rejected with 401, distinguishing "never logged in" from "wrong role".
func (m *AuthMiddleware) RequireAnyRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := IdentityFromContext(r.Context())
			if identity == nil {
				_ = utils.WriteUnauthorized(w, "Authentication required")
				return
			}

			if len(roles) > 0 {
				allowed := false
				for _, role := range roles {
					if identity.Role == role {
						allowed = true
						break
					}
				}
				if !allowed {
					m.logger.Warn("role check failed",
						zap.String("request_id", chimw.GetReqID(r.Context())),
						zap.Strings("required_roles", roles),
						zap.String("role", identity.Role))
					_ = utils.WriteForbidden(w, "Insufficient permissions")
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// rejectTokenError maps a verification failure to its terminal response.
// Expired tokens get 401 plus an expired flag so clients can run a refresh
// flow; invalid signatures and malformed claims get 403; anything else is an
// internal fault that is logged and answered with a generic 500.
func (m *AuthMiddleware) rejectTokenError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := chimw.GetReqID(r.Context())
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		m.logger.Warn("token expired", zap.String("request_id", requestID))
		_ = utils.WriteTokenExpired(w, "Token has expired")
	case errors.Is(err, auth.ErrTokenInvalid), errors.Is(err, auth.ErrTokenMissing):
		m.logger.Warn("token validation failed",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteForbidden(w, "Invalid token")
	default:
		m.logger.Error("token verification fault",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteInternalServerError(w, "Authentication failed")
	}
}

func roleOf(identity *auth.Identity) string {
	if identity == nil {
		return ""
	}
	return identity.Role
}

// extractBearerToken extracts the token from the Authorization header. The
// header is split on whitespace and the token is the second element; a
// missing or single-element header means no token.
func extractBearerToken(r *http.Request) string {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
