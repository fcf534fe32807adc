package middleware

import (
	"context"

	"github.com/centralops/erp-backend/auth"
)

// Context key type to avoid collisions
type contextKey string

// identityKey is the context key for the authenticated identity
const identityKey contextKey = "identity"

// WithIdentity attaches an identity to the context
func WithIdentity(ctx context.Context, identity *auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext retrieves the authenticated identity from the context.
// Returns nil when the request is unauthenticated; callers must handle the
// nil case explicitly.
func IdentityFromContext(ctx context.Context) *auth.Identity {
	if val := ctx.Value(identityKey); val != nil {
		if identity, ok := val.(*auth.Identity); ok {
			return identity
		}
	}
	return nil
}
