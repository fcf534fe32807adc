package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the signed payload of an issued token
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Identity is the decoded, request-scoped representation of the authenticated
// principal. It is created fresh for every request and never shared across
// requests. Role is a single case-sensitive label; empty means "no role",
// not "admin".
type Identity struct {
	SubjectID string
	Email     string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time

	// Extra carries any claims beyond the known fields so downstream
	// handlers can read custom token payload untouched.
	Extra map[string]interface{}
}

// HasRole reports whether the identity carries exactly the given role
func (i *Identity) HasRole(role string) bool {
	return i != nil && i.Role == role
}

// IsAdmin reports whether the identity carries the admin role
func (i *Identity) IsAdmin() bool {
	return i.HasRole("admin")
}

// knownClaimKeys are the registered and first-class claim names that are
// lifted into Identity fields rather than kept in Extra.
var knownClaimKeys = map[string]struct{}{
	"sub": {}, "email": {}, "role": {},
	"exp": {}, "iat": {}, "nbf": {}, "iss": {}, "aud": {}, "jti": {},
}

func identityFromMapClaims(claims jwt.MapClaims) *Identity {
	identity := &Identity{}

	if sub, ok := claims["sub"].(string); ok {
		identity.SubjectID = sub
	}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		identity.Role = role
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		identity.ExpiresAt = exp.Time
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		identity.IssuedAt = iat.Time
	}

	for key, value := range claims {
		if _, known := knownClaimKeys[key]; known {
			continue
		}
		if identity.Extra == nil {
			identity.Extra = make(map[string]interface{})
		}
		identity.Extra[key] = value
	}

	return identity
}
