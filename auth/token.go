package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenMissing is returned when no token was supplied
	ErrTokenMissing = errors.New("token missing")

	// ErrTokenInvalid is returned when the signature is wrong or the claim
	// set is structurally malformed
	ErrTokenInvalid = errors.New("invalid token")

	// ErrTokenExpired is returned when the signature is valid but the token
	// is past its expiry
	ErrTokenExpired = errors.New("token expired")
)

// TokenService signs and verifies HS256 tokens against a single shared
// secret. The secret is injected at construction; there is no key rotation.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenService creates a TokenService with the given shared secret
func NewTokenService(secret, issuer string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// Issue signs a token for the given principal, expiring after the
// configured TTL
func (s *TokenService) Issue(subjectID, email, role string) (string, error) {
	return s.IssueWithTTL(subjectID, email, role, s.ttl)
}

// IssueWithTTL signs a token with an explicit TTL. A zero or negative ttl
// produces an already-expired token, which tests use to exercise the expiry
// path.
func (s *TokenService) IssueWithTTL(subjectID, email, role string, ttl time.Duration) (string, error) {
	if len(s.secret) == 0 {
		return "", fmt.Errorf("token service misconfigured: empty secret")
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
		Role:  role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies the token's signature and expiry against the shared
// secret and decodes it into an Identity. Errors are categorized:
// ErrTokenExpired for a valid-but-expired token, ErrTokenInvalid for a bad
// signature or malformed claim set, anything else is an internal fault.
func (s *TokenService) ValidateToken(ctx context.Context, tokenString string) (*Identity, error) {
	if tokenString == "" {
		return nil, ErrTokenMissing
	}
	if len(s.secret) == 0 {
		return nil, fmt.Errorf("token service misconfigured: empty secret")
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	identity := identityFromMapClaims(claims)
	if identity.SubjectID == "" {
		return nil, fmt.Errorf("%w: missing subject claim", ErrTokenInvalid)
	}

	return identity, nil
}
