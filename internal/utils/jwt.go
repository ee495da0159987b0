package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-fin-track/models"
	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMalformedToken is returned when a token cannot be decoded at all.
	ErrMalformedToken = errors.New("malformed token")

	// ErrIncompleteToken is returned when a decodable token has no usable
	// identity (missing or non-positive id, or empty email).
	ErrIncompleteToken = errors.New("token payload has no identity")

	// ErrTokenExpired is returned when the token carries an exp claim in the past.
	ErrTokenExpired = errors.New("token expired")
)

// IdentityClaims is the payload the finance backend puts into its tokens.
type IdentityClaims struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// DecodeIdentity reads the identity out of a bearer token without verifying
// its signature. The client never holds the signing key, so the backend
// remains the only authority on whether the token is accepted.
//
// Returns:
//   - ErrMalformedToken  when the string is not a decodable JWT;
//   - ErrIncompleteToken when id <= 0 or email is empty;
//   - ErrTokenExpired    when an exp claim is present and already passed.
func DecodeIdentity(token string) (models.Identity, error) {
	claims := &IdentityClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return models.Identity{}, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}

	if claims.ID <= 0 || strings.TrimSpace(claims.Email) == "" {
		return models.Identity{}, ErrIncompleteToken
	}

	if claims.ExpiresAt != nil && !claims.ExpiresAt.After(time.Now()) {
		return models.Identity{}, ErrTokenExpired
	}

	return models.Identity{ID: claims.ID, Email: claims.Email}, nil
}

// SignIdentityToken issues an HMAC-SHA256 token carrying identity in the same
// shape the finance backend uses. A zero ttl produces a token without exp.
//
// Example usage:
//
//	token, err := utils.SignIdentityToken(models.Identity{ID: 1, Email: "a@b.c"}, time.Hour, "secret")
func SignIdentityToken(identity models.Identity, ttl time.Duration, signKey string) (string, error) {
	if signKey == "" {
		return "", errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims := &IdentityClaims{
		ID:    identity.ID,
		Email: identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return signed, nil
}

// ValidateIdentityToken verifies the signature and expiry of tokenString and
// returns the identity it carries.
func ValidateIdentityToken(tokenString, signKey string) (models.Identity, error) {
	claims := &IdentityClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.Identity{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.ID <= 0 || claims.Email == "" {
		return models.Identity{}, ErrIncompleteToken
	}

	return models.Identity{ID: claims.ID, Email: claims.Email}, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>" header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
