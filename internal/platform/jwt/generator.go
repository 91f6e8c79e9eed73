package jwtmw

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// EnvKeyJWTSecret is the environment variable holding the HMAC signing secret.
const EnvKeyJWTSecret = "JWT_SECRET"

// DefaultExpiration is the session token lifetime used by the server.
const DefaultExpiration = 24 * time.Hour

// Generator defines the interface for session token generation.
type Generator interface {
	// GenerateToken creates a signed token for the given user.
	GenerateToken(userID uint, email string) (string, error)
}

// generator implements the Generator interface.
type generator struct {
	secret     []byte
	expiration time.Duration
}

// NewGenerator creates a new token generator with the provided secret and expiration duration.
func NewGenerator(secret string, expiration time.Duration) Generator {
	return &generator{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// GenerateToken creates a signed HS256 token with standard claims.
// It fails when the secret is empty so that unsigned tokens can never be issued.
func (g *generator) GenerateToken(userID uint, email string) (string, error) {
	if len(g.secret) == 0 {
		return "", fmt.Errorf("signing secret is empty (set %s)", EnvKeyJWTSecret)
	}

	claims := jwt.MapClaims{
		"sub":   userID,
		"exp":   time.Now().Add(g.expiration).Unix(),
		"iat":   time.Now().Unix(),
		"email": email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// ParseUserID verifies a signed token against secret and extracts the "sub" claim.
// Only HMAC-signed tokens are accepted.
func ParseUserID(tokenStr, secret string) (uint, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// Check signing algorithm (only HMAC allowed)
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("unexpected claims type")
	}
	sub, ok := claims["sub"].(float64) // JWT numbers are decoded as float64
	if !ok || sub <= 0 {
		return 0, fmt.Errorf("missing sub claim")
	}
	return uint(sub), nil
}
