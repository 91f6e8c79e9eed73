// Package identity resolves the caller's user identity for counter endpoints.
//
// Two schemes are accepted, in order of preference:
//
//  1. Authorization: Bearer <token> — a signed session token issued at login.
//  2. x-user-id: <integer> — the plain bearer identity. Not a cryptographic
//     credential; kept as the primary wire contract for existing clients.
package identity

import (
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"counter_backend/internal/api"
	jwtmw "counter_backend/internal/platform/jwt"
)

// ContextUserID is the gin context key under which the resolved user ID is stored.
const ContextUserID = "userID"

// HeaderUserID is the plain bearer-identity header.
const HeaderUserID = "x-user-id"

// Required returns a Gin middleware that resolves the caller's identity and
// aborts the request when none is presented.
//
// A malformed or unverifiable bearer token is rejected with 401; a missing or
// non-integer x-user-id header is rejected with 400. Whether the resolved ID
// belongs to a real user is checked downstream (404).
func Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Prefer a signed session token when one is presented.
		if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			secret := os.Getenv(jwtmw.EnvKeyJWTSecret)
			if secret == "" {
				// Server misconfiguration (JWT_SECRET not set)
				c.AbortWithStatusJSON(http.StatusInternalServerError, api.ErrorResponse{Error: "server misconfigured"})
				return
			}
			userID, err := jwtmw.ParseUserID(strings.TrimPrefix(auth, "Bearer "), secret)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid token"})
				return
			}
			c.Set(ContextUserID, userID)
			c.Next()
			return
		}

		// 2. Fall back to the plain x-user-id header.
		raw := c.GetHeader(HeaderUserID)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, api.ErrorResponse{Error: "x-user-id header required"})
			return
		}
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, api.ErrorResponse{Error: "x-user-id must be a positive integer"})
			return
		}
		c.Set(ContextUserID, uint(id))
		c.Next()
	}
}
