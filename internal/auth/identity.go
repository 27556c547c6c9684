package auth

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-board/internal/models"
)

// Headers set by the gateway after it has authenticated the caller.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

const identityKey = "identity"

// Identity is the authenticated caller.
type Identity struct {
	UserID uint
	Role   string
}

// FromHeaders reads the caller identity forwarded by the gateway.
func FromHeaders(h http.Header) (Identity, bool) {
	raw := strings.TrimSpace(h.Get(HeaderUserID))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return Identity{}, false
	}
	role := strings.ToLower(strings.TrimSpace(h.Get(HeaderUserRole)))
	if role == "" {
		role = models.RoleUser
	}
	return Identity{UserID: uint(id), Role: role}, true
}

// RequireUser rejects requests without a valid identity.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := FromHeaders(c.Request.Header)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireRole must run after RequireUser.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		if identity.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You are not allowed to access this route"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the identity stored by RequireUser.
func CurrentUser(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	identity, ok := v.(Identity)
	return identity, ok
}
