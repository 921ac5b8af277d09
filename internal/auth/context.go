package auth

import (
	"strings"

	"github.com/archplans/plan-portal/internal/backend"
	"github.com/gin-gonic/gin"
)

const (
	CtxAccessToken = "access_token"
	CtxProfile     = "profile"
)

// AccessToken returns the bearer token stored by RequireBearer.
func AccessToken(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxAccessToken))
}

// CurrentProfile returns the profile stored by RequireProfile or RequireAdmin.
func CurrentProfile(c *gin.Context) *backend.Profile {
	if v, ok := c.Get(CtxProfile); ok {
		if p, ok := v.(*backend.Profile); ok {
			return p
		}
	}
	return nil
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.EqualFold(bearerToken[:7], "Bearer ") {
		return strings.TrimSpace(bearerToken[7:])
	}
	return ""
}
