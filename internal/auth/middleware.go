package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/archplans/plan-portal/internal/backend"
	"github.com/archplans/plan-portal/internal/logging"
	"github.com/gin-gonic/gin"
)

// ProfileResolver maps a bearer token to its user.
type ProfileResolver interface {
	Resolve(ctx context.Context, token string) (*backend.Profile, error)
}

// RequireBearer rejects requests without a bearer token. The token is
// verified by the backend on each forwarded call.
func RequireBearer() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization token"})
			c.Abort()
			return
		}
		c.Set(CtxAccessToken, token)
		c.Next()
	}
}

// RequireProfile resolves the token's profile and stores it in the context.
func RequireProfile(resolver ProfileResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := resolveProfile(c, resolver); !ok {
			return
		}
		c.Next()
	}
}

// RequireAdmin only lets users with the admin role through.
func RequireAdmin(resolver ProfileResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := resolveProfile(c, resolver)
		if !ok {
			return
		}
		if !profile.Admin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func resolveProfile(c *gin.Context, resolver ProfileResolver) (*backend.Profile, bool) {
	token := AccessToken(c)
	if token == "" {
		token = extractToken(c)
	}
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization token"})
		c.Abort()
		return nil, false
	}

	profile, err := resolver.Resolve(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) || errors.Is(err, backend.ErrForbidden) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		} else {
			logging.FromContext(c.Request.Context()).LogError("resolve_profile", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to verify session"})
		}
		c.Abort()
		return nil, false
	}

	c.Set(CtxAccessToken, token)
	c.Set(CtxProfile, profile)
	return profile, true
}

// OptionalProfile attaches the profile when a valid bearer token is present
// and lets the request through either way.
func OptionalProfile(resolver ProfileResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}
		profile, err := resolver.Resolve(c.Request.Context(), token)
		if err == nil {
			c.Set(CtxAccessToken, token)
			c.Set(CtxProfile, profile)
		}
		c.Next()
	}
}
