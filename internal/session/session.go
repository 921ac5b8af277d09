// Package session issues the anonymous visitor ID that scopes carts and
// favorites.
package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	CookieName = "portal_session"
	HeaderName = "X-Session-Id"
	ctxKey     = "session_id"
	maxAge     = 30 * 24 * time.Hour
)

// Middleware makes sure every request carries a session ID. The ID is read
// from the session cookie or the X-Session-Id header; a new one is issued when
// neither holds a valid UUID.
func Middleware(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := ""
		if v, err := c.Cookie(CookieName); err == nil && valid(v) {
			id = v
		} else if v := c.GetHeader(HeaderName); valid(v) {
			id = v
		}

		if id == "" {
			id = uuid.NewString()
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     CookieName,
				Value:    id,
				Path:     "/",
				MaxAge:   int(maxAge.Seconds()),
				HttpOnly: true,
				Secure:   secure,
				SameSite: http.SameSiteLaxMode,
			})
		}

		c.Set(ctxKey, id)
		c.Header(HeaderName, id)
		c.Next()
	}
}

// ID returns the session ID set by Middleware.
func ID(c *gin.Context) string {
	return c.GetString(ctxKey)
}

func valid(v string) bool {
	_, err := uuid.Parse(v)
	return v != "" && err == nil
}
