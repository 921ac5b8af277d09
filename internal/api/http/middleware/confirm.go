package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// RequireConfirmation guards destructive routes. The caller must pass
// ?confirm=true, otherwise the request stops with 428 before any handler runs.
func RequireConfirmation() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, _ := strconv.ParseBool(c.Query("confirm"))
		if !ok {
			c.JSON(http.StatusPreconditionRequired, gin.H{
				"error": "this action cannot be undone; repeat the request with confirm=true",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
