package http

import (
	"github.com/archplans/plan-portal/internal/api/http/middleware"
	"github.com/archplans/plan-portal/internal/auth"
	"github.com/gin-gonic/gin"
)

// Register registers the account routes. Profile routes need a signed-in
// user; password reset is public.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/auth/reset-password/:token", h.ResetPassword)

	profile := rg.Group("/profile", auth.RequireBearer(), auth.RequireProfile(h.profiles))
	profile.GET("", h.GetProfile)
	profile.DELETE("", middleware.RequireConfirmation(), h.DeleteAccount)
}
