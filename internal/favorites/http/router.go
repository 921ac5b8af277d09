package http

import (
	"github.com/archplans/plan-portal/internal/auth"
	"github.com/gin-gonic/gin"
)

// Register registers the favorites routes. The group must run
// session.Middleware.
func (h *Handler) Register(rg *gin.RouterGroup) {
	fav := rg.Group("/favorites", auth.OptionalProfile(h.profiles))
	fav.GET("", h.ListFavorites)
	fav.POST("/:planId", h.ToggleFavorite)
}
