package http

import "github.com/gin-gonic/gin"

// Register registers the public catalog routes
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/plans", h.ListPlans)
	rg.GET("/plans/featured", h.Featured)
	rg.GET("/plans/trending", h.Trending)
	rg.GET("/plans/:id", h.GetPlan)
	rg.GET("/categories", h.Categories)
}
