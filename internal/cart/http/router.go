package http

import "github.com/gin-gonic/gin"

// Register registers the cart routes. The group must run session.Middleware.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/cart", h.GetCart)
	rg.POST("/cart", h.AddItem)
	rg.DELETE("/cart", h.ClearCart)
	rg.DELETE("/cart/:planId", h.RemoveItem)
}
