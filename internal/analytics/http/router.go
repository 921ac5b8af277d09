package http

import "github.com/gin-gonic/gin"

// Register registers the analytics routes on an admin-only group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.GetDashboard)
	rg.GET("/dashboard.xlsx", h.ExportDashboard)
}
