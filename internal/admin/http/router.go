package http

import (
	"github.com/archplans/plan-portal/internal/api/http/middleware"
	"github.com/gin-gonic/gin"
)

// Register registers the moderation routes on an admin-only group. Deletes
// require ?confirm=true.
func (h *Handler) Register(rg *gin.RouterGroup) {
	confirm := middleware.RequireConfirmation()

	rg.GET("/plans", h.ListPlans)
	rg.PATCH("/plans/:id", h.UpdatePlanStatus)
	rg.DELETE("/plans/:id", confirm, h.DeletePlan)

	rg.GET("/inquiries", h.ListInquiries)
	rg.PATCH("/inquiries/:id", h.UpdateInquiryStatus)
	rg.DELETE("/inquiries/:id", confirm, h.DeleteInquiry)

	rg.GET("/custom-requests", h.ListCustomRequests)
	rg.PATCH("/custom-requests/:id", h.UpdateCustomRequestStatus)
	rg.DELETE("/custom-requests/:id", confirm, h.DeleteCustomRequest)
}
