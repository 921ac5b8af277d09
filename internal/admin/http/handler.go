package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/archplans/plan-portal/internal/admin"
	"github.com/archplans/plan-portal/internal/auth"
	"github.com/archplans/plan-portal/internal/backend"
	"github.com/archplans/plan-portal/internal/catalog/domain"
	"github.com/archplans/plan-portal/internal/logging"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	admin *admin.Service
}

func New(svc *admin.Service) *Handler {
	return &Handler{admin: svc}
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListPlans returns all plans, drafts included.
// GET /admin/plans?status=draft
func (h *Handler) ListPlans(c *gin.Context) {
	plans, err := h.admin.Plans(c.Request.Context(), auth.AccessToken(c), c.Query("status"))
	if err != nil {
		writeError(c, "admin_list_plans", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans, "total": len(plans)})
}

func (h *Handler) UpdatePlanStatus(c *gin.Context) {
	h.updateStatus(c, "update_plan_status", h.admin.SetPlanStatus)
}

func (h *Handler) DeletePlan(c *gin.Context) {
	h.delete(c, "delete_plan", h.admin.DeletePlan)
}

func (h *Handler) ListInquiries(c *gin.Context) {
	inquiries, err := h.admin.Inquiries(c.Request.Context(), auth.AccessToken(c))
	if err != nil {
		writeError(c, "admin_list_inquiries", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inquiries": inquiries, "total": len(inquiries)})
}

func (h *Handler) UpdateInquiryStatus(c *gin.Context) {
	h.updateStatus(c, "update_inquiry_status", h.admin.SetInquiryStatus)
}

func (h *Handler) DeleteInquiry(c *gin.Context) {
	h.delete(c, "delete_inquiry", h.admin.DeleteInquiry)
}

func (h *Handler) ListCustomRequests(c *gin.Context) {
	requests, err := h.admin.CustomRequests(c.Request.Context(), auth.AccessToken(c))
	if err != nil {
		writeError(c, "admin_list_custom_requests", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests, "total": len(requests)})
}

func (h *Handler) UpdateCustomRequestStatus(c *gin.Context) {
	h.updateStatus(c, "update_custom_request_status", h.admin.SetCustomRequestStatus)
}

func (h *Handler) DeleteCustomRequest(c *gin.Context) {
	h.delete(c, "delete_custom_request", h.admin.DeleteCustomRequest)
}

func (h *Handler) updateStatus(c *gin.Context, op string, fn func(ctx context.Context, token, id, status string) error) {
	var body statusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	id := c.Param("id")
	if err := fn(c.Request.Context(), auth.AccessToken(c), id, body.Status); err != nil {
		writeError(c, op, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": body.Status})
}

func (h *Handler) delete(c *gin.Context, op string, fn func(ctx context.Context, token, id string) error) {
	id := c.Param("id")
	if err := fn(c.Request.Context(), auth.AccessToken(c), id); err != nil {
		writeError(c, op, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "deleted": true})
}

func writeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, backend.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, backend.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
	case errors.Is(err, backend.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
	default:
		logging.FromContext(c.Request.Context()).LogError(op, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "backend request failed"})
	}
}
