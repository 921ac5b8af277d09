package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/archplans/plan-portal/internal/analytics/export"
	"github.com/archplans/plan-portal/internal/analytics/service"
	"github.com/archplans/plan-portal/internal/auth"
	"github.com/archplans/plan-portal/internal/logging"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	dashboard *service.DashboardService
}

func New(dashboard *service.DashboardService) *Handler {
	return &Handler{dashboard: dashboard}
}

// GetDashboard returns the aggregated admin analytics.
// GET /admin/dashboard?year=2025
func (h *Handler) GetDashboard(c *gin.Context) {
	d, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, d)
}

// ExportDashboard streams the analytics as an Excel workbook.
func (h *Handler) ExportDashboard(c *gin.Context) {
	d, ok := h.load(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteDashboardXLSX(&buf, d); err != nil {
		logging.FromContext(c.Request.Context()).LogError("export_dashboard", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build workbook"})
		return
	}

	filename := fmt.Sprintf("dashboard-%d.xlsx", d.Year)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *Handler) load(c *gin.Context) (*service.Dashboard, bool) {
	year := 0
	if v := c.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 1970 || y > 9999 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "year must be a four digit year"})
			return nil, false
		}
		year = y
	}

	d, err := h.dashboard.Load(c.Request.Context(), auth.AccessToken(c), year)
	if err != nil {
		// Fetch already logged the cause.
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load dashboard data"})
		return nil, false
	}
	return d, true
}
