package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/archplans/plan-portal/internal/analytics/service"
	"github.com/archplans/plan-portal/internal/auth"
	"github.com/archplans/plan-portal/internal/backend"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type stubAdmin struct {
	token string
	err   error
}

func (s *stubAdmin) ListPlans(_ context.Context, token string, _ backend.PlanQuery) ([]backend.Plan, error) {
	s.token = token
	return []backend.Plan{
		{ID: "p1", Title: "Villa", Category: "Residential", Views: 10, CreatedAt: "2025-03-01T10:00:00Z"},
		{ID: "p2", Title: "Office", Category: "Commercial", Views: 3, CreatedAt: "2024-05-01T10:00:00Z"},
	}, s.err
}

func (s *stubAdmin) ListInquiries(context.Context, string) ([]backend.Inquiry, error) {
	return []backend.Inquiry{{ID: "i1", Name: "Kim", Status: "new"}}, nil
}

func (s *stubAdmin) ListCustomRequests(context.Context, string) ([]backend.CustomRequest, error) {
	return nil, nil
}

func setupRouter(src *stubAdmin) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	admin := r.Group("/api/v1/admin", auth.RequireBearer())
	New(service.NewDashboardService(src)).Register(admin)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	r.ServeHTTP(rr, req)
	return rr
}

func TestGetDashboard(t *testing.T) {
	src := &stubAdmin{}
	rr := get(setupRouter(src), "/api/v1/admin/dashboard?year=2025")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "admin-token", src.token)

	var d service.Dashboard
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &d))
	assert.Equal(t, 2025, d.Year)
	assert.Equal(t, 2, d.Totals.Plans)
	require.Len(t, d.MonthlyUploads, 12)
	assert.Equal(t, 1, d.MonthlyUploads[2].Uploads)
	assert.Equal(t, 0, d.MonthlyUploads[4].Uploads)
}

func TestGetDashboard_BadYear(t *testing.T) {
	r := setupRouter(&stubAdmin{})
	for _, q := range []string{"?year=abc", "?year=12"} {
		assert.Equal(t, http.StatusBadRequest, get(r, "/api/v1/admin/dashboard"+q).Code, q)
	}
}

func TestGetDashboard_BackendFailure(t *testing.T) {
	rr := get(setupRouter(&stubAdmin{err: errors.New("boom")}), "/api/v1/admin/dashboard")
	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestExportDashboard(t *testing.T) {
	rr := get(setupRouter(&stubAdmin{}), "/api/v1/admin/dashboard.xlsx?year=2025")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, xlsxContentType, rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "dashboard-2025.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rr.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "Summary")
}
