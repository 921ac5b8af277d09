package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/archplans/plan-portal/internal/admin"
	"github.com/archplans/plan-portal/internal/auth"
	"github.com/archplans/plan-portal/internal/backend"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	method, path, auth string
}

// setupRouter wires the handler to a real backend client talking to a fake
// backend that records every request.
func setupRouter(t *testing.T, status int) (*gin.Engine, func() []recordedCall) {
	t.Helper()
	var (
		mu    sync.Mutex
		calls []recordedCall
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls = append(calls, recordedCall{r.Method, r.URL.Path, r.Header.Get("Authorization")})
		mu.Unlock()
		w.WriteHeader(status)
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/inquiries":
			w.Write([]byte(`[{"_id":"i1","name":"Kim","status":"new"}]`))
		case r.Method == http.MethodGet:
			w.Write([]byte(`[]`))
		default:
			w.Write([]byte(`{"message":"ok"}`))
		}
	}))
	t.Cleanup(server.Close)

	client := backend.NewClient(backend.Options{BaseURL: server.URL})
	gin.SetMode(gin.TestMode)
	r := gin.New()
	New(admin.NewService(client, nil)).Register(r.Group("/api/v1/admin", auth.RequireBearer()))

	return r, func() []recordedCall {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedCall(nil), calls...)
	}
}

func send(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer admin-token")
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rr, req)
	return rr
}

func TestDelete_RequiresConfirmation(t *testing.T) {
	r, calls := setupRouter(t, http.StatusOK)

	for _, path := range []string{"/plans/p1", "/inquiries/i1", "/custom-requests/r1"} {
		rr := send(r, http.MethodDelete, "/api/v1/admin"+path, "")
		assert.Equal(t, http.StatusPreconditionRequired, rr.Code, path)
	}
	assert.Empty(t, calls())

	rr := send(r, http.MethodDelete, "/api/v1/admin/custom-requests/r1?confirm=true", "")
	require.Equal(t, http.StatusOK, rr.Code)
	got := calls()
	require.Len(t, got, 1)
	assert.Equal(t, recordedCall{http.MethodDelete, "/api/custom-requests/custom-design/r1", "Bearer admin-token"}, got[0])
}

func TestUpdateStatus(t *testing.T) {
	r, calls := setupRouter(t, http.StatusOK)

	rr := send(r, http.MethodPatch, "/api/v1/admin/inquiries/i1", `{"status":"contacted"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = send(r, http.MethodPatch, "/api/v1/admin/plans/p1", `{"status":"sold"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = send(r, http.MethodPatch, "/api/v1/admin/plans/p1", `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	got := calls()
	require.Len(t, got, 1)
	assert.Equal(t, http.MethodPatch, got[0].method)
	assert.Equal(t, "/api/inquiries/i1", got[0].path)
}

func TestListInquiries(t *testing.T) {
	r, _ := setupRouter(t, http.StatusOK)

	rr := send(r, http.MethodGet, "/api/v1/admin/inquiries", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"clientName":"Kim"`)
}

func TestBackendErrorsAreMapped(t *testing.T) {
	cases := map[int]int{
		http.StatusNotFound:            http.StatusNotFound,
		http.StatusUnauthorized:        http.StatusUnauthorized,
		http.StatusForbidden:           http.StatusForbidden,
		http.StatusInternalServerError: http.StatusBadGateway,
	}
	for upstream, want := range cases {
		r, _ := setupRouter(t, upstream)
		rr := send(r, http.MethodDelete, "/api/v1/admin/plans/p1?confirm=true", "")
		assert.Equal(t, want, rr.Code, "upstream %d", upstream)
	}
}
