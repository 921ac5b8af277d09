package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/archplans/plan-portal/internal/catalog/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	return NewClient(Options{BaseURL: server.URL + "/"})
}

func TestClient_ListPlans_PublicWithFlags(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/plans", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("featured"))
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"_id":"p1","title":"Villa","price":"1200","rooms":4,"featured":true,"mainImage":"m.jpg"}]`))
	})

	plans, err := client.ListPlans(context.Background(), "", PlanQuery{Featured: true})
	require.NoError(t, err)
	require.Len(t, plans, 1)

	rec := plans[0].Record()
	assert.Equal(t, "p1", rec.ID)
	assert.Equal(t, 1200.0, rec.Price)
	assert.Equal(t, 4, rec.Rooms)
	assert.True(t, rec.Featured)
	assert.Equal(t, []string{"m.jpg"}, rec.Images)
}

func TestClient_ListPlans_WrappedResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"plans":[{"id":"a"},{"id":"b"}],"total":2}`))
	})

	plans, err := client.ListPlans(context.Background(), "", PlanQuery{})
	require.NoError(t, err)
	assert.Len(t, plans, 2)
}

func TestClient_ListPlans_Malformed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"ok"}`))
	})

	_, err := client.ListPlans(context.Background(), "", PlanQuery{})
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestClient_AttachesBearerToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		assert.Equal(t, "/api/inquiries", r.URL.Path)
		w.Write([]byte(`[{"_id":"i1","name":"Ann","status":"new","createdAt":"2024-05-01T10:00:00Z"}]`))
	})

	inquiries, err := client.ListInquiries(context.Background(), "secret-token")
	require.NoError(t, err)
	require.Len(t, inquiries, 1)

	rec := inquiries[0].Record()
	assert.Equal(t, "Ann", rec.ClientName)
	require.NotNil(t, rec.CreatedAt)
}

func TestClient_UpdatePlanStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/plans/p%2F1", r.URL.EscapedPath())
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "archived", body["status"])
		w.Write([]byte(`{}`))
	})

	require.NoError(t, client.UpdatePlanStatus(context.Background(), "tok", "p/1", "archived"))
}

func TestClient_ErrorStatusMapping(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/inquiries/missing":
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"Inquiry not found"}`))
		default:
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`unauthorized`))
		}
	})

	err := client.DeleteInquiry(context.Background(), "tok", "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Inquiry not found", apiErr.Message)

	_, err = client.GetProfile(context.Background(), "expired")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestClient_TransportError(t *testing.T) {
	client := NewClient(Options{BaseURL: "http://127.0.0.1:1"})
	_, err := client.ListCategories(context.Background())
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestClient_GetProfile_Wrapped(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"user":{"_id":"u1","name":"Admin","role":"admin"}}`))
	})

	p, err := client.GetProfile(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "u1", p.UserID())
	assert.True(t, p.Admin())
}

func TestClient_ResetPassword(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/reset-password/abc123", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		b, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"password":"hunter22"}`, string(b))
		w.Write([]byte(`{"message":"Password updated"}`))
	})

	require.NoError(t, client.ResetPassword(context.Background(), "abc123", "hunter22"))
}

func TestClient_UploadPlan_ForwardsContentType(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data; boundary=xyz"))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"plan":{"_id":"new","title":"Loft"}}`))
	})

	p, err := client.UploadPlan(context.Background(), "tok", strings.NewReader("--xyz--"), "multipart/form-data; boundary=xyz")
	require.NoError(t, err)
	assert.Equal(t, "Loft", p.Title)
}

func TestPlanRecord_Defaults(t *testing.T) {
	var p Plan
	require.NoError(t, json.Unmarshal([]byte(`{"id":"x","price":"abc","category":"residential","rating":"4.5","views":null}`), &p))

	rec := p.Record()
	assert.Equal(t, 0.0, rec.Price)
	assert.Equal(t, domain.CategoryResidential, rec.CategoryGroup)
	assert.Equal(t, 4.5, rec.Rating)
	assert.Equal(t, 0, rec.Views)
	assert.Equal(t, []string{domain.PlaceholderImage}, rec.Images)
	assert.Nil(t, rec.CreatedAt)
}
