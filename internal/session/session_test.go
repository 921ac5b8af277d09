package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware(false))
	r.GET("/whoami", func(c *gin.Context) { c.String(http.StatusOK, ID(c)) })
	return r
}

func TestMiddleware_IssuesCookie(t *testing.T) {
	rr := httptest.NewRecorder()
	setupRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	id := rr.Body.String()
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, id, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestMiddleware_ReusesExisting(t *testing.T) {
	existing := uuid.NewString()
	r := setupRouter()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: existing})
	r.ServeHTTP(rr, req)
	assert.Equal(t, existing, rr.Body.String())
	assert.Empty(t, rr.Result().Cookies())

	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(HeaderName, existing)
	r.ServeHTTP(rr, req)
	assert.Equal(t, existing, rr.Body.String())
}

func TestMiddleware_RejectsForgedID(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "../../etc"})
	setupRouter().ServeHTTP(rr, req)

	assert.NotEqual(t, "../../etc", rr.Body.String())
	assert.Len(t, rr.Result().Cookies(), 1)
}
