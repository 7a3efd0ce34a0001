package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/waterline/internal/clock"
	"github.com/smallbiznis/waterline/internal/config"
	"github.com/stretchr/testify/assert"
)

func newContext(req *http.Request) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	return c
}

func TestReadTokenFromCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: "cookie-token"})

	token, ok := NewManager(config.Config{}, nil).ReadToken(newContext(req))
	assert.True(t, ok)
	assert.Equal(t, "cookie-token", token)
}

func TestReadTokenFromBearerHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer header-token")

	token, ok := NewManager(config.Config{}, nil).ReadToken(newContext(req))
	assert.True(t, ok)
	assert.Equal(t, "header-token", token)
}

func TestReadTokenMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic Zm9vOmJhcg==")

	_, ok := NewManager(config.Config{}, nil).ReadToken(newContext(req))
	assert.False(t, ok)
}

func TestSetCookieFollowsSessionExpiry(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/login/", nil)

	clk := clock.NewFakeClock(time.Date(2026, time.May, 20, 9, 0, 0, 0, time.UTC))
	m := NewManager(config.Config{SessionCookieName: "wl_session", AuthCookieSecure: true}, clk)
	m.Set(c, "tok", clk.Now().Add(2*time.Hour))

	cookies := rec.Result().Cookies()
	if assert.Len(t, cookies, 1) {
		assert.Equal(t, "wl_session", cookies[0].Name)
		assert.Equal(t, 7200, cookies[0].MaxAge)
		assert.True(t, cookies[0].HttpOnly)
		assert.True(t, cookies[0].Secure)
	}
}
