// Package session carries the login session token between the HTTP layer and
// the auth service: an HttpOnly cookie for browsers, a bearer header for API clients.
package session

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/waterline/internal/clock"
	"github.com/smallbiznis/waterline/internal/config"
)

const DefaultCookieName = "_sid"

type Manager struct {
	cookieName string
	secure     bool
	clock      clock.Clock
}

func NewManager(cfg config.Config, clk clock.Clock) *Manager {
	name := strings.TrimSpace(cfg.SessionCookieName)
	if name == "" {
		name = DefaultCookieName
	}
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &Manager{cookieName: name, secure: cfg.AuthCookieSecure, clock: clk}
}

func (m *Manager) CookieName() string {
	return m.cookieName
}

// ReadToken returns the cookie token when present, else a bearer token.
func (m *Manager) ReadToken(c *gin.Context) (string, bool) {
	if token, err := c.Cookie(m.cookieName); err == nil {
		if token = strings.TrimSpace(token); token != "" {
			return token, true
		}
	}

	scheme, token, ok := strings.Cut(strings.TrimSpace(c.GetHeader("Authorization")), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// Set writes the session cookie so it expires together with the server-side session.
func (m *Manager) Set(c *gin.Context, value string, expiresAt time.Time) {
	m.write(c, value, max(int(expiresAt.Sub(m.clock.Now()).Seconds()), 0))
}

func (m *Manager) Clear(c *gin.Context) {
	m.write(c, "", -1)
}

func (m *Manager) write(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, value, maxAge, "/", "", m.secure, true)
}
