package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RefreshCookieName carries the refresh token between login and refresh.
const RefreshCookieName = "jwt_cookie"

// CookieManager sets and clears the refresh-token cookie. The cookie is
// httpOnly with SameSite=None so browser clients on another origin can
// hit the refresh endpoint.
type CookieManager struct {
	Domain string
	Secure bool
}

func NewCookieManager(domain string, secure bool) *CookieManager {
	return &CookieManager{Domain: domain, Secure: secure}
}

func (m *CookieManager) SetRefresh(c *gin.Context, refresh string, exp time.Time) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(RefreshCookieName, refresh, maxAgeFrom(exp), "/", m.Domain, m.Secure, true)
}

func (m *CookieManager) ClearRefresh(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(RefreshCookieName, "", -1, "/", m.Domain, m.Secure, true)
}

func maxAgeFrom(exp time.Time) int {
	sec := int(time.Until(exp).Seconds())
	if sec < 0 {
		return 0
	}
	return sec
}
