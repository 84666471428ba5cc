// internal/middleware/require_login.go
package middleware

import (
	"net/http"
	"net/url"

	"github.com/adiair/PlotAura/internal/pkg/session"

	"github.com/gin-gonic/gin"
)

// RequireLogin gates mutating routes. Anonymous requests are flashed an
// explanation and bounced to the login page with the original destination
// preserved.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsAuthenticated(c) {
			c.Next()
			return
		}

		if s := SessionFrom(c); s != nil {
			s.AddFlash(session.FlashError, "You must be logged in first")
		}
		c.Redirect(http.StatusFound, "/login?return="+url.QueryEscape(c.Request.URL.Path))
		c.Abort()
	}
}
