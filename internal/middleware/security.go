// internal/middleware/security.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// contentSecurityPolicy allow-lists the external origins permitted to
// supply scripts, styles, images, fonts and connections to the rendered
// pages (map tiles, CDN assets, hosted images).
var contentSecurityPolicy = strings.Join([]string{
	"default-src 'self'",
	"script-src 'self' https://api.mapbox.com https://cdn.jsdelivr.net",
	"style-src 'self' 'unsafe-inline' https://api.mapbox.com https://cdn.jsdelivr.net https://fonts.googleapis.com",
	"img-src 'self' data: blob: https://res.cloudinary.com https://images.unsplash.com",
	"font-src 'self' https://fonts.gstatic.com data:",
	"connect-src 'self' https://api.mapbox.com https://events.mapbox.com",
	"object-src 'none'",
	"frame-ancestors 'self'",
}, "; ")

// SecurityHeaders hardens every response before business logic runs. It
// touches headers only; request semantics pass through unchanged.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Content-Security-Policy", contentSecurityPolicy)
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "SAMEORIGIN")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("X-DNS-Prefetch-Control", "off")
		h.Del("X-Powered-By")
		c.Next()
	}
}
