// internal/middleware/sanitize.go
package middleware

import (
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// offendingKey reports whether a parameter name could be interpreted as a
// document-store operator or path traversal inside a query document.
func offendingKey(key string) bool {
	return strings.HasPrefix(key, "$") || strings.Contains(key, ".")
}

func scrubValues(values url.Values) url.Values {
	clean := make(url.Values, len(values))
	for key, vals := range values {
		if offendingKey(key) {
			continue
		}
		clean[key] = vals
	}
	return clean
}

// SanitizeInput strips query and form keys that look like storage-layer
// operators before any handler observes them. Stripping whole keys rather
// than escaping keeps handler code free of injection concerns.
func SanitizeInput() gin.HandlerFunc {
	return func(c *gin.Context) {
		r := c.Request

		if r.URL.RawQuery != "" {
			r.URL.RawQuery = scrubValues(r.URL.Query()).Encode()
		}

		ct := r.Header.Get("Content-Type")
		if strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
			if err := r.ParseForm(); err == nil {
				r.PostForm = scrubValues(r.PostForm)
				r.Form = scrubValues(r.Form)
			}
		}

		c.Next()
	}
}
