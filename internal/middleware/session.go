// internal/middleware/session.go
package middleware

import (
	"github.com/adiair/PlotAura/internal/pkg/session"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// ResolveSession attaches a session to every request, creating one when no
// valid cookie arrives, and persists any changes once the chain unwinds.
// The persist step is where the touch-debounce policy applies: clean
// sessions only refresh their stored expiry when the debounce interval has
// elapsed.
func ResolveSession(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := manager.Resolve(c.Request.Context(), c.Request)
		c.Set(sessionKey, s)

		if s.Fresh() {
			manager.IssueCookie(c.Writer, s)
		}

		c.Next()

		manager.Save(c.Request.Context(), s)
	}
}

// SessionFrom returns the request's session. The resolution middleware
// guarantees one exists for every request that reached a handler.
func SessionFrom(c *gin.Context) *session.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(*session.Session); ok {
			return s
		}
	}
	return nil
}
