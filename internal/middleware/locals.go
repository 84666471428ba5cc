// internal/middleware/locals.go
package middleware

import (
	"github.com/adiair/PlotAura/internal/pkg/render"
	"github.com/adiair/PlotAura/internal/pkg/session"

	"github.com/gin-gonic/gin"
)

// Locals bridges durable session state into the ephemeral render context,
// once per request, after identity resolution and before dispatch. The
// flash drain is destructive: draining marks the session dirty so each
// message reaches at most one rendered page. This is the only stage where
// session state crosses into the render context.
func Locals(mapToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		l := render.Locals{
			CurrUser: CurrentUser(c),
			MapToken: mapToken,
		}
		if s := SessionFrom(c); s != nil {
			l.Success = s.TakeFlash(session.FlashSuccess)
			l.Error = s.TakeFlash(session.FlashError)
		}
		render.SetLocals(c, l)
		c.Next()
	}
}
