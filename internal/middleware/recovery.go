// internal/middleware/recovery.go
package middleware

import (
	"net/http"

	xerrors "github.com/adiair/PlotAura/internal/pkg/errors"
	"github.com/adiair/PlotAura/internal/pkg/render"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery converts a handler panic into the generic error page. It is the
// outermost stage so nothing above it can leak a stack trace to the client.
func Recovery(logger *zap.Logger, renderer *render.Renderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
				)
				c.Abort()
				if !c.Writer.Written() {
					renderer.ErrorPage(c, http.StatusInternalServerError, xerrors.DefaultMessage)
				}
			}
		}()
		c.Next()
	}
}
