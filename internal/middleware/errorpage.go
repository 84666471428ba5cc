// internal/middleware/errorpage.go
package middleware

import (
	xerrors "github.com/adiair/PlotAura/internal/pkg/errors"
	"github.com/adiair/PlotAura/internal/pkg/render"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorPage is the chain's final sink. Any error attached to the context,
// whether raised by a handler or synthesized by the catch-all, is rendered
// as the single error view. The status defaults to 500 and the message to
// the generic string, so an error that never set an explicit message cannot
// leak its internals onto the page. This stage never re-raises.
func ErrorPage(logger *zap.Logger, renderer *render.Renderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := xerrors.StatusOf(err)
		message := xerrors.MessageOf(err)

		if status >= 500 {
			logger.Error("request failed",
				zap.String("request_id", RequestID(c)),
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
		}

		if c.Writer.Written() {
			return
		}
		renderer.ErrorPage(c, status, message)
	}
}
