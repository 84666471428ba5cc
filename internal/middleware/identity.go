// internal/middleware/identity.go
package middleware

import (
	"errors"

	"github.com/adiair/PlotAura/internal/domain/user"
	"github.com/adiair/PlotAura/internal/identity"
	xerrors "github.com/adiair/PlotAura/internal/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const currUserKey = "currUser"

// AttachIdentity resolves the session's identity reference into a full
// user and places it in the request context. A reference that no longer
// resolves (deleted account) demotes the request to anonymous and clears
// the stale reference; it never fails the request.
func AttachIdentity(provider identity.Provider, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := SessionFrom(c)
		if s == nil || s.Identity() == "" {
			c.Next()
			return
		}

		u, err := provider.Deserialize(c.Request.Context(), s.Identity())
		if err != nil {
			if errors.Is(err, xerrors.ErrUnknownIdentity) {
				s.ClearIdentity()
			} else {
				logger.Error("identity resolution failed, proceeding anonymous",
					zap.String("request_id", RequestID(c)),
					zap.Error(err),
				)
			}
			c.Next()
			return
		}

		c.Set(currUserKey, u)
		c.Next()
	}
}

// CurrentUser returns the resolved identity, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *user.User {
	if v, ok := c.Get(currUserKey); ok {
		if u, ok := v.(*user.User); ok {
			return u
		}
	}
	return nil
}

// IsAuthenticated reports whether the request carries a resolved identity.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentUser(c) != nil
}
