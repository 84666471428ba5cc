// internal/handlers/review/handler.go
package review

import (
	"net/http"

	domain "github.com/adiair/PlotAura/internal/domain/review"
	"github.com/adiair/PlotAura/internal/middleware"
	"github.com/adiair/PlotAura/internal/pkg/session"
	reviewsvc "github.com/adiair/PlotAura/internal/service/review"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	reviews *reviewsvc.Service
	logger  *zap.Logger
}

func NewHandler(reviews *reviewsvc.Service, logger *zap.Logger) *Handler {
	return &Handler{reviews: reviews, logger: logger}
}

func (h *Handler) Create(c *gin.Context) {
	listingID := c.Param("id")

	var form domain.Form
	if err := c.ShouldBind(&form); err != nil {
		h.flashAndRedirect(c, session.FlashError, "Reviews need a comment and a rating from 1 to 5", "/listing/"+listingID)
		return
	}

	u := middleware.CurrentUser(c)
	if _, err := h.reviews.Add(c.Request.Context(), listingID, &form, u.ID); err != nil {
		c.Error(err)
		c.Abort()
		return
	}
	h.flashAndRedirect(c, session.FlashSuccess, "New review added!", "/listing/"+listingID)
}

func (h *Handler) Delete(c *gin.Context) {
	listingID := c.Param("id")

	u := middleware.CurrentUser(c)
	if err := h.reviews.Remove(c.Request.Context(), listingID, c.Param("reviewId"), u.ID); err != nil {
		c.Error(err)
		c.Abort()
		return
	}
	h.flashAndRedirect(c, session.FlashSuccess, "Review deleted!", "/listing/"+listingID)
}

func (h *Handler) flashAndRedirect(c *gin.Context, kind, message, target string) {
	if s := middleware.SessionFrom(c); s != nil {
		s.AddFlash(kind, message)
	}
	c.Redirect(http.StatusFound, target)
}
