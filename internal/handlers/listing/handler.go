// internal/handlers/listing/handler.go
package listing

import (
	"context"
	"net/http"

	domain "github.com/adiair/PlotAura/internal/domain/listing"
	reviewdomain "github.com/adiair/PlotAura/internal/domain/review"
	"github.com/adiair/PlotAura/internal/middleware"
	"github.com/adiair/PlotAura/internal/pkg/render"
	"github.com/adiair/PlotAura/internal/pkg/session"
	"github.com/adiair/PlotAura/internal/repository/mongodb"
	listingsvc "github.com/adiair/PlotAura/internal/service/listing"
	reviewsvc "github.com/adiair/PlotAura/internal/service/review"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	listings *listingsvc.Service
	reviews  *reviewsvc.Service
	users    *mongodb.UserRepository
	renderer *render.Renderer
	logger   *zap.Logger
}

func NewHandler(listings *listingsvc.Service, reviews *reviewsvc.Service, users *mongodb.UserRepository, renderer *render.Renderer, logger *zap.Logger) *Handler {
	return &Handler{listings: listings, reviews: reviews, users: users, renderer: renderer, logger: logger}
}

func (h *Handler) Index(c *gin.Context) {
	listings, err := h.listings.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}
	h.renderer.HTML(c, http.StatusOK, "listings/index", gin.H{"Listings": listings})
}

func (h *Handler) NewForm(c *gin.Context) {
	h.renderer.HTML(c, http.StatusOK, "listings/new", nil)
}

func (h *Handler) Create(c *gin.Context) {
	var form domain.Form
	if err := c.ShouldBind(&form); err != nil {
		h.flashAndRedirect(c, session.FlashError, "Please fill in all listing fields", "/listing/new")
		return
	}

	u := middleware.CurrentUser(c)
	l, err := h.listings.Create(c.Request.Context(), &form, u.ID)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}
	h.flashAndRedirect(c, session.FlashSuccess, "New listing created!", "/listing/"+l.ID.Hex())
}

// reviewView pairs a review with its resolved author for the show page.
type reviewView struct {
	Review     reviewdomain.Review
	AuthorName string
	IsAuthor   bool
}

func (h *Handler) Show(c *gin.Context) {
	ctx := c.Request.Context()

	l, err := h.listings.Get(ctx, c.Param("id"))
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	reviews, err := h.reviews.ForListing(ctx, l.ID)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	curr := middleware.CurrentUser(c)
	views := make([]reviewView, 0, len(reviews))
	for _, rev := range reviews {
		views = append(views, reviewView{
			Review:     rev,
			AuthorName: h.username(ctx, rev.AuthorID.Hex()),
			IsAuthor:   curr != nil && curr.ID == rev.AuthorID,
		})
	}

	h.renderer.HTML(c, http.StatusOK, "listings/show", gin.H{
		"Listing":   l,
		"Reviews":   views,
		"OwnerName": h.username(ctx, l.OwnerID.Hex()),
		"IsOwner":   curr != nil && curr.ID == l.OwnerID,
	})
}

func (h *Handler) EditForm(c *gin.Context) {
	l, err := h.listings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}
	h.renderer.HTML(c, http.StatusOK, "listings/edit", gin.H{"Listing": l})
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")

	var form domain.Form
	if err := c.ShouldBind(&form); err != nil {
		h.flashAndRedirect(c, session.FlashError, "Please fill in all listing fields", "/listing/"+id+"/edit")
		return
	}

	u := middleware.CurrentUser(c)
	if _, err := h.listings.Update(c.Request.Context(), id, &form, u.ID); err != nil {
		c.Error(err)
		c.Abort()
		return
	}
	h.flashAndRedirect(c, session.FlashSuccess, "Listing updated!", "/listing/"+id)
}

func (h *Handler) Delete(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if err := h.listings.Delete(c.Request.Context(), c.Param("id"), u.ID); err != nil {
		c.Error(err)
		c.Abort()
		return
	}
	h.flashAndRedirect(c, session.FlashSuccess, "Listing deleted!", "/listing")
}

func (h *Handler) username(ctx context.Context, id string) string {
	u, err := h.users.FindByID(ctx, id)
	if err != nil {
		return "unknown"
	}
	return u.Username
}

func (h *Handler) flashAndRedirect(c *gin.Context, kind, message, target string) {
	if s := middleware.SessionFrom(c); s != nil {
		s.AddFlash(kind, message)
	}
	c.Redirect(http.StatusFound, target)
}
