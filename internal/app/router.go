// internal/app/router.go
package app

import (
	"net/http"

	listingHandler "github.com/adiair/PlotAura/internal/handlers/listing"
	reviewHandler "github.com/adiair/PlotAura/internal/handlers/review"
	userHandler "github.com/adiair/PlotAura/internal/handlers/user"
	"github.com/adiair/PlotAura/internal/middleware"
	xerrors "github.com/adiair/PlotAura/internal/pkg/errors"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	User    *userHandler.Handler
	Listing *listingHandler.Handler
	Review  *reviewHandler.Handler
}

// SetupRouter mounts the three route collaborators: reviews under a
// listing, listings, and the user routes at the root. Anything unmatched
// becomes a 404 flowing through the same error terminator as every other
// failure.
func SetupRouter(r *gin.Engine, h *Handlers) {
	requireLogin := middleware.RequireLogin()

	// ==================== Reviews ====================
	reviews := r.Group("/listing/:id/reviews")
	{
		reviews.POST("", requireLogin, h.Review.Create)
		reviews.DELETE("/:reviewId", requireLogin, h.Review.Delete)
	}

	// ==================== Listings ====================
	listings := r.Group("/listing")
	{
		listings.GET("", h.Listing.Index)
		listings.GET("/new", requireLogin, h.Listing.NewForm)
		listings.POST("", requireLogin, h.Listing.Create)
		listings.GET("/:id", h.Listing.Show)
		listings.GET("/:id/edit", requireLogin, h.Listing.EditForm)
		listings.PUT("/:id", requireLogin, h.Listing.Update)
		listings.DELETE("/:id", requireLogin, h.Listing.Delete)
	}

	// ==================== Users ====================
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/listing")
	})
	r.GET("/signup", h.User.ShowSignup)
	r.POST("/signup", h.User.Signup)
	r.GET("/login", h.User.ShowLogin)
	r.POST("/login", h.User.Login)
	r.GET("/logout", h.User.Logout)

	// ==================== Catch-all ====================
	r.NoRoute(func(c *gin.Context) {
		c.Error(xerrors.New(http.StatusNotFound, "Page not found"))
		c.Abort()
	})
}
