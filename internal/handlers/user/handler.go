// internal/handlers/user/handler.go
package user

import (
	"errors"
	"net/http"
	"strings"

	"github.com/adiair/PlotAura/internal/domain/user"
	"github.com/adiair/PlotAura/internal/identity"
	"github.com/adiair/PlotAura/internal/middleware"
	xerrors "github.com/adiair/PlotAura/internal/pkg/errors"
	"github.com/adiair/PlotAura/internal/pkg/render"
	"github.com/adiair/PlotAura/internal/pkg/session"
	"github.com/adiair/PlotAura/internal/service/account"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	accounts *account.Service
	provider identity.Provider
	renderer *render.Renderer
	logger   *zap.Logger
}

func NewHandler(accounts *account.Service, provider identity.Provider, renderer *render.Renderer, logger *zap.Logger) *Handler {
	return &Handler{accounts: accounts, provider: provider, renderer: renderer, logger: logger}
}

func (h *Handler) ShowSignup(c *gin.Context) {
	h.renderer.HTML(c, http.StatusOK, "users/signup", nil)
}

func (h *Handler) Signup(c *gin.Context) {
	var req user.SignupRequest
	if err := c.ShouldBind(&req); err != nil {
		h.flashAndRedirect(c, session.FlashError, "Please fill in all fields correctly", "/signup")
		return
	}

	u, err := h.accounts.Register(c.Request.Context(), &req)
	if err != nil {
		var e *xerrors.E
		if errors.As(err, &e) {
			h.flashAndRedirect(c, session.FlashError, e.Message, "/signup")
			return
		}
		c.Error(err)
		c.Abort()
		return
	}

	// Auto-login after registration
	if s := middleware.SessionFrom(c); s != nil {
		s.SetIdentity(h.provider.Serialize(u))
	}
	h.flashAndRedirect(c, session.FlashSuccess, "Welcome to PlotAura!", "/listing")
}

func (h *Handler) ShowLogin(c *gin.Context) {
	h.renderer.HTML(c, http.StatusOK, "users/login", nil)
}

func (h *Handler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.flashAndRedirect(c, session.FlashError, "Username and password are required", "/login")
		return
	}

	u, err := h.provider.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, xerrors.ErrInvalidCredentials) {
			h.flashAndRedirect(c, session.FlashError, "Invalid username or password", "/login")
			return
		}
		c.Error(err)
		c.Abort()
		return
	}

	if s := middleware.SessionFrom(c); s != nil {
		s.SetIdentity(h.provider.Serialize(u))
	}

	target := c.Query("return")
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		target = "/listing"
	}
	h.flashAndRedirect(c, session.FlashSuccess, "Welcome back, "+u.Username+"!", target)
}

// Logout drops the identity but keeps the session record alive so the
// goodbye flash survives into the next request.
func (h *Handler) Logout(c *gin.Context) {
	if s := middleware.SessionFrom(c); s != nil {
		s.ClearIdentity()
	}
	h.flashAndRedirect(c, session.FlashSuccess, "You are logged out!", "/listing")
}

func (h *Handler) flashAndRedirect(c *gin.Context, kind, message, target string) {
	if s := middleware.SessionFrom(c); s != nil {
		s.AddFlash(kind, message)
	}
	c.Redirect(http.StatusFound, target)
}
