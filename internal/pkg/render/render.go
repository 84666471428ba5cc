// internal/pkg/render/render.go
package render

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/adiair/PlotAura/internal/domain/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed views/*.tmpl
var viewsFS embed.FS

// localsKey is where the flash/locals bridge leaves the per-request render
// context in the gin context.
const localsKey = "render.locals"

// Locals is the per-request rendering context: drained flash messages, the
// resolved identity, and the public map token. It is rebuilt for every
// request and never outlives it.
type Locals struct {
	Success  []string
	Error    []string
	CurrUser *user.User
	MapToken string
}

// SetLocals attaches the render context for the current request.
func SetLocals(c *gin.Context, l Locals) {
	c.Set(localsKey, l)
}

// LocalsFrom returns the render context, or a zero value before the
// bridge has run (error pages for rejected requests take this path).
func LocalsFrom(c *gin.Context) Locals {
	if v, ok := c.Get(localsKey); ok {
		if l, ok := v.(Locals); ok {
			return l
		}
	}
	return Locals{}
}

var funcs = template.FuncMap{
	"year": func() int {
		return time.Now().Year()
	},
	"stars": func(rating int) string {
		return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
	},
}

// Renderer executes the embedded page templates. Every page receives the
// request Locals under .Locals plus its own data map.
type Renderer struct {
	tpl    *template.Template
	logger *zap.Logger
}

func New(logger *zap.Logger) (*Renderer, error) {
	tpl, err := template.New("").Funcs(funcs).ParseFS(viewsFS, "views/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse views: %w", err)
	}
	return &Renderer{tpl: tpl, logger: logger}, nil
}

// HTML renders a named page template with the merged render context.
func (r *Renderer) HTML(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Locals"] = LocalsFrom(c)

	c.Writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := r.tpl.ExecuteTemplate(c.Writer, name, data); err != nil {
		r.logger.Error("template execution failed",
			zap.String("template", name),
			zap.Error(err),
		)
	}
}

// ErrorPage renders the single error view. Callers pass only messages that
// are safe to show.
func (r *Renderer) ErrorPage(c *gin.Context, status int, message string) {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	r.HTML(c, status, "error", gin.H{
		"StatusCode": status,
		"Message":    message,
	})
}
