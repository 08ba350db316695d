// Package web serves the portfolio site: the page, the HTMX console, live
// preference updates and window chrome.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/fflap/portfolio/internal/catalog"
	"github.com/fflap/portfolio/internal/theme"
	"github.com/fflap/portfolio/internal/visitor"
	"github.com/fflap/portfolio/internal/window"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// consoleContent is the initial console window size before the browser
// reports anything.
var consoleContent = window.Size{Width: 720, Height: 420}

// Deps wires the server to the rest of the site.
type Deps struct {
	Registry  *visitor.Registry
	Catalog   *catalog.Portfolio
	Analytics *Analytics
}

// Server serves the site.
type Server struct {
	registry  *visitor.Registry
	catalog   *catalog.Portfolio
	analytics *Analytics
	about     template.HTML
	templates *template.Template
	upgrader  websocket.Upgrader
}

// NewServer renders the static parts of the page and parses templates.
func NewServer(deps Deps) (*Server, error) {
	if deps.Registry == nil {
		return nil, fmt.Errorf("web: registry is required")
	}
	if deps.Catalog == nil {
		deps.Catalog = catalog.Default()
	}
	about, err := renderMarkdown(deps.Catalog.About)
	if err != nil {
		return nil, fmt.Errorf("rendering about: %w", err)
	}
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"join": strings.Join,
		// Console HTML entries escape their values when built.
		"trusted": func(s string) template.HTML { return template.HTML(s) },
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Server{
		registry:  deps.Registry,
		catalog:   deps.Catalog,
		analytics: deps.Analytics,
		about:     about,
		templates: tmpl,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}, nil
}

func renderMarkdown(src string) (template.HTML, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM, extension.Typographer))
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// Handler returns the gin engine serving every route.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(recovery(), requestLogger())
	if s.analytics != nil {
		r.Use(s.analytics.Track())
	}
	r.SetHTMLTemplate(s.templates)

	static, _ := fs.Sub(staticFS, "static")
	r.StaticFS("/static", http.FS(static))

	v := r.Group("/", s.visitorCookie())
	v.GET("/", s.handleIndex)
	v.GET("/privacy", s.handlePrivacy)
	v.GET("/console", s.handleConsole)
	v.POST("/console", s.handleSubmit)
	v.GET("/prefs", s.handlePrefs)
	v.POST("/prefs/background/toggle", s.handleBackgroundToggle)
	v.GET("/ws/prefs", s.handlePrefsSocket)
	v.POST("/windows/:id/:action", s.handleWindow)
	v.POST("/dock/hover", s.handleDockHover)

	return r
}

func (s *Server) handleIndex(c *gin.Context) {
	v := currentVisitor(c)
	view := v.Mount()
	frame := v.Windows.Open(visitor.ConsoleWindowID, "~/portfolio", consoleContent)
	th := v.Theme.Get()

	c.HTML(http.StatusOK, "index.html", gin.H{
		"portfolio":  s.catalog,
		"about":      s.about,
		"theme":      th,
		"themeCSS":   template.CSS(theme.CSS(th)),
		"background": v.Background.Label(),
		"frame":      frame.State(),
		"dock":       v.Dock.State(),
		"view":       view.ID,
		"entries":    nil,
	})
}

func (s *Server) handlePrivacy(c *gin.Context) {
	v := currentVisitor(c)
	c.HTML(http.StatusOK, "privacy.html", gin.H{
		"title":    "Privacy Policy",
		"themeCSS": template.CSS(theme.CSS(v.Theme.Get())),
	})
}
