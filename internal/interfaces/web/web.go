// Package web serves the browser client: server-rendered shells for the
// landing, list and create views plus the script that drives them against the
// ticket API.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/supportdesk/internal/interfaces/http/middleware"
	"github.com/orris-inc/supportdesk/internal/shared/biztime"
	"github.com/orris-inc/supportdesk/internal/shared/logger"
	"github.com/orris-inc/supportdesk/internal/shared/services/markdown"
)

var (
	//go:embed templates/*.html
	templatesFS embed.FS

	//go:embed static
	staticFS embed.FS

	//go:embed content/landing.md
	landingMarkdown string
)

const (
	pageHome     = "home"
	pageList     = "list"
	pageNew      = "new"
	pageNotFound = "notfound"
)

type pageData struct {
	Title   string
	Page    string
	APIBase string
	Year    int
	Content template.HTML
}

// Handler is the UI fallback behind the edge router.
type Handler struct {
	engine  *gin.Engine
	apiBase string
	landing template.HTML
	log     logger.Interface
}

func NewHandler(apiBase string, md markdown.Service, log logger.Interface) (*Handler, error) {
	landing, err := md.Render(landingMarkdown)
	if err != nil {
		return nil, fmt.Errorf("render landing page: %w", err)
	}

	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("open static assets: %w", err)
	}

	h := &Handler{
		engine:  gin.New(),
		apiBase: apiBase,
		landing: landing,
		log:     log,
	}

	h.engine.Use(middleware.Recovery(log))
	h.engine.SetHTMLTemplate(tmpl)

	h.engine.StaticFileFS("/static/app.js", "app.js", http.FS(static))
	h.engine.StaticFileFS("/static/app.css", "app.css", http.FS(static))

	h.engine.GET("/", h.home)
	h.engine.GET("/tickets", h.list)
	h.engine.GET("/new", h.create)
	h.engine.NoRoute(h.notFound)

	return h, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.engine.ServeHTTP(w, r)
}

func (h *Handler) page(title, page string) pageData {
	return pageData{
		Title:   title,
		Page:    page,
		APIBase: h.apiBase,
		Year:    biztime.NowUTC().Year(),
	}
}

func (h *Handler) home(c *gin.Context) {
	data := h.page("Home", pageHome)
	data.Content = h.landing
	c.HTML(http.StatusOK, "home.html", data)
}

func (h *Handler) list(c *gin.Context) {
	c.HTML(http.StatusOK, "list.html", h.page("Tickets", pageList))
}

func (h *Handler) create(c *gin.Context) {
	c.HTML(http.StatusOK, "new.html", h.page("Create Ticket", pageNew))
}

func (h *Handler) notFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "notfound.html", h.page("Page not found", pageNotFound))
}
