package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/orris-inc/supportdesk/docs"
	"github.com/orris-inc/supportdesk/internal/infrastructure/config"
	"github.com/orris-inc/supportdesk/internal/interfaces/http/middleware"
	"github.com/orris-inc/supportdesk/internal/interfaces/http/routes"
	"github.com/orris-inc/supportdesk/internal/shared/logger"
)

// Router represents the HTTP router configuration
type Router struct {
	*Container
	fallback http.Handler
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(db *gorm.DB, cfg *config.Config, log logger.Interface) *Router {
	return &Router{
		Container: NewContainer(db, cfg, log),
		fallback:  http.HandlerFunc(notFound),
	}
}

// SetFallback installs the handler for requests outside the API prefix.
func (r *Router) SetFallback(h http.Handler) {
	if h != nil {
		r.fallback = h
	}
}

// SetupRoutes configures the API engine. Paths are relative to the API prefix.
func (r *Router) SetupRoutes() {
	// The engine only sees stripped paths, so a trailing-slash redirect would
	// point the client outside the API prefix.
	r.engine.RedirectTrailingSlash = false

	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.CustomLogger(r.log))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))

	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.engine.Group("")
	api.Use(middleware.SecurityHeaders())
	if r.redis != nil && r.cfg.Redis.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(r.redis, r.cfg.Redis.RateLimit, time.Minute, r.log.Named("ratelimit"))
		api.Use(limiter.Limit())
	}
	{
		routes.SetupHealthRoutes(api, r.hdlrs.healthHandler)
		routes.SetupTicketRoutes(api, &routes.TicketRouteConfig{
			TicketHandler: r.hdlrs.ticketHandler,
		})
	}

	r.engine.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, http.StatusText(http.StatusNotFound))
	})
}

// GetEngine returns the Gin engine serving the API without its prefix.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Handler returns the edge handler to hand to http.Server.
func (r *Router) Handler() http.Handler {
	return NewEdgeRouter(r.cfg.Server.NormalizedAPIPrefix(), r.engine, r.fallback)
}
