package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/glowdesk/booking-bot/internal/middleware"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Config struct {
	Mode      string
	RateLimit rate.Limit
	RateBurst int
}

// Router owns the gin engine and the route layout: webhooks at the
// root, the admin API under /api/v1, metrics and health alongside.
type Router struct {
	engine   *gin.Engine
	webhookH Handler
	healthH  Handler
	apiH     []Handler
}

func NewRouter(config Config, webhookH, healthH Handler, apiHandlers ...Handler) *Router {
	if config.Mode != "" {
		gin.SetMode(config.Mode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	if config.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
		})
		engine.Use(limiter.RateLimit())
	}

	return &Router{
		engine:   engine,
		webhookH: webhookH,
		healthH:  healthH,
		apiH:     apiHandlers,
	}
}

func (r *Router) Setup() {
	root := r.engine.Group("")
	r.webhookH.RegisterRoutes(root)
	r.healthH.RegisterRoutes(root)

	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.engine.Group("/api/v1")
	for _, h := range r.apiH {
		h.RegisterRoutes(api)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
