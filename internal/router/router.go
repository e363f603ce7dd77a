// Package router assembles the HTTP surface: middleware chain, public
// routes and the authenticated API group.
package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/medagenda/clinic-api/internal/middleware"
	"github.com/medagenda/clinic-api/pkg/logger"
)

// Handler is anything that can attach its routes to a group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Config struct {
	RateLimitRPS   float64
	RateLimitBurst int
	RequestTimeout time.Duration
	CacheTTL       time.Duration
	CORS           middleware.CORSConfig
}

type Router struct {
	engine *gin.Engine
	db     *sqlx.DB
}

// New wires the middleware chain and registers every handler. The
// auth handler stays outside the authenticated group; everything else
// requires a valid token.
func New(
	cfg Config,
	log *logger.Logger,
	db *sqlx.DB,
	auth *middleware.AuthMiddleware,
	authH Handler,
	protected []Handler,
	cached []Handler,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger(log))
	engine.Use(middleware.CORS(cfg.CORS))
	engine.Use(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Handler())
	engine.Use(middleware.Timeout(cfg.RequestTimeout))

	r := &Router{engine: engine, db: db}

	engine.GET("/health", r.health)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := engine.Group("/api/v1")
	authH.RegisterRoutes(v1)

	secured := v1.Group("")
	secured.Use(auth.Authenticate())
	for _, h := range protected {
		h.RegisterRoutes(secured)
	}

	// Read-heavy reporting routes additionally sit behind a short
	// response cache.
	readOnly := v1.Group("")
	readOnly.Use(auth.Authenticate(), middleware.ResponseCache(cfg.CacheTTL))
	for _, h := range cached {
		h.RegisterRoutes(readOnly)
	}

	return r
}

func (r *Router) health(c *gin.Context) {
	status := "ok"
	code := 200
	if r.db != nil {
		if err := r.db.PingContext(c.Request.Context()); err != nil {
			status = "degraded"
			code = 503
		}
	}
	c.JSON(code, gin.H{"status": status})
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
