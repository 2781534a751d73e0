package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/medisys/hospital-api/internal/middleware"
	"github.com/medisys/hospital-api/pkg/metrics"
)

// Handler registers its routes on a group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// EngineHandler registers routes directly on the engine (health probes).
type EngineHandler interface {
	RegisterRoutes(*gin.Engine)
}

type Config struct {
	RateLimitEnabled bool
	RateLimit        rate.Limit
	RateBurst        int
	CORSConfig       middleware.CORSConfig
	MetricsEnabled   bool
	MetricsPath      string
	AuthEnabled      bool
	ReleaseMode      bool
}

type Router struct {
	engine *gin.Engine
	auth   *middleware.AuthMiddleware
	config Config
}

func New(auth *middleware.AuthMiddleware, m *metrics.Metrics, config Config) *Router {
	if config.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.RegisterValidation()

	engine := gin.New()

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Metrics(m),
	)
	engine.Use(middleware.CORS(config.CORSConfig))

	if config.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
		})
		engine.Use(limiter.RateLimit())
	}

	if config.MetricsEnabled {
		path := config.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		engine.GET(path, gin.WrapH(promhttp.Handler()))
	}

	return &Router{engine: engine, auth: auth, config: config}
}

// Setup wires health probes, public routes, and the protected API surface.
func (r *Router) Setup(health EngineHandler, public []Handler, protected []Handler) {
	health.RegisterRoutes(r.engine)

	api := r.engine.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	for _, h := range public {
		h.RegisterRoutes(api)
	}

	group := api.Group("")
	if r.config.AuthEnabled && r.auth != nil {
		group.Use(r.auth.Authenticate())
	}
	for _, h := range protected {
		h.RegisterRoutes(group)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
