package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jwalitptl/clinic-portal/internal/handler"
	appointmentHandler "github.com/jwalitptl/clinic-portal/internal/handler/appointment"
	authHandler "github.com/jwalitptl/clinic-portal/internal/handler/auth"
	dashboardHandler "github.com/jwalitptl/clinic-portal/internal/handler/dashboard"
	patientHandler "github.com/jwalitptl/clinic-portal/internal/handler/patient"
	"github.com/jwalitptl/clinic-portal/internal/middleware"
	"github.com/jwalitptl/clinic-portal/pkg/metrics"
)

type Router struct {
	engine       *gin.Engine
	auth         *middleware.AuthMiddleware
	authH        *authHandler.Handler
	dashboardH   *dashboardHandler.Handler
	patientH     *patientHandler.Handler
	appointmentH *appointmentHandler.Handler
	healthH      *handler.HealthHandler
	metrics      *metrics.Metrics
}

type Config struct {
	RateRPS   float64
	RateBurst int
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	authH *authHandler.Handler,
	dashboardH *dashboardHandler.Handler,
	patientH *patientHandler.Handler,
	appointmentH *appointmentHandler.Handler,
	healthH *handler.HealthHandler,
	m *metrics.Metrics,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	r := &Router{
		engine:       engine,
		auth:         auth,
		authH:        authH,
		dashboardH:   dashboardH,
		patientH:     patientH,
		appointmentH: appointmentH,
		healthH:      healthH,
		metrics:      m,
	}

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		r.metricsMiddleware(),
	)

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RPS:   config.RateRPS,
		Burst: config.RateBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	return r
}

// Setup registers every route. The session guard wraps the whole protected
// group, so unauthenticated requests bounce to /login before any handler
// runs.
func (r *Router) Setup() {
	public := r.engine.Group("/")
	r.authH.RegisterRoutes(public)
	r.healthH.RegisterRoutes(public)
	public.GET("/metrics", gin.WrapH(promhttp.Handler()))

	protected := r.engine.Group("/")
	protected.Use(r.auth.RequireSession())
	r.authH.RegisterProtectedRoutes(protected)
	r.dashboardH.RegisterRoutes(protected)
	r.patientH.RegisterRoutes(protected)
	r.appointmentH.RegisterRoutes(protected)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		r.metrics.RequestsTotal.WithLabelValues(
			c.Request.Method, path, statusLabel(c.Writer.Status()),
		).Inc()
		r.metrics.RequestDuration.WithLabelValues(
			c.Request.Method, path,
		).Observe(time.Since(start).Seconds())
	}
}

func statusLabel(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
