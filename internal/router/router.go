package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/avargas/rentals-api/internal/handler/account"
	"github.com/avargas/rentals-api/internal/handler/auth"
	"github.com/avargas/rentals-api/internal/handler/contract"
	"github.com/avargas/rentals-api/internal/handler/health"
	"github.com/avargas/rentals-api/internal/handler/plan"
	"github.com/avargas/rentals-api/internal/handler/property"
	"github.com/avargas/rentals-api/internal/handler/tenant"
	"github.com/avargas/rentals-api/internal/middleware"
)

type Handlers struct {
	Health   *health.Handler
	Auth     *auth.Handler
	Plan     *plan.Handler
	Account  *account.Handler
	Property *property.Handler
	Tenant   *tenant.Handler
	Contract *contract.Handler
}

type Config struct {
	RateLimitRPS   float64
	RateLimitBurst int
	CORS           middleware.CORSConfig
	MetricsPrefix  string
}

type Router struct {
	engine   *gin.Engine
	auth     *middleware.AuthMiddleware
	handlers Handlers
	registry *prometheus.Registry
	metrics  *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

func NewRouter(authMW *middleware.AuthMiddleware, handlers Handlers, config Config) *Router {
	gin.SetMode(gin.ReleaseMode)
	registerValidations()

	engine := gin.New()

	registry := prometheus.NewRegistry()
	metrics := initRouterMetrics(registry, config.MetricsPrefix)

	r := &Router{
		engine:   engine,
		auth:     authMW,
		handlers: handlers,
		registry: registry,
		metrics:  metrics,
	}

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		r.metricsMiddleware(),
	)
	engine.Use(middleware.CORS(config.CORS))

	rateLimiter := middleware.NewRateLimiter(config.RateLimitRPS, config.RateLimitBurst)
	engine.Use(rateLimiter.RateLimit())

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	r.handlers.Health.RegisterRoutes(api)
	api.GET("/metrics", gin.WrapH(promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})))

	// Public: registration, login and the active-plan catalog.
	r.handlers.Auth.RegisterRoutes(api)
	r.handlers.Plan.RegisterRoutes(api)

	// Everything else needs a session.
	protected := api.Group("")
	protected.Use(r.auth.RequireAuth())
	r.handlers.Auth.RegisterProtectedRoutes(protected)
	r.handlers.Account.RegisterRoutes(protected)
	r.handlers.Property.RegisterRoutes(protected)
	r.handlers.Tenant.RegisterRoutes(protected)
	r.handlers.Contract.RegisterRoutes(protected)

	admin := api.Group("/admin")
	admin.Use(r.auth.RequireAuth(), r.auth.RequireAdmin())
	r.handlers.Account.RegisterAdminRoutes(admin)
	r.handlers.Plan.RegisterAdminRoutes(admin)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// registerValidations installs the custom binding rules used by the request
// DTOs. laterdate requires the tagged ISO date to sort after the named
// sibling field; comparing the strings lexically is correct for 2006-01-02.
func registerValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("laterdate", func(fl validator.FieldLevel) bool {
		other := fl.Parent().FieldByName(fl.Param())
		if !other.IsValid() {
			return false
		}
		return fl.Field().String() > other.String()
	})
}

func initRouterMetrics(registry *prometheus.Registry, prefix string) *routerMetrics {
	m := &routerMetrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
	}
	registry.MustRegister(m.requestDuration, m.requestTotal, m.errorTotal)
	return m
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}
