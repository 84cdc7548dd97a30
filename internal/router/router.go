package router

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	activityhandler "github.com/jwalitptl/hospital-api/internal/handler/activity"
	admissionhandler "github.com/jwalitptl/hospital-api/internal/handler/admission"
	appointmenthandler "github.com/jwalitptl/hospital-api/internal/handler/appointment"
	billhandler "github.com/jwalitptl/hospital-api/internal/handler/bill"
	departmenthandler "github.com/jwalitptl/hospital-api/internal/handler/department"
	doctorhandler "github.com/jwalitptl/hospital-api/internal/handler/doctor"
	"github.com/jwalitptl/hospital-api/internal/handler/health"
	"github.com/jwalitptl/hospital-api/internal/handler/pages"
	patienthandler "github.com/jwalitptl/hospital-api/internal/handler/patient"
	roomhandler "github.com/jwalitptl/hospital-api/internal/handler/room"
	"github.com/jwalitptl/hospital-api/internal/middleware"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/internal/service/activity"
	"github.com/jwalitptl/hospital-api/internal/service/admission"
	"github.com/jwalitptl/hospital-api/internal/service/appointment"
	"github.com/jwalitptl/hospital-api/internal/service/bill"
	"github.com/jwalitptl/hospital-api/internal/service/department"
	"github.com/jwalitptl/hospital-api/internal/service/doctor"
	"github.com/jwalitptl/hospital-api/internal/service/patient"
	"github.com/jwalitptl/hospital-api/internal/service/room"
	"github.com/jwalitptl/hospital-api/pkg/httputil"
	"github.com/jwalitptl/hospital-api/pkg/metrics"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Router struct {
	engine   *gin.Engine
	handlers []Handler
	health   *health.Handler
	config   RouterConfig
	metrics  *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

type RouterConfig struct {
	RateLimit    rate.Limit
	RateBurst    int
	CORSConfig   middleware.CORSConfig
	MaxBodyBytes int64

	// RequestTimeout bounds each request's context. Zero disables it.
	RequestTimeout time.Duration

	// Registry receives the HTTP collectors. When ExposeMetrics is set it is
	// also served on /metrics.
	Registry         *prometheus.Registry
	ExposeMetrics    bool
	MetricsNamespace string
	StaticDir        string
}

// New wires every resource service and handler on top of store.
func New(store repository.Store, m *metrics.Metrics, config RouterConfig) *Router {
	handlers := []Handler{
		departmenthandler.NewHandler(department.NewService(store.Departments())),
		doctorhandler.NewHandler(doctor.NewService(store.Doctors(), store.Departments())),
		patienthandler.NewHandler(patient.NewService(store.Patients())),
		roomhandler.NewHandler(room.NewService(store.Rooms())),
		appointmenthandler.NewHandler(appointment.NewService(store.Appointments(), store.Patients(), store.Doctors())),
		admissionhandler.NewHandler(admission.NewService(store.Admissions(), m)),
		billhandler.NewHandler(bill.NewService(store.Bills(), store.Admissions())),
		activityhandler.NewHandler(activity.NewService(store.ActivityLogs())),
	}

	r := NewRouter(health.NewHandler(store), handlers, config)
	r.Setup()
	return r
}

func NewRouter(healthH *health.Handler, handlers []Handler, config RouterConfig) *Router {
	if config.Registry == nil {
		config.Registry = prometheus.NewRegistry()
	}

	engine := gin.New()

	r := &Router{
		engine:   engine,
		handlers: handlers,
		health:   healthH,
		config:   config,
		metrics:  initRouterMetrics(config.MetricsNamespace, config.Registry),
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Logger(),
		r.metricsMiddleware(),
		middleware.Recovery(),
		middleware.ErrorHandler(),
		middleware.CORS(config.CORSConfig),
		middleware.SecurityHeaders(middleware.DefaultSecurityConfig()),
	)

	if config.RateLimit > 0 {
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
		})
		engine.Use(rateLimiter.RateLimit())
	}

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, httputil.ErrorBody{Error: "not found"})
	})

	return r
}

func (r *Router) Setup() {
	if r.health != nil {
		r.health.RegisterRoutes(r.engine)
	}
	if r.config.ExposeMetrics {
		r.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(r.config.Registry, promhttp.HandlerOpts{})))
	}
	if r.config.StaticDir != "" {
		pages.NewHandler(r.config.StaticDir).RegisterRoutes(r.engine)
	}

	api := r.engine.Group("/api")
	api.Use(
		middleware.Timeout(r.config.RequestTimeout),
		middleware.SizeLimit(r.config.MaxBodyBytes),
	)
	for _, h := range r.handlers {
		h.RegisterRoutes(api)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(namespace string, reg prometheus.Registerer) *routerMetrics {
	factory := promauto.With(reg)

	return &routerMetrics{
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_errors_total",
				Help:      "Total number of HTTP errors",
			},
			[]string{"method", "path"},
		),
	}
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// Route templates keep label cardinality bounded.
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path).Inc()
		}
	}
}
