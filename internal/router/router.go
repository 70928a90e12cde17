package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/mindwell-clinic/clinic-api/internal/handler"
	anamnesisHandler "github.com/mindwell-clinic/clinic-api/internal/handler/anamnesis"
	appointmentHandler "github.com/mindwell-clinic/clinic-api/internal/handler/appointment"
	auditHandler "github.com/mindwell-clinic/clinic-api/internal/handler/audit"
	authHandler "github.com/mindwell-clinic/clinic-api/internal/handler/auth"
	dashboardHandler "github.com/mindwell-clinic/clinic-api/internal/handler/dashboard"
	patientHandler "github.com/mindwell-clinic/clinic-api/internal/handler/patient"
	settingsHandler "github.com/mindwell-clinic/clinic-api/internal/handler/settings"
	"github.com/mindwell-clinic/clinic-api/internal/middleware"
	"github.com/mindwell-clinic/clinic-api/pkg/metrics"
)

type Config struct {
	RateLimit  rate.Limit
	RateBurst  int
	CORSConfig middleware.CORSConfig
}

type Router struct {
	engine       *gin.Engine
	auth         *middleware.AuthMiddleware
	appointmentH *appointmentHandler.Handler
	patientH     *patientHandler.Handler
	anamnesisH   *anamnesisHandler.Handler
	authH        *authHandler.Handler
	dashboardH   *dashboardHandler.Handler
	settingsH    *settingsHandler.Handler
	auditH       *auditHandler.Handler
	metrics      *metrics.Metrics
	config       Config
}

func New(
	auth *middleware.AuthMiddleware,
	appointmentH *appointmentHandler.Handler,
	patientH *patientHandler.Handler,
	anamnesisH *anamnesisHandler.Handler,
	authH *authHandler.Handler,
	dashboardH *dashboardHandler.Handler,
	settingsH *settingsHandler.Handler,
	auditH *auditHandler.Handler,
	m *metrics.Metrics,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	return &Router{
		engine:       gin.New(),
		auth:         auth,
		appointmentH: appointmentH,
		patientH:     patientH,
		anamnesisH:   anamnesisH,
		authH:        authH,
		dashboardH:   dashboardH,
		settingsH:    settingsH,
		auditH:       auditH,
		metrics:      m,
		config:       config,
	}
}

func (r *Router) Setup() {
	limiter := middleware.NewRateLimiter(r.config.RateLimit, r.config.RateBurst)

	r.engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		middleware.CORS(r.config.CORSConfig),
		limiter.RateLimit(),
		r.metricsMiddleware(),
	)

	r.engine.GET("/healthz", handler.HealthCheck)
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.engine.Group("/api/v1")

	// Patient-facing booking surface and login need no token.
	r.authH.RegisterRoutes(api)
	r.appointmentH.RegisterPublicRoutes(api)

	admin := api.Group("", r.auth.RequireAuth())
	r.appointmentH.RegisterAdminRoutes(admin)
	r.patientH.RegisterRoutes(admin)
	r.anamnesisH.RegisterRoutes(admin)
	r.dashboardH.RegisterRoutes(admin)
	r.settingsH.RegisterRoutes(admin)
	r.auditH.RegisterRoutes(admin)
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

		r.metrics.RequestDuration.
			WithLabelValues(c.Request.Method, path).
			Observe(time.Since(start).Seconds())
		r.metrics.RequestTotal.
			WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).
			Inc()
	}
}
