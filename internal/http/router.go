// Package httpapi wires the HTTP transport (Gin) to the application services,
// middleware and route handlers of the job tracker. Tracing, correlation ids,
// redacting access logs, panic recovery, compression, metrics, CORS and
// security headers apply to every route; authentication, idempotency and
// per-user rate limiting apply to the API groups.
//
// Route layout under the configured base path (default /api/v1):
//
//	POST /auth/signup, POST /auth/login          public, IP rate limited
//	GET  /auth/me                                 bearer token
//	/jobs..., /feedback-categories, /questions,
//	/analytics/...                                bearer token
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/tbourn/go-jobtracker-backend/docs"
	"github.com/tbourn/go-jobtracker-backend/internal/auth"
	"github.com/tbourn/go-jobtracker-backend/internal/config"
	"github.com/tbourn/go-jobtracker-backend/internal/http/handlers"
	"github.com/tbourn/go-jobtracker-backend/internal/http/middleware"
	"github.com/tbourn/go-jobtracker-backend/internal/services"
)

const maxBodyBytes = 1 << 20

var (
	corsMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "If-None-Match", middleware.HeaderIdempotencyKey}
	corsExposed = []string{"X-Request-ID", "ETag", "Retry-After", middleware.HeaderIdempotencyReplayed}
)

// RegisterRoutes attaches all middleware and endpoints to r.
//
// Global middleware order:
//  1. OpenTelemetry
//  2. RequestID
//  3. Access log: RedactingLogger, or the plain Logger in debug mode
//  4. Recovery (after the logger so panics carry the request id)
//  5. Body size limit
//  6. Gzip, when enabled
//  7. Metrics
//  8. CORS and security headers
//
// Protected groups then run RequireAuth, the idempotency validator and the
// per-user rate limiter, in that order, so replays can bypass the limiter.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config, tokens *auth.TokenManager) {
	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	if cfg.GinMode == gin.DebugMode {
		r.Use(middleware.Logger())
	} else {
		r.Use(middleware.RedactingLogger(middleware.RedactOptions{}))
	}
	r.Use(middleware.Recovery())
	r.Use(limitBody(maxBodyBytes))
	if cfg.GzipEnabled {
		r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	}
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins)...)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		EnablePolicy: true,
	}))

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authSvc := &services.AuthService{DB: db, Tokens: tokens}
	idem := &services.IdempotencyService{DB: db, TTL: cfg.IdempotencyTTL}
	h := handlers.New(handlers.Deps{
		Auth:        authSvc,
		Jobs:        services.NewJobService(db),
		Feedback:    &services.FeedbackService{DB: db},
		Questions:   &services.QuestionService{DB: db},
		Reports:     services.NewReportService(db),
		Idempotency: idem,
	})

	base := groupWithPrefix(r, cfg.APIBasePath)

	// Signup and login are keyed by client IP; there is no user yet.
	public := base.Group("/auth")
	public.Use(middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP()).Handler())
	{
		public.POST("/signup", h.Signup)
		public.POST("/login", h.Login)
	}

	api := base.Group("")
	api.Use(
		middleware.RequireAuth(authSvc),
		middleware.IdempotencyValidator(middleware.IdempotencyOptions{MaxLen: 200}, idem.Lookup),
		middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP()).Handler(),
	)
	{
		api.GET("/auth/me", h.Me)

		// Jobs
		api.POST("/jobs", h.CreateJob)
		api.GET("/jobs", h.ListJobs)
		api.GET("/jobs/:id", h.GetJob)
		api.PUT("/jobs/:id", h.UpdateJob)
		api.DELETE("/jobs/:id", h.DeleteJob)
		api.GET("/jobs/:id/status-history", h.StatusHistory)

		// Feedback
		api.GET("/feedback-categories", h.ListCategories)
		api.POST("/jobs/:id/feedback", h.CreateFeedback)
		api.GET("/jobs/:id/feedback", h.GetFeedback)
		api.PUT("/jobs/:id/feedback", h.UpdateFeedback)
		api.DELETE("/jobs/:id/feedback", h.DeleteFeedback)
		api.GET("/jobs/:id/feedback/:kind", h.GetExtras)
		api.PUT("/jobs/:id/feedback/:kind", h.ReplaceExtras)

		// Interview questions
		api.GET("/questions", h.ListQuestions)
		api.GET("/jobs/:id/recommended-questions", h.RecommendedQuestions)
		api.GET("/jobs/:id/interview-questions", h.InterviewQuestions)
		api.POST("/jobs/:id/interview-questions", h.SaveInterviewQuestions)

		// Analytics
		api.GET("/analytics/dashboard", h.Dashboard)
		api.GET("/analytics/status-trends", h.StatusTrends)
		api.GET("/analytics/feedback-insights", h.FeedbackInsights)
		api.GET("/analytics/available-roles", h.AvailableRoles)
	}
}

// corsMiddleware allows every origin without credentials when origins is
// empty. Otherwise only listed origins are echoed back.
func corsMiddleware(origins []string) []gin.HandlerFunc {
	if len(origins) == 0 {
		return []gin.HandlerFunc{
			// ACAO on every response, not only on requests carrying Origin.
			func(c *gin.Context) {
				c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
				c.Next()
			},
			cors.New(cors.Config{
				AllowAllOrigins: true,
				AllowMethods:    corsMethods,
				AllowHeaders:    corsHeaders,
				ExposeHeaders:   corsExposed,
				MaxAge:          12 * time.Hour,
			}),
		}
	}

	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	return []gin.HandlerFunc{
		func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		},
		cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     corsMethods,
			AllowHeaders:     corsHeaders,
			ExposeHeaders:    corsExposed,
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	}
}

// limitBody caps request bodies at maxBytes; reads past the cap fail.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
