// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging, panic recovery, metrics, CORS,
// security headers, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/weboid/site-backend/internal/config"
	"github.com/weboid/site-backend/internal/http/handlers"
	"github.com/weboid/site-backend/internal/http/middleware"
	"github.com/weboid/site-backend/internal/mail"
	"github.com/weboid/site-backend/internal/services"
	"github.com/weboid/site-backend/internal/store"
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), rate limiting,
// CORS and security headers, health and metrics endpoints, and then mounts
// the public API under the configured base path.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured access logs
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Gzip response compression
//  7. Metrics
//  8. Rate limiter (fixed window per IP)
//  9. CORS and security headers
func RegisterRoutes(r *gin.Engine, st store.Store, dispatcher *mail.Dispatcher, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured access logging
	r.Use(middleware.Logger())

	// 4) Panic recovery to an envelope 500 (with request id header)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (10 MiB; submissions carry free-text fields)
	r.Use(limitBody(10 << 20))

	// 6) Compress responses for clients that accept it
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) Fixed-window rate limiter per client IP
	rl := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow, middleware.KeyByIP())
	r.Use(rl.Handler())

	// 9) CORS posture: strict allowlist in production, open in development
	r.Use(cors.New(corsConfig(cfg)))

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, "API endpoint not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Liveness/health, reachable both at the root and under the API base.
	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "Server is running",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"environment": cfg.AppEnv,
		})
	}
	r.GET("/health", health)

	// Dependency injection: services ← store/dispatcher
	contactSvc := services.NewContactService(st, dispatcher, cfg.Mail.NotifyEmail)
	ticketSvc := services.NewTicketService(st, dispatcher, cfg.Mail.NotifyEmail)
	h := handlers.New(contactSvc, ticketSvc, !cfg.IsProduction())

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		api.GET("/health", health)

		contacts := api.Group("/contacts")
		{
			contacts.GET("", h.ListContacts)
			contacts.GET("/type/:type", h.ListContactsByType)
			contacts.GET("/:id", h.GetContact)
			contacts.POST("", h.CreateContact)
			contacts.POST("/website-assessment", h.CreateWebsiteAssessment)
			contacts.PUT("/:id", h.UpdateContact)
			contacts.DELETE("/:id", h.DeleteContact)
		}

		tickets := api.Group("/tickets")
		{
			tickets.GET("", h.ListTickets)
			tickets.GET("/status/:status", h.ListTicketsByStatus)
			tickets.GET("/:id", h.GetTicket)
			tickets.POST("", h.CreateTicket)
			tickets.PUT("/:id", h.UpdateTicket)
			tickets.DELETE("/:id", h.DeleteTicket)
		}
	}
}

// corsConfig builds the CORS policy. Development allows any origin so local
// frontends can hit the API directly. Production admits the configured
// allowlist plus per-deployment preview origins matched by prefix or suffix.
func corsConfig(cfg config.Config) cors.Config {
	base := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: true,
	}

	if !cfg.IsProduction() {
		base.AllowCredentials = false // not meaningful with a wildcard origin
		base.AllowAllOrigins = true
		return base
	}

	allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
	for _, o := range cfg.CORS.AllowedOrigins {
		allowed[o] = struct{}{}
	}
	previewSuffix := cfg.CORS.PreviewSuffix
	previewPrefix := ""
	if previewSuffix != "" {
		previewPrefix = "https://" + strings.TrimPrefix(previewSuffix, "-")
	}

	base.AllowOriginFunc = func(origin string) bool {
		if _, ok := allowed[origin]; ok {
			return true
		}
		if previewSuffix != "" && strings.Contains(origin, previewSuffix) {
			return true
		}
		return previewPrefix != "" && strings.HasPrefix(origin, previewPrefix)
	}
	return base
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
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
