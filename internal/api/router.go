// Package api provides the HTTP API for AirSense.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/airsense/airsense/internal/airquality"
	"github.com/airsense/airsense/internal/api/handler"
	"github.com/airsense/airsense/internal/api/middleware"
	"github.com/airsense/airsense/internal/auth"
	"github.com/airsense/airsense/internal/geocoding"
	"github.com/airsense/airsense/internal/location"
	"github.com/airsense/airsense/internal/provider/resilience"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version           string
	BuildTime         string
	Logger            zerolog.Logger
	ServiceName       string
	Metrics           *middleware.Metrics
	TokenService      *auth.TokenService
	AirQualityService *airquality.Service
	GeocodingService  *geocoding.Service
	LocationService   *location.Service
	Catalog           *airquality.Catalog
	ProviderRegistry  *resilience.Registry
	DBReadyFn         func() error
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "airsense-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.AirQualityService, cfg.ProviderRegistry, cfg.DBReadyFn)
	airQualityHandler := handler.NewAirQualityHandler(cfg.AirQualityService)
	geocodeHandler := handler.NewGeocodeHandler(cfg.GeocodingService)
	locationHandler := handler.NewLocationHandler(cfg.LocationService)
	metadataHandler := handler.NewMetadataHandler(cfg.Catalog)
	adminHandler := handler.NewAdminHandler(cfg.AirQualityService, cfg.GeocodingService, cfg.Logger)

	// Create auth middleware
	authMiddleware := middleware.Auth(cfg.TokenService)

	// Create rate limit middleware for different endpoint categories
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit)     // 30 req/min per IP
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)       // 100 req/min per IP
	operatorRateLimit := middleware.RateLimitByOperator(middleware.StandardRateLimit) // 100 req/min per operator

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			// Status endpoint requires authentication
			r.With(authMiddleware).Get("/status", opsHandler.SystemStatus)
		})

		// Metadata endpoints (public) - standard rate limiting
		r.Route("/metadata", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/pollutants", metadataHandler.ListPollutants)
		})

		// Air quality endpoints - hit the upstream provider, strict rate limiting
		r.Route("/air-quality", func(r chi.Router) {
			r.Use(expensiveRateLimit)
			r.Get("/current", airQualityHandler.GetCurrent)
			r.Get("/analysis", airQualityHandler.GetAnalysis)
			r.Get("/forecast", airQualityHandler.GetForecast)
			r.Get("/history", airQualityHandler.GetHistory)
		})

		// Geocoding endpoints - strict rate limiting
		r.Route("/geocode", func(r chi.Router) {
			r.Use(expensiveRateLimit)
			r.Get("/direct", geocodeHandler.Direct)
			r.Get("/reverse", geocodeHandler.Reverse)
		})

		// Saved locations - reads are public, mutations need a token and are
		// rate limited per operator
		r.Route("/locations", func(r chi.Router) {
			r.With(standardRateLimit).Get("/", locationHandler.List)
			r.With(authMiddleware, operatorRateLimit).Post("/", locationHandler.Create)
			r.Route("/{locationId}", func(r chi.Router) {
				r.With(standardRateLimit).Get("/", locationHandler.Get)
				r.With(authMiddleware, operatorRateLimit).Put("/", locationHandler.Update)
				r.With(authMiddleware, operatorRateLimit).Delete("/", locationHandler.Delete)
			})
		})

		// Admin endpoints (authenticated, admin role) - for internal operations
		r.Route("/admin", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(middleware.RequireRole(auth.RoleAdmin))
			r.Use(operatorRateLimit)
			r.Post("/cache/invalidate", adminHandler.InvalidateCache)
		})
	})

	return r
}
