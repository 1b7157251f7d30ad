// Package main provides the entrypoint for the AirSense API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/airsense/airsense/internal/airquality"
	owmair "github.com/airsense/airsense/internal/airquality/openweathermap"
	"github.com/airsense/airsense/internal/api"
	"github.com/airsense/airsense/internal/api/middleware"
	"github.com/airsense/airsense/internal/auth"
	"github.com/airsense/airsense/internal/database"
	"github.com/airsense/airsense/internal/geocoding"
	owmgeo "github.com/airsense/airsense/internal/geocoding/openweathermap"
	"github.com/airsense/airsense/internal/location"
	"github.com/airsense/airsense/internal/provider/resilience"
	"github.com/airsense/airsense/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "airsense-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting AirSense API")

	// Get configuration from environment
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	apiKey := os.Getenv("OWM_API_KEY")
	if apiKey == "" {
		log.Warn().Msg("OWM_API_KEY not set - upstream requests will be rejected")
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryEnabled {
		log.Info().
			Str("otlp_endpoint", otlpEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Saved locations live in Postgres when configured, in memory otherwise
	var locationRepo location.Repository
	var dbReadyFn func() error
	if os.Getenv("DB_ENABLED") == "true" {
		dbConfig := database.ConfigFromEnv()
		pool, err := database.Connect(ctx, dbConfig)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		log.Info().
			Str("host", dbConfig.Host).
			Int("port", dbConfig.Port).
			Str("database", dbConfig.Database).
			Msg("database connected")

		locationRepo = location.NewPostgresRepository(pool)
		dbReadyFn = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return pool.Ping(pingCtx)
		}
	} else {
		log.Warn().Msg("database disabled - saved locations are in-memory only")
		locationRepo = location.NewInMemoryRepository()
	}
	locationService := location.NewService(locationRepo)
	log.Info().Msg("location service initialized")

	// Initialize provider health registry and upstream clients
	registry := resilience.NewRegistry()

	airProvider := owmair.NewClient(owmair.ClientConfig{
		APIKey:   apiKey,
		Registry: registry,
		Logger:   log,
	})
	geoProvider := owmgeo.NewClient(owmgeo.ClientConfig{
		APIKey:   apiKey,
		Registry: registry,
		Logger:   log,
	})

	// Initialize the pollutant catalog and analysis pipeline
	catalog := airquality.DefaultCatalog()
	analyzer := airquality.NewAnalyzer(catalog)

	airQualityService := airquality.NewService(airquality.ServiceConfig{
		Provider: airProvider,
		Analyzer: analyzer,
		Logger:   log,
	})
	log.Info().Msg("air quality service initialized")

	geocodingService := geocoding.NewService(geocoding.ServiceConfig{
		Provider: geoProvider,
		Logger:   log,
	})
	log.Info().Msg("geocoding service initialized")

	// Initialize token service (get signing key from environment)
	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		jwtSigningKey = "local-dev-signing-key-change-in-production"
		log.Warn().Msg("using default JWT signing key - not secure for production")
	}

	tokenService := auth.NewTokenService(auth.TokenConfig{
		SigningKey: jwtSigningKey,
		Issuer:     "https://api.airsense.dev",
		Audience:   "airsense-api",
	})

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:           Version,
		BuildTime:         BuildTime,
		Logger:            log,
		ServiceName:       serviceName,
		Metrics:           metrics,
		TokenService:      tokenService,
		AirQualityService: airQualityService,
		GeocodingService:  geocodingService,
		LocationService:   locationService,
		Catalog:           catalog,
		ProviderRegistry:  registry,
		DBReadyFn:         dbReadyFn,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
