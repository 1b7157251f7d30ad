// Package main provides the entrypoint for the AirSense background worker.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/airsense/airsense/internal/airquality"
	owmair "github.com/airsense/airsense/internal/airquality/openweathermap"
	"github.com/airsense/airsense/internal/database"
	"github.com/airsense/airsense/internal/location"
	"github.com/airsense/airsense/internal/provider/resilience"
	"github.com/airsense/airsense/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "airsense-worker"

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting AirSense worker")

	// Worker also exposes a health endpoint for the platform
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	apiKey := os.Getenv("OWM_API_KEY")
	if apiKey == "" {
		log.Warn().Msg("OWM_API_KEY not set - refresh jobs will fail")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Saved locations backend
	var locationService *location.Service
	if os.Getenv("DB_ENABLED") == "true" {
		dbConfig := database.ConfigFromEnv()
		pool, err := database.Connect(ctx, dbConfig)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		locationService = location.NewService(location.NewPostgresRepository(pool))
		log.Info().Msg("database connected")
	} else {
		log.Warn().Msg("database disabled - refreshing fallback points only")
	}

	// Upstream provider
	registry := resilience.NewRegistry()
	airProvider := owmair.NewClient(owmair.ClientConfig{
		APIKey:   apiKey,
		Registry: registry,
		Logger:   log,
	})

	catalog := airquality.DefaultCatalog()
	airQualityService := airquality.NewService(airquality.ServiceConfig{
		Provider: airProvider,
		Analyzer: airquality.NewAnalyzer(catalog),
		Logger:   log,
	})

	// Refresh job
	refreshConfig := worker.DefaultRefreshConfig()
	if raw := os.Getenv("REFRESH_CONCURRENCY"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			refreshConfig.Concurrency = parsed
		}
	}

	refreshJob := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config:            refreshConfig,
		Logger:            log,
		AirQualityService: airQualityService,
		LocationService:   locationService,
	})

	// Health check server
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","version":"%s"}`, Version)
	})

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("health check server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("health server error")
		}
	}()

	// Job source: Pub/Sub subscription when configured, interval timer otherwise
	projectID := os.Getenv("PUBSUB_PROJECT_ID")
	subscriptionName := os.Getenv("PUBSUB_SUBSCRIPTION")

	if projectID != "" && subscriptionName != "" {
		handler, err := worker.NewPubSubHandler(ctx, worker.PubSubConfig{
			ProjectID:        projectID,
			SubscriptionName: subscriptionName,
			RefreshJob:       refreshJob,
			Logger:           log,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create pubsub handler")
		}
		defer handler.Close()

		go func() {
			if err := handler.Start(ctx); err != nil && ctx.Err() == nil {
				log.Error().Err(err).Msg("pubsub handler stopped")
			}
		}()
	} else {
		interval := 10 * time.Minute
		if raw := os.Getenv("REFRESH_INTERVAL"); raw != "" {
			if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
				interval = parsed
			}
		}

		log.Info().Dur("interval", interval).Msg("pubsub not configured, running on a timer")
		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			refreshJob.Run(ctx)
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					refreshJob.Run(ctx)
				}
			}
		}()
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	log.Info().Msg("worker stopped")
}
