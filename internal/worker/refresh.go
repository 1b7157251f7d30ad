package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/airsense/airsense/internal/airquality"
	"github.com/airsense/airsense/internal/location"
)

// RefreshJob keeps the air quality snapshot cache warm for saved locations.
type RefreshJob struct {
	config RefreshConfig
	logger zerolog.Logger

	airQualityService *airquality.Service
	locationService   *location.Service

	metrics *RefreshMetrics
}

// RefreshMetrics tracks refresh job statistics.
type RefreshMetrics struct {
	mu sync.RWMutex

	TotalRuns         int64
	SuccessfulRefresh int64
	FailedRefreshes   int64

	LastRunAt       time.Time
	LastRunDuration time.Duration
	TotalDuration   time.Duration
}

// RefreshJobConfig holds configuration for creating a RefreshJob.
type RefreshJobConfig struct {
	Config            RefreshConfig
	Logger            zerolog.Logger
	AirQualityService *airquality.Service

	// LocationService provides the saved locations to refresh.
	// May be nil, in which case only fallback points are refreshed.
	LocationService *location.Service
}

// NewRefreshJob creates a new refresh job processor.
func NewRefreshJob(cfg RefreshJobConfig) *RefreshJob {
	return &RefreshJob{
		config:            cfg.Config.withDefaults(),
		logger:            cfg.Logger,
		airQualityService: cfg.AirQualityService,
		locationService:   cfg.LocationService,
		metrics:           &RefreshMetrics{},
	}
}

// RefreshResult contains the result of a refresh run.
type RefreshResult struct {
	StartTime   time.Time
	EndTime     time.Time
	Duration    time.Duration
	TotalPoints int
	Successful  int
	Failed      int
	Errors      []RefreshError
}

// RefreshError represents an error during refresh.
type RefreshError struct {
	Point Point
	Error string
}

// Run refreshes every saved location's snapshot with bounded concurrency.
func (j *RefreshJob) Run(ctx context.Context) *RefreshResult {
	startTime := time.Now()

	points := j.collectPoints(ctx)

	result := &RefreshResult{
		StartTime:   startTime,
		TotalPoints: len(points),
	}

	j.logger.Info().
		Int("total_points", result.TotalPoints).
		Int("concurrency", j.config.Concurrency).
		Msg("starting snapshot refresh job")

	pointsChan := make(chan Point, len(points))
	resultsChan := make(chan pointResult, len(points))

	var wg sync.WaitGroup
	for i := 0; i < j.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			j.refreshWorker(ctx, pointsChan, resultsChan)
		}()
	}

	for _, p := range points {
		pointsChan <- p
	}
	close(pointsChan)

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	for pr := range resultsChan {
		if pr.success {
			result.Successful++
			atomic.AddInt64(&j.metrics.SuccessfulRefresh, 1)
		} else {
			result.Failed++
			atomic.AddInt64(&j.metrics.FailedRefreshes, 1)
			result.Errors = append(result.Errors, RefreshError{
				Point: pr.point,
				Error: pr.err,
			})
		}
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(startTime)

	j.updateMetrics(result)

	j.logger.Info().
		Dur("duration", result.Duration).
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Msg("snapshot refresh job completed")

	return result
}

// collectPoints gathers the coordinates to refresh: every saved location,
// or the fallback points when none exist.
func (j *RefreshJob) collectPoints(ctx context.Context) []Point {
	if j.locationService != nil {
		locations, err := j.locationService.List(ctx, j.config.LocationLimit)
		if err != nil {
			j.logger.Warn().Err(err).Msg("failed to list saved locations, using fallback points")
		} else if len(locations) > 0 {
			points := make([]Point, 0, len(locations))
			for _, loc := range locations {
				points = append(points, Point{Lat: loc.Lat, Lon: loc.Lon})
			}
			return points
		}
	}
	return j.config.FallbackPoints
}

type pointResult struct {
	point   Point
	success bool
	err     string
}

func (j *RefreshJob) refreshWorker(ctx context.Context, points <-chan Point, results chan<- pointResult) {
	for point := range points {
		select {
		case <-ctx.Done():
			return
		default:
			results <- j.refreshPoint(ctx, point)
		}
	}
}

func (j *RefreshJob) refreshPoint(ctx context.Context, point Point) pointResult {
	pointCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	if err := j.airQualityService.Refresh(pointCtx, point.Lat, point.Lon); err != nil {
		return pointResult{point: point, err: err.Error()}
	}
	return pointResult{point: point, success: true}
}

func (j *RefreshJob) updateMetrics(result *RefreshResult) {
	j.metrics.mu.Lock()
	defer j.metrics.mu.Unlock()

	j.metrics.TotalRuns++
	j.metrics.LastRunAt = result.EndTime
	j.metrics.LastRunDuration = result.Duration
	j.metrics.TotalDuration += result.Duration
}

// GetMetrics returns a copy of the current metrics.
func (j *RefreshJob) GetMetrics() RefreshMetrics {
	j.metrics.mu.RLock()
	defer j.metrics.mu.RUnlock()

	return RefreshMetrics{
		TotalRuns:         j.metrics.TotalRuns,
		SuccessfulRefresh: atomic.LoadInt64(&j.metrics.SuccessfulRefresh),
		FailedRefreshes:   atomic.LoadInt64(&j.metrics.FailedRefreshes),
		LastRunAt:         j.metrics.LastRunAt,
		LastRunDuration:   j.metrics.LastRunDuration,
		TotalDuration:     j.metrics.TotalDuration,
	}
}

// MetricsSnapshot returns a snapshot of the current metrics as a map.
func (j *RefreshJob) MetricsSnapshot() map[string]interface{} {
	m := j.GetMetrics()
	return map[string]interface{}{
		"total_runs":           m.TotalRuns,
		"successful_refreshes": m.SuccessfulRefresh,
		"failed_refreshes":     m.FailedRefreshes,
		"last_run_at":          m.LastRunAt,
		"last_run_duration":    m.LastRunDuration.String(),
		"total_duration":       m.TotalDuration.String(),
	}
}
