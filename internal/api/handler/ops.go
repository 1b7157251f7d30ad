package handler

import (
	"net/http"
	"time"

	"github.com/airsense/airsense/internal/airquality"
	"github.com/airsense/airsense/internal/api/models"
	"github.com/airsense/airsense/internal/api/response"
	"github.com/airsense/airsense/internal/provider/resilience"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	aqService *airquality.Service
	registry  *resilience.Registry
	dbReadyFn func() error
}

// NewOpsHandler creates a new OpsHandler. dbReadyFn may be nil when the
// service runs without a database.
func NewOpsHandler(version, buildTime string, aqService *airquality.Service, registry *resilience.Registry, dbReadyFn func() error) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		aqService: aqService,
		registry:  registry,
		dbReadyFn: dbReadyFn,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	status := models.HealthStatusOK
	code := http.StatusOK

	details := map[string]interface{}{}
	if h.dbReadyFn != nil {
		if err := h.dbReadyFn(); err != nil {
			status = models.HealthStatusFail
			code = http.StatusServiceUnavailable
			details["database"] = err.Error()
		}
	}

	health := models.Health{
		Status: status,
		Time:   models.Timestamp(time.Now()),
	}
	if len(details) > 0 {
		health.Details = details
	}
	response.JSON(w, r, code, health)
}

// SystemStatus handles GET /v1/ops/status - provider, subsystem and cache status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	now := models.Timestamp(time.Now())

	overall := models.HealthStatusOK

	providers := make([]models.ProviderStatus, 0)
	if h.registry != nil {
		for _, ph := range h.registry.AllHealth() {
			ps := models.ProviderStatus{
				Provider:     ph.Name,
				Status:       providerHealthStatus(ph),
				BreakerState: ph.BreakerState.String(),
			}
			if ph.LastSuccessAt != nil {
				ts := models.Timestamp(*ph.LastSuccessAt)
				ps.LastSuccessAt = &ts
			}
			if ph.LastFailureAt != nil {
				ts := models.Timestamp(*ph.LastFailureAt)
				ps.LastFailureAt = &ts
			}
			if ph.LastError != "" {
				msg := ph.LastError
				ps.Message = &msg
			}
			if ps.Status == models.HealthStatusFail {
				overall = models.HealthStatusDegraded
			}
			providers = append(providers, ps)
		}
	}

	subsystems := []models.SubsystemStatus{
		{Name: "snapshot-cache", Status: models.HealthStatusOK},
	}
	if h.dbReadyFn != nil {
		dbStatus := models.SubsystemStatus{Name: "postgres", Status: models.HealthStatusOK}
		if err := h.dbReadyFn(); err != nil {
			detail := err.Error()
			dbStatus.Status = models.HealthStatusFail
			dbStatus.Detail = &detail
			overall = models.HealthStatusDegraded
		}
		subsystems = append(subsystems, dbStatus)
	}

	cache := models.CacheStatus{}
	if h.aqService != nil {
		cs := h.aqService.CacheStatus()
		cache.CurrentEntries = cs.CurrentEntries
		cache.ForecastEntries = cs.ForecastEntries
	}

	status := models.SystemStatus{
		Status:     overall,
		Time:       now,
		Subsystems: subsystems,
		Providers:  providers,
		Cache:      cache,
	}
	response.JSON(w, r, http.StatusOK, status)
}

func providerHealthStatus(h resilience.Health) models.HealthStatus {
	switch {
	case h.Healthy():
		return models.HealthStatusOK
	case h.Degraded():
		return models.HealthStatusDegraded
	default:
		return models.HealthStatusFail
	}
}
