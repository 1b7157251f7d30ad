package handler

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/airsense/airsense/internal/airquality"
	"github.com/airsense/airsense/internal/api/middleware"
	"github.com/airsense/airsense/internal/api/models"
	"github.com/airsense/airsense/internal/api/response"
	"github.com/airsense/airsense/internal/geocoding"
)

// AdminHandler handles administrative endpoints.
type AdminHandler struct {
	aqService  *airquality.Service
	geoService *geocoding.Service
	logger     zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(aqService *airquality.Service, geoService *geocoding.Service, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		aqService:  aqService,
		geoService: geoService,
		logger:     logger,
	}
}

// InvalidateCache handles POST /v1/admin/cache/invalidate - drop all cached
// observations, forecasts and geocoding results.
func (h *AdminHandler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	h.aqService.InvalidateCache()
	if h.geoService != nil {
		h.geoService.InvalidateCache()
	}

	h.logger.Info().
		Str("subject", middleware.GetSubject(r.Context())).
		Msg("caches invalidated")

	response.JSON(w, r, http.StatusOK, models.CacheInvalidation{
		Invalidated: true,
		Time:        models.Timestamp(time.Now()),
	})
}
