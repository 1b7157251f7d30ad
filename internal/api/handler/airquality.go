// Package handler provides HTTP handlers for the AirSense API.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/airsense/airsense/internal/airquality"
	"github.com/airsense/airsense/internal/api/models"
	"github.com/airsense/airsense/internal/api/response"
)

// AirQualityHandler handles air quality endpoints.
type AirQualityHandler struct {
	service *airquality.Service
}

// NewAirQualityHandler creates a new AirQualityHandler.
func NewAirQualityHandler(service *airquality.Service) *AirQualityHandler {
	return &AirQualityHandler{service: service}
}

// GetCurrent handles GET /v1/air-quality/current - current observation at a coordinate.
func (h *AirQualityHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	lat, lon, errs := parseCoordinates(r)
	if len(errs) > 0 {
		response.BadRequest(w, r, "invalid coordinates", errs)
		return
	}

	obs, err := h.service.GetCurrent(r.Context(), lat, lon)
	if err != nil {
		writeAirQualityError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, toObservation(obs))
}

// GetAnalysis handles GET /v1/air-quality/analysis - current observation plus
// its pollutant analysis.
func (h *AirQualityHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	lat, lon, errs := parseCoordinates(r)
	if len(errs) > 0 {
		response.BadRequest(w, r, "invalid coordinates", errs)
		return
	}

	obs, analysis, err := h.service.GetCurrentAnalysis(r.Context(), lat, lon)
	if err != nil {
		writeAirQualityError(w, r, err)
		return
	}

	result := models.ObservationWithAnalysis{
		Observation: toObservation(obs),
		Analysis:    toAnalysis(analysis),
	}
	response.JSON(w, r, http.StatusOK, result)
}

// GetForecast handles GET /v1/air-quality/forecast - hourly forecast with
// per-observation analysis.
func (h *AirQualityHandler) GetForecast(w http.ResponseWriter, r *http.Request) {
	lat, lon, errs := parseCoordinates(r)
	if len(errs) > 0 {
		response.BadRequest(w, r, "invalid coordinates", errs)
		return
	}

	observations, err := h.service.GetForecast(r.Context(), lat, lon)
	if err != nil {
		writeAirQualityError(w, r, err)
		return
	}

	items, err := h.analyzeAll(observations)
	if err != nil {
		response.InternalError(w, r, "analysis failed")
		return
	}

	forecast := models.Forecast{
		Point: models.Point{Lat: lat, Lon: lon},
		Items: items,
	}
	response.JSON(w, r, http.StatusOK, forecast)
}

// GetHistory handles GET /v1/air-quality/history - historical observations
// between start and end (Unix seconds).
func (h *AirQualityHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	lat, lon, errs := parseCoordinates(r)

	start, err := strconv.ParseInt(r.URL.Query().Get("start"), 10, 64)
	if err != nil {
		errs = append(errs, models.FieldError{Field: "start", Message: "must be a Unix timestamp in seconds"})
	}
	end, err := strconv.ParseInt(r.URL.Query().Get("end"), 10, 64)
	if err != nil {
		errs = append(errs, models.FieldError{Field: "end", Message: "must be a Unix timestamp in seconds"})
	}
	if len(errs) > 0 {
		response.BadRequest(w, r, "invalid query parameters", errs)
		return
	}

	startTime := time.Unix(start, 0).UTC()
	endTime := time.Unix(end, 0).UTC()

	observations, err := h.service.GetHistory(r.Context(), lat, lon, startTime, endTime)
	if err != nil {
		writeAirQualityError(w, r, err)
		return
	}

	items, err := h.analyzeAll(observations)
	if err != nil {
		response.InternalError(w, r, "analysis failed")
		return
	}

	history := models.History{
		Point: models.Point{Lat: lat, Lon: lon},
		Start: models.Timestamp(startTime),
		End:   models.Timestamp(endTime),
		Items: items,
	}
	response.JSON(w, r, http.StatusOK, history)
}

func (h *AirQualityHandler) analyzeAll(observations []airquality.Observation) ([]models.ObservationWithAnalysis, error) {
	items := make([]models.ObservationWithAnalysis, 0, len(observations))
	for i := range observations {
		analysis, err := h.service.Analyzer().Analyze(observations[i].Components)
		if err != nil {
			return nil, err
		}
		items = append(items, models.ObservationWithAnalysis{
			Observation: toObservation(&observations[i]),
			Analysis:    toAnalysis(analysis),
		})
	}
	return items, nil
}

// writeAirQualityError maps domain errors to problem responses.
func writeAirQualityError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, airquality.ErrInvalidCoordinates):
		response.BadRequest(w, r, err.Error(), nil)
	case errors.Is(err, airquality.ErrInvalidTimeRange):
		response.BadRequest(w, r, err.Error(), nil)
	case errors.Is(err, airquality.ErrNoData):
		response.NotFound(w, r, "no air quality data for this location")
	case errors.Is(err, airquality.ErrInvalidAPIKey):
		response.BadGateway(w, r, "upstream provider rejected credentials")
	case errors.Is(err, airquality.ErrProviderUnavailable):
		response.ServiceUnavailable(w, r, "air quality provider is unavailable")
	default:
		response.InternalError(w, r, "failed to fetch air quality data")
	}
}
