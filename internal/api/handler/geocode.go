package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/airsense/airsense/internal/api/models"
	"github.com/airsense/airsense/internal/api/response"
	"github.com/airsense/airsense/internal/geocoding"
)

// GeocodeHandler handles geocoding endpoints.
type GeocodeHandler struct {
	service *geocoding.Service
}

// NewGeocodeHandler creates a new GeocodeHandler.
func NewGeocodeHandler(service *geocoding.Service) *GeocodeHandler {
	return &GeocodeHandler{service: service}
}

// Direct handles GET /v1/geocode/direct - resolve a place name to coordinates.
func (h *GeocodeHandler) Direct(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		response.BadRequest(w, r, "query parameter q is required", []models.FieldError{
			{Field: "q", Message: "required"},
		})
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, r, "limit must be an integer", []models.FieldError{
				{Field: "limit", Message: "must be an integer"},
			})
			return
		}
		limit = parsed
	}

	places, err := h.service.Search(r.Context(), query, limit)
	if err != nil {
		writeGeocodeError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, toPlaces(places))
}

// Reverse handles GET /v1/geocode/reverse - resolve coordinates to place names.
func (h *GeocodeHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	lat, lon, errs := parseCoordinates(r)
	if len(errs) > 0 {
		response.BadRequest(w, r, "invalid coordinates", errs)
		return
	}

	places, err := h.service.Reverse(r.Context(), lat, lon)
	if err != nil {
		writeGeocodeError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, toPlaces(places))
}

func toPlaces(places []geocoding.Place) models.Places {
	items := make([]models.Place, 0, len(places))
	for _, p := range places {
		items = append(items, models.Place{
			Name:    p.Name,
			Point:   models.Point{Lat: p.Lat, Lon: p.Lon},
			Country: p.Country,
			State:   p.State,
		})
	}
	return models.Places{Items: items}
}

func writeGeocodeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, geocoding.ErrEmptyQuery):
		response.BadRequest(w, r, "query must not be empty", nil)
	case errors.Is(err, geocoding.ErrPlaceNotFound):
		response.NotFound(w, r, "no places matched the query")
	case errors.Is(err, geocoding.ErrProviderUnavailable):
		response.ServiceUnavailable(w, r, "geocoding provider is unavailable")
	default:
		response.InternalError(w, r, "geocoding failed")
	}
}
