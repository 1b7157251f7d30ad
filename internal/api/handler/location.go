package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/airsense/airsense/internal/api/models"
	"github.com/airsense/airsense/internal/api/response"
	"github.com/airsense/airsense/internal/location"
)

// LocationHandler handles saved location endpoints.
type LocationHandler struct {
	service *location.Service
}

// NewLocationHandler creates a new LocationHandler.
func NewLocationHandler(service *location.Service) *LocationHandler {
	return &LocationHandler{service: service}
}

// List handles GET /v1/locations - list saved locations.
func (h *LocationHandler) List(w http.ResponseWriter, r *http.Request) {
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

	locations, err := h.service.List(r.Context(), limit)
	if err != nil {
		response.InternalError(w, r, "failed to list locations")
		return
	}

	items := make([]models.Location, 0, len(locations))
	for _, loc := range locations {
		items = append(items, toLocation(loc))
	}
	response.JSON(w, r, http.StatusOK, models.Locations{Items: items})
}

// Get handles GET /v1/locations/{locationId} - get a saved location.
func (h *LocationHandler) Get(w http.ResponseWriter, r *http.Request) {
	locationID := chi.URLParam(r, "locationId")
	if locationID == "" {
		response.BadRequest(w, r, "locationId is required", nil)
		return
	}

	loc, err := h.service.Get(r.Context(), locationID)
	if err != nil {
		writeLocationError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, toLocation(loc))
}

// Create handles POST /v1/locations - create a saved location.
func (h *LocationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.LocationCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	loc, err := h.service.Create(r.Context(), location.CreateInput{
		Label: input.Label,
		Lat:   input.Point.Lat,
		Lon:   input.Point.Lon,
		Notes: input.Notes,
	})
	if err != nil {
		writeLocationError(w, r, err)
		return
	}

	response.Created(w, r, fmt.Sprintf("/v1/locations/%s", loc.ID), toLocation(loc))
}

// Update handles PUT /v1/locations/{locationId} - update a saved location.
func (h *LocationHandler) Update(w http.ResponseWriter, r *http.Request) {
	locationID := chi.URLParam(r, "locationId")
	if locationID == "" {
		response.BadRequest(w, r, "locationId is required", nil)
		return
	}

	var input models.LocationUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	loc, err := h.service.Update(r.Context(), locationID, location.UpdateInput{
		Label: input.Label,
		Lat:   input.Point.Lat,
		Lon:   input.Point.Lon,
		Notes: input.Notes,
	})
	if err != nil {
		writeLocationError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, toLocation(loc))
}

// Delete handles DELETE /v1/locations/{locationId} - delete a saved location.
func (h *LocationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	locationID := chi.URLParam(r, "locationId")
	if locationID == "" {
		response.BadRequest(w, r, "locationId is required", nil)
		return
	}

	if err := h.service.Delete(r.Context(), locationID); err != nil {
		writeLocationError(w, r, err)
		return
	}

	response.NoContent(w, r)
}

func toLocation(loc *location.Location) models.Location {
	return models.Location{
		ID:        loc.ID,
		Label:     loc.Label,
		Point:     models.Point{Lat: loc.Lat, Lon: loc.Lon},
		Notes:     loc.Notes,
		CreatedAt: models.Timestamp(loc.CreatedAt),
		UpdatedAt: models.Timestamp(loc.UpdatedAt),
	}
}

func writeLocationError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *location.ValidationError
	switch {
	case errors.As(err, &validationErr):
		fieldErrs := make([]models.FieldError, 0, len(validationErr.Errors))
		for _, fe := range validationErr.Errors {
			fieldErrs = append(fieldErrs, models.FieldError{Field: fe.Field, Message: fe.Message})
		}
		response.BadRequest(w, r, "validation failed", fieldErrs)
	case errors.Is(err, location.ErrLocationNotFound):
		response.NotFound(w, r, "location not found")
	default:
		response.InternalError(w, r, "location operation failed")
	}
}
