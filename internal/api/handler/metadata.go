package handler

import (
	"net/http"

	"github.com/airsense/airsense/internal/airquality"
	"github.com/airsense/airsense/internal/api/models"
	"github.com/airsense/airsense/internal/api/response"
)

// MetadataHandler handles metadata endpoints.
type MetadataHandler struct {
	catalog *airquality.Catalog
}

// NewMetadataHandler creates a new MetadataHandler.
func NewMetadataHandler(catalog *airquality.Catalog) *MetadataHandler {
	return &MetadataHandler{catalog: catalog}
}

// ListPollutants handles GET /v1/metadata/pollutants - the pollutant catalog
// with threshold bands and health messages.
func (h *MetadataHandler) ListPollutants(w http.ResponseWriter, r *http.Request) {
	definitions := h.catalog.Definitions()

	pollutants := make([]models.PollutantInfo, 0, len(definitions))
	for _, def := range definitions {
		pollutants = append(pollutants, models.PollutantInfo{
			Key:           string(def.Key),
			Name:          def.Name,
			FullName:      def.FullName,
			Unit:          def.Unit,
			Description:   def.Description,
			Sources:       def.Sources,
			HealthEffects: def.HealthEffects,
			Thresholds: models.PollutantThresholds{
				Good:     def.Thresholds.Good,
				Fair:     def.Thresholds.Fair,
				Moderate: def.Thresholds.Moderate,
				Poor:     def.Thresholds.Poor,
			},
		})
	}

	bandLabels := make(map[int]string, 5)
	healthMessages := make(map[int]string, 5)
	for b := airquality.BandGood; b <= airquality.BandVeryPoor; b++ {
		bandLabels[int(b)] = b.String()
		healthMessages[int(b)] = h.catalog.HealthMessage(b)
	}

	catalog := models.PollutantCatalog{
		Pollutants:     pollutants,
		BandLabels:     bandLabels,
		HealthMessages: healthMessages,
	}
	response.JSON(w, r, http.StatusOK, catalog)
}
