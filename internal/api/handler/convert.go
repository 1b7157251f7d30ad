package handler

import (
	"net/http"
	"strconv"

	"github.com/airsense/airsense/internal/airquality"
	"github.com/airsense/airsense/internal/api/models"
)

// parseCoordinates extracts lat/lon query parameters.
func parseCoordinates(r *http.Request) (float64, float64, []models.FieldError) {
	var errs []models.FieldError

	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		errs = append(errs, models.FieldError{Field: "lat", Message: "must be a number"})
	}
	lon, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil {
		errs = append(errs, models.FieldError{Field: "lon", Message: "must be a number"})
	}
	return lat, lon, errs
}

func toComponents(c airquality.Components) models.ComponentReading {
	return models.ComponentReading{
		CO:   c.CO,
		NO:   c.NO,
		NO2:  c.NO2,
		O3:   c.O3,
		SO2:  c.SO2,
		PM25: c.PM25,
		PM10: c.PM10,
		NH3:  c.NH3,
	}
}

func toObservation(obs *airquality.Observation) models.Observation {
	return models.Observation{
		Point:      models.Point{Lat: obs.Lat, Lon: obs.Lon},
		AQI:        int(obs.AQI),
		AQILabel:   obs.AQI.Band().String(),
		Components: toComponents(obs.Components),
		ObservedAt: models.Timestamp(obs.ObservedAt),
		FetchedAt:  models.Timestamp(obs.FetchedAt),
	}
}

func toAnalysis(a *airquality.Analysis) models.Analysis {
	significant := make([]models.SignificantPollutant, 0, len(a.Significant))
	for _, sp := range a.Significant {
		significant = append(significant, models.SignificantPollutant{
			Key:       string(sp.Key),
			Name:      sp.Name,
			Value:     sp.Value,
			Band:      int(sp.Band),
			BandLabel: sp.Band.String(),
		})
	}

	sources := a.Sources
	if sources == nil {
		sources = []string{}
	}

	return models.Analysis{
		Significant:        significant,
		Sources:            sources,
		WorstBand:          int(a.WorstBand),
		WorstBandLabel:     a.WorstBand.String(),
		HealthImplications: a.HealthImplications,
	}
}
