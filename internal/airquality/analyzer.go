package airquality

import (
	"fmt"
	"math"
)

// SignificantPollutant is one pollutant whose concentration reached the
// Moderate band or worse.
type SignificantPollutant struct {
	Key   Pollutant
	Name  string
	Value float64
	Band  Band
}

// Analysis is the derived result of analyzing one reading. It is freshly
// allocated per call and never retained by the analyzer.
type Analysis struct {
	// Significant lists the significant pollutants in the reading's
	// encounter order.
	Significant []SignificantPollutant

	// Sources is the union of the significant pollutants' source lists,
	// deduplicated, first occurrence first.
	Sources []string

	// WorstBand is the most severe band reached by any significant
	// pollutant; BandGood when nothing is significant.
	WorstBand Band

	// HealthImplications is the canned message for WorstBand.
	HealthImplications string
}

// Analyzer classifies pollutant readings against a catalog. It holds no
// mutable state and is safe for concurrent use.
type Analyzer struct {
	catalog *Catalog
}

// NewAnalyzer creates an analyzer over the given catalog.
func NewAnalyzer(catalog *Catalog) *Analyzer {
	return &Analyzer{catalog: catalog}
}

// Classify returns the band for a single pollutant concentration. It returns
// false if the pollutant has no definition in the catalog.
func (a *Analyzer) Classify(p Pollutant, value float64) (Band, bool) {
	def, ok := a.catalog.Definition(p)
	if !ok {
		return 0, false
	}
	return def.Thresholds.Band(value), true
}

// Analyze classifies every measured pollutant in the reading, collects the
// significant ones (Moderate or worse) with their likely sources, and maps
// the worst band reached to a health implication message.
//
// Pollutants absent from the reading are skipped; pollutants without a
// catalog definition are ignored. A negative or NaN concentration fails with
// ErrInvalidReading.
func (a *Analyzer) Analyze(c Components) (*Analysis, error) {
	result := &Analysis{
		Significant: []SignificantPollutant{},
		Sources:     []string{},
		WorstBand:   BandGood,
	}

	seen := make(map[string]bool)

	for _, p := range Pollutants {
		value, ok := c.Get(p)
		if !ok {
			continue
		}
		if value < 0 || math.IsNaN(value) {
			return nil, fmt.Errorf("%w: %s concentration %v", ErrInvalidReading, p, value)
		}

		def, ok := a.catalog.Definition(p)
		if !ok {
			continue
		}

		band := def.Thresholds.Band(value)
		if band < BandModerate {
			continue
		}

		result.Significant = append(result.Significant, SignificantPollutant{
			Key:   p,
			Name:  def.Name,
			Value: value,
			Band:  band,
		})
		if band > result.WorstBand {
			result.WorstBand = band
		}

		for _, source := range def.Sources {
			if !seen[source] {
				seen[source] = true
				result.Sources = append(result.Sources, source)
			}
		}
	}

	result.HealthImplications = a.catalog.HealthMessage(result.WorstBand)
	return result, nil
}
