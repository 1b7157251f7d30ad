package airquality

import "fmt"

// ThresholdSet partitions concentration space into the five severity bands.
// Boundaries are inclusive to the lower band: a value equal to Good is still
// classified Good, a value above Poor is Very Poor.
type ThresholdSet struct {
	Good     float64
	Fair     float64
	Moderate float64
	Poor     float64
}

// Band classifies a concentration against the threshold boundaries.
func (t ThresholdSet) Band(value float64) Band {
	switch {
	case value <= t.Good:
		return BandGood
	case value <= t.Fair:
		return BandFair
	case value <= t.Moderate:
		return BandModerate
	case value <= t.Poor:
		return BandPoor
	default:
		return BandVeryPoor
	}
}

func (t ThresholdSet) validate() error {
	if !(t.Good < t.Fair && t.Fair < t.Moderate && t.Moderate < t.Poor) {
		return fmt.Errorf("thresholds must be strictly increasing: %.1f/%.1f/%.1f/%.1f",
			t.Good, t.Fair, t.Moderate, t.Poor)
	}
	return nil
}

// PollutantDefinition is the static description of one pollutant.
type PollutantDefinition struct {
	Key           Pollutant
	Name          string
	FullName      string
	Unit          string
	Description   string
	Sources       []string
	HealthEffects string
	Thresholds    ThresholdSet
}

// Catalog is an immutable set of pollutant definitions. Construct it once at
// startup and pass it to the analyzer; it is never mutated afterwards.
type Catalog struct {
	definitions map[Pollutant]PollutantDefinition
	messages    map[Band]string
}

// NewCatalog builds a catalog from the given definitions and per-band health
// messages. Every definition's thresholds are validated, and a message must
// exist for each of the five bands.
func NewCatalog(definitions []PollutantDefinition, messages map[Band]string) (*Catalog, error) {
	defs := make(map[Pollutant]PollutantDefinition, len(definitions))
	for _, def := range definitions {
		if err := def.Thresholds.validate(); err != nil {
			return nil, fmt.Errorf("pollutant %s: %w", def.Key, err)
		}
		defs[def.Key] = def
	}

	for b := BandGood; b <= BandVeryPoor; b++ {
		if messages[b] == "" {
			return nil, fmt.Errorf("missing health message for band %s", b)
		}
	}

	msgs := make(map[Band]string, len(messages))
	for b, m := range messages {
		msgs[b] = m
	}

	return &Catalog{definitions: defs, messages: msgs}, nil
}

// Definition returns the definition for a pollutant, if known.
func (c *Catalog) Definition(p Pollutant) (PollutantDefinition, bool) {
	def, ok := c.definitions[p]
	return def, ok
}

// Definitions returns all known definitions in wire order.
func (c *Catalog) Definitions() []PollutantDefinition {
	defs := make([]PollutantDefinition, 0, len(c.definitions))
	for _, p := range Pollutants {
		if def, ok := c.definitions[p]; ok {
			defs = append(defs, def)
		}
	}
	return defs
}

// HealthMessage returns the canned health implication text for a band.
func (c *Catalog) HealthMessage(b Band) string {
	return c.messages[b]
}

// DefaultHealthMessages are the five fixed health implication strings, one
// per band, independent of which pollutant triggered them.
func DefaultHealthMessages() map[Band]string {
	return map[Band]string{
		BandGood:     "Air quality is satisfactory and poses little or no health risk.",
		BandFair:     "Air quality is acceptable; unusually sensitive people should consider limiting prolonged outdoor exertion.",
		BandModerate: "Members of sensitive groups may experience health effects; limit prolonged outdoor exertion.",
		BandPoor:     "Everyone may begin to experience health effects; sensitive groups should avoid outdoor exertion.",
		BandVeryPoor: "Health alert: everyone may experience serious health effects; avoid all outdoor activity.",
	}
}

// DefaultCatalog returns the canonical pollutant catalog. Threshold constants
// for the six indexed pollutants follow the OpenWeatherMap air quality scale;
// NO and NH3 are not indexed by the provider and use fixed project values.
func DefaultCatalog() *Catalog {
	catalog, err := NewCatalog(defaultDefinitions(), DefaultHealthMessages())
	if err != nil {
		// defaultDefinitions is a compile-time constant set; a validation
		// failure here is a programming error.
		panic(err)
	}
	return catalog
}

func defaultDefinitions() []PollutantDefinition {
	return []PollutantDefinition{
		{
			Key:           PollutantCO,
			Name:          "CO",
			FullName:      "Carbon Monoxide",
			Unit:          "µg/m³",
			Description:   "Colorless, odorless gas produced by incomplete combustion of carbon-based fuels.",
			Sources:       []string{"Vehicle exhaust", "Fuel combustion", "Industrial processes"},
			HealthEffects: "Reduces the blood's ability to carry oxygen; causes headaches and dizziness at elevated levels.",
			Thresholds:    ThresholdSet{Good: 4400, Fair: 9400, Moderate: 12400, Poor: 15400},
		},
		{
			Key:           PollutantNO,
			Name:          "NO",
			FullName:      "Nitrogen Monoxide",
			Unit:          "µg/m³",
			Description:   "Reactive gas formed during high-temperature combustion; rapidly oxidizes to NO₂.",
			Sources:       []string{"Vehicle exhaust", "Power plants"},
			HealthEffects: "Irritates the respiratory tract and contributes to the formation of other pollutants.",
			Thresholds:    ThresholdSet{Good: 30, Fair: 60, Moderate: 120, Poor: 180},
		},
		{
			Key:           PollutantNO2,
			Name:          "NO2",
			FullName:      "Nitrogen Dioxide",
			Unit:          "µg/m³",
			Description:   "Reddish-brown gas with a sharp odor, a key precursor of ground-level ozone.",
			Sources:       []string{"Vehicle exhaust", "Power plants", "Industrial emissions"},
			HealthEffects: "Inflames the airways and aggravates asthma and other respiratory conditions.",
			Thresholds:    ThresholdSet{Good: 40, Fair: 70, Moderate: 150, Poor: 200},
		},
		{
			Key:           PollutantO3,
			Name:          "O3",
			FullName:      "Ozone",
			Unit:          "µg/m³",
			Description:   "Ground-level ozone formed by photochemical reactions between NOx and volatile organics.",
			Sources:       []string{"Photochemical reactions", "Vehicle exhaust", "Industrial emissions"},
			HealthEffects: "Causes chest pain, coughing and airway inflammation; worsens bronchitis and asthma.",
			Thresholds:    ThresholdSet{Good: 60, Fair: 100, Moderate: 140, Poor: 180},
		},
		{
			Key:           PollutantSO2,
			Name:          "SO2",
			FullName:      "Sulphur Dioxide",
			Unit:          "µg/m³",
			Description:   "Pungent gas released when sulphur-containing fuels are burned.",
			Sources:       []string{"Fossil fuel combustion", "Industrial processes", "Volcanic activity"},
			HealthEffects: "Irritates eyes and airways; short exposures can make breathing difficult for asthmatics.",
			Thresholds:    ThresholdSet{Good: 20, Fair: 80, Moderate: 250, Poor: 350},
		},
		{
			Key:           PollutantPM25,
			Name:          "PM2.5",
			FullName:      "Fine Particulate Matter",
			Unit:          "µg/m³",
			Description:   "Particles smaller than 2.5 micrometers that penetrate deep into the lungs.",
			Sources:       []string{"Combustion engines", "Wood burning", "Industrial processes", "Wildfires"},
			HealthEffects: "Linked to heart and lung disease; can enter the bloodstream through the lungs.",
			Thresholds:    ThresholdSet{Good: 10, Fair: 25, Moderate: 50, Poor: 75},
		},
		{
			Key:           PollutantPM10,
			Name:          "PM10",
			FullName:      "Coarse Particulate Matter",
			Unit:          "µg/m³",
			Description:   "Inhalable particles smaller than 10 micrometers.",
			Sources:       []string{"Road dust", "Construction", "Agriculture", "Industrial processes"},
			HealthEffects: "Irritates the nose, throat and airways; aggravates respiratory illness.",
			Thresholds:    ThresholdSet{Good: 20, Fair: 50, Moderate: 100, Poor: 200},
		},
		{
			Key:           PollutantNH3,
			Name:          "NH3",
			FullName:      "Ammonia",
			Unit:          "µg/m³",
			Description:   "Colorless gas with a pungent smell, a precursor of secondary particulate matter.",
			Sources:       []string{"Agriculture", "Livestock waste", "Fertilizer application"},
			HealthEffects: "Irritates the eyes, skin and respiratory tract at elevated concentrations.",
			Thresholds:    ThresholdSet{Good: 40, Fair: 80, Moderate: 120, Poor: 200},
		},
	}
}
