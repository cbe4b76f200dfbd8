// Package pricing turns property factors and travel time into a price estimate.
// Everything here is pure: no I/O, no clocks.
package pricing

type PropertyType string

const (
	Residential  PropertyType = "residential"
	Commercial   PropertyType = "commercial"
	Agricultural PropertyType = "agricultural"
	Industrial   PropertyType = "industrial"
)

func (p PropertyType) Valid() bool {
	switch p {
	case Residential, Commercial, Agricultural, Industrial:
		return true
	}
	return false
}

type VegetationDensity string

const (
	Light    VegetationDensity = "light"
	Moderate VegetationDensity = "moderate"
	Heavy    VegetationDensity = "heavy"
	Extreme  VegetationDensity = "extreme"
)

func (v VegetationDensity) Valid() bool {
	switch v {
	case Light, Moderate, Heavy, Extreme:
		return true
	}
	return false
}

type FireRiskLevel string

const (
	FireRiskLow      FireRiskLevel = "low"
	FireRiskModerate FireRiskLevel = "moderate"
	FireRiskHigh     FireRiskLevel = "high"
)

type SeasonalFactors struct {
	WetlandSeason     bool          `json:"wetlandSeason"`
	BirdNestingSeason bool          `json:"birdNestingSeason"`
	FireRiskLevel     FireRiskLevel `json:"fireRiskLevel"`
}

// Signals records which factors came from real data rather than a default.
type Signals struct {
	Accessibility   bool `json:"accessibility"`
	Terrain         bool `json:"terrain"`
	EquipmentAccess bool `json:"equipmentAccess"`
}

type Factors struct {
	BasePropertyType          PropertyType      `json:"basePropertyType"`
	VegetationDensity         VegetationDensity `json:"vegetationDensity"`
	TerrainDifficulty         int               `json:"terrainDifficulty"`      // 1..10
	EquipmentAccessibility    int               `json:"equipmentAccessibility"` // 1..10, 10 = easiest
	ProximityToUtilities      bool              `json:"proximityToUtilities"`
	EnvironmentalRestrictions []string          `json:"environmentalRestrictions"`
	SeasonalFactors           SeasonalFactors   `json:"seasonalFactors"`
	Known                     Signals           `json:"known"`
}

// DefaultFactors is what the estimator reports when no signal is available.
func DefaultFactors() Factors {
	return Factors{
		BasePropertyType:          Residential,
		VegetationDensity:         Moderate,
		TerrainDifficulty:         5,
		EquipmentAccessibility:    7,
		EnvironmentalRestrictions: []string{},
		SeasonalFactors:           SeasonalFactors{FireRiskLevel: FireRiskModerate},
	}
}
