package features

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"github.com/yourorg/location-quote/internal/pricing"
)

const squareMetersPerAcre = 4046.8564224

type Insights struct {
	LotSizeAcres              float64 `json:"lotSizeAcres,omitempty"`
	VegetationCoveragePercent int     `json:"vegetationCoveragePercent"`
	SlopeClass                string  `json:"slopeClass"`
	WaterFeatures             bool    `json:"waterFeatures"`
}

func BuildInsights(f pricing.Factors, tags []string, bounds orb.Polygon) Insights {
	in := Insights{
		LotSizeAcres:              LotSizeAcres(bounds),
		VegetationCoveragePercent: coverage(f.VegetationDensity),
		SlopeClass:                SlopeClass(f.TerrainDifficulty),
	}
	for _, t := range tags {
		if t == "natural_feature" {
			in.WaterFeatures = true
		}
	}
	for _, r := range f.EnvironmentalRestrictions {
		if r == "wetland_buffer" || r == "riparian_zone" {
			in.WaterFeatures = true
		}
	}
	return in
}

// LotSizeAcres is the geodesic area of the outline, 0 without one.
func LotSizeAcres(bounds orb.Polygon) float64 {
	if len(bounds) == 0 || len(bounds[0]) < 3 {
		return 0
	}
	sqm := math.Abs(geo.Area(bounds))
	return math.Round(sqm/squareMetersPerAcre*100) / 100
}

func SlopeClass(terrain int) string {
	switch {
	case terrain <= 2:
		return "flat"
	case terrain <= 4:
		return "gentle"
	case terrain <= 7:
		return "moderate"
	default:
		return "steep"
	}
}

func coverage(d pricing.VegetationDensity) int {
	switch d {
	case pricing.Light:
		return 20
	case pricing.Heavy:
		return 70
	case pricing.Extreme:
		return 90
	default:
		return 45
	}
}
