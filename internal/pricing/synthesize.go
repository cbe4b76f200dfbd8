package pricing

import (
	"errors"
	"fmt"
	"math"

	"github.com/yourorg/location-quote/internal/location"
)

var ErrInvalidProjectSize = errors.New("project size must be greater than zero acres")

type Estimate struct {
	BasePrice               float64        `json:"basePrice"`
	TravelSurcharge         float64        `json:"travelSurcharge"`
	DifficultyMultiplier    float64        `json:"difficultyMultiplier"`
	VegetationMultiplier    float64        `json:"vegetationMultiplier"`
	EnvironmentalAdjustment float64        `json:"environmentalAdjustment"`
	TotalEstimate           float64        `json:"totalEstimate"`
	Confidence              float64        `json:"confidence"`
	Transportation          Transportation `json:"transportation"`
}

// ValidateAcres rejects non-positive or non-finite project sizes.
func ValidateAcres(acres float64) error {
	if !(acres > 0) || math.IsInf(acres, 1) {
		return fmt.Errorf("%w: got %v", ErrInvalidProjectSize, acres)
	}
	return nil
}

// Synthesize prices a job:
//
//	basePrice = perAcre * acres * vegetation * environmental * difficulty
//	total     = basePrice + transportation cost
//
// Out-of-range factor values are clamped to their documented ranges and unknown
// enum values fall back to residential / moderate.
func Synthesize(cfg Config, f Factors, travel location.TravelMetrics, acres float64) (Estimate, error) {
	if err := ValidateAcres(acres); err != nil {
		return Estimate{}, err
	}

	perAcre, ok := cfg.BasePricePerAcre[f.BasePropertyType]
	if !ok {
		perAcre = cfg.BasePricePerAcre[Residential]
	}
	veg, ok := cfg.VegetationMultiplier[f.VegetationDensity]
	if !ok {
		veg = cfg.VegetationMultiplier[Moderate]
	}

	difficulty := DifficultyMultiplier(cfg, f)
	env := EnvironmentalAdjustment(cfg, f)

	base := roundCents(perAcre * acres * veg * env * difficulty)
	transport := TransportationCost(travel.DurationSeconds, cfg.HourlyRate)

	return Estimate{
		BasePrice:               base,
		TravelSurcharge:         transport.Cost,
		DifficultyMultiplier:    difficulty,
		VegetationMultiplier:    veg,
		EnvironmentalAdjustment: env,
		TotalEstimate:           base + transport.Cost,
		Confidence:              Confidence(cfg, f),
		Transportation:          transport,
	}, nil
}

func DifficultyMultiplier(cfg Config, f Factors) float64 {
	access := clamp(f.EquipmentAccessibility, 1, 10)
	terrain := clamp(f.TerrainDifficulty, 1, 10)
	accessAdj := float64(cfg.AccessibilityBaseline-access) * cfg.AccessibilityStep
	terrainAdj := float64(terrain-cfg.TerrainBaseline) * cfg.TerrainStep
	return 1 + accessAdj + terrainAdj
}

// EnvironmentalAdjustment stacks additively on 1.0.
func EnvironmentalAdjustment(cfg Config, f Factors) float64 {
	adj := 1.0
	if len(f.EnvironmentalRestrictions) > 0 {
		adj += cfg.RestrictionAdjustment
	}
	if f.SeasonalFactors.WetlandSeason {
		adj += cfg.WetlandAdjustment
	}
	if f.SeasonalFactors.BirdNestingSeason {
		adj += cfg.NestingAdjustment
	}
	if f.SeasonalFactors.FireRiskLevel == FireRiskHigh {
		adj += cfg.HighFireAdjustment
	}
	return adj
}

// Confidence grows by one step per available enrichment signal, capped at the limit.
func Confidence(cfg Config, f Factors) float64 {
	n := 0
	if f.Known.Accessibility {
		n++
	}
	if len(f.EnvironmentalRestrictions) > 0 {
		n++
	}
	if f.Known.Terrain {
		n++
	}
	if f.Known.EquipmentAccess {
		n++
	}
	c := cfg.BaseConfidence + float64(n)*cfg.ConfidenceStep
	if c > cfg.ConfidenceLimit {
		c = cfg.ConfidenceLimit
	}
	return math.Round(c*100) / 100
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func roundCents(v float64) float64 { return math.Round(v*100) / 100 }
