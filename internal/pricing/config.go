package pricing

import "fmt"

type Config struct {
	BasePricePerAcre      map[PropertyType]float64
	VegetationMultiplier  map[VegetationDensity]float64
	HourlyRate            float64
	AccessibilityBaseline int // accessibility score that adds no difficulty
	AccessibilityStep     float64
	TerrainBaseline       int
	TerrainStep           float64

	RestrictionAdjustment float64
	WetlandAdjustment     float64
	NestingAdjustment     float64
	HighFireAdjustment    float64

	BaseConfidence  float64
	ConfidenceStep  float64
	ConfidenceLimit float64
}

func DefaultConfig() Config {
	return Config{
		BasePricePerAcre: map[PropertyType]float64{
			Residential:  2800,
			Commercial:   2500,
			Agricultural: 1800,
			Industrial:   3200,
		},
		VegetationMultiplier: map[VegetationDensity]float64{
			Light:    0.8,
			Moderate: 1.0,
			Heavy:    1.4,
			Extreme:  1.9,
		},
		HourlyRate:            350,
		AccessibilityBaseline: 7,
		AccessibilityStep:     0.05,
		TerrainBaseline:       5,
		TerrainStep:           0.03,
		RestrictionAdjustment: 0.10,
		WetlandAdjustment:     0.15,
		NestingAdjustment:     0.10,
		HighFireAdjustment:    0.20,
		BaseConfidence:        0.7,
		ConfidenceStep:        0.05,
		ConfidenceLimit:       0.95,
	}
}

func (c Config) Validate() error {
	for _, pt := range []PropertyType{Residential, Commercial, Agricultural, Industrial} {
		if c.BasePricePerAcre[pt] <= 0 {
			return fmt.Errorf("pricing: base price for %s must be positive", pt)
		}
	}
	for _, d := range []VegetationDensity{Light, Moderate, Heavy, Extreme} {
		if c.VegetationMultiplier[d] <= 0 {
			return fmt.Errorf("pricing: vegetation multiplier for %s must be positive", d)
		}
	}
	if c.HourlyRate < 0 {
		return fmt.Errorf("pricing: hourly rate must not be negative")
	}
	if c.AccessibilityBaseline < 1 || c.AccessibilityBaseline > 10 {
		return fmt.Errorf("pricing: accessibility baseline %d outside 1..10", c.AccessibilityBaseline)
	}
	if c.ConfidenceLimit < c.BaseConfidence {
		return fmt.Errorf("pricing: confidence limit below base confidence")
	}
	return nil
}
