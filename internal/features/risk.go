package features

import "github.com/yourorg/location-quote/internal/pricing"

type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

type InsuranceComplexity string

const (
	InsuranceStandard InsuranceComplexity = "standard"
	InsuranceComplex  InsuranceComplexity = "complex"
)

type RiskProfile struct {
	AccessRisk            RiskLevel           `json:"accessRisk"`
	EquipmentSecurityRisk RiskLevel           `json:"equipmentSecurityRisk"`
	WeatherRisk           RiskLevel           `json:"weatherRisk"`
	InsuranceComplexity   InsuranceComplexity `json:"insuranceComplexity"`
	LiabilityFactors      []string            `json:"liabilityFactors"`
	Remote                bool                `json:"remote"`
}

func AccessRisk(accessibilityScore int) RiskLevel {
	switch {
	case accessibilityScore < 4:
		return RiskHigh
	case accessibilityScore < 7:
		return RiskModerate
	default:
		return RiskLow
	}
}

// AssessRisk classifies access, equipment security and weather risk and
// accumulates liability factors; more than two makes insurance complex.
func AssessRisk(accessibilityScore int, remote bool, f pricing.Factors) RiskProfile {
	p := RiskProfile{
		AccessRisk:            AccessRisk(accessibilityScore),
		EquipmentSecurityRisk: RiskLow,
		WeatherRisk:           RiskLow,
		InsuranceComplexity:   InsuranceStandard,
		LiabilityFactors:      []string{},
		Remote:                remote,
	}
	if remote {
		p.EquipmentSecurityRisk = RiskModerate
		p.LiabilityFactors = append(p.LiabilityFactors, "remote_location")
	}
	switch {
	case f.SeasonalFactors.FireRiskLevel == pricing.FireRiskHigh:
		p.WeatherRisk = RiskHigh
	case f.SeasonalFactors.WetlandSeason:
		p.WeatherRisk = RiskModerate
	}

	if p.AccessRisk == RiskHigh {
		p.LiabilityFactors = append(p.LiabilityFactors, "limited_equipment_access")
	}
	if f.ProximityToUtilities {
		p.LiabilityFactors = append(p.LiabilityFactors, "utility_proximity")
	}
	if f.TerrainDifficulty >= 8 {
		p.LiabilityFactors = append(p.LiabilityFactors, "steep_terrain")
	}
	if f.SeasonalFactors.FireRiskLevel == pricing.FireRiskHigh {
		p.LiabilityFactors = append(p.LiabilityFactors, "high_fire_risk")
	}
	if len(f.EnvironmentalRestrictions) > 0 {
		p.LiabilityFactors = append(p.LiabilityFactors, "environmental_restrictions")
	}
	if len(p.LiabilityFactors) > 2 {
		p.InsuranceComplexity = InsuranceComplex
	}
	return p
}
