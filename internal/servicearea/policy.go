// Package servicearea decides which distance-based surcharge tier a property
// falls into and whether it is inside the serviceable radius.
package servicearea

import (
	"errors"
	"fmt"
	"math"
)

type Zone struct {
	MinDistanceKm    float64 `json:"minDistanceKm"`
	MaxDistanceKm    float64 `json:"maxDistanceKm"`
	SurchargePercent float64 `json:"surchargePercent"`
	Description      string  `json:"description"`
}

func (z Zone) contains(km float64) bool { return km >= z.MinDistanceKm && km < z.MaxDistanceKm }

// Outside is applied at or beyond the outermost zone boundary.
type Outside struct {
	Description            string
	SurchargePercent       float64
	HighAccessRiskAddition float64
}

type Tier struct {
	Zone             string  `json:"zone"`
	SurchargePercent float64 `json:"surchargePercent"`
	Outside          bool    `json:"outside"`
}

func DefaultZones() []Zone {
	return []Zone{
		{MinDistanceKm: 0, MaxDistanceKm: 30, SurchargePercent: 0, Description: "Primary Service Area - Core"},
		{MinDistanceKm: 30, MaxDistanceKm: 60, SurchargePercent: 5, Description: "Primary Service Area - Standard"},
		{MinDistanceKm: 60, MaxDistanceKm: 100, SurchargePercent: 15, Description: "Extended Service Area"},
		{MinDistanceKm: 100, MaxDistanceKm: 150, SurchargePercent: 25, Description: "Remote Service Area"},
	}
}

func DefaultOutside() Outside {
	return Outside{Description: "Outside Service Area", SurchargePercent: 30, HighAccessRiskAddition: 10}
}

type Policy struct {
	zones   []Zone
	outside Outside
}

var ErrInvalidZones = errors.New("invalid service area zones")

// NewPolicy requires zones in ascending order, starting at 0 and contiguous.
func NewPolicy(zones []Zone, outside Outside) (*Policy, error) {
	if len(zones) == 0 {
		return nil, fmt.Errorf("%w: no zones", ErrInvalidZones)
	}
	prevMax := 0.0
	for i, z := range zones {
		if z.MaxDistanceKm <= z.MinDistanceKm {
			return nil, fmt.Errorf("%w: zone %d (%s) is empty", ErrInvalidZones, i, z.Description)
		}
		if z.MinDistanceKm != prevMax {
			return nil, fmt.Errorf("%w: zone %d (%s) starts at %.2f km, want %.2f km", ErrInvalidZones, i, z.Description, z.MinDistanceKm, prevMax)
		}
		if z.SurchargePercent < 0 {
			return nil, fmt.Errorf("%w: zone %d has negative surcharge", ErrInvalidZones, i)
		}
		prevMax = z.MaxDistanceKm
	}
	if outside.Description == "" {
		outside.Description = DefaultOutside().Description
	}
	return &Policy{zones: append([]Zone(nil), zones...), outside: outside}, nil
}

func MustDefault() *Policy {
	p, err := NewPolicy(DefaultZones(), DefaultOutside())
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Policy) Zones() []Zone { return append([]Zone(nil), p.zones...) }

// RadiusKm is the outer boundary of the last zone.
func (p *Policy) RadiusKm() float64 { return p.zones[len(p.zones)-1].MaxDistanceKm }

// Classify checks zones in ascending order; first match wins. Negative or NaN
// distances are treated as on-site.
func (p *Policy) Classify(distanceKm float64) Tier {
	return p.ClassifyWithRisk(distanceKm, false)
}

// ClassifyWithRisk adds the high-access-risk surcharge for locations outside
// every zone.
func (p *Policy) ClassifyWithRisk(distanceKm float64, highAccessRisk bool) Tier {
	if distanceKm < 0 || math.IsNaN(distanceKm) {
		distanceKm = 0
	}
	for _, z := range p.zones {
		if z.contains(distanceKm) {
			return Tier{Zone: z.Description, SurchargePercent: z.SurchargePercent}
		}
	}
	pct := p.outside.SurchargePercent
	if highAccessRisk {
		pct += p.outside.HighAccessRiskAddition
	}
	return Tier{Zone: p.outside.Description, SurchargePercent: pct, Outside: true}
}

// IsWithinServiceArea is inclusive of the radius itself.
func (p *Policy) IsWithinServiceArea(distanceKm float64) bool {
	return distanceKm <= p.RadiusKm()
}

// SurchargeAmount is the informational percentage surcharge on a base price.
func SurchargeAmount(basePrice float64, t Tier) float64 {
	return math.Round(basePrice*t.SurchargePercent) / 100
}
