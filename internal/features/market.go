package features

import (
	"strings"

	"github.com/yourorg/location-quote/internal/canon"
	"github.com/yourorg/location-quote/internal/location"
	"github.com/yourorg/location-quote/internal/pricing"
)

type MarketSegment string

const (
	SegmentPremium  MarketSegment = "premium"
	SegmentStandard MarketSegment = "standard"
	SegmentBudget   MarketSegment = "budget"
)

// MarketDirectory holds market knowledge that changes with the business; it is
// loaded from configuration or the policy store, never compiled in.
type MarketDirectory struct {
	PremiumPostalCodes  []string
	PremiumCityKeywords []string // matched as substrings of the city name
	BudgetPostalCodes   []string
}

func (d MarketDirectory) Segment(zip, city string) MarketSegment {
	z := canon.PostalCode(zip)
	c := canon.City(city)
	if z != "" {
		for _, p := range d.PremiumPostalCodes {
			if canon.PostalCode(p) == z {
				return SegmentPremium
			}
		}
	}
	if c != "" {
		for _, kw := range d.PremiumCityKeywords {
			if k := canon.City(kw); k != "" && strings.Contains(c, k) {
				return SegmentPremium
			}
		}
	}
	if z != "" {
		for _, p := range d.BudgetPostalCodes {
			if canon.PostalCode(p) == z {
				return SegmentBudget
			}
		}
	}
	return SegmentStandard
}

type Analytics struct {
	MarketSegment MarketSegment `json:"marketSegment"`
	DemandLevel   RiskLevel     `json:"demandLevel"`
	PeakSeason    bool          `json:"peakSeason"`
}

// Analytics needs at least a postal code or city to say anything.
func (d MarketDirectory) Analytics(c location.AddressComponents, s pricing.SeasonalFactors) (Analytics, bool) {
	if strings.TrimSpace(c.PostalCode) == "" && strings.TrimSpace(c.City) == "" {
		return Analytics{}, false
	}
	seg := d.Segment(c.PostalCode, c.City)
	a := Analytics{MarketSegment: seg, DemandLevel: RiskModerate, PeakSeason: s.BirdNestingSeason}
	switch seg {
	case SegmentPremium:
		a.DemandLevel = RiskHigh
	case SegmentBudget:
		a.DemandLevel = RiskLow
	}
	return a, true
}
