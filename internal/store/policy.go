package store

import (
	"github.com/yourorg/location-quote/internal/features"
	"github.com/yourorg/location-quote/internal/pricing"
	"github.com/yourorg/location-quote/internal/servicearea"
)

// pricing_rates names
const (
	RateHourly          = "hourly_rate"
	RateOutsidePercent  = "outside.surcharge_percent"
	RateOutsideHighRisk = "outside.high_risk_addition"
	ratePerAcrePrefix   = "per_acre."
)

type Policy struct {
	Zones   []servicearea.Zone
	Markets features.MarketDirectory
	Rates   map[string]float64
}

// RatesFrom flattens the configurable rates for UpsertRates.
func RatesFrom(p pricing.Config, o servicearea.Outside) map[string]float64 {
	r := map[string]float64{
		RateHourly:          p.HourlyRate,
		RateOutsidePercent:  o.SurchargePercent,
		RateOutsideHighRisk: o.HighAccessRiskAddition,
	}
	for pt, v := range p.BasePricePerAcre {
		r[ratePerAcrePrefix+string(pt)] = v
	}
	return r
}

// Apply overlays stored rates; names it does not know are ignored.
func (p Policy) Apply(pc pricing.Config, o servicearea.Outside) (pricing.Config, servicearea.Outside) {
	perAcre := make(map[pricing.PropertyType]float64, len(pc.BasePricePerAcre))
	for k, v := range pc.BasePricePerAcre {
		perAcre[k] = v
	}
	for name, v := range p.Rates {
		switch name {
		case RateHourly:
			pc.HourlyRate = v
		case RateOutsidePercent:
			o.SurchargePercent = v
		case RateOutsideHighRisk:
			o.HighAccessRiskAddition = v
		default:
			if len(name) > len(ratePerAcrePrefix) && name[:len(ratePerAcrePrefix)] == ratePerAcrePrefix {
				if pt := pricing.PropertyType(name[len(ratePerAcrePrefix):]); pt.Valid() {
					perAcre[pt] = v
				}
			}
		}
	}
	pc.BasePricePerAcre = perAcre
	return pc, o
}
