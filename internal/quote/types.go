// Package quote assembles resolved locations, feature estimates, pricing and
// service-area policy into PropertyLocation and LocationQuote values.
package quote

import (
	"time"

	"github.com/paulmach/orb"

	"github.com/yourorg/location-quote/internal/features"
	"github.com/yourorg/location-quote/internal/location"
	"github.com/yourorg/location-quote/internal/pricing"
)

// Analysis is the pricing view of a location at the reference project size.
type Analysis struct {
	Factors        pricing.Factors  `json:"factors"`
	ReferenceAcres float64          `json:"referenceAcres"`
	Estimate       pricing.Estimate `json:"estimate"`
}

// PropertyLocation is built fresh for each lookup and never mutated. Optional
// enrichment is nil when it could not be produced.
type PropertyLocation struct {
	PlaceID            string                     `json:"placeId"`
	PropertyKey        string                     `json:"propertyKey,omitempty"` // parcel identity, unit ignored
	Address            string                     `json:"address"`
	Coordinates        location.Coordinates       `json:"coordinates"`
	Components         location.AddressComponents `json:"components"`
	Verified           bool                       `json:"verified"`
	Verdict            location.Verdict           `json:"verdict"`
	PropertyType       pricing.PropertyType       `json:"propertyType"`
	AccessibilityScore int                        `json:"accessibilityScore"`
	DistanceFromBase   location.TravelMetrics     `json:"distanceFromBase"`
	StraightLineKm     float64                    `json:"straightLineKm"`
	Factors            pricing.Factors            `json:"pricingFactors"`

	TreeAIAnalysis   *Analysis             `json:"treeAIAnalysis,omitempty"`
	Analytics        *features.Analytics   `json:"analytics,omitempty"`
	RiskProfile      *features.RiskProfile `json:"riskProfile,omitempty"`
	PropertyInsights *features.Insights    `json:"propertyInsights,omitempty"`

	ResolvedAt time.Time `json:"resolvedAt"`
}

// PinDrop is a map click. Address, when given, labels the location instead of
// the reverse geocoded one. Bounds is the optional lot outline.
type PinDrop struct {
	Coordinates location.Coordinates `json:"coordinates"`
	Address     string               `json:"address,omitempty"`
	Bounds      orb.Polygon          `json:"-"`
}

type ServiceAreaTier struct {
	Zone             string  `json:"zone"`
	SurchargePercent float64 `json:"surchargePercent"`
	SurchargeAmount  float64 `json:"surchargeAmount"`
	Outside          bool    `json:"outside"`
}

type TransportationCost struct {
	DistanceMeters   float64 `json:"distanceMeters"`
	DurationSeconds  float64 `json:"durationSeconds"`
	RoundTripSeconds float64 `json:"roundTripSeconds"`
	BillableHours    int     `json:"billableHours"`
	HourlyRate       float64 `json:"hourlyRate"`
	Cost             float64 `json:"cost"`
}

// LocationQuote keeps the service-area surcharge and the transportation cost
// as separate line items; TotalEstimate includes only the latter.
//
// A property exactly at the service radius is within the service area but
// priced at the outside tier, since zones are half-open and the radius check
// is inclusive.
type LocationQuote struct {
	ID                  string             `json:"id"`
	Location            PropertyLocation   `json:"location"`
	ProjectAcres        float64            `json:"projectAcres"`
	IsWithinServiceArea bool               `json:"isWithinServiceArea"`
	ServiceAreaTier     ServiceAreaTier    `json:"serviceAreaTier"`
	TransportationCost  TransportationCost `json:"transportationCost"`
	Estimate            pricing.Estimate   `json:"estimate"`
	GeneratedAt         time.Time          `json:"generatedAt"`
}

// QuoteRequest identifies the property by Address or by Pin; Pin wins when both are set.
type QuoteRequest struct {
	Address      string   `json:"address,omitempty"`
	Pin          *PinDrop `json:"pin,omitempty"`
	ProjectAcres float64  `json:"acres"`
}
