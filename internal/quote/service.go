package quote

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"github.com/yourorg/location-quote/internal/canon"
	"github.com/yourorg/location-quote/internal/events"
	"github.com/yourorg/location-quote/internal/features"
	"github.com/yourorg/location-quote/internal/geoprovider"
	"github.com/yourorg/location-quote/internal/location"
	"github.com/yourorg/location-quote/internal/pricing"
	"github.com/yourorg/location-quote/internal/servicearea"
)

// Deps are the collaborators of a Service. Geo and Base are required.
type Deps struct {
	Geo            geoprovider.Provider
	Features       *features.Estimator
	Pricing        pricing.Config
	Area           *servicearea.Policy
	Base           location.Coordinates // service base every distance is measured from
	ReferenceAcres float64              // project size used for the treeAIAnalysis preview
	Events         events.Publisher
	Now            func() time.Time
	NewID          func() string
	Logger         *log.Logger
}

type Service struct {
	d Deps
}

func NewService(d Deps) (*Service, error) {
	if d.Geo == nil {
		return nil, errors.New("quote: geo provider required")
	}
	if err := d.Base.Validate(); err != nil {
		return nil, fmt.Errorf("quote: service base: %w", err)
	}
	if d.Pricing.BasePricePerAcre == nil {
		d.Pricing = pricing.DefaultConfig()
	}
	if err := d.Pricing.Validate(); err != nil {
		return nil, err
	}
	if d.Features == nil {
		d.Features = &features.Estimator{Logger: d.Logger}
	}
	if d.Area == nil {
		d.Area = servicearea.MustDefault()
	}
	if d.ReferenceAcres <= 0 {
		d.ReferenceAcres = 1
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.NewID == nil {
		d.NewID = uuid.NewString
	}
	return &Service{d: d}, nil
}

func (s *Service) logf(format string, args ...any) {
	if s.d.Logger != nil {
		s.d.Logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}

// VerifyPropertyLocation resolves typed address text. Resolution and routing
// failures are returned as location errors; enrichment gaps are not.
func (s *Service) VerifyPropertyLocation(ctx context.Context, address string) (PropertyLocation, error) {
	rp, err := s.d.Geo.ResolveAddress(ctx, address)
	if err != nil {
		return PropertyLocation{}, err
	}
	coords := rp.Coordinates
	travel, err := s.d.Geo.TravelMetrics(ctx, s.d.Base, location.Destination{PlaceID: rp.PlaceID, Coordinates: &coords})
	if err != nil {
		return PropertyLocation{}, err
	}
	return s.assemble(ctx, rp, travel, nil), nil
}

// ProcessPinDropLocation builds a location for a map click. The pin itself is
// the position; reverse geocoding only supplies the address. A pin is never
// verified.
func (s *Service) ProcessPinDropLocation(ctx context.Context, pin PinDrop) (PropertyLocation, error) {
	if err := pin.Coordinates.Validate(); err != nil {
		return PropertyLocation{}, err
	}
	label := strings.TrimSpace(pin.Address)
	rp, err := s.d.Geo.ReverseGeocode(ctx, pin.Coordinates)
	switch {
	case err == nil:
	case errors.Is(err, location.ErrNoResultAtCoordinates) && label != "":
		rp = location.ResolvedPlace{}
	default:
		return PropertyLocation{}, err
	}
	if label != "" {
		rp.FormattedAddress = label
	}
	rp.Coordinates = pin.Coordinates
	rp.Verified = false
	rp.Verdict = location.VerdictUnknown

	travel, err := s.d.Geo.TravelMetrics(ctx, s.d.Base, location.Destination{Coordinates: &pin.Coordinates})
	if err != nil {
		return PropertyLocation{}, err
	}
	return s.assemble(ctx, rp, travel, pin.Bounds), nil
}

func (s *Service) assemble(ctx context.Context, rp location.ResolvedPlace, travel location.TravelMetrics, bounds orb.Polygon) PropertyLocation {
	now := s.d.Now()
	res := s.d.Features.Estimate(ctx, features.Input{
		Place:      rp,
		Bounds:     bounds,
		DistanceKm: travel.Kilometers(),
		Now:        now,
	})

	loc := PropertyLocation{
		PlaceID:            rp.PlaceID,
		PropertyKey:        propertyKey(rp.Components),
		Address:            rp.FormattedAddress,
		Coordinates:        rp.Coordinates,
		Components:         rp.Components,
		Verified:           rp.Verified,
		Verdict:            rp.Verdict,
		PropertyType:       res.Factors.BasePropertyType,
		AccessibilityScore: res.AccessibilityScore,
		DistanceFromBase:   travel,
		StraightLineKm:     math.Round(geo.Distance(s.d.Base.Point(), rp.Coordinates.Point())/10) / 100,
		Factors:            res.Factors,
		Analytics:          res.Analytics,
		RiskProfile:        res.Risk,
		PropertyInsights:   res.Insights,
		ResolvedAt:         now,
	}
	if est, err := pricing.Synthesize(s.d.Pricing, res.Factors, travel, s.d.ReferenceAcres); err != nil {
		s.logf("[WARN] reference estimate for %s: %v", rp.PlaceID, err)
	} else {
		loc.TreeAIAnalysis = &Analysis{Factors: res.Factors, ReferenceAcres: s.d.ReferenceAcres, Estimate: est}
	}
	return loc
}

func propertyKey(c location.AddressComponents) string {
	if c.Street == "" || c.City == "" || c.State == "" || c.PostalCode == "" {
		return ""
	}
	_, _, _, _, key := canon.Canonicalize(c.Street, c.City, c.State, c.PostalCode)
	return key
}

// GenerateLocationQuote prices a project on an already resolved location. It
// makes no provider calls.
func (s *Service) GenerateLocationQuote(loc PropertyLocation, acres float64) (LocationQuote, error) {
	est, err := pricing.Synthesize(s.d.Pricing, loc.Factors, loc.DistanceFromBase, acres)
	if err != nil {
		return LocationQuote{}, err
	}
	km := loc.DistanceFromBase.Kilometers()
	highRisk := loc.RiskProfile != nil && loc.RiskProfile.AccessRisk == features.RiskHigh
	tier := s.d.Area.ClassifyWithRisk(km, highRisk)
	t := est.Transportation

	return LocationQuote{
		ID:                  s.d.NewID(),
		Location:            loc,
		ProjectAcres:        acres,
		IsWithinServiceArea: s.d.Area.IsWithinServiceArea(km),
		ServiceAreaTier: ServiceAreaTier{
			Zone:             tier.Zone,
			SurchargePercent: tier.SurchargePercent,
			SurchargeAmount:  servicearea.SurchargeAmount(est.BasePrice, tier),
			Outside:          tier.Outside,
		},
		TransportationCost: TransportationCost{
			DistanceMeters:   loc.DistanceFromBase.Meters,
			DurationSeconds:  loc.DistanceFromBase.DurationSeconds,
			RoundTripSeconds: t.RoundTripSeconds,
			BillableHours:    t.BillableHours,
			HourlyRate:       t.HourlyRate,
			Cost:             t.Cost,
		},
		Estimate:    est,
		GeneratedAt: s.d.Now(),
	}, nil
}

// Quote resolves the property and prices it. The project size is checked
// before any provider call.
func (s *Service) Quote(ctx context.Context, req QuoteRequest) (LocationQuote, error) {
	if err := pricing.ValidateAcres(req.ProjectAcres); err != nil {
		return LocationQuote{}, err
	}

	var (
		loc PropertyLocation
		err error
	)
	switch {
	case req.Pin != nil:
		loc, err = s.ProcessPinDropLocation(ctx, *req.Pin)
	case strings.TrimSpace(req.Address) != "":
		loc, err = s.VerifyPropertyLocation(ctx, req.Address)
	default:
		return LocationQuote{}, fmt.Errorf("%w: address or pin required", location.ErrAddressInvalid)
	}
	if err != nil {
		return LocationQuote{}, err
	}
	// a newer request from the same caller may have superseded this one
	if err := ctx.Err(); err != nil {
		return LocationQuote{}, err
	}

	q, err := s.GenerateLocationQuote(loc, req.ProjectAcres)
	if err != nil {
		return LocationQuote{}, err
	}
	if s.d.Events != nil {
		s.d.Events.PublishQuoteIssued(ctx, events.QuoteIssued{
			QuoteID:       q.ID,
			PlaceID:       loc.PlaceID,
			Address:       loc.Address,
			ProjectAcres:  q.ProjectAcres,
			TotalEstimate: q.Estimate.TotalEstimate,
			Zone:          q.ServiceAreaTier.Zone,
			IssuedAt:      q.GeneratedAt,
		})
	}
	return q, nil
}

// Policy exposes the service-area policy in use.
func (s *Service) Policy() *servicearea.Policy { return s.d.Area }
