// Package features derives pricing factors and enrichment data (risk, market,
// site insights) for a resolved location.
//
// Each signal comes from a replaceable strategy. A missing strategy, or one that
// fails, falls back to a documented default so a location can always be priced:
//
//	vegetation density      moderate
//	terrain difficulty      5
//	equipment accessibility 7
//	accessibility score     equipment accessibility
//	fire risk               calendar default (moderate)
package features

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/paulmach/orb"

	"github.com/yourorg/location-quote/internal/location"
	"github.com/yourorg/location-quote/internal/pricing"
)

// ErrNoSignal means a strategy has nothing to say about a location. It is not
// logged as a failure.
var ErrNoSignal = errors.New("no signal")

const (
	DefaultTerrainDifficulty = 5
	DefaultEquipmentAccess   = 7
	DefaultRemoteKm          = 60
)

type VegetationEstimator interface {
	EstimateVegetationDensity(ctx context.Context, c location.Coordinates) (pricing.VegetationDensity, error)
}

type TerrainEstimator interface {
	EstimateTerrainDifficulty(ctx context.Context, c location.Coordinates) (int, error)
}

type EquipmentAccessEstimator interface {
	EstimateEquipmentAccess(ctx context.Context, p location.ResolvedPlace) (int, error)
}

type AccessibilityEstimator interface {
	EstimateAccessibility(ctx context.Context, p location.ResolvedPlace) (int, error)
}

type FireRiskEstimator interface {
	EstimateFireRisk(ctx context.Context, c location.Coordinates, now time.Time) (pricing.FireRiskLevel, error)
}

// RestrictionSource lists environmental restrictions (protected areas,
// wetland buffers, ...) that apply to a place.
type RestrictionSource interface {
	Restrictions(ctx context.Context, p location.ResolvedPlace) ([]string, error)
}

type Input struct {
	Place      location.ResolvedPlace
	Bounds     orb.Polygon // optional lot outline
	DistanceKm float64     // road distance from the service base
	Now        time.Time
}

type Result struct {
	Factors            pricing.Factors
	AccessibilityScore int
	Risk               *RiskProfile
	Analytics          *Analytics
	Insights           *Insights
}

type Estimator struct {
	Vegetation    VegetationEstimator
	Terrain       TerrainEstimator
	Equipment     EquipmentAccessEstimator
	Accessibility AccessibilityEstimator
	FireRisk      FireRiskEstimator
	Restrictions  RestrictionSource

	PropertyTypes     map[string]pricing.PropertyType // provider type tag -> property type
	Seasons           SeasonCalendar
	Markets           MarketDirectory
	RemoteThresholdKm float64
	Logger            *log.Logger
}

func (e *Estimator) logf(format string, args ...any) {
	if e.Logger != nil {
		e.Logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}

// Estimate never fails; every gap degrades to its default.
func (e *Estimator) Estimate(ctx context.Context, in Input) Result {
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}
	coords := in.Place.Coordinates

	f := pricing.DefaultFactors()
	f.BasePropertyType = ClassifyPropertyType(e.PropertyTypes, in.Place.Types)

	if e.Vegetation != nil {
		d, err := e.Vegetation.EstimateVegetationDensity(ctx, coords)
		if e.usable("vegetation", err) && d.Valid() {
			f.VegetationDensity = d
		}
	}
	if e.Terrain != nil {
		v, err := e.Terrain.EstimateTerrainDifficulty(ctx, coords)
		if e.usable("terrain", err) {
			f.TerrainDifficulty = clampScore(v)
			f.Known.Terrain = true
		}
	}
	if e.Equipment != nil {
		v, err := e.Equipment.EstimateEquipmentAccess(ctx, in.Place)
		if e.usable("equipment access", err) {
			f.EquipmentAccessibility = clampScore(v)
			f.Known.EquipmentAccess = true
		}
	}
	accessibility := f.EquipmentAccessibility
	if e.Accessibility != nil {
		v, err := e.Accessibility.EstimateAccessibility(ctx, in.Place)
		if e.usable("accessibility", err) {
			accessibility = clampScore(v)
			f.Known.Accessibility = true
		}
	}

	f.EnvironmentalRestrictions = PlaceRestrictions(in.Place.Types)
	if e.Restrictions != nil {
		extra, err := e.Restrictions.Restrictions(ctx, in.Place)
		if e.usable("restrictions", err) {
			f.EnvironmentalRestrictions = mergeUnique(f.EnvironmentalRestrictions, extra)
		}
	}

	cal := e.Seasons
	if cal.isZero() {
		cal = DefaultSeasonCalendar()
	}
	f.SeasonalFactors = cal.Detect(now)
	if e.FireRisk != nil {
		lvl, err := e.FireRisk.EstimateFireRisk(ctx, coords, now)
		if e.usable("fire risk", err) && validFireRisk(lvl) {
			f.SeasonalFactors.FireRiskLevel = lvl
		}
	}

	remoteKm := e.RemoteThresholdKm
	if remoteKm <= 0 {
		remoteKm = DefaultRemoteKm
	}
	risk := AssessRisk(accessibility, in.DistanceKm > remoteKm, f)
	insights := BuildInsights(f, in.Place.Types, in.Bounds)

	res := Result{
		Factors:            f,
		AccessibilityScore: accessibility,
		Risk:               &risk,
		Insights:           &insights,
	}
	if a, ok := e.Markets.Analytics(in.Place.Components, f.SeasonalFactors); ok {
		res.Analytics = &a
	}
	return res
}

func (e *Estimator) usable(signal string, err error) bool {
	if err == nil {
		return true
	}
	if !errors.Is(err, ErrNoSignal) {
		e.logf("[WARN] %s estimate unavailable, using default: %v", signal, err)
	}
	return false
}

func clampScore(v int) int {
	if v < 1 {
		return 1
	}
	if v > 10 {
		return 10
	}
	return v
}

func validFireRisk(l pricing.FireRiskLevel) bool {
	switch l {
	case pricing.FireRiskLow, pricing.FireRiskModerate, pricing.FireRiskHigh:
		return true
	}
	return false
}

func mergeUnique(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, s := range append(append([]string(nil), a...), b...) {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
