package features

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/location-quote/internal/location"
	"github.com/yourorg/location-quote/internal/pricing"
)

type vegFunc func() (pricing.VegetationDensity, error)

func (f vegFunc) EstimateVegetationDensity(context.Context, location.Coordinates) (pricing.VegetationDensity, error) {
	return f()
}

type terrainFunc func() (int, error)

func (f terrainFunc) EstimateTerrainDifficulty(context.Context, location.Coordinates) (int, error) {
	return f()
}

type placeScore func() (int, error)

func (f placeScore) EstimateEquipmentAccess(context.Context, location.ResolvedPlace) (int, error) {
	return f()
}

func (f placeScore) EstimateAccessibility(context.Context, location.ResolvedPlace) (int, error) {
	return f()
}

type restrictionsFunc func() ([]string, error)

func (f restrictionsFunc) Restrictions(context.Context, location.ResolvedPlace) ([]string, error) {
	return f()
}

var october = time.Date(2024, time.October, 15, 12, 0, 0, 0, time.UTC)
var january = time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)

func place() location.ResolvedPlace {
	return location.ResolvedPlace{
		PlaceID:          "abc",
		FormattedAddress: "12 Oak St, Springfield, IL 62701, USA",
		Coordinates:      location.Coordinates{Lat: 39.78, Lng: -89.65},
		Components:       location.AddressComponents{City: "Springfield", State: "IL", PostalCode: "62701"},
		Types:            []string{"street_address"},
	}
}

func TestEstimateWithoutStrategiesUsesDefaults(t *testing.T) {
	e := &Estimator{Logger: log.New(&bytes.Buffer{}, "", 0)}
	res := e.Estimate(context.Background(), Input{Place: place(), Now: january})

	f := res.Factors
	assert.Equal(t, pricing.Residential, f.BasePropertyType)
	assert.Equal(t, pricing.Moderate, f.VegetationDensity)
	assert.Equal(t, 5, f.TerrainDifficulty)
	assert.Equal(t, 7, f.EquipmentAccessibility)
	assert.Equal(t, 7, res.AccessibilityScore)
	assert.Empty(t, f.EnvironmentalRestrictions)
	assert.Equal(t, pricing.Signals{}, f.Known)
	assert.Equal(t, pricing.FireRiskModerate, f.SeasonalFactors.FireRiskLevel)
	assert.False(t, f.SeasonalFactors.WetlandSeason)
	assert.False(t, f.SeasonalFactors.BirdNestingSeason)

	require.NotNil(t, res.Risk)
	assert.Equal(t, RiskLow, res.Risk.AccessRisk)
	require.NotNil(t, res.Insights)
	assert.Equal(t, "moderate", res.Insights.SlopeClass)
	require.NotNil(t, res.Analytics)
	assert.Equal(t, SegmentStandard, res.Analytics.MarketSegment)
}

func TestEstimateUsesStrategySignals(t *testing.T) {
	e := &Estimator{
		Vegetation:    vegFunc(func() (pricing.VegetationDensity, error) { return pricing.Heavy, nil }),
		Terrain:       terrainFunc(func() (int, error) { return 12, nil }),
		Equipment:     placeScore(func() (int, error) { return 3, nil }),
		Accessibility: placeScore(func() (int, error) { return 2, nil }),
		Restrictions:  restrictionsFunc(func() ([]string, error) { return []string{"wetland_buffer", "wetland_buffer"}, nil }),
	}
	res := e.Estimate(context.Background(), Input{Place: place(), Now: october, DistanceKm: 120})

	f := res.Factors
	assert.Equal(t, pricing.Heavy, f.VegetationDensity)
	assert.Equal(t, 10, f.TerrainDifficulty, "clamped")
	assert.Equal(t, 3, f.EquipmentAccessibility)
	assert.Equal(t, 2, res.AccessibilityScore)
	assert.Equal(t, []string{"wetland_buffer"}, f.EnvironmentalRestrictions)
	assert.Equal(t, pricing.Signals{Accessibility: true, Terrain: true, EquipmentAccess: true}, f.Known)
	assert.True(t, f.SeasonalFactors.WetlandSeason)

	assert.Equal(t, RiskHigh, res.Risk.AccessRisk)
	assert.Equal(t, RiskModerate, res.Risk.EquipmentSecurityRisk)
	assert.True(t, res.Risk.Remote)
	assert.Equal(t, InsuranceComplex, res.Risk.InsuranceComplexity)
	assert.True(t, res.Insights.WaterFeatures)
	assert.Equal(t, "steep", res.Insights.SlopeClass)
}

func TestEstimateDegradesOnStrategyErrors(t *testing.T) {
	var buf bytes.Buffer
	boom := errors.New("imagery api down")
	e := &Estimator{
		Vegetation:    vegFunc(func() (pricing.VegetationDensity, error) { return "", boom }),
		Terrain:       terrainFunc(func() (int, error) { return 0, ErrNoSignal }),
		Equipment:     placeScore(func() (int, error) { return 0, boom }),
		Accessibility: placeScore(func() (int, error) { return 0, ErrNoSignal }),
		Restrictions:  restrictionsFunc(func() ([]string, error) { return nil, boom }),
		Logger:        log.New(&buf, "", 0),
	}
	res := e.Estimate(context.Background(), Input{Place: place(), Now: january})

	assert.Equal(t, pricing.DefaultFactors().VegetationDensity, res.Factors.VegetationDensity)
	assert.Equal(t, 5, res.Factors.TerrainDifficulty)
	assert.Equal(t, 7, res.Factors.EquipmentAccessibility)
	assert.Equal(t, pricing.Signals{}, res.Factors.Known)

	out := buf.String()
	assert.Contains(t, out, "[WARN] vegetation estimate unavailable")
	assert.Contains(t, out, "[WARN] equipment access estimate unavailable")
	assert.NotContains(t, out, "terrain", "ErrNoSignal is not a failure")
}

func TestEstimateRejectsOutOfEnumVegetation(t *testing.T) {
	e := &Estimator{Vegetation: vegFunc(func() (pricing.VegetationDensity, error) { return "jungle", nil })}
	res := e.Estimate(context.Background(), Input{Place: place(), Now: january})
	assert.Equal(t, pricing.Moderate, res.Factors.VegetationDensity)
}

func TestClassifyPropertyType(t *testing.T) {
	cases := []struct {
		tags []string
		want pricing.PropertyType
	}{
		{nil, pricing.Residential},
		{[]string{"point_of_interest"}, pricing.Residential},
		{[]string{"street_address"}, pricing.Residential},
		{[]string{"establishment", "store"}, pricing.Commercial},
		{[]string{"farm"}, pricing.Agricultural},
		{[]string{"warehouse", "store"}, pricing.Industrial},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyPropertyType(nil, tc.tags), "%v", tc.tags)
	}

	custom := map[string]pricing.PropertyType{"golf_course": pricing.Commercial, "bogus": "castle"}
	assert.Equal(t, pricing.Commercial, ClassifyPropertyType(custom, []string{"golf_course"}))
	assert.Equal(t, pricing.Residential, ClassifyPropertyType(custom, []string{"bogus"}))
	assert.Equal(t, pricing.Residential, ClassifyPropertyType(custom, []string{"store"}))
}

func TestSeasonCalendarDefaults(t *testing.T) {
	c := DefaultSeasonCalendar()
	for m := time.January; m <= time.December; m++ {
		s := c.Detect(time.Date(2024, m, 1, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, m >= time.June && m <= time.October, s.WetlandSeason, "wetland %s", m)
		assert.Equal(t, m >= time.March && m <= time.August, s.BirdNestingSeason, "nesting %s", m)
		assert.Equal(t, pricing.FireRiskModerate, s.FireRiskLevel)
	}
}

func TestMonthWindowWrapsYearEnd(t *testing.T) {
	w, err := ParseMonthWindow("11-2")
	require.NoError(t, err)
	assert.True(t, w.Contains(time.November))
	assert.True(t, w.Contains(time.January))
	assert.True(t, w.Contains(time.February))
	assert.False(t, w.Contains(time.March))
	assert.False(t, w.Contains(time.October))

	for _, bad := range []string{"", "6", "0-3", "6-13", "a-b"} {
		_, err := ParseMonthWindow(bad)
		assert.Error(t, err, bad)
	}
}

func TestAssessRisk(t *testing.T) {
	f := pricing.DefaultFactors()
	assert.Equal(t, RiskHigh, AssessRisk(3, false, f).AccessRisk)
	assert.Equal(t, RiskModerate, AssessRisk(4, false, f).AccessRisk)
	assert.Equal(t, RiskModerate, AssessRisk(6, false, f).AccessRisk)
	assert.Equal(t, RiskLow, AssessRisk(7, false, f).AccessRisk)

	p := AssessRisk(8, false, f)
	assert.Equal(t, RiskLow, p.EquipmentSecurityRisk)
	assert.Equal(t, InsuranceStandard, p.InsuranceComplexity)
	assert.Empty(t, p.LiabilityFactors)

	f.SeasonalFactors.FireRiskLevel = pricing.FireRiskHigh
	f.ProximityToUtilities = true
	p = AssessRisk(8, true, f)
	assert.Equal(t, RiskModerate, p.EquipmentSecurityRisk)
	assert.Equal(t, RiskHigh, p.WeatherRisk)
	assert.ElementsMatch(t, []string{"remote_location", "utility_proximity", "high_fire_risk"}, p.LiabilityFactors)
	assert.Equal(t, InsuranceComplex, p.InsuranceComplexity)

	two := pricing.DefaultFactors()
	two.ProximityToUtilities = true
	assert.Equal(t, InsuranceStandard, AssessRisk(8, true, two).InsuranceComplexity, "exactly two factors")
}

func TestMarketSegment(t *testing.T) {
	d := MarketDirectory{
		PremiumPostalCodes:  []string{"90210"},
		PremiumCityKeywords: []string{"hills"},
		BudgetPostalCodes:   []string{"62701"},
	}
	assert.Equal(t, SegmentPremium, d.Segment("90210-1234", ""))
	assert.Equal(t, SegmentPremium, d.Segment("", "Beverly Hills"))
	assert.Equal(t, SegmentBudget, d.Segment("62701", "Springfield"))
	assert.Equal(t, SegmentStandard, d.Segment("10001", "New York"))
	assert.Equal(t, SegmentStandard, MarketDirectory{}.Segment("90210", "Beverly Hills"))

	a, ok := d.Analytics(location.AddressComponents{City: "Beverly Hills"}, pricing.SeasonalFactors{BirdNestingSeason: true})
	require.True(t, ok)
	assert.Equal(t, RiskHigh, a.DemandLevel)
	assert.True(t, a.PeakSeason)

	_, ok = d.Analytics(location.AddressComponents{}, pricing.SeasonalFactors{})
	assert.False(t, ok)
}

func TestLotSizeAcres(t *testing.T) {
	assert.Zero(t, LotSizeAcres(nil))

	// roughly 63.6m x 63.6m, about one acre
	c := orb.Point{-89.65, 39.78}
	n := geo.PointAtBearingAndDistance(c, 0, 63.6)
	ne := geo.PointAtBearingAndDistance(n, 90, 63.6)
	e := geo.PointAtBearingAndDistance(c, 90, 63.6)
	poly := orb.Polygon{orb.Ring{c, e, ne, n, c}}
	assert.InDelta(t, 1.0, LotSizeAcres(poly), 0.02)
}

type fakeElevations struct {
	heights func(i int) float64
	err     error
	calls   int
	n       int
}

func (f *fakeElevations) Elevations(_ context.Context, pts []location.Coordinates) ([]float64, error) {
	f.calls++
	f.n = len(pts)
	if f.err != nil {
		return nil, f.err
	}
	out := make([]float64, len(pts))
	for i := range pts {
		out[i] = f.heights(i)
	}
	return out, nil
}

func TestElevationTerrainEstimator(t *testing.T) {
	c := location.Coordinates{Lat: 39.78, Lng: -89.65}

	flat := &fakeElevations{heights: func(int) float64 { return 180 }}
	d, err := ElevationTerrainEstimator{Source: flat}.EstimateTerrainDifficulty(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, 1, d)
	assert.Equal(t, 9, flat.n, "centre plus eight ring samples")

	// 8m over a 40m radius is a 20% grade: 1 + 20/4
	hill := &fakeElevations{heights: func(i int) float64 {
		if i == 3 {
			return 188
		}
		return 180
	}}
	d, err = ElevationTerrainEstimator{Source: hill}.EstimateTerrainDifficulty(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, 6, d)

	cliff := &fakeElevations{heights: func(i int) float64 { return float64(i) * 50 }}
	d, err = ElevationTerrainEstimator{Source: cliff}.EstimateTerrainDifficulty(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, 10, d)

	_, err = ElevationTerrainEstimator{}.EstimateTerrainDifficulty(context.Background(), c)
	assert.ErrorIs(t, err, ErrNoSignal)

	down := &fakeElevations{err: errors.New("quota")}
	e := &Estimator{Terrain: ElevationTerrainEstimator{Source: down}, Logger: log.New(&bytes.Buffer{}, "", 0)}
	res := e.Estimate(context.Background(), Input{Place: place(), Now: january})
	assert.Equal(t, 5, res.Factors.TerrainDifficulty)
	assert.False(t, res.Factors.Known.Terrain)
}
