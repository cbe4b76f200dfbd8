package geoprovider

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/location-quote/internal/cache"
	"github.com/yourorg/location-quote/internal/location"
)

type countingProvider struct {
	place   location.ResolvedPlace
	metrics location.TravelMetrics
	err     error

	resolves, reverses, routes int
}

func (p *countingProvider) ResolveAddress(context.Context, string) (location.ResolvedPlace, error) {
	p.resolves++
	return p.place, p.err
}

func (p *countingProvider) ReverseGeocode(context.Context, location.Coordinates) (location.ResolvedPlace, error) {
	p.reverses++
	return p.place, p.err
}

func (p *countingProvider) TravelMetrics(context.Context, location.Coordinates, location.Destination) (location.TravelMetrics, error) {
	p.routes++
	return p.metrics, p.err
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("connection refused")
}

func (brokenCache) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("connection refused")
}

func samplePlace() location.ResolvedPlace {
	return location.ResolvedPlace{
		PlaceID:          "ChIJoak",
		FormattedAddress: "123 Oak St, Portland, OR 97201, USA",
		Coordinates:      location.Coordinates{Lat: 45.51, Lng: -122.68},
		Components:       location.AddressComponents{Street: "123 Oak Street", City: "Portland", State: "OR", PostalCode: "97201"},
		Types:            []string{"street_address"},
		LocationType:     "ROOFTOP",
		Verified:         true,
		Verdict:          location.VerdictValid,
	}
}

func newCached(next Provider, c cache.Cache, now *time.Time) *Cached {
	cp := NewCached(next, c)
	cp.Now = func() time.Time { return *now }
	cp.Logger = log.New(&bytes.Buffer{}, "", 0)
	return cp
}

func TestCachedResolveHitIsValueEqual(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	next := &countingProvider{place: samplePlace()}
	mem := cache.NewMemory().WithClock(func() time.Time { return now })
	cp := newCached(next, mem, &now)
	ctx := context.Background()

	first, err := cp.ResolveAddress(ctx, "123 Oak Street, Portland")
	require.NoError(t, err)
	second, err := cp.ResolveAddress(ctx, "123  oak st portland")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, samplePlace(), second)
	assert.Equal(t, 1, next.resolves)
}

func TestCachedKeysRollOverAtUTCDay(t *testing.T) {
	now := time.Date(2026, 3, 2, 23, 59, 0, 0, time.UTC)
	next := &countingProvider{place: samplePlace()}
	mem := cache.NewMemory().WithClock(func() time.Time { return now })
	cp := newCached(next, mem, &now)
	ctx := context.Background()

	_, err := cp.ResolveAddress(ctx, "123 Oak St")
	require.NoError(t, err)
	now = now.Add(2 * time.Minute)
	_, err = cp.ResolveAddress(ctx, "123 Oak St")
	require.NoError(t, err)
	assert.Equal(t, 2, next.resolves)
}

func TestCachedNegativeEntry(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	next := &countingProvider{err: location.ErrAddressNotFound}
	mem := cache.NewMemory().WithClock(func() time.Time { return now })
	cp := newCached(next, mem, &now)
	ctx := context.Background()

	_, err := cp.ResolveAddress(ctx, "nowhere")
	assert.ErrorIs(t, err, location.ErrAddressNotFound)
	_, err = cp.ResolveAddress(ctx, "nowhere")
	assert.ErrorIs(t, err, location.ErrAddressNotFound)
	assert.Equal(t, 1, next.resolves)

	now = now.Add(DefaultNegativeTTL)
	_, _ = cp.ResolveAddress(ctx, "nowhere")
	assert.Equal(t, 2, next.resolves)
}

func TestCachedDoesNotRememberTransientErrors(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	next := &countingProvider{err: location.ErrProviderTimeout}
	cp := newCached(next, cache.NewMemory(), &now)
	ctx := context.Background()

	_, err := cp.ReverseGeocode(ctx, location.Coordinates{Lat: 1, Lng: 1})
	assert.ErrorIs(t, err, location.ErrProviderTimeout)
	_, _ = cp.ReverseGeocode(ctx, location.Coordinates{Lat: 1, Lng: 1})
	assert.Equal(t, 2, next.reverses)
}

func TestCachedTravelMetricsByPlaceAndCoords(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	next := &countingProvider{metrics: location.TravelMetrics{Meters: 45000, DurationSeconds: 1800}}
	cp := newCached(next, cache.NewMemory(), &now)
	ctx := context.Background()
	base := location.Coordinates{Lat: 45.5, Lng: -122.6}

	for i := 0; i < 2; i++ {
		tm, err := cp.TravelMetrics(ctx, base, location.Destination{PlaceID: "ChIJoak"})
		require.NoError(t, err)
		assert.Equal(t, next.metrics, tm)
	}
	_, err := cp.TravelMetrics(ctx, base, location.Destination{Coordinates: &location.Coordinates{Lat: 45.51, Lng: -122.68}})
	require.NoError(t, err)
	assert.Equal(t, 2, next.routes)
}

func TestCachedBypassesBrokenCache(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	next := &countingProvider{place: samplePlace()}
	var buf bytes.Buffer
	cp := newCached(next, brokenCache{}, &now)
	cp.Logger = log.New(&buf, "", 0)

	rp, err := cp.ResolveAddress(context.Background(), "123 Oak St")
	require.NoError(t, err)
	assert.Equal(t, samplePlace(), rp)
	assert.Contains(t, buf.String(), "[WARN] cache get")
	assert.Contains(t, buf.String(), "[WARN] cache set")
}

func TestCachedRejectsBadCoordinatesWithoutCalling(t *testing.T) {
	now := time.Now()
	next := &countingProvider{}
	cp := newCached(next, cache.Noop{}, &now)
	_, err := cp.ReverseGeocode(context.Background(), location.Coordinates{Lat: 100})
	assert.ErrorIs(t, err, location.ErrInvalidCoordinates)
	assert.Zero(t, next.reverses)
}
