package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/location-quote/internal/features"
	"github.com/yourorg/location-quote/internal/pricing"
	"github.com/yourorg/location-quote/internal/servicearea"
)

func TestRatesRoundTripThroughApply(t *testing.T) {
	pc := pricing.DefaultConfig()
	pc.HourlyRate = 410
	pc.BasePricePerAcre[pricing.Industrial] = 3500
	o := servicearea.DefaultOutside()
	o.SurchargePercent = 33

	p := Policy{Rates: RatesFrom(pc, o)}
	p.Rates["per_acre.castle"] = 1
	p.Rates["unknown"] = 9

	gotPC, gotO := p.Apply(pricing.DefaultConfig(), servicearea.DefaultOutside())
	assert.Equal(t, pc, gotPC)
	assert.Equal(t, o, gotO)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	base := pricing.DefaultConfig()
	p := Policy{Rates: map[string]float64{"per_acre.residential": 3000}}
	got, _ := p.Apply(base, servicearea.DefaultOutside())
	assert.Equal(t, 3000.0, got.BasePricePerAcre[pricing.Residential])
	assert.Equal(t, 2800.0, base.BasePricePerAcre[pricing.Residential])
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("PG_DSN")
	if dsn == "" {
		t.Skip("PG_DSN not set")
	}
	st, err := Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, st.Ping(ctx))
	require.NoError(t, st.Migrate(ctx))
	return st
}

func TestPolicyRoundTripPostgres(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.ReplaceZones(ctx, servicearea.DefaultZones()))
	markets := features.MarketDirectory{
		PremiumPostalCodes:  []string{"97201"},
		PremiumCityKeywords: []string{"Lake Oswego"},
		BudgetPostalCodes:   []string{"97030"},
	}
	require.NoError(t, st.ReplaceMarkets(ctx, markets))
	rates := RatesFrom(pricing.DefaultConfig(), servicearea.DefaultOutside())
	require.NoError(t, st.UpsertRates(ctx, rates))

	p, err := st.LoadPolicy(ctx)
	require.NoError(t, err)
	assert.Equal(t, servicearea.DefaultZones(), p.Zones)
	assert.Equal(t, markets, p.Markets)
	assert.Equal(t, rates, p.Rates)
}

func TestReplaceZonesRejectsGapsBeforeWriting(t *testing.T) {
	st := &Store{}
	err := st.ReplaceZones(context.Background(), []servicearea.Zone{
		{MinDistanceKm: 0, MaxDistanceKm: 30},
		{MinDistanceKm: 40, MaxDistanceKm: 60},
	})
	assert.ErrorIs(t, err, servicearea.ErrInvalidZones)
}
