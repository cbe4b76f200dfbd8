package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/location-quote/internal/features"
	"github.com/yourorg/location-quote/internal/pricing"
)

func setRequired(t *testing.T) {
	t.Setenv("MAPS_API_KEY", "k")
	t.Setenv("BASE_LAT", "45.5")
	t.Setenv("BASE_LNG", "-122.6")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, "memory", c.Cache.Backend)
	assert.Equal(t, 24*time.Hour, c.Cache.TTL)
	assert.Equal(t, 10*time.Minute, c.Cache.NegativeTTL)
	assert.Equal(t, 1, c.Maps.RetryMax)
	assert.Equal(t, 45.5, c.Base.Lat)

	assert.Equal(t, pricing.DefaultConfig(), c.PricingRules())
	cal, err := c.SeasonCalendar()
	require.NoError(t, err)
	assert.Equal(t, features.DefaultSeasonCalendar(), cal)
	assert.Equal(t, 30.0, c.Outside().SurchargePercent)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PRICING_HOURLY_RATE", "400")
	t.Setenv("PRICING_ACCESSIBILITY_BASELINE", "10")
	t.Setenv("SEASON_WETLAND_MONTHS", "11-2")
	t.Setenv("MARKET_PREMIUM_POSTAL_CODES", "97201, 97210")
	t.Setenv("SERVICE_AREA_OUTSIDE_PERCENT", "35")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 400.0, c.PricingRules().HourlyRate)
	assert.Equal(t, 10, c.PricingRules().AccessibilityBaseline)
	cal, _ := c.SeasonCalendar()
	assert.True(t, cal.Wetland.Contains(time.January))
	assert.Equal(t, []string{"97201", "97210"}, c.MarketDirectory().PremiumPostalCodes)
	assert.Equal(t, 35.0, c.Outside().SurchargePercent)
}

func TestLoadReportsEveryProblem(t *testing.T) {
	t.Setenv("MAPS_API_KEY", "")
	t.Setenv("BASE_LAT", "95")
	t.Setenv("CACHE_BACKEND", "memcached")
	t.Setenv("SEASON_FIRE_RISK", "extreme")

	_, err := Load()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "MAPS_API_KEY")
	assert.Contains(t, msg, "BASE_LAT")
	assert.Contains(t, msg, "CACHE_BACKEND")
	assert.Contains(t, msg, "SEASON_FIRE_RISK")
}
