package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/location-quote/internal/servicearea"
)

func TestParseZones(t *testing.T) {
	zones, err := parseZones("0-30:0:Primary Service Area - Core; 30-60:5:Primary Service Area - Standard;")
	require.NoError(t, err)
	assert.Equal(t, []servicearea.Zone{
		{MinDistanceKm: 0, MaxDistanceKm: 30, SurchargePercent: 0, Description: "Primary Service Area - Core"},
		{MinDistanceKm: 30, MaxDistanceKm: 60, SurchargePercent: 5, Description: "Primary Service Area - Standard"},
	}, zones)

	for _, bad := range []string{"0-30", "0:1:x", "a-b:1:x", "10-30:0:gap", ""} {
		_, err := parseZones(bad)
		assert.Error(t, err, bad)
	}
}
