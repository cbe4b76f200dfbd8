package gmaps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapGeocodePayloadStatuses(t *testing.T) {
	_, err := MapGeocodePayload([]byte(`{"status":"OVER_QUERY_LIMIT"}`))
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	_, err = MapGeocodePayload([]byte(`{"status":"REQUEST_DENIED","error_message":"bad key"}`))
	assert.ErrorIs(t, err, ErrRequestDenied)
	assert.Contains(t, err.Error(), "bad key")

	_, err = MapGeocodePayload([]byte(`{"status":"OK","results":[]}`))
	assert.ErrorIs(t, err, ErrZeroResults)

	_, err = MapGeocodePayload([]byte(`not json`))
	assert.Error(t, err)
}

func TestMapGeocodePayloadPostalTownFallback(t *testing.T) {
	raw := []byte(`{"status":"OK","results":[{"place_id":"p","address_components":[
		{"long_name":"Reading","short_name":"Reading","types":["postal_town"]}]}]}`)
	places, err := MapGeocodePayload(raw)
	require.NoError(t, err)
	assert.Equal(t, "Reading", places[0].City)
}

func TestVerdictOutcome(t *testing.T) {
	cases := []struct {
		name string
		v    Verdict
		want string
	}{
		{"premise complete", Verdict{ValidationGranularity: "PREMISE", AddressComplete: true}, "VALID"},
		{"sub premise complete", Verdict{ValidationGranularity: "SUB_PREMISE", AddressComplete: true}, "VALID"},
		{"unconfirmed", Verdict{ValidationGranularity: "PREMISE", AddressComplete: true, HasUnconfirmed: true}, "AMBIGUOUS"},
		{"route only", Verdict{ValidationGranularity: "ROUTE"}, "AMBIGUOUS"},
		{"other incomplete", Verdict{ValidationGranularity: "OTHER"}, "INVALID"},
		{"empty", Verdict{}, "INVALID"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.v.Outcome())
		})
	}
}

func TestMapValidationPayloadError(t *testing.T) {
	_, err := MapValidationPayload([]byte(`{"error":{"code":403,"message":"API not enabled","status":"PERMISSION_DENIED"}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PERMISSION_DENIED")
}

func TestMapDistanceMatrixNoRoute(t *testing.T) {
	_, err := MapDistanceMatrixPayload([]byte(`{"status":"OK","rows":[{"elements":[{"status":"ZERO_RESULTS"}]}]}`))
	assert.ErrorIs(t, err, ErrNoRoute)

	_, err = MapDistanceMatrixPayload([]byte(`{"status":"OK","rows":[]}`))
	assert.ErrorIs(t, err, ErrNoRoute)

	_, err = MapDistanceMatrixPayload([]byte(`{"status":"OK","rows":[{"elements":[{"status":"MAX_ROUTE_LENGTH_EXCEEDED"}]}]}`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoRoute)
}
