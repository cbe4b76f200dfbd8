// Package location holds the value types shared by the geo provider adapter and
// the quoting pipeline, plus the provider error taxonomy.
package location

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

var (
	ErrAddressNotFound       = errors.New("address not found")
	ErrAddressInvalid        = errors.New("address invalid")
	ErrNoResultAtCoordinates = errors.New("no address at coordinates")
	ErrRouteUnavailable      = errors.New("no driving route available")
	ErrProviderTimeout       = errors.New("geo provider timed out")
	ErrInvalidCoordinates    = errors.New("invalid coordinates")
)

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (c Coordinates) Validate() error {
	if !finite(c.Lat) || !finite(c.Lng) || c.Lat < -90 || c.Lat > 90 || c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("%w: lat=%f lng=%f", ErrInvalidCoordinates, c.Lat, c.Lng)
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Point returns the coordinates in orb's [lng, lat] order.
func (c Coordinates) Point() orb.Point { return orb.Point{c.Lng, c.Lat} }

func FromPoint(p orb.Point) Coordinates { return Coordinates{Lat: p.Lat(), Lng: p.Lon()} }

type AddressComponents struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	County     string `json:"county,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Verdict is the address validation outcome reported by the provider.
type Verdict string

const (
	VerdictValid     Verdict = "VALID"
	VerdictAmbiguous Verdict = "AMBIGUOUS"
	VerdictInvalid   Verdict = "INVALID"
	VerdictUnknown   Verdict = "UNKNOWN"
)

type ResolvedPlace struct {
	PlaceID          string            `json:"placeId"`
	FormattedAddress string            `json:"address"`
	Coordinates      Coordinates       `json:"coordinates"`
	Components       AddressComponents `json:"components"`
	Types            []string          `json:"types,omitempty"`
	LocationType     string            `json:"locationType,omitempty"`
	PartialMatch     bool              `json:"partialMatch,omitempty"`
	Verified         bool              `json:"verified"`
	Verdict          Verdict           `json:"verdict"`
}

type TravelMetrics struct {
	Meters          float64 `json:"meters"`
	DurationSeconds float64 `json:"durationSeconds"`
}

func (t TravelMetrics) Kilometers() float64 { return t.Meters / 1000 }

// Destination is either a coordinate pair or a provider place id. PlaceID wins
// when both are set.
type Destination struct {
	Coordinates *Coordinates
	PlaceID     string
}

func (d Destination) String() string {
	if d.PlaceID != "" {
		return "place_id:" + d.PlaceID
	}
	if d.Coordinates != nil {
		return fmt.Sprintf("%.6f,%.6f", d.Coordinates.Lat, d.Coordinates.Lng)
	}
	return ""
}
