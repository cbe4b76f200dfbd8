package geoprovider

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/yourorg/location-quote/gmaps"
	"github.com/yourorg/location-quote/internal/location"
)

// Google is the Maps Platform backed Provider. It also serves elevations for
// terrain estimation.
type Google struct {
	Client *gmaps.Client
	// SkipValidation turns off the Address Validation call; every address is
	// then reported unverified.
	SkipValidation bool
	Logger         *log.Logger
}

func NewGoogle(c *gmaps.Client) *Google { return &Google{Client: c} }

func (g *Google) logf(format string, args ...any) {
	if g.Logger != nil {
		g.Logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}

func (g *Google) ResolveAddress(ctx context.Context, text string) (location.ResolvedPlace, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return location.ResolvedPlace{}, fmt.Errorf("%w: empty address", location.ErrAddressInvalid)
	}
	raw, err := g.Client.Geocode(ctx, text)
	if err != nil {
		return location.ResolvedPlace{}, mapErr(ctx, err, location.ErrAddressNotFound)
	}
	places, err := gmaps.MapGeocodePayload(raw)
	if err != nil {
		return location.ResolvedPlace{}, mapErr(ctx, err, location.ErrAddressNotFound)
	}
	rp := toResolved(places[0])
	if g.SkipValidation {
		return rp, nil
	}

	verdict, err := g.validate(ctx, text)
	if err != nil {
		if ctx.Err() != nil {
			return location.ResolvedPlace{}, mapErr(ctx, err, location.ErrAddressNotFound)
		}
		g.logf("[WARN] address validation unavailable for %q: %v", text, err)
		return rp, nil
	}
	switch verdict.Outcome() {
	case "INVALID":
		return location.ResolvedPlace{}, fmt.Errorf("%w: %q could not be validated", location.ErrAddressInvalid, text)
	case "VALID":
		rp.Verdict = location.VerdictValid
		rp.Verified = true
	default:
		rp.Verdict = location.VerdictAmbiguous
	}
	return rp, nil
}

func (g *Google) validate(ctx context.Context, text string) (gmaps.Verdict, error) {
	raw, err := g.Client.ValidateAddress(ctx, text)
	if err != nil {
		return gmaps.Verdict{}, err
	}
	return gmaps.MapValidationPayload(raw)
}

func (g *Google) ReverseGeocode(ctx context.Context, c location.Coordinates) (location.ResolvedPlace, error) {
	if err := c.Validate(); err != nil {
		return location.ResolvedPlace{}, err
	}
	raw, err := g.Client.ReverseGeocode(ctx, c.Lat, c.Lng)
	if err != nil {
		return location.ResolvedPlace{}, mapErr(ctx, err, location.ErrNoResultAtCoordinates)
	}
	places, err := gmaps.MapGeocodePayload(raw)
	if err != nil {
		return location.ResolvedPlace{}, mapErr(ctx, err, location.ErrNoResultAtCoordinates)
	}
	return toResolved(places[0]), nil
}

func (g *Google) TravelMetrics(ctx context.Context, origin location.Coordinates, dest location.Destination) (location.TravelMetrics, error) {
	if err := origin.Validate(); err != nil {
		return location.TravelMetrics{}, err
	}
	if dest.PlaceID == "" {
		if dest.Coordinates == nil {
			return location.TravelMetrics{}, fmt.Errorf("%w: no destination", location.ErrInvalidCoordinates)
		}
		if err := dest.Coordinates.Validate(); err != nil {
			return location.TravelMetrics{}, err
		}
	}
	o := location.Destination{Coordinates: &origin}
	raw, err := g.Client.DistanceMatrix(ctx, o.String(), dest.String())
	if err != nil {
		return location.TravelMetrics{}, mapErr(ctx, err, location.ErrRouteUnavailable)
	}
	r, err := gmaps.MapDistanceMatrixPayload(raw)
	if err != nil {
		return location.TravelMetrics{}, mapErr(ctx, err, location.ErrRouteUnavailable)
	}
	return location.TravelMetrics{Meters: float64(r.Meters), DurationSeconds: float64(r.DurationSeconds)}, nil
}

// Elevations returns metres above sea level for each point, in input order.
func (g *Google) Elevations(ctx context.Context, pts []location.Coordinates) ([]float64, error) {
	in := make([][2]float64, 0, len(pts))
	for _, p := range pts {
		in = append(in, [2]float64{p.Lat, p.Lng})
	}
	raw, err := g.Client.Elevations(ctx, in)
	if err != nil {
		return nil, mapErr(ctx, err, location.ErrNoResultAtCoordinates)
	}
	samples, err := gmaps.MapElevationPayload(raw)
	if err != nil {
		return nil, mapErr(ctx, err, location.ErrNoResultAtCoordinates)
	}
	out := make([]float64, 0, len(samples))
	for _, s := range samples {
		out = append(out, s.Elevation)
	}
	return out, nil
}

func toResolved(p gmaps.Place) location.ResolvedPlace {
	street := strings.TrimSpace(p.StreetNumber + " " + p.Route)
	return location.ResolvedPlace{
		PlaceID:          p.PlaceID,
		FormattedAddress: p.FormattedAddress,
		Coordinates:      location.Coordinates{Lat: p.Lat, Lng: p.Lng},
		Components: location.AddressComponents{
			Street:     street,
			City:       p.City,
			State:      p.State,
			PostalCode: p.PostalCode,
			County:     p.County,
			Country:    p.Country,
		},
		Types:        p.Types,
		LocationType: p.LocationType,
		PartialMatch: p.PartialMatch,
		Verdict:      location.VerdictUnknown,
	}
}
