// Package geoprovider resolves addresses and coordinates into places and
// computes driving metrics, hiding the maps vendor behind Provider.
package geoprovider

import (
	"context"
	"errors"
	"net"

	"github.com/yourorg/location-quote/gmaps"
	"github.com/yourorg/location-quote/internal/location"
)

// Provider calls are idempotent and safe to cache for a day.
type Provider interface {
	ResolveAddress(ctx context.Context, text string) (location.ResolvedPlace, error)
	ReverseGeocode(ctx context.Context, c location.Coordinates) (location.ResolvedPlace, error)
	TravelMetrics(ctx context.Context, origin location.Coordinates, dest location.Destination) (location.TravelMetrics, error)
}

// mapErr translates transport and vendor errors into the location taxonomy.
// notFound is what an empty result means for the calling operation.
func mapErr(ctx context.Context, err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gmaps.ErrZeroResults):
		return notFound
	case errors.Is(err, gmaps.ErrNoRoute):
		return location.ErrRouteUnavailable
	case isTimeout(ctx, err):
		return errors.Join(location.ErrProviderTimeout, err)
	}
	return err
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
