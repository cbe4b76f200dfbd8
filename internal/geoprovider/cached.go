package geoprovider

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/yourorg/location-quote/internal/cache"
	"github.com/yourorg/location-quote/internal/canon"
	"github.com/yourorg/location-quote/internal/location"
)

const (
	DefaultTTL         = 24 * time.Hour
	DefaultNegativeTTL = 10 * time.Minute
)

// Cached wraps a Provider with a response cache. Keys are the operation, the
// normalised input and the UTC day, so an entry never outlives the day it was
// fetched on even when TTL is longer. Lookups that found nothing are
// remembered under geo:miss: for NegativeTTL. Cache failures are logged and
// the call goes to the provider.
type Cached struct {
	Next        Provider
	Cache       cache.Cache
	TTL         time.Duration
	NegativeTTL time.Duration
	Now         func() time.Time
	Logger      *log.Logger
}

func NewCached(next Provider, c cache.Cache) *Cached {
	return &Cached{Next: next, Cache: c, TTL: DefaultTTL, NegativeTTL: DefaultNegativeTTL}
}

type envelope struct {
	Data      json.RawMessage `json:"data"`
	LastFetch time.Time       `json:"last_fetch_at"`
}

// miss codes stored under negative keys
var missCodes = map[string]error{
	"not_found": location.ErrAddressNotFound,
	"invalid":   location.ErrAddressInvalid,
	"no_result": location.ErrNoResultAtCoordinates,
	"no_route":  location.ErrRouteUnavailable,
}

func (c *Cached) ResolveAddress(ctx context.Context, text string) (location.ResolvedPlace, error) {
	return through(ctx, c, c.key("addr", canon.FreeText(text)), func() (location.ResolvedPlace, error) {
		return c.Next.ResolveAddress(ctx, text)
	})
}

func (c *Cached) ReverseGeocode(ctx context.Context, p location.Coordinates) (location.ResolvedPlace, error) {
	if err := p.Validate(); err != nil {
		return location.ResolvedPlace{}, err
	}
	return through(ctx, c, c.key("rev", canon.CoordKey(p.Lat, p.Lng)), func() (location.ResolvedPlace, error) {
		return c.Next.ReverseGeocode(ctx, p)
	})
}

func (c *Cached) TravelMetrics(ctx context.Context, origin location.Coordinates, dest location.Destination) (location.TravelMetrics, error) {
	to := "place_id:" + dest.PlaceID
	if dest.PlaceID == "" && dest.Coordinates != nil {
		to = canon.CoordKey(dest.Coordinates.Lat, dest.Coordinates.Lng)
	}
	key := c.key("route", canon.CoordKey(origin.Lat, origin.Lng)+"|"+to)
	return through(ctx, c, key, func() (location.TravelMetrics, error) {
		return c.Next.TravelMetrics(ctx, origin, dest)
	})
}

func (c *Cached) key(kind, norm string) string {
	return kind + ":" + c.now().UTC().Format("20060102") + ":" + norm
}

func (c *Cached) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Cached) logf(format string, args ...any) {
	if c.Logger != nil {
		c.Logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}

// through serves key from cache, or calls fetch and stores the result.
func through[T any](ctx context.Context, c *Cached, key string, fetch func() (T, error)) (T, error) {
	var zero T
	if c.Cache == nil {
		return fetch()
	}
	missKey := "geo:miss:" + key
	cacheKey := "geo:" + key

	if code, ok, err := c.Cache.Get(ctx, missKey); err != nil {
		c.logf("[WARN] cache get %s: %v", missKey, err)
	} else if ok {
		if sentinel, known := missCodes[string(code)]; known {
			return zero, sentinel
		}
	}

	if b, ok, err := c.Cache.Get(ctx, cacheKey); err != nil {
		c.logf("[WARN] cache get %s: %v", cacheKey, err)
	} else if ok {
		var env envelope
		var out T
		if err := json.Unmarshal(b, &env); err == nil {
			if err := json.Unmarshal(env.Data, &out); err == nil {
				return out, nil
			}
		}
		c.logf("[WARN] cache entry %s unreadable, refetching", cacheKey)
	}

	v, err := fetch()
	if err != nil {
		if code := missCode(err); code != "" {
			if serr := c.Cache.Set(ctx, missKey, []byte(code), c.negativeTTL()); serr != nil {
				c.logf("[WARN] cache set %s: %v", missKey, serr)
			}
		}
		return zero, err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return v, nil
	}
	b, _ := json.Marshal(envelope{Data: data, LastFetch: c.now().UTC()})
	if serr := c.Cache.Set(ctx, cacheKey, b, c.ttl()); serr != nil {
		c.logf("[WARN] cache set %s: %v", cacheKey, serr)
	}
	return v, nil
}

func (c *Cached) ttl() time.Duration {
	if c.TTL > 0 {
		return c.TTL
	}
	return DefaultTTL
}

func (c *Cached) negativeTTL() time.Duration {
	if c.NegativeTTL > 0 {
		return c.NegativeTTL
	}
	return DefaultNegativeTTL
}

func missCode(err error) string {
	for code, sentinel := range missCodes {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return ""
}
