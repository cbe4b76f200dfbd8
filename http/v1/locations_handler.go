package v1

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/paulmach/orb"

	"github.com/yourorg/location-quote/internal/location"
	"github.com/yourorg/location-quote/internal/quote"
)

type Deps struct {
	Quotes *quote.Service
}

type VerifyRequest struct {
	Address string `json:"address"`
}

// Bounds is a map viewport or lot rectangle in degrees.
type Bounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

func (b *Bounds) polygon() orb.Polygon {
	if b == nil || b.North <= b.South || b.East <= b.West {
		return nil
	}
	bound := orb.Bound{Min: orb.Point{b.West, b.South}, Max: orb.Point{b.East, b.North}}
	return bound.ToPolygon()
}

type PinRequest struct {
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
	Address string   `json:"address,omitempty"`
	Bounds  *Bounds  `json:"bounds,omitempty"`
}

func (p PinRequest) toPinDrop() (quote.PinDrop, bool) {
	if p.Lat == nil || p.Lng == nil {
		return quote.PinDrop{}, false
	}
	return quote.PinDrop{
		Coordinates: location.Coordinates{Lat: *p.Lat, Lng: *p.Lng},
		Address:     p.Address,
		Bounds:      p.Bounds.polygon(),
	}, true
}

func RegisterLocations(r chi.Router, d Deps) {
	r.Route("/v1/locations", func(r chi.Router) {
		r.Post("/verify", func(w http.ResponseWriter, req *http.Request) {
			var body VerifyRequest
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
				badRequest(w, req, "invalid_json", err.Error())
				return
			}
			if body.Address == "" {
				badRequest(w, req, "address_required", "address is required")
				return
			}
			loc, err := d.Quotes.VerifyPropertyLocation(req.Context(), body.Address)
			if err != nil {
				writeError(w, req, err)
				return
			}
			render.JSON(w, req, map[string]any{"ok": true, "location": loc})
		})
		r.Post("/pin", func(w http.ResponseWriter, req *http.Request) {
			var body PinRequest
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
				badRequest(w, req, "invalid_json", err.Error())
				return
			}
			pin, ok := body.toPinDrop()
			if !ok {
				badRequest(w, req, "coordinates_required", "lat and lng are required")
				return
			}
			loc, err := d.Quotes.ProcessPinDropLocation(req.Context(), pin)
			if err != nil {
				writeError(w, req, err)
				return
			}
			render.JSON(w, req, map[string]any{"ok": true, "location": loc})
		})
	})
}
