package v1

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/yourorg/location-quote/internal/quote"
)

type QuoteBody struct {
	Address string      `json:"address,omitempty"`
	Pin     *PinRequest `json:"pin,omitempty"`
	Acres   float64     `json:"acres"`
}

func RegisterQuotes(r chi.Router, d Deps) {
	r.Route("/v1/quotes", func(r chi.Router) {
		r.Post("/", func(w http.ResponseWriter, req *http.Request) {
			var body QuoteBody
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
				badRequest(w, req, "invalid_json", err.Error())
				return
			}
			handleQuote(w, req, d, body)
		})
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			q := req.URL.Query()
			body := QuoteBody{Address: q.Get("address")}
			if v := q.Get("acres"); v != "" {
				f, err := strconv.ParseFloat(v, 64)
				if err != nil {
					badRequest(w, req, "invalid_acres", err.Error())
					return
				}
				body.Acres = f
			}
			if lat, lng := q.Get("lat"), q.Get("lng"); lat != "" && lng != "" {
				la, err1 := strconv.ParseFloat(lat, 64)
				ln, err2 := strconv.ParseFloat(lng, 64)
				if err1 != nil || err2 != nil {
					badRequest(w, req, "invalid_coordinates", "lat and lng must be numbers")
					return
				}
				body.Pin = &PinRequest{Lat: &la, Lng: &ln, Address: body.Address}
			}
			handleQuote(w, req, d, body)
		})
	})
}

func handleQuote(w http.ResponseWriter, req *http.Request, d Deps, body QuoteBody) {
	qr := quote.QuoteRequest{Address: body.Address, ProjectAcres: body.Acres}
	if body.Pin != nil {
		pin, ok := body.Pin.toPinDrop()
		if !ok {
			badRequest(w, req, "coordinates_required", "pin needs lat and lng")
			return
		}
		qr.Pin = &pin
	}
	if qr.Pin == nil && qr.Address == "" {
		badRequest(w, req, "location_required", "address or pin is required")
		return
	}
	q, err := d.Quotes.Quote(req.Context(), qr)
	if err != nil {
		writeError(w, req, err)
		return
	}
	render.JSON(w, req, map[string]any{"ok": true, "quote": q})
}
