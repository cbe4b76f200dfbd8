package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"

	httpv1 "github.com/yourorg/location-quote/http/v1"
)

type RouterConfig struct {
	RateLimitPerMin int
	RequestTimeout  time.Duration
}

func BuildRouter(cfg RouterConfig, deps httpv1.Deps) http.Handler {
	if cfg.RateLimitPerMin <= 0 {
		cfg.RateLimitPerMin = 120
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 15 * time.Second
	}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(httprate.LimitByIP(cfg.RateLimitPerMin, 1*time.Minute)) // protect upstream quota
	r.Use(requestTimeout(cfg.RequestTimeout))
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]any{"ok": true, "serviceRadiusKm": deps.Quotes.Policy().RadiusKm()})
	})

	httpv1.RegisterLocations(r, deps)
	httpv1.RegisterQuotes(r, deps)
	return r
}

// requestTimeout bounds the provider calls made for one request. Handlers map
// the expired deadline to 504 themselves.
func requestTimeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
