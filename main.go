package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/yourorg/location-quote/gmaps"
	httpv1 "github.com/yourorg/location-quote/http/v1"
	"github.com/yourorg/location-quote/internal/audit"
	"github.com/yourorg/location-quote/internal/cache"
	"github.com/yourorg/location-quote/internal/config"
	"github.com/yourorg/location-quote/internal/events"
	"github.com/yourorg/location-quote/internal/features"
	"github.com/yourorg/location-quote/internal/geoprovider"
	"github.com/yourorg/location-quote/internal/logger"
	"github.com/yourorg/location-quote/internal/pricing"
	"github.com/yourorg/location-quote/internal/quote"
	"github.com/yourorg/location-quote/internal/redisx"
	"github.com/yourorg/location-quote/internal/servicearea"
	"github.com/yourorg/location-quote/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("[INFO] no .env file loaded: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mapsClient := gmaps.NewClientWithOptions(cfg.Maps.APIKey, gmaps.Options{
		BaseURL:        cfg.Maps.BaseURL,
		ValidationURL:  cfg.Maps.ValidationURL,
		Timeout:        cfg.Maps.Timeout,
		RetryMax:       cfg.Maps.RetryMax,
		RequestsPerSec: cfg.Maps.RequestsPerSec,
	})
	google := geoprovider.NewGoogle(mapsClient)
	google.SkipValidation = cfg.Maps.SkipValidation

	respCache, closeCache := openCache(rootCtx, cfg.Cache)
	defer closeCache()
	geo := geoprovider.NewCached(google, respCache)
	geo.TTL = cfg.Cache.TTL
	geo.NegativeTTL = cfg.Cache.NegativeTTL

	pricingRules := cfg.PricingRules()
	zones := servicearea.DefaultZones()
	outside := cfg.Outside()
	markets := cfg.MarketDirectory()
	if cfg.PostgresDSN != "" {
		zones, markets, pricingRules, outside = loadStoredPolicy(rootCtx, cfg.PostgresDSN, zones, markets, pricingRules, outside)
	}
	area, err := servicearea.NewPolicy(zones, outside)
	if err != nil {
		log.Fatalf("service area: %v", err)
	}

	seasons, _ := cfg.SeasonCalendar() // validated by config.Load
	estimator := &features.Estimator{
		PropertyTypes:     features.DefaultPropertyTypes(),
		Seasons:           seasons,
		Markets:           markets,
		RemoteThresholdKm: cfg.ServiceArea.RemoteThresholdKm,
	}
	if cfg.Maps.ElevationTerrain {
		estimator.Terrain = features.ElevationTerrainEstimator{Source: google}
	}

	pub := events.NewInMemory(256)
	go (&audit.Logger{Pub: pub}).Run(rootCtx)

	svc, err := quote.NewService(quote.Deps{
		Geo:            geo,
		Features:       estimator,
		Pricing:        pricingRules,
		Area:           area,
		Base:           cfg.Base,
		ReferenceAcres: cfg.Pricing.ReferenceAcres,
		Events:         pub,
	})
	if err != nil {
		log.Fatalf("quote service: %v", err)
	}

	router := BuildRouter(RouterConfig{
		RateLimitPerMin: cfg.Server.RateLimitPerMin,
		RequestTimeout:  cfg.Server.RequestTimeout,
	}, httpv1.Deps{Quotes: svc})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      logger.Middleware(router),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		log.Printf("[INFO] location-quote listening on %s (cache=%s, radius=%.0fkm)", srv.Addr, cfg.Cache.Backend, area.RadiusKm())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-rootCtx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[WARN] shutdown: %v", err)
	}
}

func openCache(ctx context.Context, c config.CacheConfig) (cache.Cache, func()) {
	switch c.Backend {
	case "redis":
		rc := redisx.New(c.RedisAddr, c.RedisPassword, c.RedisDB)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := rc.Ping(pingCtx); err != nil {
			log.Printf("[WARN] redis ping %s: %v (continuing, cache errors are bypassed)", c.RedisAddr, err)
		}
		return cache.NewRedis(rc, c.Prefix), func() { _ = rc.Close() }
	case "none":
		return cache.Noop{}, func() {}
	default:
		return cache.NewMemory(), func() {}
	}
}

// loadStoredPolicy overlays the policy tables on the configured defaults. Any
// failure keeps the defaults.
func loadStoredPolicy(ctx context.Context, dsn string, zones []servicearea.Zone, markets features.MarketDirectory, rules pricing.Config, outside servicearea.Outside) ([]servicearea.Zone, features.MarketDirectory, pricing.Config, servicearea.Outside) {
	st, err := store.Open(dsn)
	if err != nil {
		log.Printf("[WARN] policy store open: %v", err)
		return zones, markets, rules, outside
	}
	defer st.Close()

	loadCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	p, err := st.LoadPolicy(loadCtx)
	if err != nil {
		log.Printf("[WARN] policy store load: %v (using configured policy)", err)
		return zones, markets, rules, outside
	}
	return overlayPolicy(p, zones, markets, rules, outside)
}

// overlayPolicy applies a stored policy, keeping the configured one when the
// stored zones do not form a valid service area.
func overlayPolicy(p store.Policy, zones []servicearea.Zone, markets features.MarketDirectory, rules pricing.Config, outside servicearea.Outside) ([]servicearea.Zone, features.MarketDirectory, pricing.Config, servicearea.Outside) {
	storedRules, storedOutside := p.Apply(rules, outside)
	if _, err := servicearea.NewPolicy(p.Zones, storedOutside); err != nil {
		log.Printf("[WARN] stored pricing policy rejected: %v (using configured policy)", err)
		return zones, markets, rules, outside
	}
	if len(p.Markets.PremiumPostalCodes)+len(p.Markets.PremiumCityKeywords)+len(p.Markets.BudgetPostalCodes) > 0 {
		markets = p.Markets
	}
	log.Printf("[INFO] loaded pricing policy: %d zones, %d rates", len(p.Zones), len(p.Rates))
	return p.Zones, markets, storedRules, storedOutside
}
