package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/yourorg/location-quote/internal/config"
	"github.com/yourorg/location-quote/internal/env"
	"github.com/yourorg/location-quote/internal/servicearea"
	"github.com/yourorg/location-quote/internal/store"
)

// policy-seed creates the pricing policy tables and writes zones, market lists
// and rates from the environment (or the built-in defaults).
func main() {
	_ = godotenv.Load()
	dsn := env.Must("PG_DSN")

	// Only the pricing, service area and market settings matter here, so the
	// maps settings config.Load insists on are not required.
	cfg, _ := config.Load()
	rules := cfg.PricingRules()
	if err := rules.Validate(); err != nil {
		log.Fatalf("pricing config: %v", err)
	}

	zones := servicearea.DefaultZones()
	if v := os.Getenv("POLICY_ZONES"); v != "" {
		var err error
		if zones, err = parseZones(v); err != nil {
			log.Fatalf("POLICY_ZONES: %v", err)
		}
	}

	st, err := store.Open(dsn)
	if err != nil {
		log.Fatalf("store open error: %v", err)
	}
	defer st.DB.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := st.Ping(ctx); err != nil {
		log.Fatalf("postgres ping error: %v", err)
	}
	if err := st.Migrate(ctx); err != nil {
		log.Fatalf("postgres migrate error: %v", err)
	}
	if err := st.ReplaceZones(ctx, zones); err != nil {
		log.Fatalf("write zones: %v", err)
	}
	if !env.GetBool("POLICY_KEEP_MARKETS", false) {
		if err := st.ReplaceMarkets(ctx, cfg.MarketDirectory()); err != nil {
			log.Fatalf("write markets: %v", err)
		}
	}
	rates := store.RatesFrom(rules, cfg.Outside())
	if err := st.UpsertRates(ctx, rates); err != nil {
		log.Fatalf("write rates: %v", err)
	}
	log.Printf("[INFO] policy seeded: %d zones, %d rates", len(zones), len(rates))
}

// parseZones reads "0-30:0:Core;30-60:5:Standard" (km range, surcharge percent,
// description).
func parseZones(v string) ([]servicearea.Zone, error) {
	var zones []servicearea.Zone
	for _, item := range strings.Split(v, ";") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		parts := strings.SplitN(item, ":", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("zone %q: want MIN-MAX:PERCENT:DESCRIPTION", item)
		}
		bounds := strings.SplitN(parts[0], "-", 2)
		if len(bounds) != 2 {
			return nil, fmt.Errorf("zone %q: bad range %q", item, parts[0])
		}
		lo, err1 := strconv.ParseFloat(strings.TrimSpace(bounds[0]), 64)
		hi, err2 := strconv.ParseFloat(strings.TrimSpace(bounds[1]), 64)
		pct, err3 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, fmt.Errorf("zone %q: numbers expected", item)
		}
		zones = append(zones, servicearea.Zone{
			MinDistanceKm:    lo,
			MaxDistanceKm:    hi,
			SurchargePercent: pct,
			Description:      strings.TrimSpace(parts[2]),
		})
	}
	if _, err := servicearea.NewPolicy(zones, servicearea.DefaultOutside()); err != nil {
		return nil, err
	}
	return zones, nil
}
