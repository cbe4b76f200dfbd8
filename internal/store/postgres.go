package store

import (
    "context"
    "database/sql"
    "errors"
    "fmt"
    "time"

    _ "github.com/jackc/pgx/v5/stdlib"

    "github.com/yourorg/location-quote/internal/features"
    "github.com/yourorg/location-quote/internal/servicearea"
)

// Store keeps the pricing policy (zones, market lists, rates) so it can change
// without a deploy. Quotes themselves are never stored.
type Store struct { DB *sql.DB }

func Open(dsn string) (*Store, error) {
    db, err := sql.Open("pgx", dsn)
    if err != nil { return nil, err }
    db.SetMaxOpenConns(10)
    db.SetMaxIdleConns(5)
    db.SetConnMaxLifetime(30 * time.Minute)
    return &Store{DB: db}, nil
}

func (s *Store) Ping(ctx context.Context) error { return s.DB.PingContext(ctx) }

func (s *Store) Close() error { return s.DB.Close() }

func (s *Store) Migrate(ctx context.Context) error {
    stmts := []string{
        `CREATE TABLE IF NOT EXISTS service_zones (
            position          INT PRIMARY KEY,
            min_km            DOUBLE PRECISION NOT NULL,
            max_km            DOUBLE PRECISION NOT NULL,
            surcharge_percent DOUBLE PRECISION NOT NULL,
            description       TEXT NOT NULL,
            updated_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
            CHECK (max_km > min_km AND min_km >= 0)
        );`,
        `CREATE TABLE IF NOT EXISTS market_segments (
            kind       TEXT NOT NULL,
            value      TEXT NOT NULL,
            segment    TEXT NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
            PRIMARY KEY (kind, value)
        );`,
        `CREATE TABLE IF NOT EXISTS pricing_rates (
            name       TEXT PRIMARY KEY,
            value      DOUBLE PRECISION NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
        );`,
    }
    for _, q := range stmts {
        if _, err := s.DB.ExecContext(ctx, q); err != nil { return err }
    }
    return nil
}

// market_segments.kind values
const (
    kindPostal      = "postal"
    kindCityKeyword = "city_keyword"
)

// ReplaceZones swaps the whole zone table in one transaction. The zones must
// form a valid policy.
func (s *Store) ReplaceZones(ctx context.Context, zones []servicearea.Zone) (err error) {
    if _, err = servicearea.NewPolicy(zones, servicearea.DefaultOutside()); err != nil { return err }
    tx, err := s.DB.BeginTx(ctx, nil)
    if err != nil { return err }
    defer func() { if err != nil { _ = tx.Rollback() } }()

    if _, err = tx.ExecContext(ctx, `DELETE FROM service_zones`); err != nil { return err }
    for i, z := range zones {
        if _, err = tx.ExecContext(ctx, `
            INSERT INTO service_zones (position, min_km, max_km, surcharge_percent, description)
            VALUES ($1,$2,$3,$4,$5)`,
            i, z.MinDistanceKm, z.MaxDistanceKm, z.SurchargePercent, z.Description); err != nil { return err }
    }
    return tx.Commit()
}

func (s *Store) ReplaceMarkets(ctx context.Context, d features.MarketDirectory) (err error) {
    tx, err := s.DB.BeginTx(ctx, nil)
    if err != nil { return err }
    defer func() { if err != nil { _ = tx.Rollback() } }()

    if _, err = tx.ExecContext(ctx, `DELETE FROM market_segments`); err != nil { return err }
    rows := []struct {
        kind, segment string
        values        []string
    }{
        {kindPostal, string(features.SegmentPremium), d.PremiumPostalCodes},
        {kindCityKeyword, string(features.SegmentPremium), d.PremiumCityKeywords},
        {kindPostal, string(features.SegmentBudget), d.BudgetPostalCodes},
    }
    for _, r := range rows {
        for _, v := range r.values {
            if v == "" { continue }
            if _, err = tx.ExecContext(ctx, `
                INSERT INTO market_segments (kind, value, segment) VALUES ($1,$2,$3)
                ON CONFLICT (kind, value) DO UPDATE SET segment=EXCLUDED.segment, updated_at=now()`,
                r.kind, v, r.segment); err != nil { return err }
        }
    }
    return tx.Commit()
}

func (s *Store) UpsertRates(ctx context.Context, rates map[string]float64) (err error) {
    tx, err := s.DB.BeginTx(ctx, nil)
    if err != nil { return err }
    defer func() { if err != nil { _ = tx.Rollback() } }()
    for name, v := range rates {
        if _, err = tx.ExecContext(ctx, `
            INSERT INTO pricing_rates (name, value) VALUES ($1,$2)
            ON CONFLICT (name) DO UPDATE SET value=EXCLUDED.value, updated_at=now()`,
            name, v); err != nil { return err }
    }
    return tx.Commit()
}

var ErrNoZones = errors.New("no service zones stored")

// LoadPolicy reads all three tables. An empty zone table is ErrNoZones so
// callers can fall back to configured defaults.
func (s *Store) LoadPolicy(ctx context.Context) (Policy, error) {
    var p Policy
    zrows, err := s.DB.QueryContext(ctx, `SELECT min_km, max_km, surcharge_percent, description FROM service_zones ORDER BY position`)
    if err != nil { return p, err }
    defer zrows.Close()
    for zrows.Next() {
        var z servicearea.Zone
        if err := zrows.Scan(&z.MinDistanceKm, &z.MaxDistanceKm, &z.SurchargePercent, &z.Description); err != nil { return p, err }
        p.Zones = append(p.Zones, z)
    }
    if err := zrows.Err(); err != nil { return p, err }
    if len(p.Zones) == 0 { return p, ErrNoZones }

    mrows, err := s.DB.QueryContext(ctx, `SELECT kind, value, segment FROM market_segments ORDER BY kind, value`)
    if err != nil { return p, err }
    defer mrows.Close()
    for mrows.Next() {
        var kind, value, segment string
        if err := mrows.Scan(&kind, &value, &segment); err != nil { return p, err }
        switch {
        case kind == kindPostal && segment == string(features.SegmentPremium):
            p.Markets.PremiumPostalCodes = append(p.Markets.PremiumPostalCodes, value)
        case kind == kindCityKeyword && segment == string(features.SegmentPremium):
            p.Markets.PremiumCityKeywords = append(p.Markets.PremiumCityKeywords, value)
        case kind == kindPostal && segment == string(features.SegmentBudget):
            p.Markets.BudgetPostalCodes = append(p.Markets.BudgetPostalCodes, value)
        }
    }
    if err := mrows.Err(); err != nil { return p, err }

    p.Rates = map[string]float64{}
    rrows, err := s.DB.QueryContext(ctx, `SELECT name, value FROM pricing_rates`)
    if err != nil { return p, err }
    defer rrows.Close()
    for rrows.Next() {
        var name string
        var v float64
        if err := rrows.Scan(&name, &v); err != nil { return p, err }
        p.Rates[name] = v
    }
    if err := rrows.Err(); err != nil { return p, fmt.Errorf("pricing_rates: %w", err) }
    return p, nil
}
