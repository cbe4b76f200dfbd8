package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/yourorg/location-quote/internal/env"
	"github.com/yourorg/location-quote/internal/features"
	"github.com/yourorg/location-quote/internal/location"
	"github.com/yourorg/location-quote/internal/pricing"
	"github.com/yourorg/location-quote/internal/servicearea"
)

// Config holds all application configuration
type Config struct {
	Environment string
	Server      ServerConfig
	Maps        MapsConfig
	Base        location.Coordinates
	Cache       CacheConfig
	Pricing     PricingConfig
	ServiceArea ServiceAreaConfig
	Seasons     SeasonsConfig
	Markets     MarketsConfig
	PostgresDSN string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int
	RateLimitPerMin int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration
}

// MapsConfig holds geo provider configuration
type MapsConfig struct {
	APIKey           string
	BaseURL          string
	ValidationURL    string
	Timeout          time.Duration
	RequestsPerSec   float64
	RetryMax         int
	SkipValidation   bool
	ElevationTerrain bool
}

// CacheConfig selects the provider response cache
type CacheConfig struct {
	Backend       string // memory, redis or none
	TTL           time.Duration
	NegativeTTL   time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Prefix        string
}

type PricingConfig struct {
	HourlyRate            float64
	ReferenceAcres        float64
	ResidentialPerAcre    float64
	CommercialPerAcre     float64
	AgriculturalPerAcre   float64
	IndustrialPerAcre     float64
	AccessibilityBaseline int
}

type ServiceAreaConfig struct {
	RemoteThresholdKm       float64
	OutsideSurchargePercent float64
	HighRiskAddition        float64
}

type SeasonsConfig struct {
	Wetland         string // "6-10"
	BirdNesting     string
	DefaultFireRisk string
}

type MarketsConfig struct {
	PremiumPostalCodes  []string
	PremiumCityKeywords []string
	BudgetPostalCodes   []string
}

// Load loads configuration from environment variables
func Load() (Config, error) {
	def := pricing.DefaultConfig()
	outside := servicearea.DefaultOutside()
	c := Config{
		Environment: env.Get("APP_ENV", "development"),
		Server: ServerConfig{
			Port:            env.GetInt("PORT", 8080),
			RateLimitPerMin: env.GetInt("RATE_LIMIT_PER_MIN", 120),
			ReadTimeout:     env.GetDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    env.GetDuration("SERVER_WRITE_TIMEOUT", 20*time.Second),
			ShutdownTimeout: env.GetDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			RequestTimeout:  env.GetDuration("REQUEST_TIMEOUT", 15*time.Second),
		},
		Maps: MapsConfig{
			APIKey:           env.Get("MAPS_API_KEY", ""),
			BaseURL:          env.Get("MAPS_BASE_URL", ""),
			ValidationURL:    env.Get("MAPS_VALIDATION_URL", ""),
			Timeout:          env.GetDuration("MAPS_TIMEOUT", 5*time.Second),
			RequestsPerSec:   env.GetFloat("MAPS_REQUESTS_PER_SEC", 10),
			RetryMax:         env.GetInt("MAPS_RETRY_MAX", 1),
			SkipValidation:   env.GetBool("MAPS_SKIP_VALIDATION", false),
			ElevationTerrain: env.GetBool("MAPS_ELEVATION_TERRAIN", false),
		},
		Base: location.Coordinates{
			Lat: env.GetFloat("BASE_LAT", 0),
			Lng: env.GetFloat("BASE_LNG", 0),
		},
		Cache: CacheConfig{
			Backend:       env.Get("CACHE_BACKEND", "memory"),
			TTL:           env.GetDuration("CACHE_TTL", 24*time.Hour),
			NegativeTTL:   env.GetDuration("CACHE_NEGATIVE_TTL", 10*time.Minute),
			RedisAddr:     env.Get("REDIS_ADDR", "127.0.0.1:6379"),
			RedisPassword: env.Get("REDIS_PASSWORD", ""),
			RedisDB:       env.GetInt("REDIS_DB", 0),
			Prefix:        env.Get("CACHE_PREFIX", "lq:"),
		},
		Pricing: PricingConfig{
			HourlyRate:            env.GetFloat("PRICING_HOURLY_RATE", def.HourlyRate),
			ReferenceAcres:        env.GetFloat("PRICING_REFERENCE_ACRES", 1),
			ResidentialPerAcre:    env.GetFloat("PRICING_RESIDENTIAL_PER_ACRE", def.BasePricePerAcre[pricing.Residential]),
			CommercialPerAcre:     env.GetFloat("PRICING_COMMERCIAL_PER_ACRE", def.BasePricePerAcre[pricing.Commercial]),
			AgriculturalPerAcre:   env.GetFloat("PRICING_AGRICULTURAL_PER_ACRE", def.BasePricePerAcre[pricing.Agricultural]),
			IndustrialPerAcre:     env.GetFloat("PRICING_INDUSTRIAL_PER_ACRE", def.BasePricePerAcre[pricing.Industrial]),
			AccessibilityBaseline: env.GetInt("PRICING_ACCESSIBILITY_BASELINE", def.AccessibilityBaseline),
		},
		ServiceArea: ServiceAreaConfig{
			RemoteThresholdKm:       env.GetFloat("SERVICE_AREA_REMOTE_KM", features.DefaultRemoteKm),
			OutsideSurchargePercent: env.GetFloat("SERVICE_AREA_OUTSIDE_PERCENT", outside.SurchargePercent),
			HighRiskAddition:        env.GetFloat("SERVICE_AREA_HIGH_RISK_PERCENT", outside.HighAccessRiskAddition),
		},
		Seasons: SeasonsConfig{
			Wetland:         env.Get("SEASON_WETLAND_MONTHS", "6-10"),
			BirdNesting:     env.Get("SEASON_NESTING_MONTHS", "3-8"),
			DefaultFireRisk: env.Get("SEASON_FIRE_RISK", string(pricing.FireRiskModerate)),
		},
		Markets: MarketsConfig{
			PremiumPostalCodes:  env.GetList("MARKET_PREMIUM_POSTAL_CODES", nil),
			PremiumCityKeywords: env.GetList("MARKET_PREMIUM_CITY_KEYWORDS", nil),
			BudgetPostalCodes:   env.GetList("MARKET_BUDGET_POSTAL_CODES", nil),
		},
		PostgresDSN: env.Get("PG_DSN", ""),
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.Maps.APIKey == "" {
		errs = append(errs, errors.New("MAPS_API_KEY is required"))
	}
	if err := c.Base.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("BASE_LAT/BASE_LNG: %w", err))
	}
	switch c.Cache.Backend {
	case "memory", "redis", "none":
	default:
		errs = append(errs, fmt.Errorf("CACHE_BACKEND %q: want memory, redis or none", c.Cache.Backend))
	}
	if _, err := c.SeasonCalendar(); err != nil {
		errs = append(errs, err)
	}
	if err := c.PricingRules().Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// PricingRules builds the synthesizer configuration.
func (c Config) PricingRules() pricing.Config {
	p := pricing.DefaultConfig()
	p.HourlyRate = c.Pricing.HourlyRate
	p.AccessibilityBaseline = c.Pricing.AccessibilityBaseline
	p.BasePricePerAcre = map[pricing.PropertyType]float64{
		pricing.Residential:  c.Pricing.ResidentialPerAcre,
		pricing.Commercial:   c.Pricing.CommercialPerAcre,
		pricing.Agricultural: c.Pricing.AgriculturalPerAcre,
		pricing.Industrial:   c.Pricing.IndustrialPerAcre,
	}
	return p
}

func (c Config) SeasonCalendar() (features.SeasonCalendar, error) {
	wet, err := features.ParseMonthWindow(c.Seasons.Wetland)
	if err != nil {
		return features.SeasonCalendar{}, fmt.Errorf("SEASON_WETLAND_MONTHS: %w", err)
	}
	nest, err := features.ParseMonthWindow(c.Seasons.BirdNesting)
	if err != nil {
		return features.SeasonCalendar{}, fmt.Errorf("SEASON_NESTING_MONTHS: %w", err)
	}
	fire := pricing.FireRiskLevel(c.Seasons.DefaultFireRisk)
	switch fire {
	case pricing.FireRiskLow, pricing.FireRiskModerate, pricing.FireRiskHigh:
	default:
		return features.SeasonCalendar{}, fmt.Errorf("SEASON_FIRE_RISK %q: want low, moderate or high", fire)
	}
	return features.SeasonCalendar{Wetland: wet, BirdNesting: nest, DefaultFireRisk: fire}, nil
}

func (c Config) MarketDirectory() features.MarketDirectory {
	return features.MarketDirectory{
		PremiumPostalCodes:  c.Markets.PremiumPostalCodes,
		PremiumCityKeywords: c.Markets.PremiumCityKeywords,
		BudgetPostalCodes:   c.Markets.BudgetPostalCodes,
	}
}

func (c Config) Outside() servicearea.Outside {
	o := servicearea.DefaultOutside()
	o.SurchargePercent = c.ServiceArea.OutsideSurchargePercent
	o.HighAccessRiskAddition = c.ServiceArea.HighRiskAddition
	return o
}
