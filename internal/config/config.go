package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// FX provider selection values.
const (
	FXProviderPublic   = "public"
	FXProviderCustom   = "custom"
	FXProviderDisabled = "disabled"
)

// Bounds for operator-tunable knobs. Values outside these ranges are clamped,
// not rejected, so a bad .env cannot take checkout down.
const (
	FXCacheTTLMin     = 60 * time.Second
	FXCacheTTLMax     = 6 * time.Hour
	FXCacheTTLDefault = 10 * time.Minute

	FXTimeoutMin     = 3 * time.Second
	FXTimeoutMax     = 15 * time.Second
	FXTimeoutDefault = 8 * time.Second
)

// Config is the full environment configuration, parsed once at startup.
type Config struct {
	Env  string // "production" or anything else for development
	Addr string

	MongoURI      string
	MongoDatabase string

	RedisAddr    string // empty: in-memory FX cache
	KafkaBrokers []string

	FXProvider      string
	FXCustomBaseURL string
	FXTimeout       time.Duration
	FXCacheTTL      time.Duration

	CarrierBaseURL string
	CarrierToken   string

	OriginCountry    string
	BrandName        string
	CheckoutCurrency string
}

// Load reads .env (if present) and the process environment into a Config.
func Load() (*Config, error) {
	// .env is a development convenience, absence is not an error
	_ = godotenv.Load()

	cfg := &Config{
		Env:  getEnv("APP_ENV", "development"),
		Addr: getEnv("HTTP_ADDR", ":8080"),

		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "vendora"),

		RedisAddr: os.Getenv("REDIS_ADDR"),

		FXProvider:      strings.ToLower(getEnv("FX_PROVIDER", FXProviderPublic)),
		FXCustomBaseURL: os.Getenv("FX_CUSTOM_BASE_URL"),
		FXTimeout:       clampDuration(os.Getenv("FX_TIMEOUT"), FXTimeoutDefault, FXTimeoutMin, FXTimeoutMax),
		FXCacheTTL:      clampDuration(os.Getenv("FX_CACHE_TTL"), FXCacheTTLDefault, FXCacheTTLMin, FXCacheTTLMax),

		CarrierBaseURL: getEnv("SHIPPO_BASE_URL", "https://api.goshippo.com"),
		CarrierToken:   os.Getenv("SHIPPO_API_TOKEN"),

		OriginCountry:    getEnv("ORIGIN_COUNTRY", "ZA"),
		BrandName:        getEnv("BRAND_NAME", "Vendora"),
		CheckoutCurrency: strings.ToUpper(getEnv("CHECKOUT_CURRENCY", "USD")),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	switch cfg.FXProvider {
	case FXProviderPublic, FXProviderCustom, FXProviderDisabled:
	default:
		return nil, fmt.Errorf("invalid FX_PROVIDER %q", cfg.FXProvider)
	}

	return cfg, nil
}

// Production reports whether the process runs with production error hygiene.
func (c *Config) Production() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// clampDuration parses raw as a time.Duration and clamps it into [min, max].
// Empty or unparseable input yields the default.
func clampDuration(raw string, def, min, max time.Duration) time.Duration {
	d := def
	if raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			d = parsed
		}
	}
	if d < min {
		return min
	}
	if d > max {
		return max
	}
	return d
}
