// Package fx resolves foreign-exchange rates from a pluggable provider with
// TTL caching and in-flight request coalescing.
package fx

import (
	"context"
	"log/slog"
	"math"
	"regexp"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/vendora/platform/internal/apperr"
)

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// Resolver answers rate and conversion queries. Construct one at startup and
// share it; the cache and singleflight group are safe for concurrent use.
type Resolver struct {
	provider Provider
	cache    RateCache
	ttl      time.Duration
	group    singleflight.Group
	log      *slog.Logger
}

func NewResolver(provider Provider, cache RateCache, ttl time.Duration, log *slog.Logger) *Resolver {
	return &Resolver{
		provider: provider,
		cache:    cache,
		ttl:      ttl,
		log:      log,
	}
}

// Conversion is the result of ConvertAmount, carrying rate metadata for
// auditability.
type Conversion struct {
	Amount   float64 `json:"amount"`
	Rate     float64 `json:"rate"`
	Provider string  `json:"provider,omitempty"`
}

// GetRate resolves the conversion rate for a currency pair. Identity pairs
// return 1 without touching the cache or the provider. Concurrent callers for
// the same pair share a single provider call.
func (r *Resolver) GetRate(ctx context.Context, from, to string) (float64, error) {
	if !currencyPattern.MatchString(from) || !currencyPattern.MatchString(to) {
		return 0, apperr.New(apperr.CodeFXInvalidCurrency, "currency codes must be 3 uppercase letters, got %q -> %q", from, to)
	}
	if from == to {
		return 1, nil
	}

	key := from + "->" + to
	if rate, ok := r.cache.Get(ctx, key); ok {
		return rate, nil
	}

	// Singleflight both deduplicates concurrent lookups for the same pair and
	// guarantees the in-flight marker clears on failure, so one bad call never
	// poisons later attempts.
	v, err, shared := r.group.Do(key, func() (any, error) {
		rate, err := r.provider.FetchRate(ctx, from, to)
		if err != nil {
			return 0.0, err
		}
		r.cache.Set(ctx, key, rate, r.ttl)
		return rate, nil
	})
	if err != nil {
		return 0, err
	}
	if shared {
		r.log.Debug("fx lookup coalesced", "pair", key)
	}
	return v.(float64), nil
}

// ConvertAmount converts amount between currencies, rounding the result to 2
// decimals and reporting the applied rate (8 decimals) and provider.
func (r *Resolver) ConvertAmount(ctx context.Context, amount float64, from, to string) (*Conversion, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return nil, apperr.New(apperr.CodeFXInvalidAmount, "amount must be a non-negative number, got %v", amount)
	}

	rate, err := r.GetRate(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if from == to {
		return &Conversion{Amount: round(amount, 2), Rate: 1}, nil
	}
	return &Conversion{
		Amount:   round(amount*rate, 2),
		Rate:     round(rate, 8),
		Provider: r.provider.Name(),
	}, nil
}

func round(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}
