package fx

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendora/platform/internal/apperr"
)

type fakeProvider struct {
	rate    float64
	err     error
	calls   atomic.Int64
	release chan struct{} // when set, FetchRate blocks until closed
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) FetchRate(ctx context.Context, from, to string) (float64, error) {
	f.calls.Add(1)
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return 0, f.err
	}
	return f.rate, nil
}

func newTestResolver(p Provider, cache RateCache, ttl time.Duration) *Resolver {
	return NewResolver(p, cache, ttl, slog.Default())
}

func TestGetRateValidatesCurrencies(t *testing.T) {
	r := newTestResolver(&fakeProvider{rate: 2}, NewMemoryCache(), time.Minute)

	for _, pair := range [][2]string{
		{"usd", "ZAR"},
		{"USD", "zar"},
		{"USDX", "ZAR"},
		{"US", "ZAR"},
		{"", "ZAR"},
	} {
		_, err := r.GetRate(context.Background(), pair[0], pair[1])
		require.Error(t, err)
		assert.Equal(t, apperr.CodeFXInvalidCurrency, apperr.Code(err))
	}
}

func TestGetRateIdentityPairSkipsProvider(t *testing.T) {
	p := &fakeProvider{rate: 99}
	r := newTestResolver(p, NewMemoryCache(), time.Minute)

	rate, err := r.GetRate(context.Background(), "EUR", "EUR")
	require.NoError(t, err)
	assert.Equal(t, 1.0, rate)
	assert.Equal(t, int64(0), p.calls.Load())
}

func TestGetRateCachesWithinTTL(t *testing.T) {
	p := &fakeProvider{rate: 18.5}
	cache := NewMemoryCache()
	now := time.Now()
	cache.nowFunc = func() time.Time { return now }
	r := newTestResolver(p, cache, 10*time.Minute)

	ctx := context.Background()
	rate, err := r.GetRate(ctx, "USD", "ZAR")
	require.NoError(t, err)
	assert.Equal(t, 18.5, rate)
	require.Equal(t, int64(1), p.calls.Load())

	// within the TTL window: no second provider call
	_, err = r.GetRate(ctx, "USD", "ZAR")
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.calls.Load())

	// after expiry: the provider is consulted again
	now = now.Add(11 * time.Minute)
	_, err = r.GetRate(ctx, "USD", "ZAR")
	require.NoError(t, err)
	assert.Equal(t, int64(2), p.calls.Load())
}

func TestGetRateCoalescesConcurrentCalls(t *testing.T) {
	p := &fakeProvider{rate: 18.5, release: make(chan struct{})}
	r := newTestResolver(p, NewMemoryCache(), time.Minute)

	const callers = 8
	var wg sync.WaitGroup
	rates := make([]float64, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rates[i], errs[i] = r.GetRate(context.Background(), "USD", "ZAR")
		}(i)
	}

	// let every goroutine reach the resolver before the provider answers
	time.Sleep(50 * time.Millisecond)
	close(p.release)
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, 18.5, rates[i])
	}
	assert.Equal(t, int64(1), p.calls.Load(), "concurrent identical lookups must share one provider call")
}

func TestGetRateFailureIsNotCached(t *testing.T) {
	p := &fakeProvider{err: apperr.New(apperr.CodeFXLookupFailed, "host down")}
	r := newTestResolver(p, NewMemoryCache(), time.Minute)

	ctx := context.Background()
	_, err := r.GetRate(ctx, "USD", "ZAR")
	require.Error(t, err)

	// failure cleared the in-flight marker and cached nothing: the next call
	// reaches the provider again
	p.err = nil
	p.rate = 2.5
	rate, err := r.GetRate(ctx, "USD", "ZAR")
	require.NoError(t, err)
	assert.Equal(t, 2.5, rate)
	assert.Equal(t, int64(2), p.calls.Load())
}

func TestConvertAmount(t *testing.T) {
	p := &fakeProvider{rate: 18.123456789}
	r := newTestResolver(p, NewMemoryCache(), time.Minute)
	ctx := context.Background()

	t.Run("identity", func(t *testing.T) {
		conv, err := r.ConvertAmount(ctx, 10.005, "USD", "USD")
		require.NoError(t, err)
		assert.Equal(t, 10.01, conv.Amount)
		assert.Equal(t, 1.0, conv.Rate)
		assert.Empty(t, conv.Provider)
	})

	t.Run("converted", func(t *testing.T) {
		conv, err := r.ConvertAmount(ctx, 100, "USD", "ZAR")
		require.NoError(t, err)
		assert.Equal(t, 1812.35, conv.Amount)
		assert.Equal(t, 18.12345679, conv.Rate)
		assert.Equal(t, "fake", conv.Provider)
	})

	t.Run("invalid amount", func(t *testing.T) {
		_, err := r.ConvertAmount(ctx, -1, "USD", "ZAR")
		require.Error(t, err)
		assert.Equal(t, apperr.CodeFXInvalidAmount, apperr.Code(err))
	})
}
