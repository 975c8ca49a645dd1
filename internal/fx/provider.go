package fx

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"

	"github.com/vendora/platform/internal/apperr"
	"github.com/vendora/platform/internal/config"
)

// Provider fetches a conversion rate for a currency pair from an external
// service. Implementations must return a coded error on any failure; a rate
// is only returned when it is finite and strictly positive.
type Provider interface {
	Name() string
	FetchRate(ctx context.Context, from, to string) (float64, error)
}

// NewProvider selects the provider implementation from configuration.
func NewProvider(cfg *config.Config) (Provider, error) {
	client := &http.Client{Timeout: cfg.FXTimeout}
	switch cfg.FXProvider {
	case config.FXProviderPublic:
		return &publicProvider{client: client}, nil
	case config.FXProviderCustom:
		if strings.TrimSpace(cfg.FXCustomBaseURL) == "" {
			return nil, apperr.New(apperr.CodeFXNotConfigured, "custom FX provider requires FX_CUSTOM_BASE_URL")
		}
		return &customProvider{client: client, baseURL: strings.TrimRight(cfg.FXCustomBaseURL, "/")}, nil
	case config.FXProviderDisabled:
		return disabledProvider{}, nil
	}
	return nil, apperr.New(apperr.CodeFXProviderInvalid, "unknown FX provider %q", cfg.FXProvider)
}

// publicProvider queries a zero-configuration public rates API, with one
// fallback host when the primary fails.
type publicProvider struct {
	client *http.Client
	hosts  []string // overridable in tests
}

var defaultPublicHosts = []string{
	"https://api.exchangerate.host/latest",
	"https://api.frankfurter.app/latest",
}

func (p *publicProvider) Name() string { return "public" }

func (p *publicProvider) FetchRate(ctx context.Context, from, to string) (float64, error) {
	hosts := p.hosts
	if len(hosts) == 0 {
		hosts = defaultPublicHosts
	}

	var lastErr error
	for _, host := range hosts {
		rate, err := p.fetchFromHost(ctx, host, from, to)
		if err == nil {
			return rate, nil
		}
		lastErr = err
	}
	return 0, lastErr
}

func (p *publicProvider) fetchFromHost(ctx context.Context, host, from, to string) (float64, error) {
	endpoint := fmt.Sprintf("%s?base=%s&symbols=%s", host, url.QueryEscape(from), url.QueryEscape(to))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, apperr.Wrap(err, apperr.CodeFXLookupFailed, "build rate request")
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, apperr.Wrap(err, apperr.CodeFXLookupFailed, "rate request to %s failed", host)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, apperr.New(apperr.CodeFXLookupFailed, "rate host %s returned HTTP %d", host, resp.StatusCode)
	}

	var body struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, apperr.Wrap(err, apperr.CodeFXLookupFailed, "decode rate response from %s", host)
	}

	rate, ok := body.Rates[to]
	if !ok {
		return 0, apperr.New(apperr.CodeFXInvalidRate, "rate host %s returned no rate for %s", host, to)
	}
	return checkRate(rate)
}

// customProvider queries an operator-configured endpoint expected to return
// {"rate": n} or {"data": {"rate": n}}.
type customProvider struct {
	client  *http.Client
	baseURL string
}

func (p *customProvider) Name() string { return "custom" }

func (p *customProvider) FetchRate(ctx context.Context, from, to string) (float64, error) {
	endpoint := fmt.Sprintf("%s?from=%s&to=%s", p.baseURL, url.QueryEscape(from), url.QueryEscape(to))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, apperr.Wrap(err, apperr.CodeFXLookupFailed, "build rate request")
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, apperr.Wrap(err, apperr.CodeFXLookupFailed, "custom rate request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, apperr.New(apperr.CodeFXLookupFailed, "custom rate endpoint returned HTTP %d", resp.StatusCode)
	}

	var body struct {
		Rate *float64 `json:"rate"`
		Data struct {
			Rate *float64 `json:"rate"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, apperr.Wrap(err, apperr.CodeFXLookupFailed, "decode custom rate response")
	}

	switch {
	case body.Rate != nil:
		return checkRate(*body.Rate)
	case body.Data.Rate != nil:
		return checkRate(*body.Data.Rate)
	}
	return 0, apperr.New(apperr.CodeFXInvalidRate, "custom rate endpoint returned no rate")
}

// disabledProvider fails every non-identity conversion outright.
type disabledProvider struct{}

func (disabledProvider) Name() string { return "disabled" }

func (disabledProvider) FetchRate(context.Context, string, string) (float64, error) {
	return 0, apperr.New(apperr.CodeFXDisabled, "currency conversion is disabled")
}

// checkRate enforces that a provider rate is finite and strictly positive,
// regardless of HTTP status.
func checkRate(rate float64) (float64, error) {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		return 0, apperr.New(apperr.CodeFXInvalidRate, "provider returned invalid rate %v", rate)
	}
	return rate, nil
}
