package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// Client fetches catalog data from the external pricing provider. The engine
// only depends on this interface so tests can substitute a fake.
type Client interface {
	// FetchEntries returns the valid configuration tuples for a region.
	FetchEntries(ctx context.Context, region string) ([]Entry, error)

	// FetchPrices returns the metered price lines for one fully-specified
	// configuration in a region. Some configurations bill multiple
	// components, so more than one line may come back.
	FetchPrices(ctx context.Context, region string, entry Entry) ([]PriceLine, error)
}

// HTTPClient is the production Client backed by the provider's public
// pricing endpoints.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewHTTPClient builds an HTTPClient for the given catalog base URL.
// A zero timeout defaults to 10 seconds.
func NewHTTPClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: logger,
	}
}

// FetchEntries implements Client.
func (c *HTTPClient) FetchEntries(ctx context.Context, region string) ([]Entry, error) {
	u := fmt.Sprintf("%s/%s/aggregations", c.baseURL, url.PathEscape(region))

	var resp AggregationResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("fetch aggregations for %s: %w", region, err)
	}

	entries := make([]Entry, 0, len(resp.Aggregations))
	for _, agg := range resp.Aggregations {
		e := entryFromSelectors(agg.Selectors)
		if e.BundleDescription == "" {
			continue
		}
		entries = append(entries, e)
	}

	c.logger.Debug().
		Str("region", region).
		Int("entries", len(entries)).
		Msg("catalog aggregations fetched")
	return entries, nil
}

// FetchPrices implements Client.
func (c *HTTPClient) FetchPrices(ctx context.Context, region string, entry Entry) ([]PriceLine, error) {
	q := url.Values{}
	q.Set("bundle", entry.BundleDescription)
	setIfPresent(q, "rootVolume", entry.RootVolume)
	setIfPresent(q, "userVolume", entry.UserVolume)
	setIfPresent(q, "operatingSystem", entry.OperatingSystem)
	setIfPresent(q, "license", entry.License)
	setIfPresent(q, "runningMode", entry.RunningMode)
	setIfPresent(q, "productFamily", entry.ProductFamily)
	u := fmt.Sprintf("%s/%s/index?%s", c.baseURL, url.PathEscape(region), q.Encode())

	var resp PriceIndexResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("fetch prices for %s: %w", region, err)
	}

	lines, ok := resp.Regions[region]
	if !ok && len(resp.Regions) == 1 {
		// Some catalog deployments key the response by display name rather
		// than region code. With a single region present it is ours.
		for _, only := range resp.Regions {
			lines = only
		}
		ok = true
	}
	if !ok || len(lines) == 0 {
		return nil, fmt.Errorf("no price lines for region %s", region)
	}

	// Stable line order: map iteration would make downstream line selection
	// vary between identical requests.
	keys := make([]string, 0, len(lines))
	for key := range lines {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]PriceLine, 0, len(lines))
	for _, key := range keys {
		out = append(out, lines[key])
	}

	c.logger.Debug().
		Str("region", region).
		Str("bundle", entry.BundleDescription).
		Int("price_lines", len(out)).
		Msg("catalog prices fetched")
	return out, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, rawURL string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Error().Err(err).Msg("failed to close response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, dst)
}

func setIfPresent(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
