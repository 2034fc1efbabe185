// Package countries wraps the country metadata provider. Lookups are cached
// in Redis for a week; the provider's data changes on the order of months.
package countries

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"country-explorer/internal/common/database"
	"country-explorer/internal/common/errors"
	"country-explorer/internal/common/httpclient"
	"country-explorer/internal/common/logger"
	"country-explorer/internal/common/metrics"
	"country-explorer/internal/models"
)

const listFields = "name,cca3,flags,capital,region,population,translations"

type Client struct {
	http     *httpclient.Client
	baseURL  string
	cache    *database.RedisClient
	cacheTTL time.Duration
	logger   logger.Logger
}

// NewClient creates a metadata client. cache may be nil; lookups then always
// hit the provider.
func NewClient(httpClient *httpclient.Client, baseURL string, cache *database.RedisClient, cacheTTL time.Duration, log logger.Logger) *Client {
	return &Client{
		http:     httpClient,
		baseURL:  baseURL,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   log.WithFields(map[string]interface{}{"provider": "restcountries"}),
	}
}

// ByCode looks a country up by its cca3 code. Provider failure or an
// unknown code both surface as NOT_FOUND.
func (c *Client) ByCode(ctx context.Context, code string) (*models.Country, error) {
	var out []models.Country
	cacheKey := "restcountries:code:" + code
	endpoint := fmt.Sprintf("%s/alpha/%s", c.baseURL, url.PathEscape(code))

	if err := c.fetchCached(ctx, cacheKey, endpoint, &out); err != nil {
		return nil, errors.NewNotFoundError("country", fmt.Sprintf("code %q: %v", code, err))
	}
	if len(out) == 0 {
		return nil, errors.NewNotFoundError("country", fmt.Sprintf("code %q", code))
	}
	return &out[0], nil
}

// ByName looks a country up by common name, requesting only name and flags.
func (c *Client) ByName(ctx context.Context, name string) (*models.Country, error) {
	var out []models.Country
	cacheKey := "restcountries:name:" + name
	endpoint := fmt.Sprintf("%s/name/%s?fields=name,flags", c.baseURL, url.PathEscape(name))

	if err := c.fetchCached(ctx, cacheKey, endpoint, &out); err != nil {
		return nil, errors.NewNotFoundError("country", fmt.Sprintf("name %q: %v", name, err))
	}
	if len(out) == 0 {
		return nil, errors.NewNotFoundError("country", fmt.Sprintf("name %q", name))
	}
	return &out[0], nil
}

// ListAll returns every country, English display name preferred, sorted
// alphabetically.
func (c *Client) ListAll(ctx context.Context) ([]models.Country, error) {
	var out []models.Country
	endpoint := fmt.Sprintf("%s/all?fields=%s", c.baseURL, listFields)

	if err := c.fetchCached(ctx, "restcountries:all", endpoint, &out); err != nil {
		return nil, err
	}

	for i := range out {
		out[i].Name.Common = out[i].DisplayName()
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name.Common < out[j].Name.Common
	})
	return out, nil
}

// SearchByName proxies the provider's free-text name search. Failures
// degrade to an empty list, never an error page.
func (c *Client) SearchByName(ctx context.Context, query string) []models.Country {
	var out []models.Country
	endpoint := fmt.Sprintf("%s/name/%s", c.baseURL, url.PathEscape(query))

	if err := c.fetch(ctx, endpoint, &out); err != nil {
		c.logger.Warn("country search failed", map[string]interface{}{
			"query": query,
			"error": err.Error(),
		})
		return []models.Country{}
	}
	return out
}

// FlagURL returns the flag image URL for a country name, or "" when the
// country is unknown. Used as the second tier of the image fallback chain.
func (c *Client) FlagURL(ctx context.Context, name string) (string, error) {
	country, err := c.ByName(ctx, name)
	if err != nil {
		return "", err
	}
	if country.Flags.SVG != "" {
		return country.Flags.SVG, nil
	}
	return country.Flags.PNG, nil
}

// fetchCached wraps fetch with the Redis read-through. Cache failures are
// logged and ignored; the provider call is the source of truth.
func (c *Client) fetchCached(ctx context.Context, cacheKey, endpoint string, out interface{}) error {
	if c.cache != nil {
		if cached, err := c.cache.Get(ctx, cacheKey); err == nil && cached != "" {
			if err := json.Unmarshal([]byte(cached), out); err == nil {
				return nil
			}
		}
	}

	if err := c.fetch(ctx, endpoint, out); err != nil {
		return err
	}

	if c.cache != nil {
		if payload, err := json.Marshal(out); err == nil {
			if err := c.cache.Set(ctx, cacheKey, string(payload), c.cacheTTL); err != nil {
				c.logger.Warn("cache write failed", map[string]interface{}{
					"key":   cacheKey,
					"error": err.Error(),
				})
			}
		}
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, endpoint string, out interface{}) error {
	start := time.Now()
	resp, err := c.http.Get(ctx, endpoint)
	metrics.ProviderRequestDuration.WithLabelValues("restcountries").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues("restcountries", "error").Inc()
		return errors.NewUpstreamUnavailableError("restcountries", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.ProviderRequestsTotal.WithLabelValues("restcountries", "error").Inc()
		return errors.NewUpstreamUnavailableError("restcountries", fmt.Errorf("status %d", resp.StatusCode))
	}

	metrics.ProviderRequestsTotal.WithLabelValues("restcountries", "success").Inc()
	return json.NewDecoder(resp.Body).Decode(out)
}
