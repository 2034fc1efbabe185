// Package geocoding wraps the nominatim geocoding provider for city search
// and reverse lookup.
package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"country-explorer/internal/common/errors"
	"country-explorer/internal/common/httpclient"
	"country-explorer/internal/common/logger"
	"country-explorer/internal/common/metrics"
	"country-explorer/internal/models"
)

type Client struct {
	http    *httpclient.Client
	baseURL string
	logger  logger.Logger
}

func NewClient(httpClient *httpclient.Client, baseURL string, log logger.Logger) *Client {
	return &Client{
		http:    httpClient,
		baseURL: baseURL,
		logger:  log.WithFields(map[string]interface{}{"provider": "nominatim"}),
	}
}

// SearchCity geocodes a "City" or "City, CC" search term to at most one
// city candidate. The part before the first comma is the city name.
func (c *Client) SearchCity(ctx context.Context, searchTerm string) ([]models.Location, error) {
	cityName := cityPart(searchTerm)

	params := url.Values{
		"q":              {cityName},
		"format":         {"json"},
		"addressdetails": {"1"},
		"limit":          {"1"},
		"featuretype":    {"city"},
	}

	return c.search(ctx, params)
}

// SearchForMap returns up to ten candidates for the interactive map,
// optionally restricted by a country code after the comma, filtered to
// results whose city/town/municipality actually matches, and sorted by
// provider importance.
func (c *Client) SearchForMap(ctx context.Context, searchTerm string) ([]models.Location, error) {
	cityName := cityPart(searchTerm)

	params := url.Values{
		"q":              {cityName},
		"format":         {"json"},
		"addressdetails": {"1"},
		"limit":          {"10"},
		"featuretype":    {"city"},
	}
	if cc := countryPart(searchTerm); cc != "" {
		params.Set("countrycodes", cc)
	}

	locations, err := c.search(ctx, params)
	if err != nil {
		return nil, err
	}

	cityLower := strings.ToLower(cityName)
	filtered := locations[:0]
	for _, loc := range locations {
		addr := loc.Address
		if containsFold(addr.City, cityLower) ||
			containsFold(addr.Town, cityLower) ||
			containsFold(addr.Municipality, cityLower) {
			filtered = append(filtered, loc)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Importance > filtered[j].Importance
	})

	return filtered, nil
}

// Reverse resolves coordinates to a location, or NOT_FOUND when the
// provider has nothing there.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (*models.Location, error) {
	endpoint := fmt.Sprintf(
		"%s/reverse?format=json&lat=%f&lon=%f&accept-language=en",
		c.baseURL, lat, lon,
	)

	var loc models.Location
	if err := c.fetch(ctx, endpoint, &loc); err != nil {
		return nil, err
	}
	if loc.Lat == "" && loc.DisplayName == "" {
		return nil, errors.NewNotFoundError("location", fmt.Sprintf("lat=%f lon=%f", lat, lon))
	}
	return &loc, nil
}

func (c *Client) search(ctx context.Context, params url.Values) ([]models.Location, error) {
	endpoint := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	var locations []models.Location
	if err := c.fetch(ctx, endpoint, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

func (c *Client) fetch(ctx context.Context, endpoint string, out interface{}) error {
	start := time.Now()
	resp, err := c.http.Get(ctx, endpoint)
	metrics.ProviderRequestDuration.WithLabelValues("nominatim").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues("nominatim", "error").Inc()
		return errors.NewUpstreamUnavailableError("nominatim", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.ProviderRequestsTotal.WithLabelValues("nominatim", "error").Inc()
		return errors.NewUpstreamUnavailableError("nominatim", fmt.Errorf("status %d", resp.StatusCode))
	}

	metrics.ProviderRequestsTotal.WithLabelValues("nominatim", "success").Inc()
	return json.NewDecoder(resp.Body).Decode(out)
}

func cityPart(searchTerm string) string {
	return strings.TrimSpace(strings.SplitN(searchTerm, ",", 2)[0])
}

func countryPart(searchTerm string) string {
	parts := strings.SplitN(searchTerm, ",", 2)
	if len(parts) < 2 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(parts[1]))
}

func containsFold(haystack, needleLower string) bool {
	if haystack == "" {
		return false
	}
	return strings.Contains(strings.ToLower(haystack), needleLower)
}
