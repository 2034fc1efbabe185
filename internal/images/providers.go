package images

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"country-explorer/internal/common/errors"
	"country-explorer/internal/common/httpclient"
	"country-explorer/internal/common/metrics"
)

// PhotoProvider searches stock photography for a query. An empty URL with a
// nil error means the provider had no match.
type PhotoProvider interface {
	SearchPhoto(ctx context.Context, query string) (string, error)
	Name() string
}

// PexelsClient is the primary photo provider.
type PexelsClient struct {
	http    *httpclient.Client
	baseURL string
	apiKey  string
}

func NewPexelsClient(httpClient *httpclient.Client, baseURL, apiKey string) *PexelsClient {
	return &PexelsClient{http: httpClient, baseURL: baseURL, apiKey: apiKey}
}

func (c *PexelsClient) Name() string { return "pexels" }

func (c *PexelsClient) SearchPhoto(ctx context.Context, query string) (string, error) {
	if c.apiKey == "" {
		return "", errors.NewUpstreamUnavailableError("pexels", fmt.Errorf("api key not configured"))
	}

	endpoint := fmt.Sprintf("%s/search?query=%s&per_page=1&orientation=landscape",
		c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", c.apiKey)

	var payload struct {
		Photos []struct {
			Src struct {
				Large string `json:"large"`
			} `json:"src"`
		} `json:"photos"`
	}
	if err := doProviderRequest(c.http, req, "pexels", &payload); err != nil {
		return "", err
	}

	if len(payload.Photos) == 0 {
		return "", nil
	}
	return payload.Photos[0].Src.Large, nil
}

// UnsplashClient is the secondary photo provider.
type UnsplashClient struct {
	http    *httpclient.Client
	baseURL string
	apiKey  string
}

func NewUnsplashClient(httpClient *httpclient.Client, baseURL, apiKey string) *UnsplashClient {
	return &UnsplashClient{http: httpClient, baseURL: baseURL, apiKey: apiKey}
}

func (c *UnsplashClient) Name() string { return "unsplash" }

func (c *UnsplashClient) SearchPhoto(ctx context.Context, query string) (string, error) {
	if c.apiKey == "" {
		return "", errors.NewUpstreamUnavailableError("unsplash", fmt.Errorf("access key not configured"))
	}

	endpoint := fmt.Sprintf("%s/search/photos?query=%s&per_page=1",
		c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Client-ID "+c.apiKey)

	var payload struct {
		Results []struct {
			URLs struct {
				Regular string `json:"regular"`
			} `json:"urls"`
		} `json:"results"`
	}
	if err := doProviderRequest(c.http, req, "unsplash", &payload); err != nil {
		return "", err
	}

	if len(payload.Results) == 0 {
		return "", nil
	}
	return payload.Results[0].URLs.Regular, nil
}

func doProviderRequest(client *httpclient.Client, req *http.Request, provider string, out interface{}) error {
	start := time.Now()
	resp, err := client.Do(req)
	metrics.ProviderRequestDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues(provider, "error").Inc()
		return errors.NewUpstreamUnavailableError(provider, err)
	}
	defer resp.Body.Close()

	// 429 is the rate-limit signal; treat it like any other provider failure
	// and let the fallback chain take over.
	if resp.StatusCode != http.StatusOK {
		metrics.ProviderRequestsTotal.WithLabelValues(provider, "error").Inc()
		return errors.NewUpstreamUnavailableError(provider, fmt.Errorf("status %d", resp.StatusCode))
	}

	metrics.ProviderRequestsTotal.WithLabelValues(provider, "success").Inc()
	return json.NewDecoder(resp.Body).Decode(out)
}
