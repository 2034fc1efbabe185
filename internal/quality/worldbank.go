// Package quality derives the quality-of-life score for a country from the
// economic indicator provider.
package quality

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"country-explorer/internal/common/errors"
	"country-explorer/internal/common/httpclient"
	"country-explorer/internal/common/logger"
	"country-explorer/internal/common/metrics"
)

// Indicator IDs on the economic indicator provider.
const (
	IndicatorPPPGDPPerCapita      = "NY.GDP.PCAP.PP.CD"
	IndicatorLifeExpectancy       = "SP.DYN.LE00.IN"
	IndicatorEducationExpenditure = "SE.XPD.TOTL.GD.ZS"
	IndicatorHealthExpenditure    = "SH.XPD.CHEX.GD.ZS"
)

const yearRange = "2012:2024"

// IndicatorClient fetches the latest value of an indicator for a country.
// A nil result with nil error means the indicator is absent; the scorer's
// fallback constant applies.
type IndicatorClient interface {
	LatestValue(ctx context.Context, countryCode, indicator string) (*float64, error)
}

type WorldBankClient struct {
	http    *httpclient.Client
	baseURL string
	logger  logger.Logger
}

func NewWorldBankClient(httpClient *httpclient.Client, baseURL string, log logger.Logger) *WorldBankClient {
	return &WorldBankClient{
		http:    httpClient,
		baseURL: baseURL,
		logger:  log.WithFields(map[string]interface{}{"provider": "worldbank"}),
	}
}

type indicatorObservation struct {
	Date  string   `json:"date"`
	Value *float64 `json:"value"`
}

// LatestValue queries the indicator over the fixed year range and returns
// the newest non-null observation, or nil when none exists.
func (c *WorldBankClient) LatestValue(ctx context.Context, countryCode, indicator string) (*float64, error) {
	endpoint := fmt.Sprintf(
		"%s/country/%s/indicator/%s?format=json&date=%s&per_page=100",
		c.baseURL, countryCode, indicator, yearRange,
	)

	start := time.Now()
	resp, err := c.http.Get(ctx, endpoint)
	metrics.ProviderRequestDuration.WithLabelValues("worldbank").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues("worldbank", "error").Inc()
		return nil, errors.NewUpstreamUnavailableError("worldbank", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.ProviderRequestsTotal.WithLabelValues("worldbank", "error").Inc()
		return nil, errors.NewUpstreamUnavailableError("worldbank", fmt.Errorf("status %d", resp.StatusCode))
	}

	// Response shape: [metadata, [observations]]
	var envelope []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues("worldbank", "error").Inc()
		return nil, errors.NewUpstreamUnavailableError("worldbank", err)
	}
	metrics.ProviderRequestsTotal.WithLabelValues("worldbank", "success").Inc()

	if len(envelope) < 2 {
		return nil, nil
	}

	var observations []indicatorObservation
	if err := json.Unmarshal(envelope[1], &observations); err != nil {
		return nil, nil
	}

	nonNull := observations[:0]
	for _, obs := range observations {
		if obs.Value != nil {
			nonNull = append(nonNull, obs)
		}
	}
	if len(nonNull) == 0 {
		return nil, nil
	}

	sort.Slice(nonNull, func(i, j int) bool {
		yi, _ := strconv.Atoi(nonNull[i].Date)
		yj, _ := strconv.Atoi(nonNull[j].Date)
		return yi > yj
	})

	return nonNull[0].Value, nil
}
