package geocoding

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "country-explorer/internal/common/errors"
	"country-explorer/internal/common/httpclient"
	"country-explorer/internal/common/logger"
)

func newGeocoderTest(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(httpclient.NewClient(2*time.Second), server.URL, logger.NewTestLogger(t))
}

func TestSearchCity(t *testing.T) {
	client := newGeocoderTest(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Berlin", r.URL.Query().Get("q"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "city", r.URL.Query().Get("featuretype"))

		fmt.Fprint(w, `[{"lat": "52.52", "lon": "13.40", "display_name": "Berlin, Germany", "address": {"city": "Berlin"}}]`)
	})

	// The country suffix is dropped for the single-candidate lookup.
	locations, err := client.SearchCity(context.Background(), "Berlin, DE")

	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, "52.52", locations[0].Lat)
	assert.Equal(t, "Berlin", locations[0].Address.City)
}

func TestSearchCity_NoResults(t *testing.T) {
	client := newGeocoderTest(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})

	locations, err := client.SearchCity(context.Background(), "Atlantis")

	require.NoError(t, err)
	assert.Empty(t, locations)
}

func TestSearchForMap(t *testing.T) {
	client := newGeocoderTest(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "de", r.URL.Query().Get("countrycodes"))

		fmt.Fprint(w, `[
			{"lat": "1", "lon": "1", "display_name": "Berlin suburb", "address": {"town": "Berlin"}, "importance": 0.3},
			{"lat": "2", "lon": "2", "display_name": "Berlin, Germany", "address": {"city": "Berlin"}, "importance": 0.9},
			{"lat": "3", "lon": "3", "display_name": "Somewhere else", "address": {"city": "Potsdam"}, "importance": 0.8}
		]`)
	})

	locations, err := client.SearchForMap(context.Background(), "Berlin, de")

	require.NoError(t, err)
	// Potsdam filtered out, remainder sorted by importance descending.
	require.Len(t, locations, 2)
	assert.Equal(t, "Berlin, Germany", locations[0].DisplayName)
	assert.Equal(t, "Berlin suburb", locations[1].DisplayName)
}

func TestSearchForMap_NoCountrySuffix(t *testing.T) {
	client := newGeocoderTest(t, func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("countrycodes"))
		fmt.Fprint(w, `[]`)
	})

	_, err := client.SearchForMap(context.Background(), "Berlin")

	require.NoError(t, err)
}

func TestReverse(t *testing.T) {
	client := newGeocoderTest(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		fmt.Fprint(w, `{"lat": "52.52", "lon": "13.40", "display_name": "Berlin, Germany", "address": {"city": "Berlin", "country_code": "de"}}`)
	})

	loc, err := client.Reverse(context.Background(), 52.52, 13.40)

	require.NoError(t, err)
	assert.Equal(t, "Berlin, Germany", loc.DisplayName)
	assert.Equal(t, "de", loc.Address.CountryCode)
}

func TestReverse_NothingThere(t *testing.T) {
	client := newGeocoderTest(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	})

	_, err := client.Reverse(context.Background(), 0, 0)

	require.Error(t, err)
	assert.True(t, stderrors.IsNotFound(err))
}

func TestReverse_ProviderDown(t *testing.T) {
	client := newGeocoderTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.Reverse(context.Background(), 52.52, 13.40)

	require.Error(t, err)
	assert.Equal(t, stderrors.ErrCodeUpstreamUnavailable, stderrors.CodeOf(err))
}

func TestCityAndCountryParts(t *testing.T) {
	tests := []struct {
		in          string
		wantCity    string
		wantCountry string
	}{
		{in: "Berlin", wantCity: "Berlin", wantCountry: ""},
		{in: "Berlin, DE", wantCity: "Berlin", wantCountry: "de"},
		{in: "  Rio de Janeiro , br ", wantCity: "Rio de Janeiro", wantCountry: "br"},
		{in: "a,b,c", wantCity: "a", wantCountry: "b,c"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.wantCity, cityPart(tt.in), "city of %q", tt.in)
		assert.Equal(t, tt.wantCountry, countryPart(tt.in), "country of %q", tt.in)
	}
}
