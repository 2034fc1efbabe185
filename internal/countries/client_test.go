package countries

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"country-explorer/internal/common/database"
	stderrors "country-explorer/internal/common/errors"
	"country-explorer/internal/common/httpclient"
	"country-explorer/internal/common/logger"
)

func newTestCache(t *testing.T) (*database.RedisClient, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return &database.RedisClient{Client: rdb}, mr
}

func newTestClient(t *testing.T, handler http.Handler, cache *database.RedisClient) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(
		httpclient.NewClient(2*time.Second),
		server.URL,
		cache,
		time.Hour,
		logger.NewTestLogger(t),
	)
}

func TestClient_ByCode(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/alpha/NOR", r.URL.Path)
		fmt.Fprint(w, `[{"name": {"common": "Norway"}, "cca3": "NOR", "flags": {"svg": "https://flags.test/no.svg"}}]`)
	}), nil)

	country, err := client.ByCode(context.Background(), "NOR")

	require.NoError(t, err)
	assert.Equal(t, "Norway", country.Name.Common)
	assert.Equal(t, "NOR", country.CCA3)
}

func TestClient_ByCode_UnknownCode(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}), nil)

	_, err := client.ByCode(context.Background(), "XXX")

	require.Error(t, err)
	assert.True(t, stderrors.IsNotFound(err))
}

func TestClient_ByCode_CachesLookups(t *testing.T) {
	var hits int32
	cache, _ := newTestCache(t)
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		fmt.Fprint(w, `[{"name": {"common": "Norway"}, "cca3": "NOR"}]`)
	}), cache)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		country, err := client.ByCode(ctx, "NOR")
		require.NoError(t, err)
		assert.Equal(t, "Norway", country.Name.Common)
	}

	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestClient_ByCode_CacheExpiryRefetches(t *testing.T) {
	var hits int32
	cache, mr := newTestCache(t)
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		fmt.Fprint(w, `[{"name": {"common": "Norway"}, "cca3": "NOR"}]`)
	}), cache)

	ctx := context.Background()
	_, err := client.ByCode(ctx, "NOR")
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, err = client.ByCode(ctx, "NOR")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestClient_ListAll(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/all", r.URL.Path)
		assert.Equal(t, listFields, r.URL.Query().Get("fields"))
		fmt.Fprint(w, `[
			{"name": {"common": "Zimbabwe"}, "cca3": "ZWE"},
			{"name": {"common": "Deutschland"}, "cca3": "DEU", "translations": {"eng": {"common": "Germany"}}},
			{"name": {"common": "Norway"}, "cca3": "NOR"}
		]`)
	}), nil)

	list, err := client.ListAll(context.Background())

	require.NoError(t, err)
	require.Len(t, list, 3)
	// English translation applied, then sorted alphabetically.
	assert.Equal(t, "Germany", list[0].Name.Common)
	assert.Equal(t, "Norway", list[1].Name.Common)
	assert.Equal(t, "Zimbabwe", list[2].Name.Common)
}

func TestClient_SearchByName_DegradesToEmpty(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}), nil)

	got := client.SearchByName(context.Background(), "nor")

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestClient_FlagURL(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{
			name:     "prefers svg",
			response: `[{"name": {"common": "Norway"}, "flags": {"svg": "https://flags.test/no.svg", "png": "https://flags.test/no.png"}}]`,
			want:     "https://flags.test/no.svg",
		},
		{
			name:     "falls back to png",
			response: `[{"name": {"common": "Norway"}, "flags": {"png": "https://flags.test/no.png"}}]`,
			want:     "https://flags.test/no.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.response)
			}), nil)

			got, err := client.FlagURL(context.Background(), "norway")

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_FlagURL_UnknownCountry(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}), nil)

	_, err := client.FlagURL(context.Background(), "atlantis")

	assert.True(t, stderrors.IsNotFound(err))
}
