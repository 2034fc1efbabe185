package images

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"country-explorer/internal/common/logger"
)

const testPlaceholder = "/images/placeholder.jpg"

type fakeProvider struct {
	name  string
	url   string
	err   error
	calls int32
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) SearchPhoto(_ context.Context, _ string) (string, error) {
	atomic.AddInt32(&p.calls, 1)
	return p.url, p.err
}

type fakeFlags struct {
	url string
	err error
}

func (f *fakeFlags) FlagURL(_ context.Context, _ string) (string, error) {
	return f.url, f.err
}

func newTestResolver(providers []PhotoProvider, flags FlagLookup) *Resolver {
	return NewResolver(NewMemoryCache(), providers, flags, testPlaceholder, time.Hour, logger.NewNoOpLogger())
}

func TestResolve_FirstProviderWins(t *testing.T) {
	primary := &fakeProvider{name: "pexels", url: "https://pexels.test/norway.jpg"}
	secondary := &fakeProvider{name: "unsplash", url: "https://unsplash.test/norway.jpg"}
	resolver := newTestResolver([]PhotoProvider{primary, secondary}, nil)

	url := resolver.Resolve(context.Background(), "norway")

	assert.Equal(t, "https://pexels.test/norway.jpg", url)
	assert.Equal(t, int32(0), atomic.LoadInt32(&secondary.calls))
}

func TestResolve_FallsThroughToSecondProvider(t *testing.T) {
	primary := &fakeProvider{name: "pexels", err: errors.New("rate limited")}
	secondary := &fakeProvider{name: "unsplash", url: "https://unsplash.test/norway.jpg"}
	resolver := newTestResolver([]PhotoProvider{primary, secondary}, nil)

	url := resolver.Resolve(context.Background(), "norway")

	assert.Equal(t, "https://unsplash.test/norway.jpg", url)
}

func TestResolve_EmptyResultAlsoFallsThrough(t *testing.T) {
	primary := &fakeProvider{name: "pexels", url: ""}
	secondary := &fakeProvider{name: "unsplash", url: "https://unsplash.test/norway.jpg"}
	resolver := newTestResolver([]PhotoProvider{primary, secondary}, nil)

	url := resolver.Resolve(context.Background(), "norway")

	assert.Equal(t, "https://unsplash.test/norway.jpg", url)
}

func TestResolve_OverrideBeforeFlag(t *testing.T) {
	provider := &fakeProvider{name: "pexels", err: errors.New("down")}
	flags := &fakeFlags{url: "https://flags.test/no.svg"}
	resolver := newTestResolver([]PhotoProvider{provider}, flags)
	resolver.SetOverride("norway", "https://static.test/norway.jpg")

	url := resolver.Resolve(context.Background(), "norway")

	assert.Equal(t, "https://static.test/norway.jpg", url)
}

func TestResolve_FlagFallback(t *testing.T) {
	provider := &fakeProvider{name: "pexels", err: errors.New("down")}
	flags := &fakeFlags{url: "https://flags.test/no.svg"}
	resolver := newTestResolver([]PhotoProvider{provider}, flags)

	url := resolver.Resolve(context.Background(), "norway")

	assert.Equal(t, "https://flags.test/no.svg", url)
}

func TestResolve_PlaceholderIsLastResort(t *testing.T) {
	provider := &fakeProvider{name: "pexels", err: errors.New("down")}
	flags := &fakeFlags{err: errors.New("unknown country")}
	resolver := newTestResolver([]PhotoProvider{provider}, flags)

	url := resolver.Resolve(context.Background(), "atlantis")

	assert.Equal(t, testPlaceholder, url)
}

func TestResolve_EmptyName(t *testing.T) {
	resolver := newTestResolver(nil, nil)

	assert.Equal(t, testPlaceholder, resolver.Resolve(context.Background(), ""))
}

func TestResolve_NeverFails(t *testing.T) {
	// Whatever combination of failures the tiers produce, resolution must
	// still hand back a non-empty URL.
	combos := []*Resolver{
		newTestResolver(nil, nil),
		newTestResolver([]PhotoProvider{&fakeProvider{name: "pexels", err: errors.New("boom")}}, nil),
		newTestResolver(nil, &fakeFlags{err: errors.New("boom")}),
		newTestResolver([]PhotoProvider{&fakeProvider{name: "pexels"}}, &fakeFlags{}),
	}

	for _, resolver := range combos {
		assert.NotEmpty(t, resolver.Resolve(context.Background(), "anywhere"))
	}
}

func TestResolve_CachesSuccesses(t *testing.T) {
	provider := &fakeProvider{name: "pexels", url: "https://pexels.test/norway.jpg"}
	resolver := newTestResolver([]PhotoProvider{provider}, nil)
	ctx := context.Background()

	resolver.Resolve(ctx, "norway")
	resolver.Resolve(ctx, "norway")

	assert.Equal(t, int32(1), atomic.LoadInt32(&provider.calls))
}

func TestResolve_DoesNotCachePlaceholder(t *testing.T) {
	provider := &fakeProvider{name: "pexels", err: errors.New("down")}
	resolver := newTestResolver([]PhotoProvider{provider}, nil)
	ctx := context.Background()

	assert.Equal(t, testPlaceholder, resolver.Resolve(ctx, "norway"))
	assert.Equal(t, testPlaceholder, resolver.Resolve(ctx, "norway"))

	// Both resolutions hit the provider: the placeholder is never cached,
	// so recovery is immediate once the provider comes back.
	assert.Equal(t, int32(2), atomic.LoadInt32(&provider.calls))
}

func TestEvict_ForcesRefetch(t *testing.T) {
	provider := &fakeProvider{name: "pexels", url: "https://pexels.test/norway.jpg"}
	resolver := newTestResolver([]PhotoProvider{provider}, nil)
	ctx := context.Background()

	resolver.Resolve(ctx, "norway")
	resolver.Evict(ctx, "norway")
	resolver.Resolve(ctx, "norway")

	assert.Equal(t, int32(2), atomic.LoadInt32(&provider.calls))
}

func TestResolveAll(t *testing.T) {
	provider := &fakeProvider{name: "pexels", url: "https://pexels.test/photo.jpg"}
	resolver := newTestResolver([]PhotoProvider{provider}, nil)

	got := resolver.ResolveAll(context.Background(), []string{"norway", "chad", "norway", ""})

	require.Len(t, got, 3)
	assert.Equal(t, "https://pexels.test/photo.jpg", got["norway"])
	assert.Equal(t, "https://pexels.test/photo.jpg", got["chad"])
	assert.Equal(t, testPlaceholder, got[""])
	// Duplicate names collapse to one lookup; "" short-circuits before the
	// provider.
	assert.Equal(t, int32(2), atomic.LoadInt32(&provider.calls))
}

func TestResolveAll_Empty(t *testing.T) {
	resolver := newTestResolver(nil, nil)

	got := resolver.ResolveAll(context.Background(), nil)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}
