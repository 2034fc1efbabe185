// Package images resolves a display image URL for a country or city name.
//
// Resolution never fails: every miss falls through the chain
// cache -> photo providers -> flag image -> static placeholder.
package images

import (
	"context"
	"sync"
	"time"

	"country-explorer/internal/common/logger"
	"country-explorer/internal/common/metrics"
)

// FlagLookup resolves an entity name to its flag image URL. Implemented by
// the country metadata client.
type FlagLookup interface {
	FlagURL(ctx context.Context, name string) (string, error)
}

type Resolver struct {
	cache       Cache
	providers   []PhotoProvider
	flags       FlagLookup
	overrides   map[string]string
	placeholder string
	photoTTL    time.Duration
	logger      logger.Logger
}

func NewResolver(
	cache Cache,
	providers []PhotoProvider,
	flags FlagLookup,
	placeholder string,
	photoTTL time.Duration,
	log logger.Logger,
) *Resolver {
	return &Resolver{
		cache:       cache,
		providers:   providers,
		flags:       flags,
		overrides:   make(map[string]string),
		placeholder: placeholder,
		photoTTL:    photoTTL,
		logger:      log,
	}
}

// SetOverride pins a static image for one entity, tried before the flag
// tier when the photo providers come up empty.
func (r *Resolver) SetOverride(name, url string) {
	r.overrides[name] = url
}

// Resolve returns a usable image URL for the entity name. It always
// succeeds; the worst case is the static placeholder.
func (r *Resolver) Resolve(ctx context.Context, name string) string {
	if name == "" {
		return r.placeholder
	}

	if cached, ok := r.cache.Get(ctx, name); ok {
		metrics.ImageCacheHits.Inc()
		return cached
	}
	metrics.ImageCacheMisses.Inc()

	query := name + " landscape architecture landmark"
	for _, provider := range r.providers {
		url, err := provider.SearchPhoto(ctx, query)
		if err != nil {
			r.logger.Warn("photo provider failed", map[string]interface{}{
				"provider": provider.Name(),
				"entity":   name,
				"error":    err.Error(),
			})
			continue
		}
		if url != "" {
			r.cache.Set(ctx, name, url, r.photoTTL)
			return url
		}
	}

	if override, ok := r.overrides[name]; ok {
		metrics.ImageFallbacks.WithLabelValues("override").Inc()
		r.cache.Set(ctx, name, override, r.photoTTL)
		return override
	}

	if r.flags != nil {
		if flagURL, err := r.flags.FlagURL(ctx, name); err == nil && flagURL != "" {
			metrics.ImageFallbacks.WithLabelValues("flag").Inc()
			r.cache.Set(ctx, name, flagURL, r.photoTTL)
			return flagURL
		}
	}

	metrics.ImageFallbacks.WithLabelValues("placeholder").Inc()
	return r.placeholder
}

// Evict drops the cached entry for an entity so the next resolution
// refetches.
func (r *Resolver) Evict(ctx context.Context, name string) {
	r.cache.Delete(ctx, name)
}

// ResolveAll resolves images for all names concurrently, one lookup per
// distinct entity, and joins best-effort: an individual lookup can only
// produce its own fallback, never fail the batch. Result order is
// irrelevant; the map is keyed by name.
func (r *Resolver) ResolveAll(ctx context.Context, names []string) map[string]string {
	out := make(map[string]string, len(names))

	seen := make(map[string]bool, len(names))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			url := r.Resolve(ctx, name)
			mu.Lock()
			out[name] = url
			mu.Unlock()
		}(name)
	}
	wg.Wait()

	return out
}
