// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package locale

import (
	"context"
	"time"

	"github.com/aromadex/aromadex/internal/cache"
	"github.com/aromadex/aromadex/internal/model"
)

// MergeCache caches merged records keyed by (record ID, language). It is an
// explicit object owned by the caller, not package-level state; invalidate it
// wholesale whenever the overlay data is reloaded.
type MergeCache struct {
	cache *cache.TypedCache[model.MergedTerpene]
}

// NewMergeCache creates a merge cache on top of the given backend.
func NewMergeCache(backend cache.Cacher, ttl time.Duration) *MergeCache {
	return &MergeCache{
		cache: cache.NewTypedCache[model.MergedTerpene](backend, ttl),
	}
}

func mergeKey(id, lang string) string {
	return "merge:" + lang + ":" + id
}

// Get returns the cached merge for (id, lang), if present.
func (c *MergeCache) Get(ctx context.Context, id, lang string) (*model.MergedTerpene, bool) {
	return c.cache.Get(ctx, mergeKey(id, lang))
}

// Merge returns the merged record for (record, lang), computing and caching
// it on a miss. Merge itself is cheap; the cache exists so API handlers can
// serve hot records without re-marshalling the same merge result.
func (c *MergeCache) Merge(ctx context.Context, record model.Terpene, overlay *model.TranslationOverlay, lang string) model.MergedTerpene {
	merged, err := c.cache.GetOrSet(ctx, mergeKey(record.ID, lang), func() (*model.MergedTerpene, error) {
		m := Merge(record, overlay, lang)
		return &m, nil
	})
	if err != nil || merged == nil {
		// The compute function never fails; this covers backend errors only.
		return Merge(record, overlay, lang)
	}
	return *merged
}

// Invalidate drops every cached merge. Call after an overlay reload.
func (c *MergeCache) Invalidate(ctx context.Context) error {
	return c.cache.Clear(ctx)
}

// InvalidateRecord drops the cached merges for one record across languages.
func (c *MergeCache) InvalidateRecord(ctx context.Context, id string, langs []string) {
	for _, lang := range langs {
		_ = c.cache.Delete(ctx, mergeKey(id, lang))
	}
}
