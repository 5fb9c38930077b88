// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package search

import (
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/aromadex/aromadex/internal/model"
)

// entry is one indexed record: the raw lowercase text blob and its
// diacritic-folded form used for matching.
type entry struct {
	id         string
	raw        string
	normalized string
}

// Index answers multi-term substring queries over both language spaces of the
// catalog: every canonical translatable field plus every field any overlay
// supplies. Build fully replaces the index; callers must ensure a completed
// Build happens-before any Search that depends on it.
type Index struct {
	mu      sync.RWMutex
	entries []entry
	version int
	logger  *slog.Logger
}

// New creates an empty index. Searching before the first Build returns no
// results rather than failing.
func New(logger *slog.Logger) *Index {
	if logger == nil {
		logger = slog.Default()
	}
	return &Index{logger: logger}
}

// Build indexes the given records against the overlay maps, replacing any
// prior index state. overlays maps language code to per-record overlays; all
// supplied languages are folded into one searchable blob per record.
func (i *Index) Build(records []model.Terpene, overlays map[string]map[string]*model.TranslationOverlay) {
	entries := make([]entry, 0, len(records))
	for _, r := range records {
		blob := recordBlob(r, overlays)
		entries = append(entries, entry{
			id:         r.ID,
			raw:        blob,
			normalized: Normalize(blob),
		})
	}

	i.mu.Lock()
	i.entries = entries
	i.version++
	version := i.version
	i.mu.Unlock()

	i.logger.Debug("search index rebuilt", "records", len(entries), "version", version)
}

// Search returns, in input order, the IDs of every record whose normalized
// text contains every normalized query term. An empty or whitespace-only
// query returns an empty result: this is a lookup primitive, not a
// filter-clearing primitive. Searching an index that was never built is a
// logged no-op returning no results.
func (i *Index) Search(query string) []string {
	terms := Terms(query)
	if len(terms) == 0 {
		return []string{}
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	if len(i.entries) == 0 {
		i.logger.Debug("search on empty index", "query", query)
		return []string{}
	}

	matches := make([]string, 0, len(i.entries))
	for _, e := range i.entries {
		if matchesAll(e.normalized, terms) {
			matches = append(matches, e.id)
		}
	}
	return matches
}

// Len returns the number of indexed records.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.entries)
}

// Version returns the build counter, incremented on every Build.
func (i *Index) Version() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.version
}

// Clear resets the index to empty; subsequent searches return nothing until
// the next Build.
func (i *Index) Clear() {
	i.mu.Lock()
	i.entries = nil
	i.version++
	i.mu.Unlock()
}

// matchesAll reports whether every term is a substring of text.
func matchesAll(text string, terms []string) bool {
	for _, t := range terms {
		if !strings.Contains(text, t) {
			return false
		}
	}
	return true
}

// recordBlob concatenates every translatable canonical field and every field
// any overlay supplies into one lowercase blob. Chemistry is excluded.
func recordBlob(r model.Terpene, overlays map[string]map[string]*model.TranslationOverlay) string {
	var b strings.Builder
	add := func(s string) {
		if s == "" {
			return
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s)
	}
	addAll := func(ss []string) {
		for _, s := range ss {
			add(s)
		}
	}

	add(r.Name)
	add(r.Description)
	add(r.Aroma)
	add(r.Taste)
	addAll(r.Effects)
	addAll(r.TherapeuticProperties)
	addAll(r.Sources)
	add(r.NotableDifferences)

	// Stable language order keeps rebuilt blobs byte-identical.
	langs := make([]string, 0, len(overlays))
	for lang := range overlays {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	for _, lang := range langs {
		o := overlays[lang][r.ID]
		if o == nil {
			continue
		}
		if o.Name != nil {
			add(*o.Name)
		}
		if o.Description != nil {
			add(*o.Description)
		}
		if o.Aroma != nil {
			add(*o.Aroma)
		}
		if o.Taste != nil {
			add(*o.Taste)
		}
		addAll(o.Effects)
		addAll(o.TherapeuticProperties)
		addAll(o.Sources)
		if o.NotableDifferences != nil {
			add(*o.NotableDifferences)
		}
	}

	return strings.ToLower(b.String())
}
