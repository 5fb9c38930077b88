// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package catalog loads the terpene dataset and its per-language translation
// overlays from a data directory and serves immutable snapshots of both.
package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/aromadex/aromadex/internal/model"
)

// RecordsFile is the canonical-language dataset file inside the data dir.
const RecordsFile = "terpenes.json"

// OverlaysDir holds one <lang>.json overlay file per non-canonical language.
const OverlaysDir = "overlays"

// Catalog is the loaded dataset. Reload fully replaces the snapshot under a
// write lock and bumps the version, so a completed reload happens-before any
// read that observes the new version.
type Catalog struct {
	dir    string
	logger *slog.Logger

	mu       sync.RWMutex
	records  []model.Terpene
	byID     map[string]int
	overlays map[string]map[string]*model.TranslationOverlay // lang -> id -> overlay
	version  int64
}

// Open loads the catalog from dir. It fails only when the records file is
// missing or unreadable; overlay problems degrade to fewer translations.
func Open(dir string, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Catalog{dir: dir, logger: logger}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload re-reads the dataset from disk, replacing the previous snapshot.
func (c *Catalog) Reload() error {
	records, byID, err := c.loadRecords()
	if err != nil {
		return err
	}

	overlays := c.loadOverlays(byID)

	c.mu.Lock()
	c.records = records
	c.byID = byID
	c.overlays = overlays
	c.version++
	version := c.version
	c.mu.Unlock()

	c.logger.Info("catalog loaded",
		"records", len(records), "languages", len(overlays)+1, "version", version)
	return nil
}

func (c *Catalog) loadRecords() ([]model.Terpene, map[string]int, error) {
	path := filepath.Join(c.dir, RecordsFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var raw []model.Terpene
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	records := make([]model.Terpene, 0, len(raw))
	byID := make(map[string]int, len(raw))
	for _, r := range raw {
		if r.ID == "" || r.Name == "" {
			c.logger.Warn("skipping record without id or name", "id", r.ID, "name", r.Name)
			continue
		}
		if _, dup := byID[r.ID]; dup {
			c.logger.Warn("skipping record with duplicate id", "id", r.ID)
			continue
		}
		byID[r.ID] = len(records)
		records = append(records, r)
	}
	return records, byID, nil
}

// loadOverlays reads every overlays/<lang>.json file. A missing overlays
// directory means a canonical-only catalog; a broken overlay file drops that
// language with a warning instead of failing the load.
func (c *Catalog) loadOverlays(byID map[string]int) map[string]map[string]*model.TranslationOverlay {
	overlays := make(map[string]map[string]*model.TranslationOverlay)

	dir := filepath.Join(c.dir, OverlaysDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			c.logger.Warn("reading overlays directory", "dir", dir, "error", err)
		}
		return overlays
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		lang := strings.TrimSuffix(name, ".json")
		if lang == model.CanonicalLanguage {
			c.logger.Warn("ignoring overlay file for canonical language", "file", name)
			continue
		}

		byRecord, err := c.loadOverlayFile(filepath.Join(dir, name), lang, byID)
		if err != nil {
			c.logger.Warn("skipping overlay language", "language", lang, "error", err)
			continue
		}
		overlays[lang] = byRecord
	}
	return overlays
}

func (c *Catalog) loadOverlayFile(path, lang string, byID map[string]int) (map[string]*model.TranslationOverlay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw []model.TranslationOverlay
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	byRecord := make(map[string]*model.TranslationOverlay, len(raw))
	for i := range raw {
		o := &raw[i]
		if o.ID == "" {
			c.logger.Warn("skipping overlay without id", "language", lang)
			continue
		}
		if _, known := byID[o.ID]; !known {
			// Tolerated: the record may arrive in a later dataset drop.
			c.logger.Debug("overlay references unknown record", "language", lang, "id", o.ID)
		}
		byRecord[o.ID] = o
	}
	return byRecord, nil
}

// Records returns a copy of the record list in dataset order.
func (c *Catalog) Records() []model.Terpene {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Terpene, len(c.records))
	copy(out, c.records)
	return out
}

// Record returns the record with the given ID.
func (c *Catalog) Record(id string) (model.Terpene, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx, ok := c.byID[id]
	if !ok {
		return model.Terpene{}, false
	}
	return c.records[idx], true
}

// Overlay returns the overlay for (id, lang), or nil when the language is
// canonical or the record has no translation.
func (c *Catalog) Overlay(id, lang string) *model.TranslationOverlay {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.overlays[lang][id]
}

// Overlays returns the overlay map for one language. The returned map is
// shared; callers must treat it as read-only.
func (c *Catalog) Overlays(lang string) map[string]*model.TranslationOverlay {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.overlays[lang]
}

// AllOverlays returns every language's overlay map, keyed by language code.
// The returned maps are shared; callers must treat them as read-only.
func (c *Catalog) AllOverlays() map[string]map[string]*model.TranslationOverlay {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]map[string]*model.TranslationOverlay, len(c.overlays))
	for lang, m := range c.overlays {
		out[lang] = m
	}
	return out
}

// Languages returns the canonical language followed by every overlay
// language, sorted.
func (c *Catalog) Languages() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.overlays)+1)
	for lang := range c.overlays {
		out = append(out, lang)
	}
	sort.Strings(out)
	return append([]string{model.CanonicalLanguage}, out...)
}

// HasLanguage reports whether lang is the canonical language or has overlays.
func (c *Catalog) HasLanguage(lang string) bool {
	if lang == model.CanonicalLanguage {
		return true
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.overlays[lang]
	return ok
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// Version returns the reload counter, starting at 1 after Open.
func (c *Catalog) Version() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}
