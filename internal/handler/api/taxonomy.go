// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"sort"

	"github.com/aromadex/aromadex/internal/model"
	"github.com/aromadex/aromadex/internal/util"
)

// CategoryAPIResponse represents an effect category in API responses.
type CategoryAPIResponse struct {
	ID      string   `json:"id"`
	Slug    string   `json:"slug"`
	Members []string `json:"members"`
}

// EffectAPIResponse represents one effect tag and how many records carry it.
type EffectAPIResponse struct {
	Tag         string `json:"tag"`
	Slug        string `json:"slug"`
	RecordCount int    `json:"record_count"`
}

// ListCategories handles GET /api/v1/categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	defs := h.categories.All()
	results := make([]CategoryAPIResponse, 0, len(defs))
	for _, d := range defs {
		results = append(results, CategoryAPIResponse{
			ID:      d.ID,
			Slug:    util.Slugify(d.ID),
			Members: d.Members,
		})
	}
	WriteSuccess(w, results, &Meta{Total: len(results)})
}

// ListEffects handles GET /api/v1/effects
// Returns the effect vocabulary actually present in the catalog, with usage
// counts, sorted by tag. Category membership is not required; unknown tags
// from the dataset appear too.
func (h *Handler) ListEffects(w http.ResponseWriter, r *http.Request) {
	counts := make(map[string]int)
	for _, record := range h.catalog.Records() {
		for _, tag := range record.Effects {
			counts[tag]++
		}
	}

	tags := make([]string, 0, len(counts))
	for tag := range counts {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	results := make([]EffectAPIResponse, 0, len(tags))
	for _, tag := range tags {
		results = append(results, EffectAPIResponse{
			Tag:         tag,
			Slug:        util.Slugify(tag),
			RecordCount: counts[tag],
		})
	}
	WriteSuccess(w, results, &Meta{Total: len(results)})
}

// ListLanguages handles GET /api/v1/languages
func (h *Handler) ListLanguages(w http.ResponseWriter, r *http.Request) {
	codes := h.catalog.Languages()
	results := make([]model.Language, 0, len(codes))
	for _, code := range codes {
		results = append(results, model.LanguageFor(code))
	}
	WriteSuccess(w, results, &Meta{Total: len(results)})
}
