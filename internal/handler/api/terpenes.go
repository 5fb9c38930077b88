// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aromadex/aromadex/internal/middleware"
	"github.com/aromadex/aromadex/internal/model"
	"github.com/aromadex/aromadex/internal/render"
	"github.com/aromadex/aromadex/internal/util"
)

// TerpeneResponse represents a terpene in API responses.
type TerpeneResponse struct {
	model.MergedTerpene
	Slug            string `json:"slug"`
	DescriptionHTML string `json:"description_html,omitempty"`
}

func (h *Handler) terpeneResponse(r *http.Request, record model.Terpene, lang string, renderHTML bool) TerpeneResponse {
	merged := h.merge(r, record, lang)
	resp := TerpeneResponse{
		MergedTerpene: merged,
		// Slugs come from the canonical name so links are language-stable.
		Slug: util.Slugify(record.Name),
	}
	if renderHTML {
		html, err := render.Markdown(merged.Description)
		if err != nil {
			h.logger.Warn("description render failed", "id", record.ID, "error", err)
		} else {
			resp.DescriptionHTML = html
		}
	}
	return resp
}

// ListTerpenes handles GET /api/v1/terpenes
// Returns every record merged for the resolved language, in dataset order.
// With ?filtered=1 the session's filter state is applied first.
func (h *Handler) ListTerpenes(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	renderHTML := r.URL.Query().Get("render") == "html"

	records := h.catalog.Records()
	if r.URL.Query().Get("filtered") == "1" {
		state := h.loadFilterState(r)
		records = state.Filter(records)
	}

	results := make([]TerpeneResponse, 0, len(records))
	for _, record := range records {
		results = append(results, h.terpeneResponse(r, record, lang, renderHTML))
	}

	WriteSuccess(w, results, &Meta{Total: len(results), Language: lang})
}

// GetTerpene handles GET /api/v1/terpenes/{id}
func (h *Handler) GetTerpene(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	record, ok := h.catalog.Record(id)
	if !ok {
		WriteNotFound(w, "terpene not found")
		return
	}

	lang := middleware.GetLanguage(r)
	renderHTML := r.URL.Query().Get("render") == "html"
	WriteSuccess(w, h.terpeneResponse(r, record, lang, renderHTML), &Meta{Total: 1, Language: lang})
}
