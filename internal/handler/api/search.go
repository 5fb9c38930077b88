// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/aromadex/aromadex/internal/middleware"
)

// Search handles GET /api/v1/search?q=...
// The index spans both language spaces, so a German query finds records whose
// overlay matches even while the UI language is English. An empty query
// returns an empty result set, not the whole catalog.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	lang := middleware.GetLanguage(r)
	renderHTML := r.URL.Query().Get("render") == "html"

	ids := h.index.Search(query)

	results := make([]TerpeneResponse, 0, len(ids))
	for _, id := range ids {
		record, ok := h.catalog.Record(id)
		if !ok {
			// Index lag after a reload; skip rather than fail the response.
			h.logger.Debug("indexed record missing from catalog", "id", id)
			continue
		}
		results = append(results, h.terpeneResponse(r, record, lang, renderHTML))
	}

	WriteSuccess(w, results, &Meta{Total: len(results), Language: lang})
}
