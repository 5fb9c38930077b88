// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes mounts every API endpoint on a fresh router. The caller wraps it
// with session, language, and rate-limit middleware.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/terpenes", h.ListTerpenes)
	r.Get("/terpenes/{id}", h.GetTerpene)
	r.Get("/search", h.Search)
	r.Get("/categories", h.ListCategories)
	r.Get("/effects", h.ListEffects)
	r.Get("/languages", h.ListLanguages)

	r.Route("/filters", func(r chi.Router) {
		r.Get("/", h.GetFilters)
		r.Delete("/", h.ClearFilters)
		r.Get("/results", h.FilterResults)
		r.Put("/query", h.SetFilterQuery)
		r.Delete("/query", h.ClearFilterQuery)
		r.Post("/effects/toggle", h.ToggleFilterEffect)
		r.Delete("/effects", h.ClearFilterEffects)
		r.Post("/categories/toggle", h.ToggleFilterCategory)
		r.Put("/mode", h.SetFilterMode)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]any{
			"status":  "ok",
			"records": h.catalog.Len(),
		})
	})

	return r
}
