// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"

	"github.com/aromadex/aromadex/internal/filter"
	"github.com/aromadex/aromadex/internal/middleware"
)

// sessionKeyFilterState is the session key the filter snapshot is stored under.
const sessionKeyFilterState = "filter_state"

// FilterStateResponse is the read-only filter view returned to the UI.
type FilterStateResponse struct {
	filter.Snapshot
	ActiveCount int `json:"active_count"`
}

func filterStateResponse(snap filter.Snapshot) FilterStateResponse {
	return FilterStateResponse{Snapshot: snap, ActiveCount: snap.ActiveCount()}
}

// loadFilterState restores the session's filter state, or a fresh one for a
// new session. Restoring recomputes the category selection, so a stale
// snapshot can never violate the category/effect invariant.
func (h *Handler) loadFilterState(r *http.Request) *filter.State {
	raw := h.sessions.GetString(r.Context(), sessionKeyFilterState)
	if raw == "" {
		return filter.New(h.categories)
	}

	var snap filter.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		h.logger.Warn("discarding unreadable filter state", "error", err)
		return filter.New(h.categories)
	}
	return filter.Restore(h.categories, snap)
}

func (h *Handler) saveFilterState(r *http.Request, state *filter.State) {
	data, err := json.Marshal(state.Snapshot())
	if err != nil {
		h.logger.Error("marshaling filter state", "error", err)
		return
	}
	h.sessions.Put(r.Context(), sessionKeyFilterState, string(data))
}

// GetFilters handles GET /api/v1/filters
func (h *Handler) GetFilters(w http.ResponseWriter, r *http.Request) {
	state := h.loadFilterState(r)
	WriteSuccess(w, filterStateResponse(state.Snapshot()), nil)
}

// SetFilterQuery handles PUT /api/v1/filters/query
// The query is stored verbatim (trimmed); whether it participates in
// matching is decided at evaluation time by its length.
func (h *Handler) SetFilterQuery(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "invalid JSON body", nil)
		return
	}

	state := h.loadFilterState(r)
	state.SetQuery(req.Query)
	h.saveFilterState(r, state)
	WriteSuccess(w, filterStateResponse(state.Snapshot()), nil)
}

// ToggleFilterEffect handles POST /api/v1/filters/effects/toggle
func (h *Handler) ToggleFilterEffect(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tag string `json:"tag"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "invalid JSON body", nil)
		return
	}

	state := h.loadFilterState(r)
	state.ToggleEffect(req.Tag)
	h.saveFilterState(r, state)
	WriteSuccess(w, filterStateResponse(state.Snapshot()), nil)
}

// ToggleFilterCategory handles POST /api/v1/filters/categories/toggle
// Unknown category IDs succeed without changing the selection.
func (h *Handler) ToggleFilterCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "invalid JSON body", nil)
		return
	}

	state := h.loadFilterState(r)
	state.ToggleCategory(req.ID)
	h.saveFilterState(r, state)
	WriteSuccess(w, filterStateResponse(state.Snapshot()), nil)
}

// SetFilterMode handles PUT /api/v1/filters/mode
func (h *Handler) SetFilterMode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode filter.Mode `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "invalid JSON body", nil)
		return
	}
	if req.Mode != filter.ModeAny && req.Mode != filter.ModeAll {
		WriteBadRequest(w, "mode must be \"any\" or \"all\"", nil)
		return
	}

	state := h.loadFilterState(r)
	state.SetMode(req.Mode)
	h.saveFilterState(r, state)
	WriteSuccess(w, filterStateResponse(state.Snapshot()), nil)
}

// ClearFilters handles DELETE /api/v1/filters
// Clears the query and every effect/category selection; the mode is a view
// preference and survives.
func (h *Handler) ClearFilters(w http.ResponseWriter, r *http.Request) {
	state := h.loadFilterState(r)
	state.ClearAll()
	h.saveFilterState(r, state)
	WriteSuccess(w, filterStateResponse(state.Snapshot()), nil)
}

// ClearFilterQuery handles DELETE /api/v1/filters/query
func (h *Handler) ClearFilterQuery(w http.ResponseWriter, r *http.Request) {
	state := h.loadFilterState(r)
	state.ClearQuery()
	h.saveFilterState(r, state)
	WriteSuccess(w, filterStateResponse(state.Snapshot()), nil)
}

// ClearFilterEffects handles DELETE /api/v1/filters/effects
func (h *Handler) ClearFilterEffects(w http.ResponseWriter, r *http.Request) {
	state := h.loadFilterState(r)
	state.ClearEffects()
	h.saveFilterState(r, state)
	WriteSuccess(w, filterStateResponse(state.Snapshot()), nil)
}

// FilterResults handles GET /api/v1/filters/results
// Applies the session's filter state to the catalog and returns the matching
// records merged for the resolved language, in dataset order.
func (h *Handler) FilterResults(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	renderHTML := r.URL.Query().Get("render") == "html"

	state := h.loadFilterState(r)
	matched := state.Filter(h.catalog.Records())

	results := make([]TerpeneResponse, 0, len(matched))
	for _, record := range matched {
		results = append(results, h.terpeneResponse(r, record, lang, renderHTML))
	}

	WriteSuccess(w, results, &Meta{Total: len(results), Language: lang})
}
