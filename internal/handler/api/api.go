// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the REST API over the terpene catalog engine.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/aromadex/aromadex/internal/cache"
	"github.com/aromadex/aromadex/internal/catalog"
	"github.com/aromadex/aromadex/internal/locale"
	"github.com/aromadex/aromadex/internal/model"
	"github.com/aromadex/aromadex/internal/search"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	catalog    *catalog.Catalog
	index      *search.Index
	categories *model.CategoryIndex
	mergeCache *locale.MergeCache
	sessions   *scs.SessionManager
	logger     *slog.Logger
}

// Options configures a new Handler.
type Options struct {
	Catalog    *catalog.Catalog
	Index      *search.Index
	Categories *model.CategoryIndex
	CacheBase  cache.Cacher
	CacheTTL   time.Duration
	Sessions   *scs.SessionManager
	Logger     *slog.Logger
}

// NewHandler creates a new API handler. A nil CacheBase disables merge
// caching; merges are then computed per request, which is also fine.
func NewHandler(opts Options) *Handler {
	h := &Handler{
		catalog:    opts.Catalog,
		index:      opts.Index,
		categories: opts.Categories,
		sessions:   opts.Sessions,
		logger:     opts.Logger,
	}
	if h.categories == nil {
		h.categories = model.DefaultCategoryIndex()
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	if opts.CacheBase != nil {
		ttl := opts.CacheTTL
		if ttl == 0 {
			ttl = time.Hour
		}
		h.mergeCache = locale.NewMergeCache(opts.CacheBase, ttl)
	}
	return h
}

// MergeCache exposes the handler's merge cache for reload invalidation.
func (h *Handler) MergeCache() *locale.MergeCache {
	return h.mergeCache
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data,omitempty"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta contains result metadata.
type Meta struct {
	Total    int    `json:"total"`
	Language string `json:"language,omitempty"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	resp := ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
	WriteJSON(w, statusCode, resp)
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string, details map[string]string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message, details)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message, nil)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message, nil)
}

// merge returns the merged record for (record, lang), going through the
// merge cache when one is configured.
func (h *Handler) merge(r *http.Request, record model.Terpene, lang string) model.MergedTerpene {
	overlay := h.catalog.Overlay(record.ID, lang)
	if h.mergeCache != nil {
		return h.mergeCache.Merge(r.Context(), record, overlay, lang)
	}
	return locale.Merge(record, overlay, lang)
}
