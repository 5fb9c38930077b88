// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/aromadex/aromadex/internal/cache"
	"github.com/aromadex/aromadex/internal/catalog"
	"github.com/aromadex/aromadex/internal/middleware"
	"github.com/aromadex/aromadex/internal/model"
	"github.com/aromadex/aromadex/internal/search"
)

const apiTestRecords = `[
  {
    "id": "myrcene",
    "name": "Myrcene",
    "description": "The most common terpene in cannabis.",
    "aroma": "Earthy, musky",
    "taste": "Slightly bitter",
    "effects": ["Sedative", "Anxiety relief"],
    "therapeutic_properties": ["Anti-inflammatory"]
  },
  {
    "id": "limonene",
    "name": "Limonene",
    "description": "A **citrus** scented terpene.",
    "aroma": "Citrus, fresh lemon peel",
    "taste": "Citrus",
    "effects": ["Energizing", "Mood elevation"],
    "therapeutic_properties": ["Anti-anxiety"]
  }
]`

const apiTestGermanOverlay = `[
  {
    "id": "limonene",
    "name": "Limonen",
    "description": "Ein nach Zitrus duftendes Terpen.",
    "aroma": "Zitrus, frische Zitronenschale",
    "effects": ["Anregend", "Stimmungsaufhellend"]
  }
]`

var apiTestCategories = model.NewCategoryIndex([]model.CategoryDefinition{
	{ID: "relaxation", Members: []string{"Sedative", "Anxiety relief"}},
	{ID: "energy", Members: []string{"Energizing"}},
})

// newTestServer builds a full API stack over a temp-dir catalog: sessions,
// language middleware, merge cache, routes. The returned client carries
// cookies so session state survives across requests.
func newTestServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, catalog.RecordsFile), []byte(apiTestRecords), 0o644); err != nil {
		t.Fatal(err)
	}
	overlayDir := filepath.Join(dir, catalog.OverlaysDir)
	if err := os.Mkdir(overlayDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(overlayDir, "de.json"), []byte(apiTestGermanOverlay), 0o644); err != nil {
		t.Fatal(err)
	}

	cat, err := catalog.Open(dir, logger)
	if err != nil {
		t.Fatalf("opening test catalog: %v", err)
	}

	index := search.New(logger)
	index.Build(cat.Records(), cat.AllOverlays())

	backend := cache.NewSimpleMemoryCache(time.Hour)
	t.Cleanup(func() { _ = backend.Close() })

	sessions := scs.New()
	sessions.Cookie.Secure = false

	h := NewHandler(Options{
		Catalog:    cat,
		Index:      index,
		Categories: apiTestCategories,
		CacheBase:  backend,
		Sessions:   sessions,
		Logger:     logger,
	})

	r := chi.NewRouter()
	r.Use(sessions.LoadAndSave)
	r.Use(middleware.Language(cat, "en"))
	r.Mount("/api/v1", h.Routes())

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return srv, &http.Client{Jar: jar}
}

// doJSON performs a request with an optional JSON body and decodes the JSON
// response into out (when out is non-nil).
func doJSON(t *testing.T, client *http.Client, method, url string, body any, out any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatal(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decoding %s %s response: %v", method, url, err)
		}
	}
	return resp
}

// terpeneListResponse mirrors the wire shape of list endpoints for decoding.
type terpeneListResponse struct {
	Data []TerpeneResponse `json:"data"`
	Meta *Meta             `json:"meta"`
}

// filterStateWire mirrors the filter state endpoints' response for decoding.
type filterStateWire struct {
	Data struct {
		Query       string   `json:"query"`
		Effects     []string `json:"effects"`
		Categories  []string `json:"categories"`
		Mode        string   `json:"mode"`
		ActiveCount int      `json:"active_count"`
	} `json:"data"`
}
