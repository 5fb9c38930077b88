// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/aromadex/aromadex/internal/model"
)

const testRecordsJSON = `[
  {
    "id": "myrcene",
    "name": "Myrcene",
    "aroma": "Earthy, musky",
    "effects": ["Sedative", "Muscle relaxant"]
  },
  {
    "id": "limonene",
    "name": "Limonene",
    "aroma": "Citrus",
    "effects": ["Energizing", "Mood elevation"]
  }
]`

const testGermanOverlayJSON = `[
  {
    "id": "limonene",
    "name": "Limonen",
    "aroma": "Zitrus",
    "effects": ["Anregend", "Stimmungsaufhellend"]
  }
]`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// writeDataDir lays out a catalog data directory in a temp dir.
func writeDataDir(t *testing.T, records string, overlays map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	if records != "" {
		if err := os.WriteFile(filepath.Join(dir, RecordsFile), []byte(records), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if len(overlays) > 0 {
		overlayDir := filepath.Join(dir, OverlaysDir)
		if err := os.Mkdir(overlayDir, 0o755); err != nil {
			t.Fatal(err)
		}
		for lang, content := range overlays {
			path := filepath.Join(overlayDir, lang+".json")
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}
		}
	}
	return dir
}

func TestOpenLoadsRecordsAndOverlays(t *testing.T) {
	dir := writeDataDir(t, testRecordsJSON, map[string]string{"de": testGermanOverlayJSON})

	c, err := Open(dir, quietLogger())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
	if c.Version() != 1 {
		t.Errorf("Version = %d, want 1", c.Version())
	}

	record, ok := c.Record("limonene")
	if !ok || record.Name != "Limonene" {
		t.Errorf("Record(limonene) = %+v, %v", record, ok)
	}

	overlay := c.Overlay("limonene", "de")
	if overlay == nil || overlay.Name == nil || *overlay.Name != "Limonen" {
		t.Errorf("Overlay(limonene, de) = %+v", overlay)
	}
	if c.Overlay("myrcene", "de") != nil {
		t.Error("expected no overlay for untranslated record")
	}
	if c.Overlay("limonene", "en") != nil {
		t.Error("canonical language must have no overlays")
	}
}

func TestOpenMissingRecordsFile(t *testing.T) {
	dir := t.TempDir()

	if _, err := Open(dir, quietLogger()); err == nil {
		t.Fatal("expected error for missing records file")
	}
}

func TestOpenWithoutOverlaysDir(t *testing.T) {
	dir := writeDataDir(t, testRecordsJSON, nil)

	c, err := Open(dir, quietLogger())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if got := c.Languages(); !reflect.DeepEqual(got, []string{model.CanonicalLanguage}) {
		t.Errorf("Languages = %v, want canonical only", got)
	}
}

func TestLoadRecordsSkipsInvalid(t *testing.T) {
	records := `[
	  {"id": "myrcene", "name": "Myrcene"},
	  {"id": "", "name": "Mystery"},
	  {"id": "anonymous", "name": ""},
	  {"id": "myrcene", "name": "Myrcene again"}
	]`
	dir := writeDataDir(t, records, nil)

	c, err := Open(dir, quietLogger())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1 (invalid and duplicate records skipped)", c.Len())
	}
	if record, _ := c.Record("myrcene"); record.Name != "Myrcene" {
		t.Errorf("duplicate id must keep the first record, got %q", record.Name)
	}
}

func TestBrokenOverlayDropsLanguageOnly(t *testing.T) {
	dir := writeDataDir(t, testRecordsJSON, map[string]string{
		"de": testGermanOverlayJSON,
		"fr": `{not json`,
	})

	c, err := Open(dir, quietLogger())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if !c.HasLanguage("de") {
		t.Error("intact overlay language must survive")
	}
	if c.HasLanguage("fr") {
		t.Error("broken overlay language must be dropped")
	}
}

func TestCanonicalOverlayFileIgnored(t *testing.T) {
	dir := writeDataDir(t, testRecordsJSON, map[string]string{
		"en": `[{"id": "limonene", "name": "Should not load"}]`,
		"de": testGermanOverlayJSON,
	})

	c, err := Open(dir, quietLogger())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if c.Overlay("limonene", "en") != nil {
		t.Error("en overlay file must be ignored")
	}
	if got := c.Languages(); !reflect.DeepEqual(got, []string{"en", "de"}) {
		t.Errorf("Languages = %v, want [en de]", got)
	}
}

func TestOverlayForUnknownRecordTolerated(t *testing.T) {
	dir := writeDataDir(t, testRecordsJSON, map[string]string{
		"de": `[{"id": "phantom", "name": "Phantom"}]`,
	})

	c, err := Open(dir, quietLogger())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	// The overlay is kept; it simply never merges until the record appears.
	if c.Overlay("phantom", "de") == nil {
		t.Error("overlay for unknown record should be retained")
	}
}

func TestReloadReplacesSnapshotAndBumpsVersion(t *testing.T) {
	dir := writeDataDir(t, testRecordsJSON, nil)

	c, err := Open(dir, quietLogger())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	updated := `[{"id": "pinene", "name": "Pinene", "effects": ["Focus"]}]`
	if err := os.WriteFile(filepath.Join(dir, RecordsFile), []byte(updated), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := c.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	if c.Version() != 2 {
		t.Errorf("Version = %d, want 2", c.Version())
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
	if _, ok := c.Record("limonene"); ok {
		t.Error("old records must be gone after reload")
	}
	if _, ok := c.Record("pinene"); !ok {
		t.Error("new record missing after reload")
	}
}

func TestReloadFailureKeepsOldSnapshot(t *testing.T) {
	dir := writeDataDir(t, testRecordsJSON, nil)

	c, err := Open(dir, quietLogger())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, RecordsFile), []byte(`{broken`), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := c.Reload(); err == nil {
		t.Fatal("expected Reload to fail on broken records file")
	}

	// The previous snapshot stays live and the version does not move.
	if c.Version() != 1 {
		t.Errorf("Version = %d, want 1 after failed reload", c.Version())
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2 after failed reload", c.Len())
	}
}

func TestRecordsReturnsCopyInOrder(t *testing.T) {
	dir := writeDataDir(t, testRecordsJSON, nil)

	c, err := Open(dir, quietLogger())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	records := c.Records()
	if len(records) != 2 || records[0].ID != "myrcene" || records[1].ID != "limonene" {
		t.Fatalf("Records order = %v", records)
	}

	records[0].Name = "Mutated"
	if record, _ := c.Record("myrcene"); record.Name != "Myrcene" {
		t.Error("mutating the returned slice must not affect the catalog")
	}
}

func TestLanguagesSorted(t *testing.T) {
	dir := writeDataDir(t, testRecordsJSON, map[string]string{
		"ru": `[]`,
		"de": `[]`,
		"fr": `[]`,
	})

	c, err := Open(dir, quietLogger())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	want := []string{"en", "de", "fr", "ru"}
	if got := c.Languages(); !reflect.DeepEqual(got, want) {
		t.Errorf("Languages = %v, want %v", got, want)
	}
}
