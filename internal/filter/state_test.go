// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package filter

import (
	"reflect"
	"testing"

	"github.com/aromadex/aromadex/internal/model"
)

func testCategories() *model.CategoryIndex {
	return model.NewCategoryIndex([]model.CategoryDefinition{
		{ID: "relaxation", Members: []string{"Sedative", "Anxiety relief"}},
		{ID: "sleep", Members: []string{"Sedative", "Sleep aid"}},
		{ID: "energy", Members: []string{"Energizing", "Focus"}},
	})
}

func newTestState(t *testing.T) *State {
	t.Helper()
	return New(testCategories())
}

// requireInvariant asserts the bidirectional sync invariant: a category is
// selected exactly when at least one member tag is selected.
func requireInvariant(t *testing.T, s *State) {
	t.Helper()
	selectedEffects := make(map[string]bool)
	for _, tag := range s.SelectedEffects() {
		selectedEffects[tag] = true
	}
	selectedCategories := make(map[string]bool)
	for _, id := range s.SelectedCategories() {
		selectedCategories[id] = true
	}

	for _, def := range testCategories().All() {
		hasMember := false
		for _, tag := range def.Members {
			if selectedEffects[tag] {
				hasMember = true
				break
			}
		}
		if hasMember != selectedCategories[def.ID] {
			t.Fatalf("invariant violated for %q: member selected=%v, category selected=%v (effects=%v, categories=%v)",
				def.ID, hasMember, selectedCategories[def.ID], s.SelectedEffects(), s.SelectedCategories())
		}
	}
}

func TestToggleEffectSelectsCategory(t *testing.T) {
	s := newTestState(t)

	s.ToggleEffect("Sedative")
	requireInvariant(t, s)

	// Sedative belongs to both relaxation and sleep.
	want := []string{"relaxation", "sleep"}
	if got := s.SelectedCategories(); !reflect.DeepEqual(got, want) {
		t.Errorf("SelectedCategories = %v, want %v", got, want)
	}
}

func TestToggleEffectTwiceIsNoOp(t *testing.T) {
	s := newTestState(t)

	s.ToggleEffect("Focus")
	s.ToggleEffect("Focus")
	requireInvariant(t, s)

	if len(s.SelectedEffects()) != 0 || len(s.SelectedCategories()) != 0 {
		t.Errorf("double toggle left state: effects=%v categories=%v",
			s.SelectedEffects(), s.SelectedCategories())
	}
}

func TestToggleEffectBlankIsNoOp(t *testing.T) {
	s := newTestState(t)

	s.ToggleEffect("")
	s.ToggleEffect("   ")
	requireInvariant(t, s)

	if len(s.SelectedEffects()) != 0 {
		t.Errorf("blank toggles selected effects: %v", s.SelectedEffects())
	}
}

func TestToggleEffectUnknownTag(t *testing.T) {
	s := newTestState(t)

	// A tag outside every category selects no category but stays selected.
	s.ToggleEffect("Petrichor")
	requireInvariant(t, s)

	if got := s.SelectedEffects(); !reflect.DeepEqual(got, []string{"Petrichor"}) {
		t.Errorf("SelectedEffects = %v, want [Petrichor]", got)
	}
	if len(s.SelectedCategories()) != 0 {
		t.Errorf("SelectedCategories = %v, want empty", s.SelectedCategories())
	}
}

func TestToggleCategorySelectsAllMembers(t *testing.T) {
	s := newTestState(t)

	s.ToggleCategory("relaxation")
	requireInvariant(t, s)

	if got := s.SelectedEffects(); !reflect.DeepEqual(got, []string{"Anxiety relief", "Sedative"}) {
		t.Errorf("SelectedEffects = %v", got)
	}
	// Sedative also drags in the sleep category; the invariant demands it.
	if got := s.SelectedCategories(); !reflect.DeepEqual(got, []string{"relaxation", "sleep"}) {
		t.Errorf("SelectedCategories = %v", got)
	}
}

func TestToggleCategoryUnknownIsNoOp(t *testing.T) {
	s := newTestState(t)

	s.ToggleCategory("does-not-exist")
	requireInvariant(t, s)

	if len(s.SelectedEffects()) != 0 || len(s.SelectedCategories()) != 0 {
		t.Error("unknown category changed the selection")
	}
}

func TestToggleCategoryTwiceRestoresState(t *testing.T) {
	s := newTestState(t)

	s.ToggleCategory("energy")
	s.ToggleCategory("energy")
	requireInvariant(t, s)

	if len(s.SelectedEffects()) != 0 || len(s.SelectedCategories()) != 0 {
		t.Errorf("select+deselect not a net no-op: effects=%v categories=%v",
			s.SelectedEffects(), s.SelectedCategories())
	}
}

func TestToggleCategoryKeepsSharedTags(t *testing.T) {
	s := newTestState(t)

	s.ToggleEffect("Sleep aid")
	s.ToggleCategory("relaxation")
	requireInvariant(t, s)

	// Deselecting sleep removes Sleep aid (exclusive to it) but keeps
	// Sedative, which the still-selected relaxation category needs. The
	// sleep category then stays selected through the surviving shared tag.
	s.ToggleCategory("sleep")
	requireInvariant(t, s)

	effects := s.SelectedEffects()
	if !reflect.DeepEqual(effects, []string{"Anxiety relief", "Sedative"}) {
		t.Errorf("SelectedEffects = %v, want [Anxiety relief Sedative]", effects)
	}
	categories := s.SelectedCategories()
	if !reflect.DeepEqual(categories, []string{"relaxation", "sleep"}) {
		t.Errorf("SelectedCategories = %v, want [relaxation sleep]", categories)
	}
}

func TestSyncInvariantUnderRandomishSequence(t *testing.T) {
	s := newTestState(t)

	ops := []func(){
		func() { s.ToggleEffect("Sedative") },
		func() { s.ToggleCategory("energy") },
		func() { s.ToggleEffect("Sleep aid") },
		func() { s.ToggleCategory("relaxation") },
		func() { s.ToggleEffect("Sedative") },
		func() { s.ToggleCategory("sleep") },
		func() { s.ToggleEffect("Focus") },
		func() { s.ToggleCategory("energy") },
		func() { s.ToggleEffect("Unknown tag") },
	}
	for _, op := range ops {
		op()
		requireInvariant(t, s)
	}
}

func TestClearEffects(t *testing.T) {
	s := newTestState(t)
	s.ToggleCategory("relaxation")
	s.SetQuery("citrus")

	s.ClearEffects()
	requireInvariant(t, s)

	if len(s.SelectedEffects()) != 0 || len(s.SelectedCategories()) != 0 {
		t.Error("ClearEffects left selections")
	}
	if s.Query() != "citrus" {
		t.Error("ClearEffects must not touch the query")
	}
}

func TestClearAllKeepsMode(t *testing.T) {
	s := newTestState(t)
	s.SetMode(ModeAll)
	s.SetQuery("citrus")
	s.ToggleEffect("Focus")

	s.ClearAll()
	requireInvariant(t, s)

	if s.Query() != "" || len(s.SelectedEffects()) != 0 {
		t.Error("ClearAll left query or selections")
	}
	if s.Mode() != ModeAll {
		t.Error("ClearAll must not reset the mode, it is a view preference")
	}
}

func TestSetQueryTrims(t *testing.T) {
	s := newTestState(t)
	s.SetQuery("  lemon  ")
	if s.Query() != "lemon" {
		t.Errorf("Query = %q, want trimmed", s.Query())
	}

	// A short query is still stored verbatim for display.
	s.SetQuery("e")
	if s.Query() != "e" {
		t.Errorf("Query = %q, want %q", s.Query(), "e")
	}
}

func TestSetModeUnknownFallsBackToAny(t *testing.T) {
	s := newTestState(t)
	s.SetMode(Mode("bogus"))
	if s.Mode() != ModeAny {
		t.Errorf("Mode = %q, want any", s.Mode())
	}
}

func TestSnapshotActiveCount(t *testing.T) {
	s := newTestState(t)
	s.ToggleEffect("Sedative")
	s.ToggleEffect("Focus")
	s.SetQuery("x") // below MinQueryLength, does not count

	if got := s.Snapshot().ActiveCount(); got != 2 {
		t.Errorf("ActiveCount = %d, want 2", got)
	}

	s.SetQuery("ö") // one rune, two bytes: still below MinQueryLength
	if got := s.Snapshot().ActiveCount(); got != 2 {
		t.Errorf("ActiveCount = %d, want 2", got)
	}

	s.SetQuery("xy")
	if got := s.Snapshot().ActiveCount(); got != 3 {
		t.Errorf("ActiveCount = %d, want 3", got)
	}
}

func TestRestoreRecomputesCategories(t *testing.T) {
	// A snapshot claiming a category selection without member tags must come
	// back consistent: the categories are derived, never trusted.
	snap := Snapshot{
		Query:      "lemon",
		Effects:    []string{"Sedative", ""},
		Categories: []string{"energy"},
		Mode:       ModeAll,
	}

	s := Restore(testCategories(), snap)
	requireInvariant(t, s)

	if got := s.SelectedCategories(); !reflect.DeepEqual(got, []string{"relaxation", "sleep"}) {
		t.Errorf("SelectedCategories = %v, want derived from effects", got)
	}
	if s.Mode() != ModeAll || s.Query() != "lemon" {
		t.Error("Restore dropped mode or query")
	}
}

func TestNewWithNilIndex(t *testing.T) {
	s := New(nil)
	s.ToggleEffect("Sedative")
	s.ToggleCategory("relaxation")

	if got := s.SelectedEffects(); !reflect.DeepEqual(got, []string{"Sedative"}) {
		t.Errorf("SelectedEffects = %v", got)
	}
	if len(s.SelectedCategories()) != 0 {
		t.Error("nil catalog must never select categories")
	}
}
