// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package filter owns the per-session selection state of the catalog browser:
// the free-text query, the selected effect tags and categories, and the
// ANY/ALL combination mode. Category and tag selections are kept mutually
// consistent: a category is selected exactly when at least one of its member
// tags is selected.
package filter

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/aromadex/aromadex/internal/model"
)

// Mode selects how explicitly chosen effect tags combine during matching.
// Category-derived matches are always OR regardless of mode.
type Mode string

// Effect combination modes.
const (
	ModeAny Mode = "any"
	ModeAll Mode = "all"
)

// MinQueryLength is the minimum stored-query length, in runes, that
// participates in matching. Shorter queries are kept verbatim for display but
// are treated as "no query" during evaluation.
const MinQueryLength = 2

// State holds one session's filter selections. It is not safe for concurrent
// mutation; the owner must serialize mutator calls. Matches and Filter only
// read and may run concurrently with each other.
type State struct {
	categories *model.CategoryIndex

	query    string
	effects  map[string]struct{}
	selected map[string]struct{} // category IDs, derived from effects
	mode     Mode
}

// New creates an empty filter state over the given category catalog.
// A nil index behaves like a catalog without categories.
func New(categories *model.CategoryIndex) *State {
	if categories == nil {
		categories = model.NewCategoryIndex(nil)
	}
	return &State{
		categories: categories,
		effects:    make(map[string]struct{}),
		selected:   make(map[string]struct{}),
		mode:       ModeAny,
	}
}

// SetQuery trims and stores the query verbatim. Storing never filters; the
// stored text only participates in Matches once it reaches MinQueryLength.
func (s *State) SetQuery(text string) {
	s.query = strings.TrimSpace(text)
}

// Query returns the stored (trimmed) query text.
func (s *State) Query() string {
	return s.query
}

// Mode returns the current effect combination mode.
func (s *State) Mode() Mode {
	return s.mode
}

// SetMode sets the effect combination mode. Unknown values fall back to ANY.
func (s *State) SetMode(mode Mode) {
	if mode != ModeAll {
		mode = ModeAny
	}
	s.mode = mode
}

// ToggleEffect flips membership of tag in the selected effects. Empty or
// whitespace-only tags are a no-op. Selected categories are recomputed from
// scratch afterwards, so categories gain selection when their first member
// arrives and lose it when their last member leaves.
func (s *State) ToggleEffect(tag string) {
	if strings.TrimSpace(tag) == "" {
		return
	}

	if _, ok := s.effects[tag]; ok {
		delete(s.effects, tag)
	} else {
		s.effects[tag] = struct{}{}
	}

	s.syncCategories()
}

// ToggleCategory selects or deselects a whole category. Selecting adds every
// member tag; deselecting removes every member tag and then recomputes, so a
// tag shared with another still-selected category stays selected. A category
// ID with no definition is a no-op on the selection.
func (s *State) ToggleCategory(id string) {
	def, ok := s.categories.Get(id)
	if !ok {
		return
	}

	if _, isSelected := s.selected[id]; isSelected {
		for _, tag := range def.Members {
			if s.neededByOtherSelected(tag, id) {
				continue
			}
			delete(s.effects, tag)
		}
		s.syncCategories()
		return
	}

	for _, tag := range def.Members {
		s.effects[tag] = struct{}{}
	}
	s.syncCategories()
}

// ClearEffects drops every selected effect and, via recomputation, every
// selected category.
func (s *State) ClearEffects() {
	s.effects = make(map[string]struct{})
	s.syncCategories()
}

// ClearQuery drops the stored query.
func (s *State) ClearQuery() {
	s.query = ""
}

// ClearAll resets query and effect/category selections. The combination mode
// is a view preference and survives.
func (s *State) ClearAll() {
	s.ClearQuery()
	s.ClearEffects()
}

// neededByOtherSelected reports whether tag belongs to a selected category
// other than except. Such tags survive a category deselect.
func (s *State) neededByOtherSelected(tag, except string) bool {
	for id := range s.selected {
		if id == except {
			continue
		}
		if def, ok := s.categories.Get(id); ok && def.Contains(tag) {
			return true
		}
	}
	return false
}

// syncCategories recomputes the selected category set from scratch as the set
// of categories with at least one member tag currently selected. Recomputing
// rather than patching keeps the category/effect invariant immune to drift.
func (s *State) syncCategories() {
	selected := make(map[string]struct{})
	for _, def := range s.categories.All() {
		for _, tag := range def.Members {
			if _, ok := s.effects[tag]; ok {
				selected[def.ID] = struct{}{}
				break
			}
		}
	}
	s.selected = selected
}

// HasSelections reports whether any effect or category is selected.
func (s *State) HasSelections() bool {
	return len(s.effects) > 0 || len(s.selected) > 0
}

// SelectedEffects returns the selected effect tags, sorted.
func (s *State) SelectedEffects() []string {
	return sortedKeys(s.effects)
}

// SelectedCategories returns the selected category IDs, sorted.
func (s *State) SelectedCategories() []string {
	return sortedKeys(s.selected)
}

// Snapshot is a read-only view of the state for rendering and persistence.
// Callers must not treat it as mutable state; all changes go through the
// State mutators.
type Snapshot struct {
	Query      string   `json:"query"`
	Effects    []string `json:"effects"`
	Categories []string `json:"categories"`
	Mode       Mode     `json:"mode"`
}

// Snapshot returns the current selections. Slices are copies.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Query:      s.query,
		Effects:    s.SelectedEffects(),
		Categories: s.SelectedCategories(),
		Mode:       s.mode,
	}
}

// ActiveCount returns how many filters are active: one for a matching-length
// query plus one per selected effect.
func (s Snapshot) ActiveCount() int {
	n := len(s.Effects)
	if utf8.RuneCountInString(s.Query) >= MinQueryLength {
		n++
	}
	return n
}

// Restore rebuilds a State from a snapshot. The category selection is
// recomputed from the restored effects rather than trusted, so a stale or
// hand-edited snapshot cannot break the sync invariant.
func Restore(categories *model.CategoryIndex, snap Snapshot) *State {
	s := New(categories)
	s.SetQuery(snap.Query)
	s.SetMode(snap.Mode)
	for _, tag := range snap.Effects {
		if strings.TrimSpace(tag) == "" {
			continue
		}
		s.effects[tag] = struct{}{}
	}
	s.syncCategories()
	return s
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
