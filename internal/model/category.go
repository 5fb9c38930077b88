// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// CategoryDefinition names a static group of effect tags used for one-click
// multi-tag selection. Definitions are read-only for the life of the process.
type CategoryDefinition struct {
	ID      string   `json:"id"`
	Members []string `json:"members"`
}

// Contains reports whether tag is a member of the category.
func (c CategoryDefinition) Contains(tag string) bool {
	for _, m := range c.Members {
		if m == tag {
			return true
		}
	}
	return false
}

// EffectCategories is the built-in category catalog. Member tags use the
// canonical-language effect vocabulary; the sync engine treats tags outside
// every category as ordinary selectable strings.
var EffectCategories = []CategoryDefinition{
	{ID: "relaxation", Members: []string{"Sedative", "Muscle relaxant", "Anxiety relief", "Calming"}},
	{ID: "energy", Members: []string{"Energizing", "Uplifting", "Focus", "Alertness"}},
	{ID: "mood", Members: []string{"Mood enhancement", "Uplifting", "Anxiety relief", "Antidepressant"}},
	{ID: "relief", Members: []string{"Pain relief", "Anti-inflammatory", "Muscle relaxant", "Bronchodilator"}},
	{ID: "sleep", Members: []string{"Sedative", "Sleep aid", "Calming"}},
}

// CategoryIndex provides by-ID lookup over a fixed set of category
// definitions.
type CategoryIndex struct {
	byID  map[string]CategoryDefinition
	order []string
}

// NewCategoryIndex builds an index over defs. Later definitions with a
// duplicate ID win, matching plain map assignment.
func NewCategoryIndex(defs []CategoryDefinition) *CategoryIndex {
	idx := &CategoryIndex{byID: make(map[string]CategoryDefinition, len(defs))}
	for _, d := range defs {
		if _, seen := idx.byID[d.ID]; !seen {
			idx.order = append(idx.order, d.ID)
		}
		idx.byID[d.ID] = d
	}
	return idx
}

// DefaultCategoryIndex returns an index over the built-in EffectCategories.
func DefaultCategoryIndex() *CategoryIndex {
	return NewCategoryIndex(EffectCategories)
}

// Get returns the definition for id, if present.
func (i *CategoryIndex) Get(id string) (CategoryDefinition, bool) {
	d, ok := i.byID[id]
	return d, ok
}

// All returns the definitions in their original order.
func (i *CategoryIndex) All() []CategoryDefinition {
	out := make([]CategoryDefinition, 0, len(i.order))
	for _, id := range i.order {
		out = append(out, i.byID[id])
	}
	return out
}

// IDs returns the category identifiers in their original order.
func (i *CategoryIndex) IDs() []string {
	out := make([]string, len(i.order))
	copy(out, i.order)
	return out
}
