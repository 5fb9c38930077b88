// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package filter

import (
	"strings"
	"unicode/utf8"

	"github.com/aromadex/aromadex/internal/model"
)

// Matches reports whether record passes the current filter state. Each call
// is independent; no state is shared between evaluations.
//
// The overall result is the AND of two clauses:
//
//  1. Query clause: vacuously true while the stored query is shorter than
//     MinQueryLength. Otherwise the query must be a case-insensitive
//     substring of the name, aroma, taste, the joined effect tags, or the
//     joined therapeutic tags.
//  2. Tag/category clause: vacuously true while nothing is selected.
//     Otherwise it is the OR of a category match (record carries a member
//     tag of any selected category; always OR) and an effect match (ANY:
//     at least one selected tag; ALL: every selected tag).
func (s *State) Matches(record model.Terpene) bool {
	return s.matchesQuery(record) && s.matchesSelections(record)
}

// MatchesMerged applies Matches to a merged record's current field values.
func (s *State) MatchesMerged(record model.MergedTerpene) bool {
	return s.Matches(record.Terpene)
}

// Filter returns the records that pass Matches, preserving input order. It
// never sorts or deduplicates.
func (s *State) Filter(records []model.Terpene) []model.Terpene {
	out := make([]model.Terpene, 0, len(records))
	for _, r := range records {
		if s.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// FilterMerged is Filter over merged records.
func (s *State) FilterMerged(records []model.MergedTerpene) []model.MergedTerpene {
	out := make([]model.MergedTerpene, 0, len(records))
	for _, r := range records {
		if s.MatchesMerged(r) {
			out = append(out, r)
		}
	}
	return out
}

func (s *State) matchesQuery(record model.Terpene) bool {
	if utf8.RuneCountInString(s.query) < MinQueryLength {
		return true
	}

	q := strings.ToLower(s.query)
	haystacks := []string{
		record.Name,
		record.Aroma,
		record.Taste,
		strings.Join(record.Effects, " "),
		strings.Join(record.TherapeuticProperties, " "),
	}
	for _, h := range haystacks {
		if h == "" {
			continue
		}
		if strings.Contains(strings.ToLower(h), q) {
			return true
		}
	}
	return false
}

func (s *State) matchesSelections(record model.Terpene) bool {
	if len(s.effects) == 0 && len(s.selected) == 0 {
		return true
	}

	if s.matchesCategories(record) {
		return true
	}
	return s.matchesEffects(record)
}

// matchesCategories reports whether the record carries at least one tag that
// is a member of at least one selected category. Category matching is always
// OR, independent of the ANY/ALL mode.
func (s *State) matchesCategories(record model.Terpene) bool {
	for id := range s.selected {
		def, ok := s.categories.Get(id)
		if !ok {
			continue
		}
		for _, tag := range record.Effects {
			if def.Contains(tag) {
				return true
			}
		}
	}
	return false
}

func (s *State) matchesEffects(record model.Terpene) bool {
	if len(s.effects) == 0 {
		return false
	}

	has := make(map[string]struct{}, len(record.Effects))
	for _, tag := range record.Effects {
		has[tag] = struct{}{}
	}

	if s.mode == ModeAll {
		for tag := range s.effects {
			if _, ok := has[tag]; !ok {
				return false
			}
		}
		return true
	}

	for tag := range s.effects {
		if _, ok := has[tag]; ok {
			return true
		}
	}
	return false
}
