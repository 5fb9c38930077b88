// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package locale applies translation overlays to canonical terpene records
// and tracks which fields fell back to the canonical language.
package locale

import (
	"github.com/aromadex/aromadex/internal/model"
)

// Merge applies overlay to record for the given target language and returns
// the merged record together with its translation status.
//
// Merge is pure and never fails: a nil overlay, an overlay for the wrong
// record, or the canonical language itself all degrade to "every translatable
// field falls back to canonical". Array fields are replaced wholesale when
// the overlay supplies them, never merged element by element. Chemistry is
// copied through untouched and does not participate in the status.
func Merge(record model.Terpene, overlay *model.TranslationOverlay, lang string) model.MergedTerpene {
	merged := model.MergedTerpene{
		Terpene: record,
		Translation: model.TranslationStatus{
			Language: lang,
		},
	}
	// Slices are shared with the caller's record otherwise.
	merged.Effects = cloneStrings(record.Effects)
	merged.TherapeuticProperties = cloneStrings(record.TherapeuticProperties)
	merged.Sources = cloneStrings(record.Sources)

	if lang == model.CanonicalLanguage || overlay == nil {
		merged.Translation.FallbackFields = cloneStrings(model.TranslatableFields)
		merged.Translation.FullyTranslated = false
		return merged
	}

	var fallback []string
	takeString := func(field string, dst *string, src *string) {
		if src != nil {
			*dst = *src
			return
		}
		fallback = append(fallback, field)
	}
	takeStrings := func(field string, dst *[]string, src []string) {
		if src != nil {
			*dst = cloneStrings(src)
			return
		}
		fallback = append(fallback, field)
	}

	takeString(model.FieldName, &merged.Name, overlay.Name)
	takeString(model.FieldDescription, &merged.Description, overlay.Description)
	takeString(model.FieldAroma, &merged.Aroma, overlay.Aroma)
	takeString(model.FieldTaste, &merged.Taste, overlay.Taste)
	takeStrings(model.FieldEffects, &merged.Effects, overlay.Effects)
	takeStrings(model.FieldTherapeuticProperties, &merged.TherapeuticProperties, overlay.TherapeuticProperties)
	takeStrings(model.FieldSources, &merged.Sources, overlay.Sources)
	takeString(model.FieldNotableDifferences, &merged.NotableDifferences, overlay.NotableDifferences)

	merged.Translation.FallbackFields = fallback
	merged.Translation.FullyTranslated = len(fallback) == 0
	return merged
}

// MergeAll merges every record against the overlay map for lang, preserving
// input order. Records without an overlay entry fall back entirely.
func MergeAll(records []model.Terpene, overlays map[string]*model.TranslationOverlay, lang string) []model.MergedTerpene {
	out := make([]model.MergedTerpene, 0, len(records))
	for _, r := range records {
		out = append(out, Merge(r, overlays[r.ID], lang))
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
