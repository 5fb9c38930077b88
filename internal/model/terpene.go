// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the catalog data types shared across the application.
package model

// Translatable field names, as they appear in TranslationStatus.FallbackFields.
const (
	FieldName                  = "name"
	FieldDescription           = "description"
	FieldAroma                 = "aroma"
	FieldTaste                 = "taste"
	FieldEffects               = "effects"
	FieldTherapeuticProperties = "therapeutic_properties"
	FieldSources               = "sources"
	FieldNotableDifferences    = "notable_differences"
)

// TranslatableFields lists every field a TranslationOverlay may replace.
// Chemistry is deliberately absent: chemical data is language-neutral.
var TranslatableFields = []string{
	FieldName,
	FieldDescription,
	FieldAroma,
	FieldTaste,
	FieldEffects,
	FieldTherapeuticProperties,
	FieldSources,
	FieldNotableDifferences,
}

// Chemistry holds structured chemical metadata for a terpene.
// The engine passes it through untouched; it is never translated or indexed.
type Chemistry struct {
	Formula         string  `json:"formula,omitempty"`
	MolecularWeight float64 `json:"molecular_weight,omitempty"`
	BoilingPointC   float64 `json:"boiling_point_c,omitempty"`
	Density         float64 `json:"density,omitempty"`
	CASNumber       string  `json:"cas_number,omitempty"`
}

// Terpene is a catalog record in the canonical language.
// ID is an opaque stable identifier and must never change once assigned.
// Effect tags are free strings; membership in the effect vocabulary is not
// enforced here, unknown tags are carried through as-is.
type Terpene struct {
	ID                    string    `json:"id"`
	Name                  string    `json:"name"`
	Description           string    `json:"description"`
	Aroma                 string    `json:"aroma"`
	Taste                 string    `json:"taste,omitempty"`
	Effects               []string  `json:"effects"`
	TherapeuticProperties []string  `json:"therapeutic_properties,omitempty"`
	Sources               []string  `json:"sources"`
	NotableDifferences    string    `json:"notable_differences,omitempty"`
	Chemistry             Chemistry `json:"chemistry"`
}

// TranslationOverlay is a sparse per-language replacement for a subset of a
// terpene's translatable fields. A nil pointer or nil slice means "not
// translated, fall back to canonical". Array fields replace the canonical
// array wholesale, never element by element. An overlay with no fields set is
// meaningless but valid.
type TranslationOverlay struct {
	ID                    string   `json:"id"`
	Name                  *string  `json:"name,omitempty"`
	Description           *string  `json:"description,omitempty"`
	Aroma                 *string  `json:"aroma,omitempty"`
	Taste                 *string  `json:"taste,omitempty"`
	Effects               []string `json:"effects,omitempty"`
	TherapeuticProperties []string `json:"therapeutic_properties,omitempty"`
	Sources               []string `json:"sources,omitempty"`
	NotableDifferences    *string  `json:"notable_differences,omitempty"`
}

// IsEmpty reports whether the overlay supplies no fields at all.
func (o *TranslationOverlay) IsEmpty() bool {
	if o == nil {
		return true
	}
	return o.Name == nil && o.Description == nil && o.Aroma == nil &&
		o.Taste == nil && o.Effects == nil && o.TherapeuticProperties == nil &&
		o.Sources == nil && o.NotableDifferences == nil
}

// TranslationStatus records which fields of a merged terpene fell back to the
// canonical language.
type TranslationStatus struct {
	Language        string   `json:"language"`
	FullyTranslated bool     `json:"fully_translated"`
	FallbackFields  []string `json:"fallback_fields,omitempty"`
}

// HasFallback reports whether the named field fell back to canonical.
func (s TranslationStatus) HasFallback(field string) bool {
	for _, f := range s.FallbackFields {
		if f == field {
			return true
		}
	}
	return false
}

// MergedTerpene is a terpene with a translation overlay applied, plus the
// status describing how complete that translation was.
type MergedTerpene struct {
	Terpene
	Translation TranslationStatus `json:"translation"`
}
