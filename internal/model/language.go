// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Language text directions
const (
	DirectionLTR = "ltr"
	DirectionRTL = "rtl"
)

// CanonicalLanguage is the base language in which every catalog record is
// guaranteed complete. Overlays exist only for non-canonical languages.
const CanonicalLanguage = "en"

// Language describes a catalog language.
type Language struct {
	Code       string `json:"code"`        // ISO 639-1: en, de
	Name       string `json:"name"`        // English, German
	NativeName string `json:"native_name"` // English, Deutsch
	Direction  string `json:"direction"`   // ltr, rtl
	IsDefault  bool   `json:"is_default"`  // true for the canonical language
}

// IsRTL returns true if the language is right-to-left.
func (l Language) IsRTL() bool {
	return l.Direction == DirectionRTL
}

// KnownLanguages maps language codes to display metadata for the languages
// the catalog may carry overlays for.
var KnownLanguages = map[string]Language{
	"en": {Code: "en", Name: "English", NativeName: "English", Direction: DirectionLTR, IsDefault: true},
	"de": {Code: "de", Name: "German", NativeName: "Deutsch", Direction: DirectionLTR},
	"ru": {Code: "ru", Name: "Russian", NativeName: "Русский", Direction: DirectionLTR},
	"es": {Code: "es", Name: "Spanish", NativeName: "Español", Direction: DirectionLTR},
	"fr": {Code: "fr", Name: "French", NativeName: "Français", Direction: DirectionLTR},
	"he": {Code: "he", Name: "Hebrew", NativeName: "עברית", Direction: DirectionRTL},
}

// LanguageFor returns display metadata for a language code. Codes outside
// KnownLanguages get a minimal LTR entry so an unexpected overlay file still
// renders somewhere sensible.
func LanguageFor(code string) Language {
	if l, ok := KnownLanguages[code]; ok {
		return l
	}
	return Language{Code: code, Name: code, NativeName: code, Direction: DirectionLTR}
}
