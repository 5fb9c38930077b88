// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package search implements the cross-language substring index over the
// terpene catalog.
package search

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer decomposes accented characters and strips the combining
// marks, so "é" folds to "e".
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases s, folds diacritics and transliterates any remaining
// non-ASCII runes so that queries typed without accents (or in Latin script)
// still match translated record text.
func Normalize(s string) string {
	s = strings.ToLower(s)
	folded, _, err := transform.String(foldTransformer, s)
	if err == nil {
		s = folded
	}
	s = unidecode.Unidecode(s)
	return strings.Join(strings.Fields(s), " ")
}

// Terms normalizes a query and splits it on whitespace, discarding empty
// terms.
func Terms(query string) []string {
	return strings.Fields(Normalize(query))
}
