// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"

	"golang.org/x/text/language"

	"github.com/aromadex/aromadex/internal/model"
	"github.com/aromadex/aromadex/internal/util"
)

// ContextKeyLanguage is the context key for the resolved language code.
const ContextKeyLanguage ContextKey = "language"

// LanguageCookieName is the cookie name for language preference.
const LanguageCookieName = "adx_lang"

// LanguageSource resolves which languages the catalog currently carries.
type LanguageSource interface {
	Languages() []string
	HasLanguage(lang string) bool
}

// Language creates middleware that resolves the request language.
// Priority order:
//  1. Query parameter ?lang=XX (explicit switch, updates the cookie)
//  2. Cookie preference
//  3. Accept-Language header, matched against the catalog's languages
//  4. The configured default language
//
// The resolved code is always one the catalog can actually serve; anything
// else silently falls back down the chain.
func Language(source LanguageSource, defaultLang string) func(http.Handler) http.Handler {
	if defaultLang == "" || !source.HasLanguage(defaultLang) {
		defaultLang = model.CanonicalLanguage
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang, explicit := resolveLanguage(r, source, defaultLang)

			if explicit {
				http.SetCookie(w, &http.Cookie{
					Name:     LanguageCookieName,
					Value:    lang,
					Path:     "/",
					MaxAge:   365 * 24 * 60 * 60,
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), ContextKeyLanguage, lang)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetLanguage returns the resolved language code from the request context,
// or the canonical language if the middleware did not run.
func GetLanguage(r *http.Request) string {
	if lang, ok := r.Context().Value(ContextKeyLanguage).(string); ok && lang != "" {
		return lang
	}
	return model.CanonicalLanguage
}

func resolveLanguage(r *http.Request, source LanguageSource, defaultLang string) (lang string, explicit bool) {
	if q := r.URL.Query().Get("lang"); q != "" && util.IsValidLangCode(q) && source.HasLanguage(q) {
		return q, true
	}

	if c, err := r.Cookie(LanguageCookieName); err == nil {
		if util.IsValidLangCode(c.Value) && source.HasLanguage(c.Value) {
			return c.Value, false
		}
	}

	if accept := r.Header.Get("Accept-Language"); accept != "" {
		if matched := matchAcceptLanguage(accept, source.Languages()); matched != "" {
			return matched, false
		}
	}

	return defaultLang, false
}

// matchAcceptLanguage matches an Accept-Language header against the supported
// codes. Returns "" when nothing matches with reasonable confidence.
func matchAcceptLanguage(accept string, supported []string) string {
	if len(supported) == 0 {
		return ""
	}

	tags := make([]language.Tag, 0, len(supported))
	codes := make([]string, 0, len(supported))
	for _, code := range supported {
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		codes = append(codes, code)
	}
	if len(tags) == 0 {
		return ""
	}

	wanted, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(wanted) == 0 {
		return ""
	}

	matcher := language.NewMatcher(tags)
	_, idx, conf := matcher.Match(wanted...)
	if conf == language.No || idx < 0 || idx >= len(codes) {
		return ""
	}
	return codes[idx]
}
