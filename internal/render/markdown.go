// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render converts record description markdown into sanitized HTML
// for API responses.
package render

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// htmlSanitizer strips everything bluemonday's UGC policy considers unsafe
// (scripts, event handlers, etc.) from the rendered markdown. Catalog text
// comes from dataset files, but those files are editable by operators and
// the output ends up in browsers, so it goes through the policy anyway.
var htmlSanitizer = bluemonday.UGCPolicy()

// Markdown renders markdown source to sanitized HTML.
func Markdown(source string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return htmlSanitizer.Sanitize(buf.String()), nil
}
