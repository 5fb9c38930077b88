// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"strings"
	"testing"
)

func TestMarkdown(t *testing.T) {
	out, err := Markdown("A **musky** terpene with *herbal* notes.")
	if err != nil {
		t.Fatalf("Markdown failed: %v", err)
	}

	if !strings.Contains(out, "<strong>musky</strong>") {
		t.Errorf("bold not rendered: %q", out)
	}
	if !strings.Contains(out, "<em>herbal</em>") {
		t.Errorf("emphasis not rendered: %q", out)
	}
}

func TestMarkdownSanitizesHTML(t *testing.T) {
	tests := []struct {
		name   string
		source string
		reject string
	}{
		{
			name:   "script tag",
			source: "Hello <script>alert('x')</script> world",
			reject: "<script",
		},
		{
			name:   "onerror attribute",
			source: `<img src="x" onerror="alert(1)">`,
			reject: "onerror",
		},
		{
			name:   "javascript link",
			source: `[click](javascript:alert(1))`,
			reject: "javascript:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Markdown(tt.source)
			if err != nil {
				t.Fatalf("Markdown failed: %v", err)
			}
			if strings.Contains(out, tt.reject) {
				t.Errorf("sanitizer let %q through: %q", tt.reject, out)
			}
		})
	}
}

func TestMarkdownEmptyInput(t *testing.T) {
	out, err := Markdown("")
	if err != nil {
		t.Fatalf("Markdown failed: %v", err)
	}
	if strings.TrimSpace(out) != "" {
		t.Errorf("empty input rendered %q", out)
	}
}
