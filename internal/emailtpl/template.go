// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package emailtpl loads the local newsletter HTML template and performs
// literal placeholder substitution. The two tokens are replaced as plain
// strings; no template engine runs, so the file stays valid HTML exactly
// as its author wrote it.
package emailtpl

import (
	"fmt"
	"os"
	"strings"
)

// Placeholder tokens recognized in the template.
const (
	TokenMonth = "{{MONTH}}"
	TokenLink  = "{{WIX_LINK}}"
)

// Load reads the template file. A missing file is a fatal condition for
// the campaign step; the wrapped error preserves os.ErrNotExist.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading template %s: %w", path, err)
	}
	return string(data), nil
}

// Render substitutes every occurrence of both tokens.
func Render(template, month, link string) string {
	html := strings.ReplaceAll(template, TokenMonth, month)
	return strings.ReplaceAll(html, TokenLink, link)
}

// HasTokens reports whether any placeholder token remains in s.
func HasTokens(s string) bool {
	return strings.Contains(s, TokenMonth) || strings.Contains(s, TokenLink)
}
