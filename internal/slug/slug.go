// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package slug turns human-readable template titles into file- and URL-safe slugs.
package slug

import (
	"strings"
	"unicode"
)

// Normalize lowercases title and replaces every maximal run of whitespace
// with a single hyphen. Leading and trailing runs become hyphens too, so
// Normalize is total and idempotent.
func Normalize(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	inSpace := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('-')
				inSpace = true
			}
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
