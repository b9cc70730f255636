// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package slug

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple title", "Modern Resume", "modern-resume"},
		{"already a slug", "modern-resume", "modern-resume"},
		{"whitespace run", "Bold   modern\t\tresume", "bold-modern-resume"},
		{"newline in title", "Chronological\nresume", "chronological-resume"},
		{"leading and trailing", "  Simple CV ", "-simple-cv-"},
		{"unicode whitespace", "Résumé  Élégant", "résumé-élégant"},
		{"empty", "", ""},
		{"punctuation kept", "Resume (Blue, 2 pages)", "resume-(blue,-2-pages)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_Properties(t *testing.T) {
	spaceRun := regexp.MustCompile(`\s{2,}`)
	inputs := []string{
		"Modern Resume",
		"  ATS   friendly \t CV\n\n",
		"Résumé  Élégant",
		"MiXeD CaSe TITLE",
		"",
		"\t",
		"one",
	}
	for _, in := range inputs {
		got := Normalize(in)
		assert.False(t, spaceRun.MatchString(got), "whitespace run in %q", got)
		assert.Equal(t, strings.ToLower(got), got, "not lowercase: %q", got)
		assert.Equal(t, got, Normalize(got), "not idempotent for %q", in)
	}
}
