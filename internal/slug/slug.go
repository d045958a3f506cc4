// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings,
// including Cyrillic product names, plus helpers for keeping slugs unique
// within a batch.
package slug

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Placeholder is used when a name has no characters that survive slugification.
const Placeholder = "product"

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, space, or hyphen.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s_-]`)
	// separators matches runs of whitespace and underscores.
	separators = regexp.MustCompile(`[\s_]+`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// cyrillic maps lowercase Cyrillic letters to their Latin transliteration.
// Soft and hard signs are dropped.
var cyrillic = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "e",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "j", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "h", 'ц': "c", 'ч': "ch", 'ш': "sh", 'щ': "shch",
	'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
	'і': "i", 'ї': "i", 'є': "e", 'ґ': "g",
}

// transliterate replaces Cyrillic letters with Latin equivalents and folds
// accented Latin letters to plain ASCII (é → e, ü → u).
func transliterate(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if latin, ok := cyrillic[r]; ok {
			b.WriteString(latin)
			continue
		}
		b.WriteRune(r)
	}

	fold := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, b.String())
	if err != nil {
		return b.String()
	}
	return folded
}

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026",
// "Дрель ударная" → "drel-udarnaya".
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = transliterate(result)
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = separators.ReplaceAllString(result, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// Used is the set of slugs already taken. It is threaded through batch
// operations as an accumulator: Unique consumes it and returns the updated
// set, in the same way append consumes and returns a slice.
type Used map[string]struct{}

// NewUsed returns an accumulator seeded with the given slugs.
func NewUsed(existing ...string) Used {
	u := make(Used, len(existing))
	for _, s := range existing {
		u[s] = struct{}{}
	}
	return u
}

// Has reports whether s is already taken.
func (u Used) Has(s string) bool {
	_, ok := u[s]
	return ok
}

// Unique derives a slug from name that is not in used, appending -1, -2, …
// to the base on collision. When max is positive the base is cut so that the
// slug, suffix included, fits in max runes. It returns the slug and the
// accumulator with the slug recorded; callers must continue with the returned
// accumulator.
func Unique(name string, max int, used Used) (string, Used) {
	if used == nil {
		used = make(Used)
	}

	base := Generate(name)
	if base == "" {
		base = Placeholder
	}

	candidate := truncate(base, max)
	for n := 1; used.Has(candidate); n++ {
		suffix := "-" + strconv.Itoa(n)
		candidate = truncate(base, max-len(suffix)) + suffix
	}
	used[candidate] = struct{}{}
	return candidate, used
}

// truncate cuts s to at most max runes without leaving a trailing hyphen.
// A non-positive max leaves s unchanged.
func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return strings.TrimRight(string(r[:max]), "-")
}

// Scoped derives a child slug by suffixing parent with suffix, truncated to
// max runes. It does not check uniqueness.
func Scoped(parent, suffix string, max int) string {
	s := parent + "-" + suffix
	if max <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) > max {
		return string(r[:max])
	}
	return s
}
