package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultSlug is used when a title normalizes to nothing (e.g. "!!!").
const DefaultSlug = "articulo"

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify derives a URL slug: lowercase, diacritics stripped, every run of
// characters outside [a-z0-9] collapsed to a single hyphen, hyphens trimmed
// from both ends. Deterministic and idempotent.
func Slugify(s string) string {
	lowered := strings.ToLower(strings.TrimSpace(s))
	if stripped, _, err := transform.String(deaccent, lowered); err == nil {
		lowered = stripped
	}

	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return DefaultSlug
	}
	return slug
}
