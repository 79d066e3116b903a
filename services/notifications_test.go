package services

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateRunes(t *testing.T) {
	if got := truncateRunes("hola", 200); got != "hola" {
		t.Errorf("short string must pass through, got %q", got)
	}

	// Multi-byte text must never be cut mid-rune.
	long := strings.Repeat("ñ", 300)
	got := truncateRunes(long, 200)
	if !utf8.ValidString(got) {
		t.Fatalf("truncation produced invalid UTF-8: %q", got[:12])
	}
	if n := utf8.RuneCountInString(got); n != 200 {
		t.Errorf("expected 200 runes, got %d", n)
	}

	exact := strings.Repeat("é", 200)
	if got := truncateRunes(exact, 200); got != exact {
		t.Errorf("string at the limit must pass through unchanged")
	}
}
