package textutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// FoldASCII decomposes accented characters and drops anything outside the
// ASCII range. "Café" becomes "Cafe", smart quotes disappear entirely.
func FoldASCII(value string) string {
	decomposed := norm.NFKD.String(value)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SanitizeFileName converts a metadata string into a safe path component.
// Quotes are removed, unsafe characters become underscores, and underscore
// runs are collapsed. Returns "unknown" for input that sanitizes to nothing.
func SanitizeFileName(name string) string {
	name = FoldASCII(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "'", "")
	name = strings.ReplaceAll(name, "\"", "")

	var b strings.Builder
	b.Grow(len(name))
	lastUnderscore := false
	for _, r := range name {
		safe := r == '.' || r == '-' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if safe {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}

	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "unknown"
	}
	return out
}

// SanitizeTitle sanitizes a chapter or book title for display inside a
// filename, trading the underscores back for spaces for readability.
func SanitizeTitle(title string) string {
	return strings.TrimSpace(strings.ReplaceAll(SanitizeFileName(title), "_", " "))
}
