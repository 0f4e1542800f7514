package search

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// NormalizeForSearch lower-cases a string for case-insensitive substring
// matching. It is total: the empty string normalizes to itself.
func NormalizeForSearch(s string) string {
	return strings.ToLower(s)
}

// NormalizeToken lower-cases and strips every rune outside [a-z0-9], so
// punctuation and spacing differences do not break matching ("B-2-B" and
// "b2b" normalize to the same token).
func NormalizeToken(s string) string {
	lower := NormalizeForSearch(s)
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// EscapeHTML escapes a string for insertion into HTML text content.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// EscapeAttr escapes a string for insertion into an HTML attribute value.
// Backticks are neutralized on top of the text escapes.
func EscapeAttr(s string) string {
	return strings.ReplaceAll(EscapeHTML(s), "`", "&#96;")
}
