// Package slug derives URL-safe identifiers from content titles.
//
// Slugs are lowercase, with runs of non-alphanumeric characters
// collapsed to a single hyphen and leading/trailing hyphens trimmed.
// When a derived slug collides with an existing document, stores append
// a timestamp suffix instead of rejecting the write, so content
// creation never fails on a name clash.
package slug

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Make derives a slug from a title or name.
// Returns "" for input with no usable characters; callers treat that
// as "no slug" and fall back to a suffix-only slug.
func Make(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// WithSuffix appends a uniqueness suffix to a slug. Used on collision
// so a second "work-visa" becomes "work-visa-1756481234".
func WithSuffix(s string, at time.Time) string {
	if s == "" {
		return fmt.Sprintf("entry-%d", at.Unix())
	}
	return fmt.Sprintf("%s-%d", s, at.Unix())
}

// Derive returns the slug for explicit when given, otherwise one made
// from title, falling back to a suffix-only slug when neither yields
// usable characters.
func Derive(explicit, title string, at time.Time) string {
	s := Make(explicit)
	if s == "" {
		s = Make(title)
	}
	if s == "" {
		s = WithSuffix("", at)
	}
	return s
}
