// Package htmlsanitize provides HTML sanitization for admin-authored rich
// text and visitor-submitted plain text. It uses bluemonday to strip
// potentially dangerous HTML while preserving safe formatting.
package htmlsanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// richPolicy sanitizes rich text from the admin content editor.
	richPolicy *bluemonday.Policy
	richOnce   sync.Once

	// strictPolicy strips all markup from visitor-submitted fields.
	strictPolicy *bluemonday.Policy
	strictOnce   sync.Once
)

// getRichPolicy returns the shared rich-text policy, creating it on first use.
func getRichPolicy() *bluemonday.Policy {
	richOnce.Do(func() {
		// Start with UGC (User Generated Content) policy as base
		richPolicy = bluemonday.UGCPolicy()

		// Allow tables for fee schedules and requirement matrices
		richPolicy.AllowElements("table", "thead", "tbody", "tfoot", "tr", "th", "td")
		richPolicy.AllowAttrs("colspan", "rowspan").OnElements("th", "td")
		richPolicy.AllowAttrs("class").OnElements("table", "th", "td", "tr")

		// Allow common text formatting
		richPolicy.AllowElements("u", "s", "sub", "sup", "mark")
	})
	return richPolicy
}

// getStrictPolicy returns the shared strip-everything policy.
func getStrictPolicy() *bluemonday.Policy {
	strictOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

// Sanitize cleans admin-authored HTML, removing potentially dangerous
// elements and attributes. It preserves safe formatting like bold,
// italic, lists, links, and tables. Stores call this before persisting
// any rich-text content field.
func Sanitize(html string) string {
	if html == "" {
		return ""
	}
	return getRichPolicy().Sanitize(html)
}

// StripTags removes all HTML markup from visitor-submitted text such as
// enquiry names and messages, which are stored and displayed as plain text.
func StripTags(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(getStrictPolicy().Sanitize(s))
}
