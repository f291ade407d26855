// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize cleans user-supplied text before it is stored.
// Review comments and activity descriptions may carry limited rich text;
// chat messages are plain text only.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugc    = bluemonday.UGCPolicy()
	strict = bluemonday.StrictPolicy()
)

// Sanitize keeps the usual user-generated-content subset (paragraphs,
// emphasis, links, tables) and strips scripts, event handlers, and
// javascript: URLs.
func Sanitize(s string) string {
	return ugc.Sanitize(s)
}

// Plain strips all markup, leaving text content only. Used for chat
// messages and display names.
func Plain(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
