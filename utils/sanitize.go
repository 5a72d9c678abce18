package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// textPolicy keeps harmless inline formatting and drops scripts, event handlers and
// unsafe URLs from user supplied text.
var textPolicy = bluemonday.UGCPolicy()

// Sanitize strips unsafe markup from one free-text value. Kept text comes back
// HTML-escaped.
func Sanitize(input string) string {
	return textPolicy.Sanitize(input)
}

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// HasMarkup reports whether input carries HTML tags or entities. Plain text comes out
// of the policy as exactly its escaped form; the tokenizer folds CR into LF first.
func HasMarkup(input string) bool {
	return Sanitize(input) != html.EscapeString(newlines.Replace(input))
}
