package utils

import "github.com/microcosm-cc/bluemonday"

// Admin-entered display text (activity names, reward names, broadcast
// messages) is plain text, so the strict policy strips all markup.
var sanitizer = bluemonday.StrictPolicy()

// Sanitize removes any HTML from user-supplied display text.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
