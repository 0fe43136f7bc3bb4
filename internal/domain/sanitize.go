package domain

import (
	"regexp"
	"strings"
)

// MaxMessageLength bounds error messages shown to clients, in runes
const MaxMessageLength = 200

// Absolute unix or windows paths with at least two segments
var pathPattern = regexp.MustCompile(`(?:[A-Za-z]:)?(?:[\\/][^\s:'"\\/()]+){2,}`)

// SanitizeMessage makes an internal error message safe for clients: only the
// first line is kept, filesystem paths are replaced by the upload filename
// and the result is truncated.
func SanitizeMessage(msg, filename string) string {
	if i := strings.IndexAny(msg, "\r\n"); i >= 0 {
		msg = msg[:i]
	}

	replacement := filename
	if replacement == "" {
		replacement = "<file>"
	}
	msg = pathPattern.ReplaceAllLiteralString(msg, replacement)
	msg = strings.TrimSpace(msg)

	if runes := []rune(msg); len(runes) > MaxMessageLength {
		msg = string(runes[:MaxMessageLength]) + "..."
	}
	if msg == "" {
		msg = "internal error"
	}
	return msg
}
