package sanitizer

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

var codeLanguageClass = regexp.MustCompile(`^language-[\w+-]+$`)

// HTMLSanitizer strips active content from uploaded HTML before it is
// turned into markdown. Scripts, event handlers and javascript: URLs never
// reach the output.
//
// Thread-safe for concurrent use.
type HTMLSanitizer struct {
	policy *bluemonday.Policy
}

// NewHTMLSanitizer creates a sanitizer built on the UGC policy.
// Inline data URI images survive so the engine can decide whether to
// truncate them; language-* classes on code survive for fenced blocks.
func NewHTMLSanitizer() *HTMLSanitizer {
	policy := bluemonday.UGCPolicy()
	policy.AllowDataURIImages()
	policy.AllowAttrs("class").Matching(codeLanguageClass).OnElements("code", "pre")

	return &HTMLSanitizer{policy: policy}
}

// Sanitize returns the cleaned document body.
// <title>, <script> and <style> contents are dropped entirely.
func (s *HTMLSanitizer) Sanitize(html []byte) []byte {
	return s.policy.SanitizeBytes(html)
}
