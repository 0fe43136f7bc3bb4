package converter

import "regexp"

// dataURIImage matches a markdown image whose target is an inline base64 payload
var dataURIImage = regexp.MustCompile(`(!\[[^\]]*\]\()data:([\w.+-]+/[\w.+-]+);base64,[A-Za-z0-9+/=\s]*\)`)

// TruncateDataURIs replaces inline base64 image payloads with a short
// placeholder that keeps the media type.
func TruncateDataURIs(markdown string) string {
	return dataURIImage.ReplaceAllString(markdown, "${1}data:${2};base64...)")
}
