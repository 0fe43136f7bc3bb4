package converter

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeText returns content as a UTF-8 string. Valid UTF-8 passes through
// with any BOM removed; anything else is decoded using the charset named
// in contentType, a BOM, or a sniffed guess.
func decodeText(content []byte, contentType string) (string, error) {
	if utf8.Valid(content) {
		return string(bytes.TrimPrefix(content, utf8BOM)), nil
	}

	enc, _, _ := charset.DetermineEncoding(content, contentType)
	decoded, err := enc.NewDecoder().Bytes(content)
	if err != nil {
		return "", err
	}
	return string(bytes.TrimPrefix(decoded, utf8BOM)), nil
}

// looksBinary reports whether content carries NUL bytes outside of a
// UTF-16 byte order mark, which text formats never do.
func looksBinary(content []byte) bool {
	if bytes.HasPrefix(content, []byte{0xFF, 0xFE}) || bytes.HasPrefix(content, []byte{0xFE, 0xFF}) {
		return false
	}
	head := content
	if len(head) > 8192 {
		head = head[:8192]
	}
	return bytes.IndexByte(head, 0) >= 0
}
