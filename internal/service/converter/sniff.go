package converter

import (
	"archive/zip"
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/tsawler/tabula/format"
)

var zipMagic = []byte("PK\x03\x04")

// sniffedTypes maps http.DetectContentType results to the extension whose
// converter should handle them.
var sniffedTypes = map[string]string{
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
	"image/gif":       ".gif",
	"image/bmp":       ".bmp",
	"image/webp":      ".webp",
	"image/tiff":      ".tiff",
	"audio/mpeg":      ".mp3",
	"audio/wave":      ".wav",
	"audio/aiff":      ".aiff",
	"audio/ogg":       ".ogg",
	"application/ogg": ".ogg",
	"audio/mp4":       ".m4a",
	"text/html":       ".html",
	"text/xml":        ".xml",
	"text/plain":      ".txt",
}

// SniffExtension guesses a file extension from magic bytes. Returns "" when
// the content is not recognized.
func SniffExtension(content []byte) string {
	if len(content) == 0 {
		return ""
	}

	f, err := format.DetectFromReader(bytes.NewReader(content), int64(len(content)))
	if err == nil && f != format.Unknown {
		return f.Extension()
	}

	if bytes.HasPrefix(content, zipMagic) {
		if isEPUB(content) {
			return ".epub"
		}
		return ".zip"
	}

	detected := http.DetectContentType(content)
	mediaType, _, _ := strings.Cut(detected, ";")
	return sniffedTypes[strings.TrimSpace(mediaType)]
}

// isEPUB checks the OCF mimetype entry every EPUB container starts with
func isEPUB(content []byte) bool {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return false
	}
	for _, f := range zr.File {
		if f.Name != "mimetype" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return false
		}
		defer rc.Close()
		data, err := io.ReadAll(io.LimitReader(rc, 64))
		if err != nil {
			return false
		}
		return strings.TrimSpace(string(data)) == "application/epub+zip"
	}
	return false
}
