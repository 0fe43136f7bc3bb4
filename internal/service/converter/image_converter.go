package converter

import (
	"strings"

	convSvc "markitdown-api/internal/domain/services/conversion"
)

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// imageConverter extracts text from images with tesseract. Without the
// "ocr" build tag it rejects every image as unsupported.
type imageConverter struct {
	languages []string
}

// NewImageConverter creates an OCR converter. languages is a "+" separated
// tesseract language list such as "eng+deu".
func NewImageConverter(languages string) convSvc.ContentConverter {
	var langs []string
	for _, l := range strings.Split(languages, "+") {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}
	if len(langs) == 0 {
		langs = []string{"eng"}
	}
	return &imageConverter{languages: langs}
}

func (c *imageConverter) SupportedExtensions() []string {
	return imageExtensions
}

func (c *imageConverter) Name() string {
	return "image"
}
