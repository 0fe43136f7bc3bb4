//go:build !ocr

package converter

import (
	"context"

	"markitdown-api/internal/domain"
	convSvc "markitdown-api/internal/domain/services/conversion"
)

// OCREnabled reports whether this binary was built with tesseract support
const OCREnabled = false

// Convert rejects the image. Rebuild with -tags ocr to enable tesseract.
func (c *imageConverter) Convert(ctx context.Context, in *convSvc.Input) (*convSvc.Output, error) {
	return nil, &domain.UnsupportedFormatError{
		Filename: in.Filename,
		Reason:   "image OCR is not enabled in this build",
	}
}
