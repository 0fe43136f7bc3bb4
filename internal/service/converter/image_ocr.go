//go:build ocr

package converter

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"markitdown-api/internal/domain"
	convSvc "markitdown-api/internal/domain/services/conversion"
)

// OCREnabled reports whether this binary was built with tesseract support
const OCREnabled = true

// Convert runs tesseract over the image. A fresh client per call keeps
// concurrent requests independent.
func (c *imageConverter) Convert(ctx context.Context, in *convSvc.Input) (*convSvc.Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(c.languages...); err != nil {
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}
	if err := client.SetImageFromBytes(in.Content); err != nil {
		return nil, &domain.UnsupportedFormatError{
			Filename: in.Filename,
			Reason:   domain.SanitizeMessage(err.Error(), in.Filename),
		}
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	return &convSvc.Output{Markdown: strings.TrimSpace(text)}, nil
}
