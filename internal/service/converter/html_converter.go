package converter

import (
	"context"
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"

	convSvc "markitdown-api/internal/domain/services/conversion"
	"markitdown-api/internal/service/converter/sanitizer"
)

// htmlConverter converts HTML files to markdown.
// Implements a two-stage process:
// 1. Sanitize HTML to remove dangerous elements
// 2. Convert sanitized HTML to markdown
type htmlConverter struct {
	sanitizer *sanitizer.HTMLSanitizer
	converter *md.Converter
}

// NewHTMLConverter creates a new HTML to markdown converter.
func NewHTMLConverter() convSvc.ContentConverter {
	return &htmlConverter{
		sanitizer: sanitizer.NewHTMLSanitizer(),
		converter: md.NewConverter("", true, nil),
	}
}

// Convert decodes the page, pulls the <title>, sanitizes and converts.
func (c *htmlConverter) Convert(ctx context.Context, in *convSvc.Input) (*convSvc.Output, error) {
	page, err := decodeText(in.Content, in.ContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to decode HTML: %w", err)
	}

	title := extractTitle(page)

	sanitized := c.sanitizer.Sanitize([]byte(page))

	markdown, err := c.converter.ConvertBytes(sanitized)
	if err != nil {
		return nil, fmt.Errorf("failed to convert HTML to markdown: %w", err)
	}

	return &convSvc.Output{Markdown: strings.TrimSpace(string(markdown)), Title: title}, nil
}

// SupportedExtensions returns HTML file extensions.
func (c *htmlConverter) SupportedExtensions() []string {
	return []string{".html", ".htm", ".xhtml"}
}

// Name returns the converter name for logging.
func (c *htmlConverter) Name() string {
	return "html"
}

func extractTitle(page string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
