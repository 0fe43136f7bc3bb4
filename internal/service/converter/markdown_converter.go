package converter

import (
	"context"
	"strings"

	"markitdown-api/internal/domain"
	convSvc "markitdown-api/internal/domain/services/conversion"
)

// markdownConverter is a passthrough converter for markdown files.
type markdownConverter struct{}

// NewMarkdownConverter creates a new markdown passthrough converter.
func NewMarkdownConverter() convSvc.ContentConverter {
	return &markdownConverter{}
}

// Convert returns the decoded input unchanged. The first level-one heading,
// if any, becomes the title.
func (c *markdownConverter) Convert(ctx context.Context, in *convSvc.Input) (*convSvc.Output, error) {
	if looksBinary(in.Content) {
		return nil, &domain.UnsupportedFormatError{Filename: in.Filename, Reason: "binary content in markdown file"}
	}
	text, err := decodeText(in.Content, in.ContentType)
	if err != nil {
		return nil, err
	}
	return &convSvc.Output{Markdown: text, Title: firstHeading(text)}, nil
}

// SupportedExtensions returns markdown file extensions.
func (c *markdownConverter) SupportedExtensions() []string {
	return []string{".md", ".markdown"}
}

// Name returns the converter name for logging.
func (c *markdownConverter) Name() string {
	return "markdown"
}

func firstHeading(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return ""
}
