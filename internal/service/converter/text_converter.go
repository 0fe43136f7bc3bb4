package converter

import (
	"context"

	"markitdown-api/internal/domain"
	convSvc "markitdown-api/internal/domain/services/conversion"
)

// textConverter converts plain text files to markdown.
// Plain text is valid markdown, so only the character set is normalized.
type textConverter struct{}

// NewTextConverter creates a new text converter.
func NewTextConverter() convSvc.ContentConverter {
	return &textConverter{}
}

// Convert decodes the input to UTF-8 and returns it as-is.
func (c *textConverter) Convert(ctx context.Context, in *convSvc.Input) (*convSvc.Output, error) {
	if looksBinary(in.Content) {
		return nil, &domain.UnsupportedFormatError{Filename: in.Filename, Reason: "binary content in text file"}
	}
	text, err := decodeText(in.Content, in.ContentType)
	if err != nil {
		return nil, err
	}
	return &convSvc.Output{Markdown: text}, nil
}

// SupportedExtensions returns text file extensions.
func (c *textConverter) SupportedExtensions() []string {
	return []string{".txt", ".text", ".log", ".json", ".xml", ".yaml", ".yml"}
}

// Name returns the converter name for logging.
func (c *textConverter) Name() string {
	return "plaintext"
}
