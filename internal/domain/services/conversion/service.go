package conversion

import (
	"context"

	"markitdown-api/internal/domain/models"
)

// ContentAnalyzer derives text statistics from converted markdown
type ContentAnalyzer interface {
	// PlainText strips markdown syntax. Must be a pure function of its input.
	PlainText(markdown string) string

	// CountWords counts whitespace-delimited tokens
	CountWords(text string) int

	// CountCharacters counts Unicode code points
	CountCharacters(text string) int

	// EstimatePages returns max(1, ceil(characters / charsPerPage))
	EstimatePages(characters int) int
}

// FormatClassifier maps a file to a coarse category (document, spreadsheet, ...)
type FormatClassifier interface {
	Detect(filename, contentType string) string
}

// AdmissionGate validates a request before any expensive work happens
type AdmissionGate interface {
	// Authorize checks the raw Authorization header value
	Authorize(header string) error

	// Admit checks presence, emptiness and size of an upload
	Admit(req *models.ConversionRequest) error

	// MaxFileSize returns the configured byte ceiling
	MaxFileSize() int64
}

// Service runs the conversion lifecycle for an admitted request
type Service interface {
	Convert(ctx context.Context, req *models.ConversionRequest) (*models.ConversionResponse, error)
}
