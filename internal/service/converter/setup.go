package converter

import (
	"log/slog"

	convSvc "markitdown-api/internal/domain/services/conversion"
)

// Options configures the standard converter set
type Options struct {
	TempDir           string // scratch space for decoders that need a file path
	OCRLanguages      string // tesseract languages, "+" separated
	MaxArchiveEntries int
	MaxEntrySize      int64                    // per-member and per-archive ceiling on expanded bytes
	Transcriber       convSvc.ContentConverter // nil disables audio
}

// NewDefaultRegistry creates a registry with all standard converters registered.
func NewDefaultRegistry(opts Options, logger *slog.Logger) *ConverterRegistry {
	registry := NewConverterRegistry(logger)

	registry.Register(NewMarkdownConverter())
	registry.Register(NewTextConverter())
	registry.Register(NewCSVConverter())
	registry.Register(NewHTMLConverter())
	registry.Register(NewDocumentConverter(opts.TempDir, logger))
	registry.Register(NewImageConverter(opts.OCRLanguages))
	if opts.Transcriber != nil {
		registry.Register(opts.Transcriber)
	}
	// Last, so it sees every converter registered above
	registry.Register(NewZipConverter(registry, opts.MaxArchiveEntries, opts.MaxEntrySize, logger))

	return registry
}
