package converter

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime/debug"
	"sort"
	"strings"
	"sync"

	"markitdown-api/internal/domain"
	convSvc "markitdown-api/internal/domain/services/conversion"
)

// ConverterRegistry manages content converters and routes files by extension,
// falling back to content sniffing when the extension is missing or unknown.
// It is the in-process conversion engine.
//
// Thread-safe for concurrent access.
type ConverterRegistry struct {
	mu         sync.RWMutex
	converters map[string]convSvc.ContentConverter // key: file extension (e.g., ".html")
	logger     *slog.Logger
}

// NewConverterRegistry creates an empty registry
func NewConverterRegistry(logger *slog.Logger) *ConverterRegistry {
	return &ConverterRegistry{
		converters: make(map[string]convSvc.ContentConverter),
		logger:     logger,
	}
}

// Register adds a converter and associates it with its supported extensions.
// A later registration for the same extension replaces the earlier one.
//
// Extensions are automatically normalized to lowercase with leading dot.
func (r *ConverterRegistry) Register(converter convSvc.ContentConverter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ext := range converter.SupportedExtensions() {
		r.converters[normalizeExt(ext)] = converter
	}
}

// GetConverter retrieves a converter for the given file extension.
// Returns nil if no converter is registered for this extension.
//
// Extension lookup is case-insensitive.
func (r *ConverterRegistry) GetConverter(fileExt string) convSvc.ContentConverter {
	if fileExt == "" {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.converters[normalizeExt(fileExt)]
}

// Resolve picks the converter for an input: by filename extension first,
// then by sniffing the content.
func (r *ConverterRegistry) Resolve(in *convSvc.Input) convSvc.ContentConverter {
	if c := r.GetConverter(filepath.Ext(in.Filename)); c != nil {
		return c
	}
	return r.GetConverter(SniffExtension(in.Content))
}

// Convert selects the converter for the input and runs it once.
// Returns the converter name alongside the output for metadata and logging.
func (r *ConverterRegistry) Convert(ctx context.Context, in *convSvc.Input) (out *convSvc.Output, name string, err error) {
	converter := r.Resolve(in)
	if converter == nil {
		reason := "unrecognized content"
		if ext := filepath.Ext(in.Filename); ext != "" {
			reason = fmt.Sprintf("no converter for %s files", strings.ToLower(ext))
		}
		return nil, "", &domain.UnsupportedFormatError{Filename: in.Filename, Reason: reason}
	}
	name = converter.Name()

	// Decoders for complex formats may panic on hostile input
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("converter panic recovered",
				"converter", name,
				"filename", in.Filename,
				"panic", p,
				"stack", string(debug.Stack()),
			)
			out = nil
			err = &domain.ConversionError{Filename: in.Filename, Message: "internal converter error"}
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, name, err
	}

	r.logger.Debug("dispatching to converter",
		"converter", name,
		"filename", in.Filename,
		"size", len(in.Content),
	)

	out, err = converter.Convert(ctx, in)
	if err != nil {
		return nil, name, err
	}

	if !in.KeepDataURIs {
		out.Markdown = TruncateDataURIs(out.Markdown)
	}

	return out, name, nil
}

// SupportedExtensions returns all registered file extensions, sorted.
func (r *ConverterRegistry) SupportedExtensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.converters))
	for ext := range r.converters {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
