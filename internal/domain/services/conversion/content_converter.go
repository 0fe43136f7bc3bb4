package conversion

import "context"

// Input is the raw upload handed to the conversion engine.
// Filename is a hint for format detection; Content is never modified.
type Input struct {
	Filename     string
	ContentType  string
	Content      []byte
	KeepDataURIs bool
}

// Output is what a converter produces for one file
type Output struct {
	Markdown string
	Title    string // empty when the format carries no title
}

// ContentConverter converts file content of one family of formats to markdown.
//
// Implementations should be stateless and thread-safe.
type ContentConverter interface {
	// Convert transforms input content to markdown.
	// Undecodable content should be reported as *domain.UnsupportedFormatError,
	// anything else as a plain error.
	Convert(ctx context.Context, in *Input) (*Output, error)

	// SupportedExtensions returns file extensions this converter handles.
	// Extensions should include the leading dot (e.g., [".html", ".htm"]).
	SupportedExtensions() []string

	// Name returns a human-readable converter name for logging/debugging.
	Name() string
}

// Engine is the whole conversion capability: convert(bytes, filename hint).
// It returns the markdown together with the name of the converter that produced it.
type Engine interface {
	Convert(ctx context.Context, in *Input) (*Output, string, error)

	// SupportedExtensions lists every extension the engine can dispatch on.
	SupportedExtensions() []string
}
