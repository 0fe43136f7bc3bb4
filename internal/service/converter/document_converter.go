package converter

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsawler/tabula"
	"github.com/tsawler/tabula/core"
	"github.com/tsawler/tabula/docx"
	"github.com/tsawler/tabula/epubdoc"
	"github.com/tsawler/tabula/odt"
	"github.com/tsawler/tabula/pptx"
	"github.com/tsawler/tabula/reader"
	"github.com/tsawler/tabula/xlsx"

	"markitdown-api/internal/domain"
	convSvc "markitdown-api/internal/domain/services/conversion"
)

// documentConverter handles the office and page-layout formats.
// Decoders that only open by path get a scratch copy under tempDir,
// removed before Convert returns.
type documentConverter struct {
	tempDir string
	logger  *slog.Logger
}

// NewDocumentConverter creates the converter for PDF, Word, OpenDocument,
// Excel, PowerPoint and EPUB files.
func NewDocumentConverter(tempDir string, logger *slog.Logger) convSvc.ContentConverter {
	return &documentConverter{tempDir: tempDir, logger: logger}
}

func (c *documentConverter) Convert(ctx context.Context, in *convSvc.Input) (*convSvc.Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(in.Filename))
	if !c.handles(ext) {
		ext = SniffExtension(in.Content)
	}

	if ext == ".epub" {
		return c.convertEPUB(in)
	}

	path, cleanup, err := c.writeTemp(in.Content, ext)
	if err != nil {
		return nil, fmt.Errorf("failed to stage upload: %w", err)
	}
	defer cleanup()

	switch ext {
	case ".pdf":
		return c.convertPDF(in, path)
	case ".docx":
		return convertOffice(in, path, openDOCX)
	case ".odt":
		return convertOffice(in, path, openODT)
	case ".xlsx":
		return convertOffice(in, path, openXLSX)
	case ".pptx":
		return convertOffice(in, path, openPPTX)
	default:
		return nil, &domain.UnsupportedFormatError{Filename: in.Filename, Reason: "not a recognized document"}
	}
}

func (c *documentConverter) SupportedExtensions() []string {
	return []string{".pdf", ".docx", ".odt", ".xlsx", ".pptx", ".epub"}
}

func (c *documentConverter) Name() string {
	return "document"
}

func (c *documentConverter) handles(ext string) bool {
	for _, e := range c.SupportedExtensions() {
		if e == ext {
			return true
		}
	}
	return false
}

func (c *documentConverter) convertPDF(in *convSvc.Input, path string) (*convSvc.Output, error) {
	r, err := reader.Open(path)
	if err != nil {
		return nil, unreadable(in.Filename, err)
	}
	defer r.Close()

	markdown, warnings, err := tabula.FromReader(r).ToMarkdown()
	if err != nil {
		return nil, err
	}
	if len(warnings) > 0 {
		c.logger.Debug("pdf extraction warnings",
			"filename", in.Filename,
			"count", len(warnings),
		)
	}

	return &convSvc.Output{Markdown: strings.TrimSpace(markdown), Title: pdfTitle(r)}, nil
}

func (c *documentConverter) convertEPUB(in *convSvc.Input) (*convSvc.Output, error) {
	r, err := epubdoc.OpenReader(bytes.NewReader(in.Content), int64(len(in.Content)))
	if err != nil {
		return nil, unreadable(in.Filename, err)
	}
	defer r.Close()

	markdown, err := r.Markdown()
	if err != nil {
		return nil, err
	}
	return &convSvc.Output{Markdown: strings.TrimSpace(markdown), Title: r.Metadata().Title}, nil
}

// officeDocument is the surface shared by the zip-based office readers
type officeDocument interface {
	Markdown() (string, error)
	Close() error
}

type officeOpener func(path string) (officeDocument, string, error)

func openDOCX(path string) (officeDocument, string, error) {
	r, err := docx.Open(path)
	if err != nil {
		return nil, "", err
	}
	return r, r.Metadata().Title, nil
}

func openODT(path string) (officeDocument, string, error) {
	r, err := odt.Open(path)
	if err != nil {
		return nil, "", err
	}
	return r, r.Metadata().Title, nil
}

func openXLSX(path string) (officeDocument, string, error) {
	r, err := xlsx.Open(path)
	if err != nil {
		return nil, "", err
	}
	return r, r.Metadata().Title, nil
}

func openPPTX(path string) (officeDocument, string, error) {
	r, err := pptx.Open(path)
	if err != nil {
		return nil, "", err
	}
	return r, r.Metadata().Title, nil
}

func convertOffice(in *convSvc.Input, path string, open officeOpener) (*convSvc.Output, error) {
	doc, title, err := open(path)
	if err != nil {
		return nil, unreadable(in.Filename, err)
	}
	defer doc.Close()

	markdown, err := doc.Markdown()
	if err != nil {
		return nil, err
	}
	return &convSvc.Output{Markdown: strings.TrimSpace(markdown), Title: title}, nil
}

func (c *documentConverter) writeTemp(content []byte, ext string) (string, func(), error) {
	f, err := os.CreateTemp(c.tempDir, "markitdown-*"+ext)
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			c.logger.Warn("failed to remove temp file", "path", path, "error", err)
		}
	}

	if _, err := f.Write(content); err != nil {
		f.Close()
		cleanup()
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, err
	}
	return path, cleanup, nil
}

func pdfTitle(r *reader.Reader) string {
	info, err := r.GetInfo()
	if err != nil || info == nil {
		return ""
	}
	obj, ok := info["Title"]
	if !ok {
		return ""
	}
	resolved, err := r.Resolve(obj)
	if err != nil {
		return ""
	}
	if s, ok := resolved.(core.String); ok {
		return strings.TrimSpace(string(s))
	}
	return ""
}

// unreadable reports a decoder that could not open the upload at all,
// which means the bytes are not the format the name claims.
func unreadable(filename string, err error) error {
	return &domain.UnsupportedFormatError{
		Filename: filename,
		Reason:   domain.SanitizeMessage(err.Error(), filename),
	}
}
