package converter

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"markitdown-api/internal/domain"
	convSvc "markitdown-api/internal/domain/services/conversion"
)

// errArchiveBudget stops expansion once an archive has produced more bytes
// than a single upload may carry.
var errArchiveBudget = errors.New("archive size budget exhausted")

// zipConverter expands an archive and converts each member through the
// registry, concatenating the results under per-file headings.
// Nested archives are skipped. maxEntrySize bounds each member and also the
// running totals of expanded input and converted output for the archive.
type zipConverter struct {
	registry     *ConverterRegistry
	maxEntries   int
	maxEntrySize int64
	logger       *slog.Logger
}

// zipSummary tallies what happened to each archive member
type zipSummary struct {
	Converted int
	Skipped   int
	Failed    int
}

// archiveBudget tracks bytes expanded and produced for one archive.
// A zero limit disables the checks.
type archiveBudget struct {
	limit    int64
	expanded int64
	produced int64
}

// remaining returns how many more expanded bytes may be read
func (b *archiveBudget) remaining() int64 {
	return b.limit - b.expanded
}

func (b *archiveBudget) fits(used, n int64) bool {
	return b.limit <= 0 || used+n <= b.limit
}

// NewZipConverter creates an archive converter backed by registry
func NewZipConverter(registry *ConverterRegistry, maxEntries int, maxEntrySize int64, logger *slog.Logger) convSvc.ContentConverter {
	return &zipConverter{
		registry:     registry,
		maxEntries:   maxEntries,
		maxEntrySize: maxEntrySize,
		logger:       logger,
	}
}

func (c *zipConverter) Convert(ctx context.Context, in *convSvc.Input) (*convSvc.Output, error) {
	zipFile, err := zip.NewReader(bytes.NewReader(in.Content), int64(len(in.Content)))
	if err != nil {
		return nil, unreadable(in.Filename, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Content from the zip file `%s`:\n\n", in.Filename)

	var summary zipSummary
	budget := &archiveBudget{limit: c.maxEntrySize}
	seen := 0
	for _, zipEntry := range zipFile.File {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// Skip directories
		if zipEntry.FileInfo().IsDir() {
			continue
		}

		seen++
		if c.maxEntries > 0 && seen > c.maxEntries {
			c.logger.Warn("archive entry limit reached",
				"filename", in.Filename,
				"limit", c.maxEntries,
			)
			break
		}

		markdown, ok, err := c.convertEntry(ctx, zipEntry, in.KeepDataURIs, budget, &summary)
		if errors.Is(err, errArchiveBudget) {
			c.logger.Warn("archive size budget reached",
				"filename", in.Filename,
				"file", zipEntry.Name,
				"limit", budget.limit,
				"expanded", budget.expanded,
				"produced", budget.produced,
			)
			break
		}
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "## File: %s\n\n%s\n\n", zipEntry.Name, markdown)
	}

	c.logger.Info("zip file processing complete",
		"filename", in.Filename,
		"converted", summary.Converted,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
	)

	if summary.Converted == 0 {
		return nil, &domain.UnsupportedFormatError{Filename: in.Filename, Reason: "archive contains no convertible files"}
	}

	return &convSvc.Output{Markdown: strings.TrimSpace(b.String())}, nil
}

func (c *zipConverter) SupportedExtensions() []string {
	return []string{".zip"}
}

func (c *zipConverter) Name() string {
	return "zip"
}

// convertEntry converts a single archive member. Failures are logged and
// counted; they never fail the whole archive. errArchiveBudget is returned
// when the member would push the archive past its size budget.
func (c *zipConverter) convertEntry(ctx context.Context, file *zip.File, keepDataURIs bool, budget *archiveBudget, summary *zipSummary) (string, bool, error) {
	ext := strings.ToLower(filepath.Ext(file.Name))
	converter := c.registry.GetConverter(ext)
	if converter == nil || converter.Name() == c.Name() {
		c.logger.Debug("skipping unsupported file type", "file", file.Name, "ext", ext)
		summary.Skipped++
		return "", false, nil
	}

	declared := int64(file.UncompressedSize64)
	if c.maxEntrySize > 0 && (declared < 0 || declared > c.maxEntrySize) {
		c.logger.Warn("skipping oversized archive entry", "file", file.Name, "size", file.UncompressedSize64)
		summary.Skipped++
		return "", false, nil
	}
	if !budget.fits(budget.expanded, declared) {
		return "", false, errArchiveBudget
	}

	fileReader, err := file.Open()
	if err != nil {
		c.entryFailed(file.Name, "failed to open file", err, summary)
		return "", false, nil
	}
	defer fileReader.Close()

	var src io.Reader = fileReader
	if budget.limit > 0 {
		// The header size is attacker controlled
		src = io.LimitReader(fileReader, min(c.maxEntrySize, budget.remaining())+1)
	}
	content, err := io.ReadAll(src)
	if err != nil {
		c.entryFailed(file.Name, "failed to read file", err, summary)
		return "", false, nil
	}
	if !budget.fits(budget.expanded, int64(len(content))) {
		return "", false, errArchiveBudget
	}
	if c.maxEntrySize > 0 && int64(len(content)) > c.maxEntrySize {
		c.logger.Warn("skipping oversized archive entry", "file", file.Name)
		summary.Skipped++
		return "", false, nil
	}
	budget.expanded += int64(len(content))

	out, err := converter.Convert(ctx, &convSvc.Input{
		Filename:     file.Name,
		Content:      content,
		KeepDataURIs: keepDataURIs,
	})
	if err != nil {
		c.entryFailed(file.Name, "failed to convert file", err, summary)
		return "", false, nil
	}

	markdown := strings.TrimSpace(out.Markdown)
	if markdown == "" {
		summary.Skipped++
		return "", false, nil
	}
	if !budget.fits(budget.produced, int64(len(markdown))) {
		return "", false, errArchiveBudget
	}
	budget.produced += int64(len(markdown))

	summary.Converted++
	return markdown, true, nil
}

func (c *zipConverter) entryFailed(name, msg string, err error, summary *zipSummary) {
	c.logger.Warn(msg, "file", name, "error", err)
	summary.Failed++
}
