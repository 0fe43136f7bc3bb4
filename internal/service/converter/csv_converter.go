package converter

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"markitdown-api/internal/domain"
	convSvc "markitdown-api/internal/domain/services/conversion"
)

// csvConverter renders delimited text as a markdown table.
// The first record is the header row.
type csvConverter struct{}

// NewCSVConverter creates a converter for .csv and .tsv files.
func NewCSVConverter() convSvc.ContentConverter {
	return &csvConverter{}
}

func (c *csvConverter) Convert(ctx context.Context, in *convSvc.Input) (*convSvc.Output, error) {
	text, err := decodeText(in.Content, in.ContentType)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	if strings.EqualFold(filepath.Ext(in.Filename), ".tsv") {
		r.Comma = '\t'
	}

	var rows [][]string
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &domain.UnsupportedFormatError{
				Filename: in.Filename,
				Reason:   domain.SanitizeMessage(err.Error(), in.Filename),
			}
		}
		rows = append(rows, record)
	}

	return &convSvc.Output{Markdown: markdownTable(rows)}, nil
}

func (c *csvConverter) SupportedExtensions() []string {
	return []string{".csv", ".tsv"}
}

func (c *csvConverter) Name() string {
	return "csv"
}

// markdownTable pads every row to the widest record. Returns "" for no rows.
func markdownTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}

	var b strings.Builder
	writeRow := func(row []string) {
		b.WriteString("|")
		for i := 0; i < width; i++ {
			cell := ""
			if i < len(row) {
				cell = escapeCell(row[i])
			}
			b.WriteString(" ")
			b.WriteString(cell)
			b.WriteString(" |")
		}
		b.WriteString("\n")
	}

	writeRow(rows[0])
	b.WriteString("|")
	for i := 0; i < width; i++ {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")
	for _, row := range rows[1:] {
		writeRow(row)
	}

	return strings.TrimRight(b.String(), "\n")
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
