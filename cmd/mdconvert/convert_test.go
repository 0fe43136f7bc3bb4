package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"markitdown-api/internal/config"
	"markitdown-api/internal/domain/models"
)

func testStack(t *testing.T, maxFileSize int64) *converterStack {
	t.Helper()
	cfg := &config.Config{
		MaxFileSize:       maxFileSize,
		CharsPerPage:      config.DefaultCharsPerPage,
		TempDir:           t.TempDir(),
		OCRLanguages:      "eng",
		MaxArchiveEntries: config.DefaultMaxArchiveEntries,
	}
	stack, err := newConverterStack(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(stack.close)
	return stack
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestConvertFile(t *testing.T) {
	stack := testStack(t, 1<<20)

	resp, err := convertFile(context.Background(), stack, writeFile(t, "table.csv", "a,b\n1,2\n"), false)
	require.NoError(t, err)
	assert.Equal(t, "table.csv", resp.Metadata.FileName)
	assert.Equal(t, "spreadsheet", resp.Metadata.DetectedFormat)
	assert.Contains(t, resp.Markdown, "| a | b |")
}

func TestConvertFile_Rejections(t *testing.T) {
	stack := testStack(t, 8)

	_, err := convertFile(context.Background(), stack, writeFile(t, "big.txt", "more than eight bytes"), false)
	assert.ErrorContains(t, err, "File too large")

	_, err = convertFile(context.Background(), stack, writeFile(t, "empty.txt", ""), false)
	assert.ErrorContains(t, err, "Empty file")

	_, err = convertFile(context.Background(), stack, t.TempDir(), false)
	assert.ErrorContains(t, err, "directory")
}

func TestRunConvert_JSON(t *testing.T) {
	path := writeFile(t, "notes.md", "# Notes\n\nhello world")
	t.Setenv("TEMP_DIR", t.TempDir())
	t.Setenv("GEMINI_API_KEY", "")

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"--json", path})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute(), stderr.String())

	var resp models.ConversionResponse
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Notes", resp.Metadata.Title)
	assert.Equal(t, 3, resp.Metadata.Words)
	assert.True(t, strings.HasPrefix(resp.Markdown, "# Notes"))
}
