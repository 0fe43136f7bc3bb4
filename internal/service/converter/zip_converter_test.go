package converter

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"markitdown-api/internal/domain"
	convSvc "markitdown-api/internal/domain/services/conversion"
)

type zipMember struct {
	name string
	body string
}

func buildZip(t *testing.T, members ...zipMember) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, m := range members {
		f, err := w.Create(m.name)
		if err != nil {
			t.Fatalf("zip create: %v", err)
		}
		if _, err := f.Write([]byte(m.body)); err != nil {
			t.Fatalf("zip write: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func newTestZipRegistry(maxEntries int, maxEntrySize int64) *ConverterRegistry {
	registry := NewConverterRegistry(testLogger())
	registry.Register(NewTextConverter())
	registry.Register(NewMarkdownConverter())
	registry.Register(NewZipConverter(registry, maxEntries, maxEntrySize, testLogger()))
	return registry
}

func TestZipConverter_Convert(t *testing.T) {
	ctx := context.Background()
	registry := newTestZipRegistry(0, 0)

	content := buildZip(t,
		zipMember{"docs/", ""},
		zipMember{"docs/a.txt", "alpha"},
		zipMember{"b.md", "# Beta"},
		zipMember{"c.bin", "\x00\x01"},
		zipMember{"inner.zip", "PK\x03\x04"},
	)

	out, name, err := registry.Convert(ctx, &convSvc.Input{Filename: "bundle.zip", Content: content})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if name != "zip" {
		t.Errorf("converter = %q, want zip", name)
	}

	for _, want := range []string{"`bundle.zip`", "## File: docs/a.txt", "alpha", "## File: b.md", "# Beta"} {
		if !strings.Contains(out.Markdown, want) {
			t.Errorf("Markdown missing %q:\n%s", want, out.Markdown)
		}
	}
	for _, unwanted := range []string{"c.bin", "inner.zip"} {
		if strings.Contains(out.Markdown, unwanted) {
			t.Errorf("Markdown should skip %q:\n%s", unwanted, out.Markdown)
		}
	}
}

func TestZipConverter_Limits(t *testing.T) {
	ctx := context.Background()

	t.Run("entry count", func(t *testing.T) {
		registry := newTestZipRegistry(1, 0)
		content := buildZip(t, zipMember{"a.txt", "first"}, zipMember{"b.txt", "second"})

		out, _, err := registry.Convert(ctx, &convSvc.Input{Filename: "two.zip", Content: content})
		if err != nil {
			t.Fatalf("Convert: %v", err)
		}
		if !strings.Contains(out.Markdown, "first") || strings.Contains(out.Markdown, "second") {
			t.Errorf("Markdown = %q", out.Markdown)
		}
	})

	t.Run("entry size", func(t *testing.T) {
		registry := newTestZipRegistry(0, 4)
		content := buildZip(t, zipMember{"small.txt", "tiny"}, zipMember{"big.txt", "far too large"})

		out, _, err := registry.Convert(ctx, &convSvc.Input{Filename: "sizes.zip", Content: content})
		if err != nil {
			t.Fatalf("Convert: %v", err)
		}
		if !strings.Contains(out.Markdown, "tiny") || strings.Contains(out.Markdown, "far too large") {
			t.Errorf("Markdown = %q", out.Markdown)
		}
	})
}

func TestZipConverter_ArchiveBudget(t *testing.T) {
	ctx := context.Background()

	t.Run("expanded bytes across entries", func(t *testing.T) {
		registry := newTestZipRegistry(0, 10)
		content := buildZip(t,
			zipMember{"a.txt", "12345678"},
			zipMember{"b.txt", "abcdef"},
			zipMember{"c.txt", "z"},
		)

		out, _, err := registry.Convert(ctx, &convSvc.Input{Filename: "bomb.zip", Content: content})
		if err != nil {
			t.Fatalf("Convert: %v", err)
		}
		if !strings.Contains(out.Markdown, "12345678") {
			t.Errorf("Markdown missing first entry: %q", out.Markdown)
		}
		for _, unwanted := range []string{"abcdef", "## File: b.txt", "## File: c.txt"} {
			if strings.Contains(out.Markdown, unwanted) {
				t.Errorf("Markdown should stop before %q: %q", unwanted, out.Markdown)
			}
		}
	})

	t.Run("converted output across entries", func(t *testing.T) {
		registry := newTestZipRegistry(0, 10)
		inflate := &mockConverter{name: "inflate", exts: []string{".inf"}, markdown: strings.Repeat("x", 8)}
		registry.Register(inflate)
		content := buildZip(t, zipMember{"a.inf", "1"}, zipMember{"b.inf", "2"}, zipMember{"c.inf", "3"})

		out, _, err := registry.Convert(ctx, &convSvc.Input{Filename: "grow.zip", Content: content})
		if err != nil {
			t.Fatalf("Convert: %v", err)
		}
		if got := strings.Count(out.Markdown, "## File:"); got != 1 {
			t.Errorf("sections = %d, want 1:\n%s", got, out.Markdown)
		}
		if inflate.calls != 2 {
			t.Errorf("converter calls = %d, want 2", inflate.calls)
		}
	})

	t.Run("nothing fits", func(t *testing.T) {
		registry := newTestZipRegistry(0, 10)
		registry.Register(&mockConverter{name: "inflate", exts: []string{".inf"}, markdown: strings.Repeat("x", 64)})
		content := buildZip(t, zipMember{"a.inf", "1"})

		_, _, err := registry.Convert(ctx, &convSvc.Input{Filename: "grow.zip", Content: content})
		if !errors.Is(err, domain.ErrUnsupportedFormat) {
			t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
		}
	})
}

func TestZipConverter_Unsupported(t *testing.T) {
	ctx := context.Background()
	registry := newTestZipRegistry(0, 0)

	tests := []struct {
		name    string
		content []byte
	}{
		{name: "nothing convertible", content: buildZip(t, zipMember{"a.bin", "\x00"})},
		{name: "corrupt archive", content: []byte("PK\x03\x04 this is not really a zip")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := registry.Convert(ctx, &convSvc.Input{Filename: "archive.zip", Content: tt.content})
			if !errors.Is(err, domain.ErrUnsupportedFormat) {
				t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
			}
			if !strings.Contains(err.Error(), "archive.zip") {
				t.Errorf("error %q does not name the file", err)
			}
		})
	}
}
