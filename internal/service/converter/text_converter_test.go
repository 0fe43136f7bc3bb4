package converter

import (
	"context"
	"errors"
	"strings"
	"testing"

	"markitdown-api/internal/domain"
	convSvc "markitdown-api/internal/domain/services/conversion"
)

func TestTextConverter_Convert(t *testing.T) {
	ctx := context.Background()
	c := NewTextConverter()

	tests := []struct {
		name        string
		content     []byte
		contentType string
		want        string
	}{
		{name: "utf8 passthrough", content: []byte("héllo world"), want: "héllo world"},
		{name: "bom stripped", content: append([]byte{0xEF, 0xBB, 0xBF}, "hi"...), want: "hi"},
		{name: "latin1 declared", content: []byte{'c', 'a', 'f', 0xE9}, contentType: "text/plain; charset=iso-8859-1", want: "café"},
		{name: "utf16 bom", content: []byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00}, want: "hi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := c.Convert(ctx, &convSvc.Input{Filename: "a.txt", Content: tt.content, ContentType: tt.contentType})
			if err != nil {
				t.Fatalf("Convert: %v", err)
			}
			if out.Markdown != tt.want {
				t.Errorf("Markdown = %q, want %q", out.Markdown, tt.want)
			}
		})
	}
}

func TestTextConverter_RejectsBinary(t *testing.T) {
	_, err := NewTextConverter().Convert(context.Background(), &convSvc.Input{
		Filename: "a.txt",
		Content:  []byte{'a', 0x00, 'b', 0x00, 0x00},
	})
	if !errors.Is(err, domain.ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestMarkdownConverter_Title(t *testing.T) {
	out, err := NewMarkdownConverter().Convert(context.Background(), &convSvc.Input{
		Filename: "readme.md",
		Content:  []byte("intro\n\n# Getting Started\n\n## Install\n"),
	})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if out.Title != "Getting Started" {
		t.Errorf("Title = %q", out.Title)
	}
	if !strings.HasPrefix(out.Markdown, "intro") {
		t.Errorf("Markdown altered: %q", out.Markdown)
	}
}

func TestCSVConverter_Convert(t *testing.T) {
	ctx := context.Background()
	c := NewCSVConverter()

	t.Run("csv table", func(t *testing.T) {
		out, err := c.Convert(ctx, &convSvc.Input{
			Filename: "people.csv",
			Content:  []byte("name,age\nAda,36\n\"Pipe|Guy\",41,extra\n"),
		})
		if err != nil {
			t.Fatalf("Convert: %v", err)
		}
		want := "| name | age |  |\n" +
			"| --- | --- | --- |\n" +
			"| Ada | 36 |  |\n" +
			`| Pipe\|Guy | 41 | extra |`
		if out.Markdown != want {
			t.Errorf("Markdown =\n%s\nwant\n%s", out.Markdown, want)
		}
	})

	t.Run("tsv", func(t *testing.T) {
		out, err := c.Convert(ctx, &convSvc.Input{Filename: "a.TSV", Content: []byte("a\tb\n1\t2\n")})
		if err != nil {
			t.Fatalf("Convert: %v", err)
		}
		if !strings.Contains(out.Markdown, "| 1 | 2 |") {
			t.Errorf("Markdown = %q", out.Markdown)
		}
	})

	t.Run("no rows", func(t *testing.T) {
		out, err := c.Convert(ctx, &convSvc.Input{Filename: "a.csv", Content: []byte("\n\n")})
		if err != nil {
			t.Fatalf("Convert: %v", err)
		}
		if out.Markdown != "" {
			t.Errorf("Markdown = %q, want empty", out.Markdown)
		}
	})
}

func TestHTMLConverter_Convert(t *testing.T) {
	page := `<html><head><title> My Page </title><style>p{}</style></head>
<body><h1>Hello</h1><p onclick="x()">World<script>steal()</script></p></body></html>`

	out, err := NewHTMLConverter().Convert(context.Background(), &convSvc.Input{
		Filename: "page.html",
		Content:  []byte(page),
	})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if out.Title != "My Page" {
		t.Errorf("Title = %q", out.Title)
	}
	if !strings.Contains(out.Markdown, "# Hello") || !strings.Contains(out.Markdown, "World") {
		t.Errorf("Markdown = %q", out.Markdown)
	}
	for _, bad := range []string{"steal", "onclick", "My Page"} {
		if strings.Contains(out.Markdown, bad) {
			t.Errorf("Markdown contains %q: %q", bad, out.Markdown)
		}
	}
}

func TestTruncateDataURIs(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"![a](data:image/png;base64,AAAA)", "![a](data:image/png;base64...)"},
		{"x ![](data:image/svg+xml;base64,PHN2Zz4=) y", "x ![](data:image/svg+xml;base64...) y"},
		{"![a](https://example.com/a.png)", "![a](https://example.com/a.png)"},
		{"plain data:image/png;base64,AAAA text", "plain data:image/png;base64,AAAA text"},
	}
	for _, tt := range tests {
		if got := TruncateDataURIs(tt.in); got != tt.want {
			t.Errorf("TruncateDataURIs(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
