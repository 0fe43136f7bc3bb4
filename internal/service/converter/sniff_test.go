package converter

import (
	"archive/zip"
	"bytes"
	"testing"
)

func TestSniffExtension(t *testing.T) {
	epub := func() []byte {
		var buf bytes.Buffer
		w := zip.NewWriter(&buf)
		f, _ := w.Create("mimetype")
		f.Write([]byte("application/epub+zip"))
		w.Close()
		return buf.Bytes()
	}()

	docx := func() []byte {
		var buf bytes.Buffer
		w := zip.NewWriter(&buf)
		f, _ := w.Create("word/document.xml")
		f.Write([]byte("<w:document/>"))
		w.Close()
		return buf.Bytes()
	}()

	tests := []struct {
		name    string
		content []byte
		want    string
	}{
		{name: "empty", content: nil, want: ""},
		{name: "pdf", content: []byte("%PDF-1.4\n%..."), want: ".pdf"},
		{name: "html", content: []byte("<!DOCTYPE html><html><body>x</body></html>"), want: ".html"},
		{name: "png", content: []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), want: ".png"},
		{name: "jpeg", content: []byte("\xFF\xD8\xFF\xE0\x00\x10JFIF"), want: ".jpg"},
		{name: "plain text", content: []byte("just some words"), want: ".txt"},
		{name: "docx", content: docx, want: ".docx"},
		{name: "epub", content: epub, want: ".epub"},
		{name: "binary", content: []byte{0x00, 0x01, 0x02, 0x03, 0x04}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SniffExtension(tt.content); got != tt.want {
				t.Errorf("SniffExtension() = %q, want %q", got, tt.want)
			}
		})
	}
}
