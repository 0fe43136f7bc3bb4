package formats

import (
	"embed"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Registry classifies files into coarse categories. Used only for response
// metadata, never for dispatch. Read-only after construction.
type Registry struct {
	categories []Category
	byExt      map[string]string
}

// NewRegistry loads the embedded format table
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/formats.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read formats.yaml: %w", err)
	}
	return newRegistryFromYAML(data)
}

func newRegistryFromYAML(data []byte) (*Registry, error) {
	var table Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to unmarshal formats.yaml: %w", err)
	}
	if len(table.Categories) == 0 {
		return nil, fmt.Errorf("formats.yaml defines no categories")
	}

	r := &Registry{
		categories: table.Categories,
		byExt:      make(map[string]string),
	}
	for _, cat := range table.Categories {
		for _, ext := range cat.Extensions {
			ext = normalizeExt(ext)
			// First category listing an extension keeps it
			if _, exists := r.byExt[ext]; !exists {
				r.byExt[ext] = cat.Name
			}
		}
	}
	return r, nil
}

// Detect returns the category for a file. The extension is looked up first
// (case-insensitive); the declared content type is only consulted when the
// extension is missing or unknown. Anything else is "other".
func (r *Registry) Detect(filename, contentType string) string {
	if ext := filepath.Ext(filename); ext != "" {
		if name, ok := r.byExt[normalizeExt(ext)]; ok {
			return name
		}
	}

	mediaType := strings.ToLower(strings.TrimSpace(contentType))
	if parsed, _, err := mime.ParseMediaType(contentType); err == nil {
		mediaType = parsed
	}
	if mediaType == "" || mediaType == "application/octet-stream" {
		return Other
	}
	for _, cat := range r.categories {
		for _, prefix := range cat.MIMEPrefixes {
			if strings.HasPrefix(mediaType, prefix) {
				return cat.Name
			}
		}
	}
	return Other
}

// Categories returns the categories in table order
func (r *Registry) Categories() []Category {
	return r.categories
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
