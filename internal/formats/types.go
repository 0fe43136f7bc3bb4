package formats

import "gopkg.in/yaml.v3"

// Category names reported in metadata.detected_format
const (
	Document     = "document"
	Spreadsheet  = "spreadsheet"
	Presentation = "presentation"
	Image        = "image"
	Audio        = "audio"
	Other        = "other"
)

// Category is one bucket of the format table
type Category struct {
	Name         string   `yaml:"-" json:"name"`
	Extensions   []string `yaml:"extensions" json:"extensions"`
	MIMEPrefixes []string `yaml:"mime_prefixes" json:"mime_prefixes"`
}

// Table holds all categories in file order
type Table struct {
	Categories []Category `yaml:"-" json:"categories"`
}

// UnmarshalYAML implements custom YAML unmarshaling to preserve category order from the YAML file
func (t *Table) UnmarshalYAML(node *yaml.Node) error {
	type categoriesOnly struct {
		Categories map[string]Category `yaml:"categories"`
	}
	var m categoriesOnly
	if err := node.Decode(&m); err != nil {
		return err
	}

	for i := 0; i < len(node.Content); i += 2 {
		if node.Content[i].Value != "categories" {
			continue
		}
		catNode := node.Content[i+1]
		// catNode.Content alternates: key, value, key, value...
		for j := 0; j < len(catNode.Content); j += 2 {
			name := catNode.Content[j].Value
			if cat, ok := m.Categories[name]; ok {
				cat.Name = name
				t.Categories = append(t.Categories, cat)
			}
		}
		break
	}

	return nil
}
