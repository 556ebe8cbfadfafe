package extension

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/inkwell/pkg/mdast"
)

// Frontmatter is decoded document metadata.
type Frontmatter struct {
	Format mdast.FrontmatterFormat
	Raw    string
	Data   map[string]any
}

// Get returns a top-level value.
func (f *Frontmatter) Get(key string) (any, bool) {
	if f == nil {
		return nil, false
	}
	v, ok := f.Data[key]
	return v, ok
}

// Title returns the "title" value when it is a string.
func (f *Frontmatter) Title() string {
	v, _ := f.Get("title")
	s, _ := v.(string)
	return s
}

// DecodeFrontmatter decodes a frontmatter block. The content must be a
// mapping; anything else is an error.
func DecodeFrontmatter(attrs *mdast.FrontmatterAttrs) (*Frontmatter, error) {
	if attrs == nil {
		return nil, fmt.Errorf("missing frontmatter attributes")
	}

	data := map[string]any{}
	var err error
	switch attrs.Format {
	case mdast.FrontmatterYAML:
		err = yaml.Unmarshal(attrs.Raw, &data)
	case mdast.FrontmatterTOML:
		err = toml.Unmarshal(attrs.Raw, &data)
	default:
		err = fmt.Errorf("unknown format %q", attrs.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s frontmatter: %w", attrs.Format, err)
	}
	if data == nil {
		data = map[string]any{}
	}

	return &Frontmatter{Format: attrs.Format, Raw: string(attrs.Raw), Data: data}, nil
}
