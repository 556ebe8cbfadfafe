package config

import (
	"bytes"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a configuration file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ToYAML encodes s as YAML with two-space indentation.
func (s Settings) ToYAML() ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToTOML encodes s as TOML.
func (s Settings) ToTOML() ([]byte, error) {
	data, err := toml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}
	return data, nil
}

// Decode overlays data onto s. Keys absent from data keep their current
// values, so decoding layer after layer onto the defaults merges them.
func (s *Settings) Decode(format Format, data []byte) error {
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, s); err != nil {
			return fmt.Errorf("parse yaml: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, s); err != nil {
			return fmt.Errorf("parse toml: %w", err)
		}
	default:
		return fmt.Errorf("unknown config format %q", format)
	}
	return nil
}

// FromYAML decodes YAML over the defaults.
func FromYAML(data []byte) (Settings, error) {
	s := NewSettings()
	err := s.Decode(FormatYAML, data)
	return s, err
}

// FromTOML decodes TOML over the defaults.
func FromTOML(data []byte) (Settings, error) {
	s := NewSettings()
	err := s.Decode(FormatTOML, data)
	return s, err
}

// Template returns a commented default configuration for init.
func Template(format Format) ([]byte, error) {
	var header string
	var body []byte
	var err error

	switch format {
	case FormatTOML:
		header = "# inkwell configuration\n# Values shown are the defaults.\n\n"
		body, err = NewSettings().ToTOML()
	default:
		header = "# inkwell configuration\n# Values shown are the defaults.\n# markdown.math: unicode or source; editor.default_view: raw, rendered or split\n\n"
		body, err = NewSettings().ToYAML()
	}
	if err != nil {
		return nil, err
	}

	return append([]byte(header), body...), nil
}
