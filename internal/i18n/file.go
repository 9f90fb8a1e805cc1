package i18n

import (
	"fmt"
	"os"

	yaml "go.yaml.in/yaml/v3"
)

// catalogFile is the YAML override format:
//
//	default_locale: en
//	buttons:
//	  - id: delivery
//	    icon: "🛵"
//	locales:
//	  en:
//	    labels:
//	      delivery: Delivery
//	    messages:
//	      delivery: "🛵 *Delivery Alert!* Food or package at the door."
//	    ui:
//	      title: Dori-Bell
type catalogFile struct {
	DefaultLocale string             `yaml:"default_locale"`
	Buttons       []Button           `yaml:"buttons"`
	Locales       map[string]Strings `yaml:"locales"`
}

// Load reads a catalog override from path. An empty path returns the
// built-in catalog. The file fully replaces the built-in button set
// and locale table; validation rejects incomplete overrides at startup.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	var f catalogFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("catalog: parse %q: %w", path, err)
	}

	def := f.DefaultLocale
	if def == "" {
		def = DefaultLocale
	}
	c, err := New(def, f.Buttons, f.Locales)
	if err != nil {
		return nil, fmt.Errorf("catalog: %q: %w", path, err)
	}
	return c, nil
}
