package steno

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed english_stenotype.yaml
var englishStenotypeYAML []byte

// systemDoc is the YAML wire form of a system definition.
type systemDoc struct {
	Name             string            `yaml:"name"`
	Keys             []string          `yaml:"keys"`
	Numbers          map[string]string `yaml:"numbers"`
	NumericIndicator string            `yaml:"numeric_indicator"`
}

// ParseSystemYAML parses and validates a system definition from YAML.
func ParseSystemYAML(data []byte) (*System, error) {
	var doc systemDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing system definition: %w", err)
	}
	sys := &System{
		Name:             doc.Name,
		Keys:             doc.Keys,
		Numbers:          doc.Numbers,
		NumericIndicator: doc.NumericIndicator,
	}
	if err := sys.Validate(); err != nil {
		return nil, err
	}
	return sys, nil
}

// EnglishStenotype returns the built-in English Stenotype system.
func EnglishStenotype() *System {
	sys, err := ParseSystemYAML(englishStenotypeYAML)
	if err != nil {
		// The embedded definition is fixed at build time.
		panic(err)
	}
	return sys
}
