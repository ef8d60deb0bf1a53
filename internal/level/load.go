package level

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed levels.yaml
var defaultLevels []byte

type fileSpec struct {
	Messages    Messages    `yaml:"messages"`
	Celebration Celebration `yaml:"celebration"`
	Levels      []Config    `yaml:"levels"`
}

// Parse decodes and validates a YAML level table.
func Parse(data []byte) (*Table, error) {
	var spec fileSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("level: unmarshal: %w", err)
	}
	return NewTable(spec.Levels, spec.Messages, spec.Celebration)
}

// Default returns the embedded level table.
func Default() *Table {
	t, err := Parse(defaultLevels)
	if err != nil {
		panic(fmt.Sprintf("level: embedded table is invalid: %v", err))
	}
	return t
}

// LoadFile reads a YAML level table from disk.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("level: load %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("level: %s: %w", path, err)
	}
	return t, nil
}

// Load returns the table at path, or the embedded table when path is empty.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}
