package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// LoadSpec reads a yaml file into a fresh T.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("config: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("config: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadInto reads a yaml file over an existing value, so fields the file
// leaves out keep what dst already holds.
func LoadInto[T any](filename string, dst *T) error {
	data, err := Load(filename)
	if err != nil {
		return fmt.Errorf("config: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("config: unmarshal %s: %w", filename, err)
	}
	return nil
}
