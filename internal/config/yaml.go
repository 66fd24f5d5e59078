package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadYAML layers overrides from path onto a fresh Default configuration.
// Because yaml.Unmarshal only writes fields present in the document, any
// threshold or weight list the file omits keeps its built-in default;
// callers only need to name what they want to change.
func LoadYAML(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
