package feed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadRules reads a YAML keyword policy:
//
//	desired: [gpu, "free monitor"]
//	undesired: [spam]
//
// Entries are normalized the same way titles are.
func LoadRules(path string) (Keywords, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Keywords{}, fmt.Errorf("failed to read file: %w", err)
	}

	var raw Keywords
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Keywords{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	keywords := Keywords{Desired: normalizeAll(raw.Desired)}
	if raw.Undesired != nil {
		keywords.Undesired = normalizeAll(raw.Undesired)
	}

	if err := keywords.Validate(); err != nil {
		return Keywords{}, fmt.Errorf("invalid rules %s: %w", path, err)
	}

	return keywords, nil
}

func (k Keywords) Validate() error {
	if len(k.Desired) == 0 {
		return fmt.Errorf("at least one desired keyword is required")
	}
	return nil
}

func normalizeAll(entries []string) []string {
	normalized := make([]string, 0, len(entries))
	for _, entry := range entries {
		if keyword := Normalize(entry); keyword != "" {
			normalized = append(normalized, keyword)
		}
	}
	return normalized
}
