package feed

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRules(t *testing.T) {
	path := writeRules(t, `
desired:
  - "GPU"
  - "Free Monitor"
undesired:
  - spam
`)

	keywords, err := LoadRules(path)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(keywords.Desired, []string{"gpu", "freemonitor"}) {
		t.Errorf("Unexpected desired keywords: %v", keywords.Desired)
	}
	if !reflect.DeepEqual(keywords.Undesired, []string{"spam"}) {
		t.Errorf("Unexpected undesired keywords: %v", keywords.Undesired)
	}
}

func TestLoadRules_UndesiredAbsentVsEmpty(t *testing.T) {
	absent, err := LoadRules(writeRules(t, "desired: [gpu]\n"))
	if err != nil {
		t.Fatal(err)
	}
	if absent.Undesired != nil {
		t.Errorf("Expected nil undesired list, got %v", absent.Undesired)
	}

	empty, err := LoadRules(writeRules(t, "desired: [gpu]\nundesired: []\n"))
	if err != nil {
		t.Fatal(err)
	}
	if empty.Undesired == nil || len(empty.Undesired) != 0 {
		t.Errorf("Expected present but empty undesired list, got %#v", empty.Undesired)
	}
}

func TestLoadRules_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing desired", "undesired: [spam]\n"},
		{"desired normalizes to nothing", "desired: ['!!', ' ']\n"},
		{"malformed yaml", "desired: [gpu\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadRules(writeRules(t, tt.content)); err == nil {
				t.Error("Expected error")
			}
		})
	}

	if _, err := LoadRules(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("Expected error for missing file")
	}
}
