package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ashfall-games/intothedark/internal/model"
)

//go:embed content/story.yaml
var defaultStory []byte

// storyFile is the on-disk shape of a story document.
type storyFile struct {
	Version int            `yaml:"version"`
	Title   string         `yaml:"title"`
	Scenes  []model.Scene  `yaml:"scenes"`
	Endings []model.Ending `yaml:"endings"`
}

// Load parses and validates YAML story content.
func Load(data []byte) (*Catalog, error) {
	var f storyFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing story: %w", err)
	}
	if f.Version != 1 {
		return nil, fmt.Errorf("unsupported story version: %d", f.Version)
	}
	return New(f.Scenes, f.Endings)
}

// LoadFile reads and validates a story file from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading story: %w", err)
	}
	c, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("loading story %s: %w", path, err)
	}
	return c, nil
}

// Default returns the embedded "Into the Dark" story.
func Default() (*Catalog, error) {
	return Load(defaultStory)
}
