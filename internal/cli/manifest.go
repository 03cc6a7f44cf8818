package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is the TOML description of one atlas build.
//
//	[atlas]
//	width = 256
//	height = 256
//	padding = 2
//	allocator = "guillotine"
//
//	[[sprite]]
//	name = "hero"
//	path = "sprites/hero.png"
type Manifest struct {
	Atlas   AtlasSection  `toml:"atlas"`
	Sprites []SpriteEntry `toml:"sprite"`
}

// AtlasSection configures the output canvas.
type AtlasSection struct {
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Padding   int    `toml:"padding"`
	Allocator string `toml:"allocator"`
}

// SpriteEntry names one source image. An empty name defaults to the
// file name without its extension.
type SpriteEntry struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

// resolvePath joins a relative sprite path onto the manifest directory.
func (s SpriteEntry) resolvePath(baseDir string) string {
	if filepath.IsAbs(s.Path) {
		return s.Path
	}
	return filepath.Join(baseDir, s.Path)
}

// LoadManifest reads and validates a pack manifest.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	if m.Atlas.Width <= 0 || m.Atlas.Height <= 0 {
		return nil, fmt.Errorf("manifest %s: atlas dimensions must be positive, got %dx%d",
			path, m.Atlas.Width, m.Atlas.Height)
	}
	if m.Atlas.Padding < 0 {
		return nil, fmt.Errorf("manifest %s: padding must not be negative, got %d",
			path, m.Atlas.Padding)
	}
	if len(m.Sprites) == 0 {
		return nil, fmt.Errorf("manifest %s: no sprites listed", path)
	}

	seen := make(map[string]int, len(m.Sprites))
	for i := range m.Sprites {
		sprite := &m.Sprites[i]
		if sprite.Path == "" {
			return nil, fmt.Errorf("manifest %s: sprite %d has no path", path, i)
		}
		if sprite.Name == "" {
			base := filepath.Base(sprite.Path)
			sprite.Name = strings.TrimSuffix(base, filepath.Ext(base))
		}
		if prev, ok := seen[sprite.Name]; ok {
			return nil, fmt.Errorf("manifest %s: sprites %d and %d share the name %q",
				path, prev, i, sprite.Name)
		}
		seen[sprite.Name] = i
	}

	return &m, nil
}
