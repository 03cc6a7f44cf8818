package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// LayoutFile is the JSON sidecar written next to the atlas image. It
// maps each sprite name to its pixel region inside the atlas.
type LayoutFile struct {
	Image   string        `json:"image"`
	Width   int           `json:"width"`
	Height  int           `json:"height"`
	Padding int           `json:"padding"`
	Sprites []LayoutEntry `json:"sprites"`
}

// LayoutEntry records where one sprite landed.
type LayoutEntry struct {
	Name   string `json:"name"`
	Index  int    `json:"index"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ReadLayoutFile loads a layout sidecar from disk.
func ReadLayoutFile(path string) (*LayoutFile, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	var f LayoutFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse layout %s: %w", path, err)
	}
	if f.Width <= 0 || f.Height <= 0 {
		return nil, fmt.Errorf("layout %s: invalid atlas dimensions %dx%d", path, f.Width, f.Height)
	}
	return &f, nil
}

// Write stores the layout as indented JSON.
func (f *LayoutFile) Write(path string) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Clean(path), append(data, '\n'), 0o644)
}

// Coverage returns the fraction of the canvas covered by sprites.
func (f *LayoutFile) Coverage() float64 {
	total := f.Width * f.Height
	if total == 0 {
		return 0
	}
	var used int
	for _, s := range f.Sprites {
		used += s.Width * s.Height
	}
	return float64(used) / float64(total)
}
