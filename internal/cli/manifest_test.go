package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pack.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	path := writeManifest(t, `
[atlas]
width = 256
height = 128
padding = 2
allocator = "shelf"

[[sprite]]
name = "hero"
path = "sprites/hero.png"

[[sprite]]
path = "sprites/coin.png"
`)

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest failed: %v", err)
	}

	if m.Atlas.Width != 256 || m.Atlas.Height != 128 {
		t.Errorf("atlas size = %dx%d, want 256x128", m.Atlas.Width, m.Atlas.Height)
	}
	if m.Atlas.Padding != 2 {
		t.Errorf("padding = %d, want 2", m.Atlas.Padding)
	}
	if m.Atlas.Allocator != "shelf" {
		t.Errorf("allocator = %q, want %q", m.Atlas.Allocator, "shelf")
	}
	if len(m.Sprites) != 2 {
		t.Fatalf("expected 2 sprites, got %d", len(m.Sprites))
	}
	if m.Sprites[0].Name != "hero" {
		t.Errorf("sprite 0 name = %q, want %q", m.Sprites[0].Name, "hero")
	}
	// The unnamed sprite takes its file name.
	if m.Sprites[1].Name != "coin" {
		t.Errorf("sprite 1 name = %q, want %q", m.Sprites[1].Name, "coin")
	}
}

func TestLoadManifest_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "malformed toml",
			body:    "[atlas\nwidth=",
			wantErr: "parse manifest",
		},
		{
			name:    "zero dimensions",
			body:    "[atlas]\nwidth = 0\nheight = 64\n\n[[sprite]]\npath = \"a.png\"\n",
			wantErr: "dimensions must be positive",
		},
		{
			name:    "negative padding",
			body:    "[atlas]\nwidth = 64\nheight = 64\npadding = -1\n\n[[sprite]]\npath = \"a.png\"\n",
			wantErr: "padding must not be negative",
		},
		{
			name:    "no sprites",
			body:    "[atlas]\nwidth = 64\nheight = 64\n",
			wantErr: "no sprites",
		},
		{
			name:    "missing path",
			body:    "[atlas]\nwidth = 64\nheight = 64\n\n[[sprite]]\nname = \"a\"\n",
			wantErr: "has no path",
		},
		{
			name:    "duplicate names",
			body:    "[atlas]\nwidth = 64\nheight = 64\n\n[[sprite]]\npath = \"x/a.png\"\n\n[[sprite]]\npath = \"y/a.png\"\n",
			wantErr: "share the name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadManifest(writeManifest(t, tt.body))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadManifest_MissingFile(t *testing.T) {
	if _, err := LoadManifest(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("expected an error for a missing manifest")
	}
}

func TestNewAllocator(t *testing.T) {
	section := AtlasSection{Width: 64, Height: 64}

	for _, name := range []string{"", "guillotine", "shelf"} {
		section.Allocator = name
		if _, err := newAllocator(section); err != nil {
			t.Errorf("newAllocator(%q) failed: %v", name, err)
		}
	}

	section.Allocator = "grid"
	if _, err := newAllocator(section); err == nil {
		t.Error("expected an error for an unknown allocator")
	}
}
