package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/atlas"
	"github.com/gogpu/atlas/assets"
)

// writeSprite stores a solid-color PNG for packing tests.
func writeSprite(t *testing.T, path string, width, height int, px [4]byte) {
	t.Helper()

	data := make([]byte, 0, width*height*4)
	for i := 0; i < width*height; i++ {
		data = append(data, px[:]...)
	}
	img, err := assets.NewImageFromBytes(width, height, gputypes.TextureFormatRGBA8Unorm, data)
	if err != nil {
		t.Fatalf("failed to build sprite image: %v", err)
	}
	if err := img.SavePNG(path); err != nil {
		t.Fatalf("failed to save sprite: %v", err)
	}
}

// runCommand executes the root command with args and returns its output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { atlas.SetLogger(nil) })

	var buf bytes.Buffer
	root := Root()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestPackCommand(t *testing.T) {
	dir := t.TempDir()
	writeSprite(t, filepath.Join(dir, "hero.png"), 4, 4, [4]byte{0xFF, 0x00, 0x00, 0xFF})
	writeSprite(t, filepath.Join(dir, "coin.png"), 3, 3, [4]byte{0x00, 0x00, 0xFF, 0xFF})

	manifest := filepath.Join(dir, "pack.toml")
	body := `
[atlas]
width = 16
height = 16

[[sprite]]
name = "hero"
path = "hero.png"

[[sprite]]
name = "coin"
path = "coin.png"
`
	if err := os.WriteFile(manifest, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	outDir := filepath.Join(dir, "out")
	output, err := runCommand(t, "pack", manifest, "--output", outDir)
	if err != nil {
		t.Fatalf("pack failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "packed 2 sprites") {
		t.Errorf("output %q does not report the sprite count", output)
	}

	// The atlas image holds both sprites.
	canvas, err := assets.LoadPNG(filepath.Join(outDir, atlasImageName))
	if err != nil {
		t.Fatalf("failed to load packed atlas: %v", err)
	}
	if canvas.Width() != 16 || canvas.Height() != 16 {
		t.Errorf("atlas size = %dx%d, want 16x16", canvas.Width(), canvas.Height())
	}

	layout, err := ReadLayoutFile(filepath.Join(outDir, atlasLayoutName))
	if err != nil {
		t.Fatalf("failed to read layout: %v", err)
	}
	if len(layout.Sprites) != 2 {
		t.Fatalf("expected 2 layout entries, got %d", len(layout.Sprites))
	}

	hero, coin := layout.Sprites[0], layout.Sprites[1]
	if hero.Name != "hero" || hero.Index != 0 {
		t.Errorf("entry 0 = %+v, want hero at index 0", hero)
	}
	if hero.X != 0 || hero.Y != 0 || hero.Width != 4 || hero.Height != 4 {
		t.Errorf("hero region = %+v, want 4x4 at (0,0)", hero)
	}
	if coin.Width != 3 || coin.Height != 3 {
		t.Errorf("coin region = %+v, want 3x3", coin)
	}

	regions := []atlas.Region{
		{X: hero.X, Y: hero.Y, Width: hero.Width, Height: hero.Height},
		{X: coin.X, Y: coin.Y, Width: coin.Width, Height: coin.Height},
	}
	if regions[0].Intersects(regions[1]) {
		t.Errorf("sprite regions %v and %v overlap", regions[0], regions[1])
	}
	for _, r := range regions {
		if !r.In(16, 16) {
			t.Errorf("region %v is out of bounds", r)
		}
	}

	// Spot-check the copied pixels.
	data := canvas.Data()
	heroOff := (hero.Y*16 + hero.X) * 4
	if data[heroOff] != 0xFF || data[heroOff+2] != 0x00 {
		t.Errorf("hero pixel = %v, want red", data[heroOff:heroOff+4])
	}
	coinOff := (coin.Y*16 + coin.X) * 4
	if data[coinOff] != 0x00 || data[coinOff+2] != 0xFF {
		t.Errorf("coin pixel = %v, want blue", data[coinOff:coinOff+4])
	}
}

func TestPackCommand_DoesNotFit(t *testing.T) {
	dir := t.TempDir()
	writeSprite(t, filepath.Join(dir, "big.png"), 8, 8, [4]byte{0xFF, 0xFF, 0xFF, 0xFF})

	manifest := filepath.Join(dir, "pack.toml")
	body := "[atlas]\nwidth = 4\nheight = 4\n\n[[sprite]]\npath = \"big.png\"\n"
	if err := os.WriteFile(manifest, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	_, err := runCommand(t, "pack", manifest, "--output", filepath.Join(dir, "out"))
	if err == nil {
		t.Fatal("expected an error for an oversized sprite")
	}
	if !strings.Contains(err.Error(), "does not fit") {
		t.Errorf("error %q does not mention the oversized sprite", err)
	}
}

func TestPackCommand_MissingSprite(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "pack.toml")
	body := "[atlas]\nwidth = 16\nheight = 16\n\n[[sprite]]\npath = \"absent.png\"\n"
	if err := os.WriteFile(manifest, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	_, err := runCommand(t, "pack", manifest, "--output", filepath.Join(dir, "out"))
	if err == nil {
		t.Fatal("expected an error for a missing sprite file")
	}
}

func TestPackCommand_Dump(t *testing.T) {
	dir := t.TempDir()
	writeSprite(t, filepath.Join(dir, "hero.png"), 4, 4, [4]byte{0xFF, 0x00, 0x00, 0xFF})

	manifest := filepath.Join(dir, "pack.toml")
	body := "[atlas]\nwidth = 16\nheight = 16\n\n[[sprite]]\npath = \"hero.png\"\n"
	if err := os.WriteFile(manifest, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	output, err := runCommand(t, "pack", manifest, "--output", filepath.Join(dir, "out"), "--dump")
	if err != nil {
		t.Fatalf("pack failed: %v", err)
	}
	if !strings.Contains(output, "DynamicBuilder 16x16") {
		t.Errorf("output %q does not contain the allocator dump", output)
	}
}

func TestInfoCommand(t *testing.T) {
	dir := t.TempDir()
	layout := &LayoutFile{
		Image:   atlasImageName,
		Width:   16,
		Height:  16,
		Padding: 1,
		Sprites: []LayoutEntry{
			{Name: "hero", Index: 0, X: 0, Y: 0, Width: 4, Height: 4},
		},
	}
	path := filepath.Join(dir, atlasLayoutName)
	if err := layout.Write(path); err != nil {
		t.Fatalf("failed to write layout: %v", err)
	}

	output, err := runCommand(t, "info", path)
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}
	for _, want := range []string{"atlas.png 16x16 padding=1", "hero", "1 sprites"} {
		if !strings.Contains(output, want) {
			t.Errorf("output %q does not contain %q", output, want)
		}
	}

	wantCoverage := fmt.Sprintf("%.1f%% coverage", float64(16)/float64(256)*100)
	if !strings.Contains(output, wantCoverage) {
		t.Errorf("output %q does not contain %q", output, wantCoverage)
	}
}

func TestInfoCommand_MissingFile(t *testing.T) {
	_, err := runCommand(t, "info", filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("expected an error for a missing layout")
	}
}
