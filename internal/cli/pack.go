package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gogpu/gputypes"
	"github.com/spf13/cobra"

	"github.com/gogpu/atlas"
	"github.com/gogpu/atlas/assets"
)

// Output names inside the --output directory.
const (
	atlasImageName  = "atlas.png"
	atlasLayoutName = "atlas.json"
)

type packOptions struct {
	output string
	dump   bool
}

func newPackCmd() *cobra.Command {
	var opts packOptions

	cmd := &cobra.Command{
		Use:   "pack <manifest.toml>",
		Short: "Pack manifest sprites into an atlas image",
		Long: `Pack loads every sprite listed in the manifest, packs them into one
atlas texture, and writes atlas.png plus atlas.json into the output
directory. Sprites are placed in manifest order; packing fails if any
sprite does not fit the remaining space.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPack(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", ".", "output directory")
	cmd.Flags().BoolVar(&opts.dump, "dump", false, "print the allocator tree after packing")
	return cmd
}

func runPack(cmd *cobra.Command, manifestPath string, opts packOptions) error {
	m, err := LoadManifest(manifestPath)
	if err != nil {
		return err
	}

	alloc, err := newAllocator(m.Atlas)
	if err != nil {
		return err
	}

	canvas, err := assets.NewImage(m.Atlas.Width, m.Atlas.Height, gputypes.TextureFormatRGBA8Unorm)
	if err != nil {
		return fmt.Errorf("create atlas canvas: %w", err)
	}

	store := assets.NewStore()
	target := store.Add(canvas)
	builder := atlas.NewDynamicBuilder(m.Atlas.Width, m.Atlas.Height, m.Atlas.Padding,
		atlas.WithAllocator(alloc))
	layout := atlas.NewLayout(m.Atlas.Width, m.Atlas.Height)

	baseDir := filepath.Dir(manifestPath)
	out := &LayoutFile{
		Image:   atlasImageName,
		Width:   m.Atlas.Width,
		Height:  m.Atlas.Height,
		Padding: m.Atlas.Padding,
	}

	for _, sprite := range m.Sprites {
		img, err := assets.LoadImage(sprite.resolvePath(baseDir))
		if err != nil {
			return fmt.Errorf("load sprite %q: %w", sprite.Name, err)
		}

		index, err := builder.AddTexture(layout, store, img, target)
		if errors.Is(err, atlas.ErrAtlasFull) {
			return fmt.Errorf("sprite %q (%dx%d) does not fit the %dx%d atlas",
				sprite.Name, img.Width(), img.Height(), m.Atlas.Width, m.Atlas.Height)
		}
		if err != nil {
			return fmt.Errorf("pack sprite %q: %w", sprite.Name, err)
		}

		region, _ := layout.Get(index)
		out.Sprites = append(out.Sprites, LayoutEntry{
			Name:   sprite.Name,
			Index:  index,
			X:      region.X,
			Y:      region.Y,
			Width:  region.Width,
			Height: region.Height,
		})
	}

	if err := os.MkdirAll(opts.output, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	imagePath := filepath.Join(opts.output, atlasImageName)
	if err := canvas.SavePNG(imagePath); err != nil {
		return fmt.Errorf("write atlas image: %w", err)
	}
	if err := out.Write(filepath.Join(opts.output, atlasLayoutName)); err != nil {
		return fmt.Errorf("write atlas layout: %w", err)
	}

	cmd.Printf("packed %d sprites into %s (%.1f%% coverage)\n",
		len(out.Sprites), imagePath, out.Coverage()*100)
	if opts.dump {
		cmd.Print(builder.DumpAllocator())
	}
	return nil
}

// newAllocator picks the rectangle allocator named in the manifest.
func newAllocator(a AtlasSection) (atlas.Allocator, error) {
	switch a.Allocator {
	case "", "guillotine":
		return atlas.NewGuillotineAllocator(a.Width, a.Height), nil
	case "shelf":
		return atlas.NewShelfAllocator(a.Width, a.Height), nil
	default:
		return nil, fmt.Errorf("unknown allocator %q, want guillotine or shelf", a.Allocator)
	}
}
