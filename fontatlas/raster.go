package fontatlas

import (
	"image"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/atlas/assets"
)

// GlyphMask is one rasterized glyph: an R8 coverage image plus the
// metrics needed to position it.
type GlyphMask struct {
	// Image holds the coverage bytes, one byte per pixel. It is nil for
	// glyphs with no visible shape (spaces).
	Image *assets.Image

	// Bounds is the placement box relative to the glyph origin. The
	// origin sits on the baseline at the left edge, so Min.Y is
	// negative for glyphs that rise above the baseline.
	Bounds image.Rectangle

	// Advance is how far the pen moves after this glyph, in pixels.
	Advance float64
}

// RasterizeRune renders one rune to a coverage mask at the face size.
// It reports false if the face has no glyph for the rune.
func (f *Face) RasterizeRune(r rune) (*GlyphMask, bool) {
	// GlyphBounds silently substitutes glyph 0 for uncovered runes, so
	// coverage has to be checked first.
	if f.GlyphIndex(r) == 0 {
		return nil, false
	}

	bounds, advance, ok := f.otFace.GlyphBounds(r)
	if !ok {
		return nil, false
	}

	// Convert fixed.Int26_6 bounds to a pixel rectangle, rounding the
	// maxima up so no coverage is clipped.
	minX := int(bounds.Min.X) >> 6
	minY := int(bounds.Min.Y) >> 6
	maxX := int(bounds.Max.X+63) >> 6
	maxY := int(bounds.Max.Y+63) >> 6
	rect := image.Rect(minX, minY, maxX, maxY)

	mask := &GlyphMask{
		Bounds:  rect,
		Advance: float64(advance) / 64.0,
	}
	if rect.Dx() <= 0 || rect.Dy() <= 0 {
		// Whitespace advances the pen but draws nothing.
		return mask, true
	}

	// Draw into an origin-anchored image. The dot offset shifts the glyph
	// box [bounds.Min, bounds.Max] onto [0, size].
	alpha := image.NewAlpha(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	drawer := &xfont.Drawer{
		Dst:  alpha,
		Src:  image.White,
		Face: f.otFace,
		Dot:  fixed.Point26_6{X: -bounds.Min.X, Y: -bounds.Min.Y},
	}
	drawer.DrawString(string(r))

	// NewAlpha allocates tight rows, so the pixel slice maps directly
	// onto an R8 image.
	img, err := assets.NewImageFromBytes(rect.Dx(), rect.Dy(), gputypes.TextureFormatR8Unorm, alpha.Pix)
	if err != nil {
		return nil, false
	}
	mask.Image = img
	return mask, true
}
