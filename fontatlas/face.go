package fontatlas

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"sync/atomic"

	gtfont "github.com/go-text/typesetting/font"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Face errors.
var (
	// ErrInvalidSize is returned when the requested pixel size is not positive.
	ErrInvalidSize = errors.New("fontatlas: font size must be positive")
)

// nextFaceID hands out process-unique face identifiers for glyph keys.
var nextFaceID atomic.Uint64

// Face is a parsed font fixed at one pixel size.
//
// The same font data at two sizes is two faces with two IDs, so glyphs
// rasterized at different sizes never collide in a Set.
//
// Face keeps mutable sfnt and rasterizer state and is not safe for
// concurrent use.
type Face struct {
	id   uint64
	size float64

	otFont *opentype.Font // rasterization and cmap lookups
	otFace xfont.Face     // rasterization face at the fixed size
	gtFont *gtfont.Font   // shaping font, read-only

	buf sfnt.Buffer
}

// NewFace parses font data (TTF or OTF) and fixes it at the given pixel size.
func NewFace(data []byte, size float64) (*Face, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	otFont, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fontatlas: parse font: %w", err)
	}

	otFace, err := opentype.NewFace(otFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: xfont.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("fontatlas: create face: %w", err)
	}

	// ParseTTF returns a *Face which embeds the thread-safe *Font.
	gtFace, err := gtfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		_ = otFace.Close()
		return nil, fmt.Errorf("fontatlas: parse font for shaping: %w", err)
	}

	return &Face{
		id:     nextFaceID.Add(1),
		size:   size,
		otFont: otFont,
		otFace: otFace,
		gtFont: gtFace.Font,
	}, nil
}

// NewFaceFromFile loads a font file and fixes it at the given pixel size.
func NewFaceFromFile(path string, size float64) (*Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fontatlas: read font file: %w", err)
	}
	return NewFace(data, size)
}

// ID returns the process-unique identifier of this face.
func (f *Face) ID() uint64 {
	return f.id
}

// Size returns the pixel size the face was created with.
func (f *Face) Size() float64 {
	return f.size
}

// Name returns the font family name, or "" if the font does not carry one.
func (f *Face) Name() string {
	name, err := f.otFont.Name(&f.buf, sfnt.NameIDFamily)
	if err != nil {
		return ""
	}
	return name
}

// NumGlyphs returns the number of glyphs in the font.
func (f *Face) NumGlyphs() int {
	return f.otFont.NumGlyphs()
}

// GlyphIndex returns the glyph ID for a rune, or 0 if the font has no
// glyph for it.
func (f *Face) GlyphIndex(r rune) uint16 {
	idx, err := f.otFont.GlyphIndex(&f.buf, r)
	if err != nil {
		return 0
	}
	return uint16(idx)
}

// Metrics returns the face metrics (ascent, descent, line height) in
// 26.6 fixed point, as reported by the rasterization face.
func (f *Face) Metrics() xfont.Metrics {
	return f.otFace.Metrics()
}

// Close releases the rasterization face. The Face must not be used after.
func (f *Face) Close() error {
	return f.otFace.Close()
}

// sizeKey quantizes the face size to whole pixels for glyph keys.
func (f *Face) sizeKey() int16 {
	s := math.Round(f.size)
	if s > math.MaxInt16 {
		s = math.MaxInt16
	}
	return int16(s)
}
