package fontatlas

import (
	"sync"

	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// ShapedGlyph is one positioned glyph produced by ShapeLine.
type ShapedGlyph struct {
	// GID is the glyph index inside the face's font.
	GID uint16

	// Cluster is the rune index in the source text this glyph maps to.
	// Ligatures map several runes to one glyph sharing a cluster.
	Cluster int

	// X and Y position the glyph origin relative to the line start,
	// in pixels.
	X float64
	Y float64

	// XAdvance and YAdvance are the pen movement after this glyph.
	XAdvance float64
	YAdvance float64
}

// shaperPool pools HarfbuzzShaper instances. HarfbuzzShaper carries an
// internal buffer and is not safe for concurrent use, but reuse across
// sequential calls avoids reallocating it.
var shaperPool = sync.Pool{
	New: func() any {
		return &shaping.HarfbuzzShaper{}
	},
}

// ShapeLine shapes a single line of text with the face and returns the
// positioned glyphs. Shaping applies kerning and ligature substitution,
// so the glyph count may differ from the rune count.
//
// The whole line is shaped as one run with the script of its first
// non-space rune. Mixed-script text should be split into runs first.
func ShapeLine(face *Face, text string) []ShapedGlyph {
	if face == nil || text == "" {
		return nil
	}

	runes := []rune(text)

	// font.Face is not safe for concurrent use, so each call wraps the
	// read-only Font in a fresh one. NewFace is cheap.
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      gtfont.NewFace(face.gtFont),
		Size:      floatToFixed(face.Size()),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	shaper := shaperPool.Get().(*shaping.HarfbuzzShaper)
	output := shaper.Shape(input)
	shaperPool.Put(shaper)

	return convertGlyphs(output.Glyphs, input.Direction)
}

// MeasureLine returns the advance width of the shaped text in pixels.
func MeasureLine(face *Face, text string) float64 {
	var width float64
	for _, g := range ShapeLine(face, text) {
		width += g.XAdvance
	}
	return width
}

// detectScript returns the script of the first non-space rune, falling
// back to Latin for whitespace-only text.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// floatToFixed converts a pixel size to 26.6 fixed point.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// fixedToFloat converts a 26.6 fixed point value to pixels.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}

// convertGlyphs turns shaper output into ShapedGlyphs, accumulating pen
// position along the run's axis.
func convertGlyphs(glyphs []shaping.Glyph, dir di.Direction) []ShapedGlyph {
	if len(glyphs) == 0 {
		return nil
	}

	result := make([]ShapedGlyph, len(glyphs))

	var x, y float64
	for i, g := range glyphs {
		result[i] = ShapedGlyph{
			GID:     uint16(g.GlyphID),
			Cluster: g.TextIndex(),
			X:       x + fixedToFloat(g.XOffset),
			Y:       y + fixedToFloat(g.YOffset),
		}

		adv := fixedToFloat(g.Advance)
		if dir.IsVertical() {
			result[i].YAdvance = adv
			y += adv
		} else {
			result[i].XAdvance = adv
			x += adv
		}
	}

	return result
}
