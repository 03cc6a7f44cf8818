package fontatlas

import (
	"errors"
	"unicode"

	"golang.org/x/text/unicode/rangetable"

	"github.com/gogpu/atlas/assets"
)

// Preload rasterizes and packs every rune of a range table up front, so
// later Glyph calls for those runes are cache hits. Runes the face has
// no glyph for are skipped. It returns the number of glyphs added.
//
// Preload stops at the first packing error, typically ErrGlyphTooLarge.
func (s *Set) Preload(store *assets.Store, face *Face, table *unicode.RangeTable) (int, error) {
	before := len(s.glyphs)

	var failed error
	rangetable.Visit(table, func(r rune) {
		if failed != nil {
			return
		}
		if face.GlyphIndex(r) == 0 {
			return
		}
		if _, err := s.Glyph(store, face, r); err != nil && !errors.Is(err, ErrGlyphNotFound) {
			failed = err
		}
	})
	if failed != nil {
		return len(s.glyphs) - before, failed
	}

	return len(s.glyphs) - before, nil
}

// PreloadString preloads the distinct runes of a string.
func (s *Set) PreloadString(store *assets.Store, face *Face, text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	return s.Preload(store, face, rangetable.New([]rune(text)...))
}

// printableASCII covers U+0020 through U+007E.
var printableASCII = func() *unicode.RangeTable {
	runes := make([]rune, 0, 95)
	for r := rune(0x20); r <= 0x7E; r++ {
		runes = append(runes, r)
	}
	return rangetable.New(runes...)
}()

// PreloadASCII preloads the printable ASCII range, the usual warm-up for
// interface text.
func (s *Set) PreloadASCII(store *assets.Store, face *Face) (int, error) {
	return s.Preload(store, face, printableASCII)
}
