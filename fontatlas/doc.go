// Package fontatlas caches rasterized glyphs in dynamic texture atlases.
//
// A [Face] couples a parsed font with a pixel size. A [Set] owns one or
// more R8 atlas pages and fills them on demand: asking for a glyph that is
// not cached rasterizes it, packs it into the current page and returns a
// stable reference. When a page runs out of space the set opens a new one,
// so steady-state text rendering never re-rasterizes a glyph.
//
// Shaping (mapping text to positioned glyphs, with kerning and ligatures)
// is provided by [ShapeLine] on top of go-text/typesetting's HarfBuzz
// port. Rasterization uses golang.org/x/image/font/opentype.
//
// The package is single-goroutine, like the atlas builders underneath it.
package fontatlas
