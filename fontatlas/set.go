package fontatlas

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/atlas"
	"github.com/gogpu/atlas/assets"
)

// Set errors.
var (
	// ErrGlyphNotFound is returned when a face has no glyph for a rune.
	ErrGlyphNotFound = errors.New("fontatlas: no glyph for rune")

	// ErrGlyphTooLarge is returned when a glyph cannot fit even an empty page.
	ErrGlyphTooLarge = errors.New("fontatlas: glyph larger than atlas page")
)

// Default set settings.
const (
	// DefaultPageSize is the default page dimension (1024x1024).
	DefaultPageSize = 1024

	// DefaultPadding is the padding between glyphs on a page.
	DefaultPadding = 1
)

// GlyphKey uniquely identifies a rasterized glyph across faces and sizes.
type GlyphKey struct {
	// FaceID identifies the face the glyph came from.
	FaceID uint64
	// GID is the glyph index inside the font.
	GID uint16
	// Size is the face size quantized to whole pixels.
	Size int16
}

// GlyphRef locates a cached glyph inside a Set.
type GlyphRef struct {
	// Key is the cache key the glyph is stored under.
	Key GlyphKey

	// Page is the index of the page holding the glyph, or -1 for glyphs
	// with no visible shape.
	Page int

	// Index addresses the glyph's region in the page layout, or -1 for
	// glyphs with no visible shape.
	Index int

	// Region is the glyph's pixel rectangle inside the page.
	Region atlas.Region

	// Bounds is the placement box relative to the glyph origin.
	Bounds image.Rectangle

	// Advance is how far the pen moves after this glyph, in pixels.
	Advance float64
}

// Visible returns true if the glyph occupies atlas space.
func (r GlyphRef) Visible() bool {
	return r.Page >= 0
}

// Page is one atlas texture filled with glyphs.
type Page struct {
	builder *atlas.DynamicBuilder
	layout  *atlas.Layout
	target  assets.Handle
}

// Layout returns the page's region registry.
func (p *Page) Layout() *atlas.Layout {
	return p.layout
}

// Target returns the handle of the page's atlas image.
func (p *Page) Target() assets.Handle {
	return p.target
}

// SetConfig configures a glyph set.
type SetConfig struct {
	// PageSize is the width and height of each atlas page.
	// Zero means DefaultPageSize.
	PageSize int

	// Padding is the space reserved around each glyph.
	// Zero means DefaultPadding.
	Padding int
}

// Set caches rasterized glyphs across one or more atlas pages.
//
// Pages are R8 images owned by the store passed to Glyph. A full page is
// never repacked: the set opens a new page and continues there, so glyph
// references stay valid for the lifetime of the set.
type Set struct {
	pageSize int
	padding  int
	pages    []*Page
	glyphs   map[GlyphKey]GlyphRef
}

// NewSet creates an empty glyph set.
// Zero config fields fall back to the package defaults. NewSet panics if
// the config is invalid, matching the atlas builder's construction
// contract.
func NewSet(cfg SetConfig) *Set {
	if cfg.PageSize == 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Padding == 0 {
		cfg.Padding = DefaultPadding
	}
	if cfg.PageSize < 0 {
		panic("fontatlas: page size must be positive")
	}
	if cfg.Padding < 0 {
		panic("fontatlas: padding must not be negative")
	}
	return &Set{
		pageSize: cfg.PageSize,
		padding:  cfg.Padding,
		glyphs:   make(map[GlyphKey]GlyphRef),
	}
}

// PageCount returns the number of pages the set has opened.
func (s *Set) PageCount() int {
	return len(s.pages)
}

// Page returns the page at the given index.
func (s *Set) Page(i int) *Page {
	return s.pages[i]
}

// Len returns the number of cached glyphs, including invisible ones.
func (s *Set) Len() int {
	return len(s.glyphs)
}

// Glyph returns the cached reference for a rune, rasterizing and packing
// it on first use. Pages are created in store as needed.
func (s *Set) Glyph(store *assets.Store, face *Face, r rune) (GlyphRef, error) {
	gid := face.GlyphIndex(r)
	if gid == 0 {
		return GlyphRef{}, fmt.Errorf("%w: %q", ErrGlyphNotFound, r)
	}

	key := GlyphKey{FaceID: face.ID(), GID: gid, Size: face.sizeKey()}
	if ref, ok := s.glyphs[key]; ok {
		return ref, nil
	}

	mask, ok := face.RasterizeRune(r)
	if !ok {
		return GlyphRef{}, fmt.Errorf("%w: %q", ErrGlyphNotFound, r)
	}

	ref := GlyphRef{
		Key:     key,
		Page:    -1,
		Index:   -1,
		Bounds:  mask.Bounds,
		Advance: mask.Advance,
	}
	if mask.Image == nil {
		s.glyphs[key] = ref
		return ref, nil
	}

	pageIdx, index, region, err := s.place(store, mask.Image)
	if err != nil {
		return GlyphRef{}, err
	}
	ref.Page = pageIdx
	ref.Index = index
	ref.Region = region

	s.glyphs[key] = ref
	return ref, nil
}

// place packs a glyph image into the newest page, opening a fresh page
// when the current one is full.
func (s *Set) place(store *assets.Store, img *assets.Image) (pageIdx, index int, region atlas.Region, err error) {
	if len(s.pages) == 0 {
		if err := s.addPage(store); err != nil {
			return 0, 0, atlas.Region{}, err
		}
	}

	for attempt := 0; attempt < 2; attempt++ {
		pageIdx = len(s.pages) - 1
		page := s.pages[pageIdx]

		index, err = page.builder.AddTexture(page.layout, store, img, page.target)
		if err == nil {
			region, _ = page.layout.Get(index)
			return pageIdx, index, region, nil
		}
		if !errors.Is(err, atlas.ErrAtlasFull) {
			return 0, 0, atlas.Region{}, err
		}
		if attempt == 0 {
			if err := s.addPage(store); err != nil {
				return 0, 0, atlas.Region{}, err
			}
		}
	}

	// A fresh page rejected the glyph, it will never fit.
	return 0, 0, atlas.Region{}, fmt.Errorf("%w: %dx%d in %dx%d",
		ErrGlyphTooLarge, img.Width(), img.Height(), s.pageSize, s.pageSize)
}

// addPage opens a new empty atlas page in the store.
func (s *Set) addPage(store *assets.Store) error {
	img, err := assets.NewImage(s.pageSize, s.pageSize, gputypes.TextureFormatR8Unorm)
	if err != nil {
		return fmt.Errorf("fontatlas: create page: %w", err)
	}

	page := &Page{
		builder: atlas.NewDynamicBuilder(s.pageSize, s.pageSize, s.padding),
		layout:  atlas.NewLayout(s.pageSize, s.pageSize),
		target:  store.Add(img),
	}
	s.pages = append(s.pages, page)

	atlas.Logger().Info("font atlas page added",
		"page", len(s.pages)-1, "size", s.pageSize, "padding", s.padding)
	return nil
}
