package atlas

import (
	"errors"
	"math"

	"github.com/gogpu/atlas/assets"
)

// Builder errors.
var (
	// ErrAtlasFull is returned when the atlas cannot fit the requested texture.
	ErrAtlasFull = errors.New("atlas: no free space for texture")
)

// BuilderOption configures DynamicBuilder creation.
type BuilderOption func(*builderConfig)

// builderConfig holds configuration for DynamicBuilder.
type builderConfig struct {
	allocator Allocator
}

// WithAllocator replaces the default guillotine allocator.
//
// The allocator must cover the same canvas the builder was created for.
// Passing an allocator for a different canvas size breaks the builder's
// bounds guarantees.
func WithAllocator(a Allocator) BuilderOption {
	return func(c *builderConfig) {
		c.allocator = a
	}
}

// DynamicBuilder packs textures into an existing atlas image one at a time.
//
// Unlike ahead-of-time atlas generation, a dynamic builder does not know
// its inputs up front: textures arrive one by one (sprites streamed in at
// runtime, glyphs rasterized on demand) and each placement is final. The
// builder owns the placement state; pixel data lives in an [assets.Image]
// addressed through an [assets.Store], and placements are published to a
// [Layout] shared with whoever consumes the atlas.
//
// A builder is single-goroutine: one AddTexture call mutates the allocator,
// the layout and the atlas image together, and nothing synchronizes them
// as a unit.
type DynamicBuilder struct {
	width     int
	height    int
	padding   int
	allocator Allocator

	pending []CopyRecord
}

// NewDynamicBuilder creates a builder for an atlas of the given dimensions.
//
// padding is empty space reserved to the right of and below every placed
// texture, in pixels, so bilinear sampling does not bleed between
// neighbors. Zero is valid.
//
// NewDynamicBuilder panics if width or height is not strictly positive or
// overflows the 32-bit texture coordinate range, or if padding is
// negative: a builder for an unusable canvas is a programming error, not
// a runtime condition.
func NewDynamicBuilder(width, height, padding int, opts ...BuilderOption) *DynamicBuilder {
	if width <= 0 || height <= 0 {
		panic("atlas: canvas dimensions must be positive")
	}
	// Copy records address the canvas with 32-bit texture coordinates.
	if width > math.MaxInt32 || height > math.MaxInt32 {
		panic("atlas: canvas dimensions exceed the addressable texture range")
	}
	if padding < 0 {
		panic("atlas: padding must not be negative")
	}

	var cfg builderConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.allocator == nil {
		cfg.allocator = NewGuillotineAllocator(width, height)
	}

	return &DynamicBuilder{
		width:     width,
		height:    height,
		padding:   padding,
		allocator: cfg.allocator,
	}
}

// Width returns the atlas canvas width in pixels.
func (b *DynamicBuilder) Width() int {
	return b.width
}

// Height returns the atlas canvas height in pixels.
func (b *DynamicBuilder) Height() int {
	return b.height
}

// Padding returns the padding reserved around each placed texture.
func (b *DynamicBuilder) Padding() int {
	return b.padding
}

// AddTexture packs one source image into the atlas.
//
// It allocates a region of the source size plus padding, copies the source
// pixels into the atlas image stored under target, appends the placed
// region (with padding trimmed) to layout and returns the new region's
// index. The caller keeps the index to look the region up later.
//
// If no free region fits, AddTexture returns ErrAtlasFull and leaves the
// allocator, the layout and the atlas pixels exactly as they were, so the
// caller can retry with a new atlas page.
//
// Preconditions that panic rather than fail:
//   - target must resolve in store
//   - the atlas image and source must retain CPU-side pixel data
//   - source and atlas must share one texture format with a known
//     per-texel byte size
func (b *DynamicBuilder) AddTexture(layout *Layout, store *assets.Store, source *assets.Image, target assets.Handle) (int, error) {
	region, ok := b.allocator.Allocate(source.Width()+b.padding, source.Height()+b.padding)
	if !ok {
		Logger().Debug("atlas full",
			"width", source.Width(), "height", source.Height(), "padding", b.padding)
		return 0, ErrAtlasFull
	}

	atlasImg, release, ok := store.Checkout(target)
	if !ok {
		panic("atlas: atlas image handle does not resolve: " + target.String())
	}
	defer release()

	if !atlasImg.Retain().MainMemory() || atlasImg.Data() == nil {
		panic("atlas: atlas image pixel data is not retained in main memory")
	}
	if source.Data() == nil {
		panic("atlas: source image pixel data is not retained in main memory")
	}
	if source.Format() != atlasImg.Format() {
		panic("atlas: source format does not match atlas format")
	}
	if atlasImg.PixelSize() == 0 {
		panic("atlas: texture format has no addressable texel size")
	}

	published := b.trimPadding(region)
	b.copyTexture(atlasImg, source, published)
	index := layout.Add(published)
	b.pending = append(b.pending, newCopyRecord(atlasImg, published))

	Logger().Debug("texture placed",
		"index", index, "region", published.String(), "pending", len(b.pending))
	return index, nil
}

// trimPadding shrinks an allocated region back to the payload area,
// clamping at zero for degenerate sources smaller than the padding.
func (b *DynamicBuilder) trimPadding(r Region) Region {
	r.Width -= b.padding
	if r.Width < 0 {
		r.Width = 0
	}
	r.Height -= b.padding
	if r.Height < 0 {
		r.Height = 0
	}
	return r
}

// copyTexture copies source pixels row by row into the atlas image at the
// given region. Rows are clamped to the source dimensions, so a region
// wider or taller than the source never reads past its buffer.
func (b *DynamicBuilder) copyTexture(atlasImg, source *assets.Image, region Region) {
	px := atlasImg.PixelSize()
	w, h := region.Width, region.Height
	if w > source.Width() {
		w = source.Width()
	}
	if h > source.Height() {
		h = source.Height()
	}

	dst := atlasImg.Data()
	src := source.Data()
	dstStride := atlasImg.Width() * px
	srcStride := source.RowBytes()
	rowLen := w * px

	for row := 0; row < h; row++ {
		dstOff := (region.Y+row)*dstStride + region.X*px
		srcOff := row * srcStride
		copy(dst[dstOff:dstOff+rowLen], src[srcOff:srcOff+rowLen])
	}
}
