package assets

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
)

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("assets: invalid dimensions")

	// ErrUnsupportedFormat is returned when the texture format has no
	// addressable per-texel byte layout.
	ErrUnsupportedFormat = errors.New("assets: unsupported texture format")

	// ErrDataSize is returned when provided data does not match the
	// dimensions and format.
	ErrDataSize = errors.New("assets: data size does not match dimensions")

	// ErrDataReleased is returned when an operation needs pixel bytes that
	// have been released from main memory.
	ErrDataReleased = errors.New("assets: pixel data released from main memory")

	// ErrBounds is returned when a rectangle reaches outside the image.
	ErrBounds = errors.New("assets: rectangle outside image bounds")
)

// RetainMode says where an image's pixel data is kept alive.
type RetainMode uint8

const (
	// RetainMainMemory keeps the pixel bytes resident on the CPU side.
	// Required for any image the atlas builder reads from or writes into.
	RetainMainMemory RetainMode = 1 << iota

	// RetainRenderWorld keeps a copy of the texture on the GPU side.
	RetainRenderWorld
)

// MainMemory returns true if the mode retains CPU-side pixel data.
func (m RetainMode) MainMemory() bool {
	return m&RetainMainMemory != 0
}

// RenderWorld returns true if the mode retains a GPU-side copy.
func (m RetainMode) RenderWorld() bool {
	return m&RetainRenderWorld != 0
}

// Image is a CPU-side texture: a contiguous byte buffer in row-major order
// with no row padding, tagged with dimensions and a texture format.
//
// Thread safety: Image is not synchronized. Mutating access goes through
// [Store.Checkout], which guarantees a single holder at a time.
type Image struct {
	width  int
	height int
	format gputypes.TextureFormat
	usage  gputypes.TextureUsage
	retain RetainMode
	data   []byte
}

// NewImage creates a zero-filled image with the given dimensions and format.
// The image retains its data both in main memory and for the render world.
func NewImage(width, height int, format gputypes.TextureFormat) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	px := PixelSize(format)
	if px == 0 {
		return nil, ErrUnsupportedFormat
	}
	return &Image{
		width:  width,
		height: height,
		format: format,
		usage:  gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
		retain: RetainMainMemory | RetainRenderWorld,
		data:   make([]byte, width*height*px),
	}, nil
}

// NewImageFromBytes creates an image wrapping existing pixel data without
// copying. The data length must be exactly width*height*PixelSize(format).
func NewImageFromBytes(width, height int, format gputypes.TextureFormat, data []byte) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	px := PixelSize(format)
	if px == 0 {
		return nil, ErrUnsupportedFormat
	}
	if len(data) != width*height*px {
		return nil, fmt.Errorf("%w: have %d bytes, want %d", ErrDataSize, len(data), width*height*px)
	}
	return &Image{
		width:  width,
		height: height,
		format: format,
		usage:  gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
		retain: RetainMainMemory | RetainRenderWorld,
		data:   data,
	}, nil
}

// Width returns the image width in pixels.
func (img *Image) Width() int {
	return img.width
}

// Height returns the image height in pixels.
func (img *Image) Height() int {
	return img.height
}

// Format returns the texture format.
func (img *Image) Format() gputypes.TextureFormat {
	return img.format
}

// PixelSize returns the bytes per texel of the image format.
func (img *Image) PixelSize() int {
	return PixelSize(img.format)
}

// RowBytes returns the number of bytes in one pixel row.
func (img *Image) RowBytes() int {
	return img.width * PixelSize(img.format)
}

// Usage returns the GPU usage flags a renderer would create the texture with.
func (img *Image) Usage() gputypes.TextureUsage {
	return img.usage
}

// SetUsage replaces the GPU usage flags.
func (img *Image) SetUsage(usage gputypes.TextureUsage) {
	img.usage = usage
}

// Retain returns where the pixel data is kept alive.
func (img *Image) Retain() RetainMode {
	return img.retain
}

// SetRetain replaces the retention mode. It does not release data that has
// already been allocated; use ReleaseMainMemory for that.
func (img *Image) SetRetain(mode RetainMode) {
	img.retain = mode
}

// Data returns the backing pixel buffer. The slice is shared, not copied:
// writes through it mutate the image. Returns nil after ReleaseMainMemory.
func (img *Image) Data() []byte {
	return img.data
}

// RowSlice returns the byte slice covering pixel row y.
// It reports false if y is out of range or the data has been released.
func (img *Image) RowSlice(y int) ([]byte, bool) {
	if y < 0 || y >= img.height || img.data == nil {
		return nil, false
	}
	rb := img.RowBytes()
	return img.data[y*rb : (y+1)*rb], true
}

// Fill sets every byte of the pixel buffer to b.
func (img *Image) Fill(b byte) {
	for i := range img.data {
		img.data[i] = b
	}
}

// SubImage copies the pixels under r into a new image of the same format.
// Unlike the standard library's SubImage, the result does not share
// memory with the source.
func (img *Image) SubImage(r image.Rectangle) (*Image, error) {
	if img.data == nil {
		return nil, ErrDataReleased
	}
	if r.Empty() || !r.In(image.Rect(0, 0, img.width, img.height)) {
		return nil, fmt.Errorf("%w: %v in %dx%d", ErrBounds, r, img.width, img.height)
	}

	px := img.PixelSize()
	rowLen := r.Dx() * px
	out := make([]byte, r.Dy()*rowLen)
	for row := 0; row < r.Dy(); row++ {
		srcOff := ((r.Min.Y+row)*img.width + r.Min.X) * px
		copy(out[row*rowLen:(row+1)*rowLen], img.data[srcOff:srcOff+rowLen])
	}
	return NewImageFromBytes(r.Dx(), r.Dy(), img.format, out)
}

// ReleaseMainMemory drops the CPU-side pixel data and clears the
// RetainMainMemory flag. A renderer calls this after uploading an image
// that only needs to live on the GPU. The atlas builder refuses images
// released this way.
func (img *Image) ReleaseMainMemory() {
	img.retain &^= RetainMainMemory
	img.data = nil
}

// String returns a short description of the image.
func (img *Image) String() string {
	return fmt.Sprintf("Image(%dx%d format=%v bytes=%d)", img.width, img.height, img.format, len(img.data))
}
