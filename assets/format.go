package assets

import "github.com/gogpu/gputypes"

// PixelSize returns the bytes per texel for a texture format.
//
// Only uncompressed color formats the atlas pipeline works with are mapped.
// Depth, stencil and compressed formats report 0: their texel layout is not
// addressable as plain rows, so callers must treat 0 as "cannot bytewise
// copy" rather than defaulting to a guess.
func PixelSize(format gputypes.TextureFormat) int {
	switch format {
	case gputypes.TextureFormatR8Unorm:
		return 1
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm:
		return 4
	default:
		return 0
	}
}

// RowBytes returns the number of bytes in one row of pixels.
func RowBytes(format gputypes.TextureFormat, width int) int {
	return PixelSize(format) * width
}
