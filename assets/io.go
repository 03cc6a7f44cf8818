package assets

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	// Register decoders for content-sniffing Decode.
	_ "image/gif"
	_ "image/jpeg"

	"github.com/gogpu/gputypes"
)

// LoadPNG loads a PNG image from the given file path as RGBA8.
func LoadPNG(path string) (*Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("assets: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return DecodePNG(f)
}

// LoadImage loads an image from the given file path, auto-detecting the
// format from the content. Supported formats: PNG, JPEG, GIF.
func LoadImage(path string) (*Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("assets: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// Decode decodes an image from the given reader, auto-detecting the format.
func Decode(r io.Reader) (*Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("assets: decode: %w", err)
	}
	return FromStdImage(img), nil
}

// DecodePNG decodes a PNG image from the given reader.
func DecodePNG(r io.Reader) (*Image, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("assets: decode PNG: %w", err)
	}
	return FromStdImage(img), nil
}

// FromStdImage creates an Image from a standard library image.Image.
// The result is always RGBA8.
func FromStdImage(src image.Image) *Image {
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	out, err := NewImage(width, height, gputypes.TextureFormatRGBA8Unorm)
	if err != nil {
		// Degenerate bounds produce an empty 1x1 image rather than nil.
		out, _ = NewImage(1, 1, gputypes.TextureFormatRGBA8Unorm)
		return out
	}

	// Fast path for NRGBA images (what png.Decode usually returns)
	if nrgba, ok := src.(*image.NRGBA); ok {
		copyStdRows(out, nrgba.Pix, nrgba.Stride, width, height)
		return out
	}

	// Fast path for RGBA images
	if rgba, ok := src.(*image.RGBA); ok {
		copyStdRows(out, rgba.Pix, rgba.Stride, width, height)
		return out
	}

	// Generic slow path for any image type
	data := out.Data()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, a := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			off := (y*width + x) * 4
			// RGBA() returns 16-bit values, scale to 8-bit
			data[off] = byte(r >> 8)
			data[off+1] = byte(g >> 8)
			data[off+2] = byte(b >> 8)
			data[off+3] = byte(a >> 8)
		}
	}
	return out
}

// copyStdRows copies rows from a standard image pixel slice, handling
// strides wider than the pixel row.
func copyStdRows(dst *Image, pix []byte, stride, width, height int) {
	rb := width * 4
	if stride == rb {
		copy(dst.Data(), pix[:rb*height])
		return
	}
	for y := 0; y < height; y++ {
		copy(dst.Data()[y*rb:(y+1)*rb], pix[y*stride:y*stride+rb])
	}
}

// ToStdImage converts the image to a standard library image.Image.
// Returns *image.NRGBA for color formats and *image.Gray for R8.
// Returns nil if the pixel data has been released.
func (img *Image) ToStdImage() image.Image {
	if img.data == nil {
		return nil
	}
	rect := image.Rect(0, 0, img.width, img.height)

	switch img.format {
	case gputypes.TextureFormatR8Unorm:
		gray := image.NewGray(rect)
		for y := 0; y < img.height; y++ {
			copy(gray.Pix[y*gray.Stride:y*gray.Stride+img.width], img.data[y*img.width:])
		}
		return gray

	case gputypes.TextureFormatBGRA8Unorm:
		nrgba := image.NewNRGBA(rect)
		for y := 0; y < img.height; y++ {
			row := img.data[y*img.width*4:]
			dstStart := y * nrgba.Stride
			for x := 0; x < img.width; x++ {
				srcOff := x * 4
				dstOff := dstStart + x*4
				nrgba.Pix[dstOff] = row[srcOff+2]   // R <- B
				nrgba.Pix[dstOff+1] = row[srcOff+1] // G <- G
				nrgba.Pix[dstOff+2] = row[srcOff]   // B <- R
				nrgba.Pix[dstOff+3] = row[srcOff+3] // A <- A
			}
		}
		return nrgba

	default:
		// RGBA8 rows map 1:1 onto NRGBA
		nrgba := image.NewNRGBA(rect)
		rb := img.width * 4
		if nrgba.Stride == rb {
			copy(nrgba.Pix, img.data)
		} else {
			for y := 0; y < img.height; y++ {
				copy(nrgba.Pix[y*nrgba.Stride:], img.data[y*rb:(y+1)*rb])
			}
		}
		return nrgba
	}
}

// EncodePNG encodes the image as PNG to the given writer.
func (img *Image) EncodePNG(w io.Writer) error {
	std := img.ToStdImage()
	if std == nil {
		return fmt.Errorf("assets: encode PNG: %w", ErrDataReleased)
	}
	if err := png.Encode(w, std); err != nil {
		return fmt.Errorf("assets: encode PNG: %w", err)
	}
	return nil
}

// SavePNG saves the image as a PNG file.
func (img *Image) SavePNG(path string) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("assets: create file: %w", err)
	}

	if err := img.EncodePNG(f); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
