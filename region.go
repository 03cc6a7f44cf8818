package atlas

import (
	"fmt"
	"image"
)

// Region represents a rectangular region in a texture atlas.
//
// Coordinates are whole pixels with the origin at the top-left corner of
// the atlas. Width and Height are exclusive extents: the region covers
// columns [X, X+Width) and rows [Y, Y+Height).
type Region struct {
	// X is the left edge of the region.
	X int
	// Y is the top edge of the region.
	Y int
	// Width is the region width.
	Width int
	// Height is the region height.
	Height int
}

// IsValid returns true if the region has valid dimensions.
func (r Region) IsValid() bool {
	return r.Width > 0 && r.Height > 0
}

// MaxX returns the exclusive right edge of the region.
func (r Region) MaxX() int {
	return r.X + r.Width
}

// MaxY returns the exclusive bottom edge of the region.
func (r Region) MaxY() int {
	return r.Y + r.Height
}

// Area returns the number of pixels covered by the region.
func (r Region) Area() int {
	if !r.IsValid() {
		return 0
	}
	return r.Width * r.Height
}

// Contains returns true if the point (x, y) is inside the region.
func (r Region) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Intersects returns true if r and other share at least one pixel.
// Empty regions never intersect anything.
func (r Region) Intersects(other Region) bool {
	return r.X < other.MaxX() && other.X < r.MaxX() &&
		r.Y < other.MaxY() && other.Y < r.MaxY()
}

// In returns true if the region lies entirely inside a canvas of the
// given dimensions.
func (r Region) In(width, height int) bool {
	return r.X >= 0 && r.Y >= 0 && r.MaxX() <= width && r.MaxY() <= height
}

// Bounds returns the region as an image.Rectangle.
func (r Region) Bounds() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// String returns a string representation of the region.
func (r Region) String() string {
	return fmt.Sprintf("Region(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}
