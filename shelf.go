package atlas

// ShelfAllocator implements shelf-based rectangle packing.
// Simple and fast algorithm suitable for items of similar height.
//
// The algorithm organizes rectangles in horizontal "shelves".
// Each shelf has a fixed height (determined by the tallest item placed so far).
// New items are placed left-to-right on the current shelf until no space remains,
// then a new shelf is started below.
type ShelfAllocator struct {
	width   int     // Total width of the canvas
	height  int     // Total height of the canvas
	shelves []shelf // List of shelves

	// Tracking for utilization
	usedArea int
}

var _ Allocator = (*ShelfAllocator)(nil)

// shelf represents a horizontal strip in the canvas.
type shelf struct {
	y      int // Y position of shelf top
	height int // Height of the shelf (tallest item so far)
	x      int // Current X position (next free slot)
}

// NewShelfAllocator creates a new allocator for the given canvas dimensions.
func NewShelfAllocator(width, height int) *ShelfAllocator {
	return &ShelfAllocator{
		width:   width,
		height:  height,
		shelves: make([]shelf, 0, 16), // Preallocate for typical use
	}
}

// Allocate finds space for a rectangle of the given size.
//
// The algorithm:
// 1. Try to fit on an existing shelf with enough height
// 2. If no shelf fits, create a new shelf
// 3. If no space for a new shelf, allocation fails
func (a *ShelfAllocator) Allocate(width, height int) (Region, bool) {
	if width <= 0 || height <= 0 || width > a.width || height > a.height {
		return Region{}, false
	}

	// Try to find an existing shelf with enough space and height
	for i := range a.shelves {
		s := &a.shelves[i]

		// Check if the item fits horizontally
		if s.x+width > a.width {
			continue
		}

		// Check if the item fits vertically in this shelf
		if height > s.height {
			// Item is taller than the shelf. Only the last shelf can grow,
			// and only while there is still room below it.
			if i == len(a.shelves)-1 && s.y+height <= a.height {
				s.height = height
				r := Region{X: s.x, Y: s.y, Width: width, Height: height}
				s.x += width
				a.usedArea += width * height
				return r, true
			}
			continue
		}

		// Item fits on this shelf
		r := Region{X: s.x, Y: s.y, Width: width, Height: height}
		s.x += width
		a.usedArea += width * height
		return r, true
	}

	// No existing shelf works, try to open a new one below the last
	newY := 0
	if len(a.shelves) > 0 {
		last := a.shelves[len(a.shelves)-1]
		newY = last.y + last.height
	}
	if newY+height > a.height {
		return Region{}, false
	}

	a.shelves = append(a.shelves, shelf{y: newY, height: height, x: width})
	a.usedArea += width * height
	return Region{X: 0, Y: newY, Width: width, Height: height}, true
}

// CanFit returns true if an item of the given size could currently fit.
// This is a quick check without actually allocating.
func (a *ShelfAllocator) CanFit(width, height int) bool {
	if width <= 0 || height <= 0 || width > a.width || height > a.height {
		return false
	}
	for i := range a.shelves {
		s := &a.shelves[i]
		if s.x+width > a.width {
			continue
		}
		if height <= s.height {
			return true
		}
		if i == len(a.shelves)-1 && s.y+height <= a.height {
			return true
		}
	}
	newY := 0
	if len(a.shelves) > 0 {
		last := a.shelves[len(a.shelves)-1]
		newY = last.y + last.height
	}
	return newY+height <= a.height
}

// Reset clears all allocations, allowing the allocator to be reused.
func (a *ShelfAllocator) Reset() {
	a.shelves = a.shelves[:0] // Keep capacity
	a.usedArea = 0
}

// Utilization returns the fraction of canvas space used (0.0 to 1.0).
func (a *ShelfAllocator) Utilization() float64 {
	if a.width <= 0 || a.height <= 0 {
		return 0
	}
	return float64(a.usedArea) / float64(a.width*a.height)
}

// UsedArea returns the total area used by allocations.
func (a *ShelfAllocator) UsedArea() int {
	return a.usedArea
}

// TotalArea returns the total area of the canvas.
func (a *ShelfAllocator) TotalArea() int {
	return a.width * a.height
}

// ShelfCount returns the number of shelves currently in use.
func (a *ShelfAllocator) ShelfCount() int {
	return len(a.shelves)
}

// DescribeTree returns a snapshot of the shelf layout for diagnostics.
// The root covers the canvas; each child is one shelf with its filled
// extent.
func (a *ShelfAllocator) DescribeTree() *TreeNode {
	root := &TreeNode{
		Label:  "canvas",
		Region: Region{X: 0, Y: 0, Width: a.width, Height: a.height},
	}
	for _, s := range a.shelves {
		root.Children = append(root.Children, &TreeNode{
			Label:  "shelf",
			Region: Region{X: 0, Y: s.y, Width: s.x, Height: s.height},
		})
	}
	return root
}
