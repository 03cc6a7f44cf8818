package atlas

// GuillotineAllocator packs rectangles by recursively splitting free space.
// Good general-purpose algorithm for mixed rectangle sizes.
//
// Each allocation claims the top-left corner of a free node. The leftover
// space is cut into two smaller free nodes along the axis that keeps the
// larger remainder in one piece, which keeps free areas close to square
// and reduces fragmentation for varied inputs.
type GuillotineAllocator struct {
	width  int
	height int
	root   *guillotineNode

	// Tracking for utilization
	usedArea int
}

var _ Allocator = (*GuillotineAllocator)(nil)

// guillotineNode is one node of the split tree. A node starts as a free
// leaf. Placing a rectangle in it shrinks its region to the placed rect
// and hangs the leftover space off right and below.
type guillotineNode struct {
	region Region
	used   bool
	right  *guillotineNode
	below  *guillotineNode
}

// NewGuillotineAllocator creates a new allocator for the given canvas dimensions.
func NewGuillotineAllocator(width, height int) *GuillotineAllocator {
	return &GuillotineAllocator{
		width:  width,
		height: height,
		root: &guillotineNode{
			region: Region{X: 0, Y: 0, Width: width, Height: height},
		},
	}
}

// Allocate finds space for a rectangle of the given size.
func (a *GuillotineAllocator) Allocate(width, height int) (Region, bool) {
	if width <= 0 || height <= 0 || width > a.width || height > a.height {
		return Region{}, false
	}
	r, ok := a.root.insert(width, height)
	if !ok {
		return Region{}, false
	}
	a.usedArea += width * height
	return r, true
}

// insert walks the tree looking for a free leaf large enough for the
// requested size. Right subtrees are searched before below subtrees so
// placements fill rows before opening fresh vertical space.
func (n *guillotineNode) insert(width, height int) (Region, bool) {
	if n.right != nil {
		if r, ok := n.right.insert(width, height); ok {
			return r, true
		}
		return n.below.insert(width, height)
	}
	if n.used || width > n.region.Width || height > n.region.Height {
		return Region{}, false
	}

	// Exact fit: claim the whole leaf.
	if width == n.region.Width && height == n.region.Height {
		n.used = true
		return n.region, true
	}

	placed := Region{X: n.region.X, Y: n.region.Y, Width: width, Height: height}
	if n.region.Width-width > n.region.Height-height {
		// Vertical cut: the right child keeps the full height.
		n.right = &guillotineNode{region: Region{
			X:     n.region.X + width,
			Y:     n.region.Y,
			Width: n.region.Width - width, Height: n.region.Height,
		}}
		n.below = &guillotineNode{region: Region{
			X:     n.region.X,
			Y:     n.region.Y + height,
			Width: width, Height: n.region.Height - height,
		}}
	} else {
		// Horizontal cut: the below child keeps the full width.
		n.right = &guillotineNode{region: Region{
			X:     n.region.X + width,
			Y:     n.region.Y,
			Width: n.region.Width - width, Height: height,
		}}
		n.below = &guillotineNode{region: Region{
			X:     n.region.X,
			Y:     n.region.Y + height,
			Width: n.region.Width, Height: n.region.Height - height,
		}}
	}
	n.used = true
	n.region = placed
	return placed, true
}

// Reset clears all allocations, allowing the allocator to be reused.
func (a *GuillotineAllocator) Reset() {
	a.root = &guillotineNode{
		region: Region{X: 0, Y: 0, Width: a.width, Height: a.height},
	}
	a.usedArea = 0
}

// Utilization returns the fraction of canvas space used (0.0 to 1.0).
func (a *GuillotineAllocator) Utilization() float64 {
	if a.width <= 0 || a.height <= 0 {
		return 0
	}
	return float64(a.usedArea) / float64(a.width*a.height)
}

// UsedArea returns the total area used by allocations.
func (a *GuillotineAllocator) UsedArea() int {
	return a.usedArea
}

// TotalArea returns the total area of the canvas.
func (a *GuillotineAllocator) TotalArea() int {
	return a.width * a.height
}

// DescribeTree returns a snapshot of the split tree for diagnostics.
// Occupied nodes are labeled "full" and untouched leaves "free"; zero-area
// remainders from exact-fit cuts are omitted.
func (a *GuillotineAllocator) DescribeTree() *TreeNode {
	return describeGuillotine(a.root)
}

func describeGuillotine(n *guillotineNode) *TreeNode {
	if n == nil {
		return nil
	}
	label := "free"
	if n.used {
		label = "full"
	}
	t := &TreeNode{Label: label, Region: n.region}
	for _, child := range []*guillotineNode{n.right, n.below} {
		// Zero-area leaves come from exact-fit cuts and never hold anything.
		if child == nil || !child.region.IsValid() {
			continue
		}
		t.Children = append(t.Children, describeGuillotine(child))
	}
	return t
}
