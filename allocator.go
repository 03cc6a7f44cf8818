package atlas

// Allocator places axis-aligned rectangles inside a fixed-size canvas.
//
// Implementations may use any packing heuristic (shelf, guillotine, skyline)
// as long as every successful allocation satisfies three rules:
//
//   - the returned region has exactly the requested width and height
//   - the region lies entirely inside the canvas
//   - the region does not overlap any previously returned region
//
// Allocations are permanent: there is no free operation, so the available
// space only shrinks over the lifetime of an allocator. Implementations are
// not required to be safe for concurrent use; the builder that owns an
// allocator calls it from a single goroutine.
type Allocator interface {
	// Allocate finds space for a rectangle of the given size and reports
	// whether placement succeeded. A failed allocation must leave the
	// allocator state unchanged.
	Allocate(width, height int) (Region, bool)
}
