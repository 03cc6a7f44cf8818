package atlas

// Layout records where each packed texture landed inside one atlas.
//
// Entries are append-only. Add returns the index of the entry it stored,
// and that index stays valid for the lifetime of the layout, so callers
// can hand it out as a stable sprite or glyph identifier.
type Layout struct {
	width   int
	height  int
	regions []Region
}

// NewLayout creates an empty layout for an atlas of the given dimensions.
func NewLayout(width, height int) *Layout {
	return &Layout{width: width, height: height}
}

// Width returns the atlas width the layout describes.
func (l *Layout) Width() int {
	return l.width
}

// Height returns the atlas height the layout describes.
func (l *Layout) Height() int {
	return l.height
}

// Add appends a region and returns its index.
func (l *Layout) Add(r Region) int {
	l.regions = append(l.regions, r)
	return len(l.regions) - 1
}

// Get returns the region at the given index.
// It reports false if the index is out of range.
func (l *Layout) Get(index int) (Region, bool) {
	if index < 0 || index >= len(l.regions) {
		return Region{}, false
	}
	return l.regions[index], true
}

// Len returns the number of regions in the layout.
func (l *Layout) Len() int {
	return len(l.regions)
}

// IsEmpty returns true if the layout holds no regions.
func (l *Layout) IsEmpty() bool {
	return len(l.regions) == 0
}

// Regions returns a copy of all regions in insertion order.
func (l *Layout) Regions() []Region {
	out := make([]Region, len(l.regions))
	copy(out, l.regions)
	return out
}
