package atlas

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/atlas/assets"
)

// CopyRecord describes one texture upload a renderer still has to perform:
// the region of the atlas image whose CPU-side bytes changed and the wgpu
// copy parameters that push exactly those bytes to the GPU texture.
//
// The builder only records copies. Executing them (queue.WriteTexture or
// a staging-buffer copy) belongs to whatever owns the GPU queue.
type CopyRecord struct {
	// Origin is the texel offset of the changed region inside the atlas.
	Origin gputypes.Origin3D

	// Size is the extent of the changed region.
	Size gputypes.Extent3D

	// Layout locates the region's bytes inside the atlas image buffer:
	// Offset is the byte position of the first texel, BytesPerRow the
	// full row pitch of the atlas.
	Layout gputypes.TextureDataLayout
}

// newCopyRecord builds the upload record for a freshly written region.
func newCopyRecord(atlasImg *assets.Image, region Region) CopyRecord {
	px := atlasImg.PixelSize()
	return CopyRecord{
		Origin: gputypes.Origin3D{
			X: safeUint32(region.X),
			Y: safeUint32(region.Y),
			Z: 0,
		},
		Size: gputypes.Extent3D{
			Width:              safeUint32(region.Width),
			Height:             safeUint32(region.Height),
			DepthOrArrayLayers: 1,
		},
		Layout: gputypes.TextureDataLayout{
			Offset:       uint64((region.Y*atlasImg.Width() + region.X) * px),
			BytesPerRow:  safeUint32(atlasImg.Width() * px),
			RowsPerImage: safeUint32(region.Height),
		},
	}
}

// PendingCopies returns the upload records accumulated since the last
// DrainCopies call, oldest first. The slice is shared; callers that keep
// it must not mutate it.
func (b *DynamicBuilder) PendingCopies() []CopyRecord {
	return b.pending
}

// DrainCopies returns the accumulated upload records and clears the
// pending list. A renderer calls this once per frame after ferrying the
// atlas image to the GPU.
func (b *DynamicBuilder) DrainCopies() []CopyRecord {
	out := b.pending
	b.pending = nil
	return out
}

// safeUint32 safely converts int to uint32.
// Returns 0 for negative values and clamps values exceeding uint32 max.
func safeUint32(v int) uint32 {
	if v < 0 {
		return 0
	}
	if v > int(^uint32(0)) {
		return ^uint32(0)
	}
	return uint32(v)
}
