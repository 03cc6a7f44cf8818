// Package atlas provides dynamic texture atlas packing for Go.
//
// # Overview
//
// atlas packs many small images into one large texture at runtime. It is
// designed for sprite sheets, glyph caches and UI icon sets in the GoGPU
// ecosystem: rectangles are allocated incrementally, pixel data is copied
// into a shared CPU-side buffer, and the resulting layout maps stable
// indices back to atlas regions.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/atlas"
//	    "github.com/gogpu/atlas/assets"
//	)
//
//	store := assets.NewStore()
//	canvas := assets.NewImage(1024, 1024, gputypes.TextureFormatRGBA8Unorm)
//	target := store.Add(canvas)
//
//	layout := atlas.NewLayout(1024, 1024)
//	builder := atlas.NewDynamicBuilder(1024, 1024, 1)
//
//	// Pack a sprite. The returned index addresses layout.Get(index).
//	index, err := builder.AddTexture(layout, store, sprite, target)
//
// # Allocators
//
// Placement is delegated to an Allocator. Two implementations ship with the
// package: GuillotineAllocator (the default, split-tree packing) and
// ShelfAllocator (row-based packing, best for uniform heights such as glyph
// runs). Custom allocators plug in via WithAllocator.
//
// # Coordinate System
//
// Uses standard texture coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - All units are whole pixels
//
// # Concurrency
//
// A builder mutates the layout, the allocator and the target image in one
// call, so each builder and its dependencies belong to a single goroutine.
// Image stores hand out buffers through scoped checkouts; see
// [github.com/gogpu/atlas/assets.Store.Checkout].
package atlas

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
