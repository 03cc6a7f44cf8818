// Package assets provides CPU-side image storage for atlas building.
//
// An [Image] is a plain byte buffer tagged with dimensions, a
// [gputypes.TextureFormat] and retention flags that say whether the pixel
// bytes stay resident in main memory after a GPU upload. A [Store] maps
// stable handles to images and hands out exclusive access through scoped
// checkouts, so a caller that mutates a buffer in place (the atlas builder
// does) holds the only reference while it works.
//
// The package performs no GPU work. It models the host side of a texture
// asset: what a renderer would upload, not the upload itself.
package assets
