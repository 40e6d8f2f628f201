// Package render provides the paint-target and device abstractions used by
// the compositor.
//
// A RenderTarget is a destination for software painting; PixmapTarget is the
// CPU-backed implementation over *image.RGBA. Bitmap is the pixel payload
// attached to tile and image commands: a plain RGBA8 buffer produced by the
// content process and consumed by the compositor when tiles are swapped.
//
// DeviceHandle re-exports the gpucontext device provider so hosts can hand
// the compositor a shared GPU device without this module creating one.
package render
