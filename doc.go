// Package compositor mirrors a remote layer tree and paints it.
//
// # Overview
//
// compositor is the receiving half of a split rendering pipeline: a content
// process rasterizes page content into tiles and ships scene mutations as
// commands, and this package replays those commands into a mirrored scene
// graph and composites the result, with GPU and software backends.
//
// # Quick Start
//
//	import "github.com/gogpu/compositor"
//
//	c := compositor.New(compositor.Config{
//	    ScheduleUpdate: window.RequestRedraw,
//	})
//
//	// Content side (any goroutine): describe the scene.
//	c.SyncCompositingLayerState(rootInfo)
//	c.CreateTileForLayer(rootID, 1, tileUpdate)
//	c.SetRootCompositingLayer(rootID)
//	c.DidRenderFrame()
//
//	// Compositing side (render goroutine): paint it.
//	c.Paint(dc.AsTextureDrawer(), scene.Identity(), 1, scene.Rect{})
//
// # Frames
//
// Commands queue up until the compositing goroutine paints; nothing mutates
// the mirrored scene from other goroutines. DidRenderFrame ends a frame:
// tile content staged before it becomes visible atomically when the barrier
// is applied, and the content side is acknowledged so it can send the next
// frame. Content never tears mid-frame.
//
// # Architecture
//
// The package is organized into:
//   - Root: command queue, replay, painting (this package)
//   - scene: the mirrored layer tree, tiles, images, animations
//   - scrolling: threaded hit testing and scroll position tracking
//   - render: bitmaps, render targets, GPU device plumbing
//   - shadercache: WGSL compilation and shader module caching
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
package compositor

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
