package compositor

import (
	"image"

	"github.com/gogpu/compositor/scene"
)

// Client receives the compositor's outbound notifications to the content
// side. A transport implementation forwards them across the process
// boundary; in-process hosts can handle them directly.
//
// Calls arrive on whichever goroutine triggered them: RenderNextFrame and
// PurgeBackingStores from the compositing goroutine, the visible-rect
// notifications from whoever drives panning and zooming.
type Client interface {
	// RenderNextFrame acknowledges a frame barrier. The content side
	// holds back the next batch of commands until it arrives, which keeps
	// the queue bounded to roughly one frame of commands.
	RenderNextFrame()

	// SetVisibleContentsRectForPanning tells the content side which rect
	// is visible and which direction the viewport is heading, so it can
	// rasterize tiles ahead of the motion.
	SetVisibleContentsRectForPanning(rect image.Rectangle, trajectory scene.Point)

	// SetVisibleContentsRectForScaling tells the content side the visible
	// rect and the new contents scale during zooming.
	SetVisibleContentsRectForScaling(rect image.Rectangle, scale float64)

	// PurgeBackingStores tells the content side that every tile and image
	// was dropped (GPU context loss) and all content must be re-sent.
	PurgeBackingStores()
}

// NopClient is a Client that ignores every notification. Used when no
// transport is configured, typically in tests and tools.
type NopClient struct{}

// RenderNextFrame implements Client.
func (NopClient) RenderNextFrame() {}

// SetVisibleContentsRectForPanning implements Client.
func (NopClient) SetVisibleContentsRectForPanning(image.Rectangle, scene.Point) {}

// SetVisibleContentsRectForScaling implements Client.
func (NopClient) SetVisibleContentsRectForScaling(image.Rectangle, float64) {}

// PurgeBackingStores implements Client.
func (NopClient) PurgeBackingStores() {}
