package compositor

import (
	"image"
	"time"

	"github.com/gogpu/compositor/internal/texture"
	"github.com/gogpu/compositor/render"
	"github.com/gogpu/compositor/scene"
)

// Config configures a Compositor. The zero value is usable: no GPU device,
// no transport, no repaint scheduling.
type Config struct {
	// Device is the GPU device handle shared with the host application.
	// Defaults to render.NullDeviceHandle for CPU-only compositing.
	Device render.DeviceHandle

	// Client receives outbound notifications for the content side.
	// Defaults to NopClient.
	Client Client

	// ScheduleUpdate is invoked whenever the compositor wants to be
	// painted again: after a command is enqueued and while animations are
	// running. The host typically requests a redraw of its surface here.
	// Must be safe to call from any goroutine.
	ScheduleUpdate func()
}

// Compositor mirrors the content process's layer tree and paints it.
//
// Producers enqueue commands from any goroutine through the ...ForLayer,
// ...Image, Sync, Delete, SetRoot, and DidRenderFrame methods. All
// remaining methods (painting, purging, direct graph access) belong to
// the single compositing goroutine, the one that owns the GPU device.
// Commands are applied there, in order, when a paint begins.
type Compositor struct {
	device   render.DeviceHandle
	client   Client
	schedule func()

	queue    *Queue
	graph    *scene.Graph
	textures *texture.Cache

	// pendingStores collects the backing stores that received tile
	// updates since the last frame barrier; only these swap at the next
	// flush.
	pendingStores map[*scene.BackingStore]struct{}

	visibleRect   image.Rectangle
	contentsScale float64
	trajectory    scene.Point

	closed bool
}

// New creates a Compositor with the given configuration.
func New(cfg Config) *Compositor {
	if cfg.Device == nil {
		cfg.Device = render.NullDeviceHandle{}
	}
	if cfg.Client == nil {
		cfg.Client = NopClient{}
	}
	if cfg.ScheduleUpdate == nil {
		cfg.ScheduleUpdate = func() {}
	}
	c := &Compositor{
		device:        cfg.Device,
		client:        cfg.Client,
		schedule:      cfg.ScheduleUpdate,
		queue:         NewQueue(),
		graph:         scene.NewGraph(),
		textures:      texture.NewCache(),
		pendingStores: make(map[*scene.BackingStore]struct{}),
		contentsScale: 1,
	}
	Logger().Debug("compositor created")
	return c
}

// Graph returns the mirrored scene. Like painting, it belongs to the
// compositing goroutine; producers must not touch it.
func (c *Compositor) Graph() *scene.Graph {
	return c.graph
}

// Device returns the GPU device handle the compositor was created with.
func (c *Compositor) Device() render.DeviceHandle {
	return c.device
}

// PendingCommands returns the number of commands waiting to be applied.
func (c *Compositor) PendingCommands() int {
	return c.queue.Len()
}

// GPUMemoryUsed returns the bytes of texture data currently realized.
func (c *Compositor) GPUMemoryUsed() uint64 {
	return c.textures.UsedBytes()
}

// enqueue appends a command and nudges the host to paint, which is when
// queued commands get applied.
func (c *Compositor) enqueue(cmd Command) {
	c.queue.Enqueue(cmd)
	Logger().Debug("command enqueued", "type", cmd.Type().String())
	c.schedule()
}

// --------------------------------------------------------------------------
// Producer API (any goroutine)
// --------------------------------------------------------------------------

// CreateTileForLayer registers a tile and stages its first content in one
// step. The content becomes visible at the next frame barrier.
func (c *Compositor) CreateTileForLayer(layer scene.LayerID, tile scene.TileID, update scene.TileUpdate) {
	c.enqueue(CreateTileCommand{Layer: layer, Tile: tile, Scale: update.Scale})
	c.enqueue(UpdateTileCommand{Layer: layer, Tile: tile, Update: update})
}

// UpdateTileForLayer stages new content for an existing tile. Staging twice
// before a frame barrier keeps only the second update.
func (c *Compositor) UpdateTileForLayer(layer scene.LayerID, tile scene.TileID, update scene.TileUpdate) {
	c.enqueue(UpdateTileCommand{Layer: layer, Tile: tile, Update: update})
}

// RemoveTileForLayer removes a tile and both of its content buffers.
func (c *Compositor) RemoveTileForLayer(layer scene.LayerID, tile scene.TileID) {
	c.enqueue(RemoveTileCommand{Layer: layer, Tile: tile})
}

// CreateDirectlyCompositedImage registers pixel content for an image that
// layers reference by ID instead of carrying their own tiles.
func (c *Compositor) CreateDirectlyCompositedImage(id scene.ImageID, bitmap *render.Bitmap) {
	c.enqueue(CreateImageCommand{Image: id, Bitmap: bitmap})
}

// DestroyDirectlyCompositedImage removes a directly composited image.
func (c *Compositor) DestroyDirectlyCompositedImage(id scene.ImageID) {
	c.enqueue(DestroyImageCommand{Image: id})
}

// SyncCompositingLayerState applies a full layer snapshot at the next
// drain, materializing the layer on first contact.
func (c *Compositor) SyncCompositingLayerState(info scene.LayerInfo) {
	c.enqueue(SyncLayerParametersCommand{Info: info})
}

// DeleteCompositingLayer deletes a layer and its GPU resources. Unknown
// IDs are ignored.
func (c *Compositor) DeleteCompositingLayer(id scene.LayerID) {
	c.enqueue(DeleteLayerCommand{Layer: id})
}

// SetRootCompositingLayer reassigns the root of the mirrored tree.
func (c *Compositor) SetRootCompositingLayer(id scene.LayerID) {
	c.enqueue(SetRootLayerCommand{Layer: id})
}

// DidRenderFrame marks the end of the content side's frame: everything
// enqueued before it becomes visible together, and the content side is
// acknowledged with RenderNextFrame once the barrier is applied.
func (c *Compositor) DidRenderFrame() {
	c.enqueue(FlushLayerChangesCommand{})
}

// --------------------------------------------------------------------------
// Command replay (compositing goroutine)
// --------------------------------------------------------------------------

// ApplyPendingUpdates drains the command queue and applies every command to
// the mirrored scene. Paint entry points call it first; hosts that want to
// apply updates without painting (e.g. while hidden) can call it directly.
//
// Commands enqueued while the drain runs are applied by the same drain.
func (c *Compositor) ApplyPendingUpdates() {
	now := time.Now()
	for {
		cmd, ok := c.queue.TryNext()
		if !ok {
			return
		}
		c.apply(cmd, now)
	}
}

func (c *Compositor) apply(cmd Command, now time.Time) {
	switch cmd := cmd.(type) {
	case CreateTileCommand:
		c.ensureBacking(cmd.Layer).CreateTile(cmd.Tile, cmd.Scale)

	case UpdateTileCommand:
		store := c.ensureBacking(cmd.Layer)
		if !store.UpdateTile(cmd.Tile, cmd.Update) {
			// The tile vanished or never existed; recreate it so content
			// is not lost when create and update race a purge.
			store.CreateTile(cmd.Tile, cmd.Update.Scale)
			store.UpdateTile(cmd.Tile, cmd.Update)
		}
		c.pendingStores[store] = struct{}{}

	case RemoveTileCommand:
		c.ensureBacking(cmd.Layer).RemoveTile(cmd.Tile)
		c.textures.DropTile(texture.TileKey{Layer: cmd.Layer, Tile: cmd.Tile})

	case CreateImageCommand:
		_, replaced := c.graph.Images().Create(cmd.Image, cmd.Bitmap)
		if replaced != nil {
			c.textures.DropImage(cmd.Image)
		}

	case DestroyImageCommand:
		c.graph.Images().Destroy(cmd.Image)
		c.textures.DropImage(cmd.Image)

	case SyncLayerParametersCommand:
		c.graph.Sync(cmd.Info, now)

	case DeleteLayerCommand:
		if removed := c.graph.Delete(cmd.Layer); removed != nil {
			if removed.Backing != nil {
				delete(c.pendingStores, removed.Backing)
			}
			c.textures.DropLayer(cmd.Layer)
		}

	case SetRootLayerCommand:
		c.graph.SetRoot(cmd.Layer)

	case FlushLayerChangesCommand:
		c.flush()

	default:
		Logger().Warn("unknown command dropped", "type", cmd.Type().String())
	}
}

// ensureBacking returns the layer's backing store, materializing layer and
// store as needed. Tile commands may precede the layer's first sync.
func (c *Compositor) ensureBacking(id scene.LayerID) *scene.BackingStore {
	l := c.graph.Ensure(id)
	if l.Backing == nil {
		l.Backing = scene.NewBackingStore()
	}
	return l.Backing
}

// flush applies the frame barrier: commit the scene generation, make the
// staged tile content visible, and acknowledge the frame so the content
// side releases its next batch.
func (c *Compositor) flush() {
	gen := c.graph.Commit()

	swapped := 0
	for store := range c.pendingStores {
		swapped += store.SwapBuffers()
	}
	clear(c.pendingStores)

	Logger().Debug("frame committed", "generation", gen, "tiles_swapped", swapped)
	c.client.RenderNextFrame()
}

// --------------------------------------------------------------------------
// Viewport notifications
// --------------------------------------------------------------------------

// SetVisibleContentsRectForPanning forwards the visible rect and motion
// trajectory to the content side so it rasterizes tiles ahead of the pan.
func (c *Compositor) SetVisibleContentsRectForPanning(rect image.Rectangle, trajectory scene.Point) {
	c.visibleRect = rect
	c.trajectory = trajectory
	c.client.SetVisibleContentsRectForPanning(rect, trajectory)
}

// SetVisibleContentsRectForScaling forwards the visible rect and the new
// contents scale to the content side during zooming.
func (c *Compositor) SetVisibleContentsRectForScaling(rect image.Rectangle, scale float64) {
	c.visibleRect = rect
	c.contentsScale = scale
	c.client.SetVisibleContentsRectForScaling(rect, scale)
}

// VisibleContentsRect returns the last visible rect sent to the content
// side.
func (c *Compositor) VisibleContentsRect() image.Rectangle {
	return c.visibleRect
}

// ContentsScale returns the last contents scale sent to the content side.
func (c *Compositor) ContentsScale() float64 {
	return c.contentsScale
}

// --------------------------------------------------------------------------
// Resource teardown
// --------------------------------------------------------------------------

// PurgeGraphicsResources drops every tile, image, and GPU texture while
// keeping layer structure. Called when the GPU context is lost or the view
// goes dormant; the content side is told to re-send all pixel content.
func (c *Compositor) PurgeGraphicsResources() {
	c.graph.PurgeContents()
	clear(c.pendingStores)
	c.textures.Purge()
	Logger().Info("graphics resources purged")
	c.client.PurgeBackingStores()
}

// Close releases everything: queued commands, the mirrored scene, and all
// GPU textures. The content side is not notified. Close is idempotent;
// producers must stop before it is called.
func (c *Compositor) Close() {
	if c.closed {
		return
	}
	c.closed = true

	if dropped := c.queue.Clear(); dropped > 0 {
		Logger().Debug("dropped queued commands on close", "count", dropped)
	}
	c.textures.Purge()
	c.graph.Clear()
	clear(c.pendingStores)
}
