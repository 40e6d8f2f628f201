// Package texture tracks the GPU textures realized for tiles and directly
// composited images.
//
// Texture handles are opaque (any) because the GPU backend hands them out
// through gpucontext interfaces; the cache only relies on the optional
// capabilities a backend texture may implement: gpucontext.TextureUpdater
// for in-place uploads and Destroy() for release.
//
// The cache is confined to the compositing goroutine, like the scene it
// mirrors. Creation happens lazily at paint time, when a draw context is
// available; release happens eagerly when tiles, layers, or images go away.
package texture

import (
	"fmt"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/compositor/scene"
)

// CreateFunc creates a GPU texture from RGBA pixel data. The paint path
// supplies one bound to the current draw context's texture creator.
type CreateFunc func(width, height int, data []byte) (any, error)

// textureDestroyer is the interface for destroying textures.
// This matches the gogpu.Texture.Destroy signature.
type textureDestroyer interface {
	Destroy()
}

// Handle is one cached GPU texture together with the bookkeeping needed to
// decide when it must be re-uploaded.
type Handle struct {
	tex           any
	width, height int
	bytes         uint64
	revision      uint64
}

// Texture returns the underlying GPU texture handle.
func (h *Handle) Texture() any { return h.tex }

// Width returns the texture width in pixels.
func (h *Handle) Width() int { return h.width }

// Height returns the texture height in pixels.
func (h *Handle) Height() int { return h.height }

// TileKey identifies a tile texture: tile IDs are only unique within their
// owning layer.
type TileKey struct {
	Layer scene.LayerID
	Tile  scene.TileID
}

// Cache owns every GPU texture the compositor realized. Tiles re-upload
// when their backing revision moves; images are immutable and upload once.
type Cache struct {
	tiles  map[TileKey]*Handle
	images map[scene.ImageID]*Handle

	usedBytes uint64
	uploads   uint64
	destroys  uint64
}

// NewCache creates an empty texture cache.
func NewCache() *Cache {
	return &Cache{
		tiles:  make(map[TileKey]*Handle),
		images: make(map[scene.ImageID]*Handle),
	}
}

// EnsureTile returns an up-to-date texture for the tile, creating or
// re-uploading as needed. Returns (nil, nil) while the tile has no visible
// content yet.
//
// A tile whose dimensions are unchanged is updated in place when the
// backend texture supports it; otherwise the old texture is destroyed and
// a new one created.
func (c *Cache) EnsureTile(key TileKey, t *scene.Tile, create CreateFunc) (*Handle, error) {
	bm := t.Front()
	if bm == nil {
		return nil, nil
	}

	h, ok := c.tiles[key]
	if ok && h.revision == t.Revision() {
		return h, nil
	}

	data := bm.Data()
	if ok {
		if h.width == bm.Width() && h.height == bm.Height() {
			if updater, uok := h.tex.(gpucontext.TextureUpdater); uok {
				if err := updater.UpdateData(data); err != nil {
					return nil, fmt.Errorf("texture: tile update failed: %w", err)
				}
				h.revision = t.Revision()
				c.uploads++
				return h, nil
			}
		}
		// Size changed or the backend cannot update in place.
		c.release(h)
		delete(c.tiles, key)
	}

	h, err := c.newHandle(bm.Width(), bm.Height(), data, create)
	if err != nil {
		return nil, fmt.Errorf("texture: tile create failed: %w", err)
	}
	h.revision = t.Revision()
	c.tiles[key] = h
	return h, nil
}

// EnsureImage returns the texture for a directly composited image, creating
// it on first use. Image content never changes under one ID, so an existing
// handle is always current. Returns (nil, nil) for a backing without pixels.
func (c *Cache) EnsureImage(id scene.ImageID, b *scene.ImageBacking, create CreateFunc) (*Handle, error) {
	if b == nil || b.Bitmap == nil {
		return nil, nil
	}
	if h, ok := c.images[id]; ok {
		return h, nil
	}

	h, err := c.newHandle(b.Width(), b.Height(), b.Bitmap.Data(), create)
	if err != nil {
		return nil, fmt.Errorf("texture: image create failed: %w", err)
	}
	c.images[id] = h
	return h, nil
}

func (c *Cache) newHandle(width, height int, data []byte, create CreateFunc) (*Handle, error) {
	tex, err := create(width, height, data)
	if err != nil {
		return nil, err
	}
	h := &Handle{
		tex:    tex,
		width:  width,
		height: height,
		bytes:  uint64(width) * uint64(height) * 4,
	}
	c.usedBytes += h.bytes
	c.uploads++
	return h, nil
}

// release destroys the GPU texture behind a handle and updates accounting.
func (c *Cache) release(h *Handle) {
	if h.tex != nil {
		if destroyer, ok := h.tex.(textureDestroyer); ok {
			destroyer.Destroy()
		}
		h.tex = nil
	}
	c.usedBytes -= h.bytes
	c.destroys++
}

// DropTile releases the texture for one tile, if any.
func (c *Cache) DropTile(key TileKey) {
	h, ok := c.tiles[key]
	if !ok {
		return
	}
	c.release(h)
	delete(c.tiles, key)
}

// DropLayer releases every tile texture belonging to a layer.
func (c *Cache) DropLayer(layer scene.LayerID) {
	for key, h := range c.tiles {
		if key.Layer != layer {
			continue
		}
		c.release(h)
		delete(c.tiles, key)
	}
}

// DropImage releases the texture for a directly composited image, if any.
func (c *Cache) DropImage(id scene.ImageID) {
	h, ok := c.images[id]
	if !ok {
		return
	}
	c.release(h)
	delete(c.images, id)
}

// Purge releases every texture in the cache. Called on GPU context loss and
// teardown.
func (c *Cache) Purge() {
	if len(c.tiles) == 0 && len(c.images) == 0 {
		return
	}
	slogger().Info("purging texture cache",
		"tiles", len(c.tiles),
		"images", len(c.images),
		"bytes", c.usedBytes)
	for key, h := range c.tiles {
		c.release(h)
		delete(c.tiles, key)
	}
	for id, h := range c.images {
		c.release(h)
		delete(c.images, id)
	}
}

// UsedBytes returns the bytes of pixel data currently resident on the GPU.
func (c *Cache) UsedBytes() uint64 { return c.usedBytes }

// TileCount returns the number of cached tile textures.
func (c *Cache) TileCount() int { return len(c.tiles) }

// ImageCount returns the number of cached image textures.
func (c *Cache) ImageCount() int { return len(c.images) }

// Uploads returns how many texture creations and in-place updates happened.
func (c *Cache) Uploads() uint64 { return c.uploads }
