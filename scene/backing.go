package scene

import (
	"image"
	"sort"

	"github.com/gogpu/compositor/render"
)

// TileID identifies a tile inside one layer's backing store.
// IDs are assigned by the content process.
type TileID uint32

// TileUpdate is the payload of one tile update: new pixel content and where
// it maps inside the layer.
type TileUpdate struct {
	// Source is the rectangle of Bitmap holding the new pixels.
	Source image.Rectangle

	// Target is the rectangle in layer coordinates the pixels cover.
	Target image.Rectangle

	// Scale is the contents scale the tile was rasterized at.
	// Only honored when the update creates the tile.
	Scale float64

	// Bitmap holds the pixel data.
	Bitmap *render.Bitmap
}

// Tile is one tile of a layer backing store. A tile double-buffers its
// content: updates land in a pending slot and become visible only when the
// owning store swaps buffers at a frame boundary.
type Tile struct {
	scale  float64
	front  *render.Bitmap
	source image.Rectangle
	target image.Rectangle

	pending  *TileUpdate
	revision uint64
}

// Scale returns the contents scale the tile was created with.
func (t *Tile) Scale() float64 {
	return t.scale
}

// Front returns the visible bitmap, or nil before the first swap.
func (t *Tile) Front() *render.Bitmap {
	return t.front
}

// Source returns the source rectangle of the visible bitmap.
func (t *Tile) Source() image.Rectangle {
	return t.source
}

// Target returns the layer-coordinate rectangle the visible content covers.
func (t *Tile) Target() image.Rectangle {
	return t.target
}

// HasPending reports whether an update is waiting for the next swap.
func (t *Tile) HasPending() bool {
	return t.pending != nil
}

// Revision returns a counter that increments every time the visible content
// changes. Texture caches compare it to decide whether a re-upload is due.
func (t *Tile) Revision() uint64 {
	return t.revision
}

// BackingStore holds the tiles of one layer. It is owned by exactly one
// layer and dropped wholesale when the layer is deleted or resources are
// purged.
//
// BackingStore is not safe for concurrent use; it shares the Graph's
// single-goroutine confinement.
type BackingStore struct {
	tiles map[TileID]*Tile
}

// NewBackingStore creates an empty backing store.
func NewBackingStore() *BackingStore {
	return &BackingStore{
		tiles: make(map[TileID]*Tile),
	}
}

// CreateTile registers a tile. Creating an already existing tile is a no-op
// and returns the existing tile unchanged.
func (b *BackingStore) CreateTile(id TileID, scale float64) *Tile {
	if t, ok := b.tiles[id]; ok {
		return t
	}
	t := &Tile{scale: scale}
	b.tiles[id] = t
	return t
}

// UpdateTile stores new pending content for a tile, replacing any update
// already waiting there (last write wins within a frame). Updates for
// unknown tiles are dropped and false is returned.
func (b *BackingStore) UpdateTile(id TileID, u TileUpdate) bool {
	t, ok := b.tiles[id]
	if !ok {
		return false
	}
	t.pending = &u
	return true
}

// RemoveTile deletes a tile, discarding both visible and pending content.
// Returns the removed tile so callers can release resources attached to it.
func (b *BackingStore) RemoveTile(id TileID) (*Tile, bool) {
	t, ok := b.tiles[id]
	if !ok {
		return nil, false
	}
	delete(b.tiles, id)
	return t, true
}

// Tile looks up a tile by ID.
func (b *BackingStore) Tile(id TileID) (*Tile, bool) {
	t, ok := b.tiles[id]
	return t, ok
}

// Len returns the number of tiles in the store.
func (b *BackingStore) Len() int {
	return len(b.tiles)
}

// HasPending reports whether any tile has an update waiting for a swap.
func (b *BackingStore) HasPending() bool {
	for _, t := range b.tiles {
		if t.pending != nil {
			return true
		}
	}
	return false
}

// SwapBuffers promotes every pending update to visible content and clears
// the pending slots. Returns the number of tiles that changed.
func (b *BackingStore) SwapBuffers() int {
	swapped := 0
	for _, t := range b.tiles {
		if t.pending == nil {
			continue
		}
		t.front = t.pending.Bitmap
		t.source = t.pending.Source
		t.target = t.pending.Target
		t.pending = nil
		t.revision++
		swapped++
	}
	return swapped
}

// EachTile calls fn for every tile in unspecified order.
func (b *BackingStore) EachTile(fn func(TileID, *Tile)) {
	for id, t := range b.tiles {
		fn(id, t)
	}
}

// TileIDs returns all tile IDs in ascending order.
// Painting iterates in this order so output is deterministic.
func (b *BackingStore) TileIDs() []TileID {
	ids := make([]TileID, 0, len(b.tiles))
	for id := range b.tiles {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
