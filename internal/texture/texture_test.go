package texture

import (
	"errors"
	"image"
	"testing"

	"github.com/gogpu/compositor/render"
	"github.com/gogpu/compositor/scene"
)

// fakeTexture records uploads and destruction, and supports in-place
// updates like a real backend texture.
type fakeTexture struct {
	width, height int
	data          []byte
	updates       int
	updateErr     error
	destroyed     bool
}

func (f *fakeTexture) UpdateData(data []byte) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates++
	f.data = append(f.data[:0], data...)
	return nil
}

func (f *fakeTexture) Destroy() { f.destroyed = true }

// staticTexture cannot be updated in place, so size-stable re-uploads must
// go through destroy and recreate.
type staticTexture struct {
	destroyed bool
}

func (s *staticTexture) Destroy() { s.destroyed = true }

type createRecorder struct {
	textures []*fakeTexture
	static   bool
	statics  []*staticTexture
	err      error
}

func (r *createRecorder) create(w, h int, data []byte) (any, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.static {
		st := &staticTexture{}
		r.statics = append(r.statics, st)
		return st, nil
	}
	ft := &fakeTexture{width: w, height: h, data: append([]byte(nil), data...)}
	r.textures = append(r.textures, ft)
	return ft, nil
}

func stageTile(store *scene.BackingStore, id scene.TileID, w, h int) {
	store.CreateTile(id, 1)
	store.UpdateTile(id, scene.TileUpdate{
		Source: image.Rect(0, 0, w, h),
		Target: image.Rect(0, 0, w, h),
		Scale:  1,
		Bitmap: render.NewBitmap(w, h),
	})
}

func frontedTile(t *testing.T, store *scene.BackingStore, id scene.TileID, w, h int) *scene.Tile {
	t.Helper()
	stageTile(store, id, w, h)
	store.SwapBuffers()
	tile, ok := store.Tile(id)
	if !ok {
		t.Fatalf("tile %d missing after staging", id)
	}
	return tile
}

func TestEnsureTileNoFrontBuffer(t *testing.T) {
	c := NewCache()
	store := scene.NewBackingStore()
	stageTile(store, 1, 4, 4) // staged but never swapped
	tile, _ := store.Tile(1)

	rec := &createRecorder{}
	h, err := c.EnsureTile(TileKey{Layer: 1, Tile: 1}, tile, rec.create)
	if err != nil {
		t.Fatalf("EnsureTile() error = %v", err)
	}
	if h != nil {
		t.Error("EnsureTile() handle non-nil for tile without front buffer")
	}
	if len(rec.textures) != 0 {
		t.Errorf("created %d textures, want 0", len(rec.textures))
	}
}

func TestEnsureTileCreatesOnce(t *testing.T) {
	c := NewCache()
	store := scene.NewBackingStore()
	tile := frontedTile(t, store, 1, 4, 4)
	key := TileKey{Layer: 1, Tile: 1}

	rec := &createRecorder{}
	h1, err := c.EnsureTile(key, tile, rec.create)
	if err != nil {
		t.Fatalf("EnsureTile() error = %v", err)
	}
	h2, err := c.EnsureTile(key, tile, rec.create)
	if err != nil {
		t.Fatalf("EnsureTile() second call error = %v", err)
	}
	if h1 != h2 {
		t.Error("EnsureTile() returned a new handle for an unchanged tile")
	}
	if len(rec.textures) != 1 {
		t.Errorf("created %d textures, want 1", len(rec.textures))
	}
	if got := c.Uploads(); got != 1 {
		t.Errorf("Uploads() = %d, want 1", got)
	}
	if got, want := c.UsedBytes(), uint64(4*4*4); got != want {
		t.Errorf("UsedBytes() = %d, want %d", got, want)
	}
	if got := c.TileCount(); got != 1 {
		t.Errorf("TileCount() = %d, want 1", got)
	}
}

func TestEnsureTileUpdatesInPlace(t *testing.T) {
	c := NewCache()
	store := scene.NewBackingStore()
	tile := frontedTile(t, store, 1, 4, 4)
	key := TileKey{Layer: 1, Tile: 1}

	rec := &createRecorder{}
	h1, err := c.EnsureTile(key, tile, rec.create)
	if err != nil {
		t.Fatalf("EnsureTile() error = %v", err)
	}

	// New content, same size: the backend texture updates in place.
	stageTile(store, 1, 4, 4)
	store.SwapBuffers()
	h2, err := c.EnsureTile(key, tile, rec.create)
	if err != nil {
		t.Fatalf("EnsureTile() after swap error = %v", err)
	}
	if h1 != h2 {
		t.Error("in-place update replaced the handle")
	}
	if len(rec.textures) != 1 {
		t.Errorf("created %d textures, want 1", len(rec.textures))
	}
	if got := rec.textures[0].updates; got != 1 {
		t.Errorf("UpdateData calls = %d, want 1", got)
	}
	if got := c.Uploads(); got != 2 {
		t.Errorf("Uploads() = %d, want 2", got)
	}
	if got, want := c.UsedBytes(), uint64(4*4*4); got != want {
		t.Errorf("UsedBytes() = %d, want %d", got, want)
	}
}

func TestEnsureTileRecreatesOnResize(t *testing.T) {
	c := NewCache()
	store := scene.NewBackingStore()
	tile := frontedTile(t, store, 1, 4, 4)
	key := TileKey{Layer: 1, Tile: 1}

	rec := &createRecorder{}
	if _, err := c.EnsureTile(key, tile, rec.create); err != nil {
		t.Fatalf("EnsureTile() error = %v", err)
	}

	stageTile(store, 1, 8, 8)
	store.SwapBuffers()
	if _, err := c.EnsureTile(key, tile, rec.create); err != nil {
		t.Fatalf("EnsureTile() after resize error = %v", err)
	}
	if len(rec.textures) != 2 {
		t.Fatalf("created %d textures, want 2", len(rec.textures))
	}
	if !rec.textures[0].destroyed {
		t.Error("old texture not destroyed on resize")
	}
	if got, want := c.UsedBytes(), uint64(8*8*4); got != want {
		t.Errorf("UsedBytes() = %d, want %d", got, want)
	}
}

func TestEnsureTileRecreatesWhenNotUpdatable(t *testing.T) {
	c := NewCache()
	store := scene.NewBackingStore()
	tile := frontedTile(t, store, 1, 4, 4)
	key := TileKey{Layer: 1, Tile: 1}

	rec := &createRecorder{static: true}
	if _, err := c.EnsureTile(key, tile, rec.create); err != nil {
		t.Fatalf("EnsureTile() error = %v", err)
	}

	stageTile(store, 1, 4, 4)
	store.SwapBuffers()
	if _, err := c.EnsureTile(key, tile, rec.create); err != nil {
		t.Fatalf("EnsureTile() after swap error = %v", err)
	}
	if len(rec.statics) != 2 {
		t.Fatalf("created %d textures, want 2", len(rec.statics))
	}
	if !rec.statics[0].destroyed {
		t.Error("non-updatable texture not destroyed before recreate")
	}
}

func TestEnsureTileUpdateFailure(t *testing.T) {
	c := NewCache()
	store := scene.NewBackingStore()
	tile := frontedTile(t, store, 1, 4, 4)
	key := TileKey{Layer: 1, Tile: 1}

	rec := &createRecorder{}
	if _, err := c.EnsureTile(key, tile, rec.create); err != nil {
		t.Fatalf("EnsureTile() error = %v", err)
	}
	rec.textures[0].updateErr = errors.New("device lost")

	stageTile(store, 1, 4, 4)
	store.SwapBuffers()
	if _, err := c.EnsureTile(key, tile, rec.create); err == nil {
		t.Fatal("EnsureTile() error = nil, want upload failure")
	}
	// The stale handle stays cached so the next paint can retry.
	if got := c.TileCount(); got != 1 {
		t.Errorf("TileCount() = %d, want 1", got)
	}
}

func TestEnsureTileCreateFailure(t *testing.T) {
	c := NewCache()
	store := scene.NewBackingStore()
	tile := frontedTile(t, store, 1, 4, 4)

	rec := &createRecorder{err: errors.New("out of memory")}
	if _, err := c.EnsureTile(TileKey{Layer: 1, Tile: 1}, tile, rec.create); err == nil {
		t.Fatal("EnsureTile() error = nil, want create failure")
	}
	if got := c.TileCount(); got != 0 {
		t.Errorf("TileCount() = %d, want 0", got)
	}
	if got := c.UsedBytes(); got != 0 {
		t.Errorf("UsedBytes() = %d, want 0", got)
	}
}

func TestEnsureImageUploadsOnce(t *testing.T) {
	c := NewCache()
	backing := &scene.ImageBacking{Bitmap: render.NewBitmap(4, 4)}

	rec := &createRecorder{}
	h1, err := c.EnsureImage(7, backing, rec.create)
	if err != nil {
		t.Fatalf("EnsureImage() error = %v", err)
	}
	h2, err := c.EnsureImage(7, backing, rec.create)
	if err != nil {
		t.Fatalf("EnsureImage() second call error = %v", err)
	}
	if h1 != h2 {
		t.Error("EnsureImage() returned a new handle for an immutable image")
	}
	if len(rec.textures) != 1 {
		t.Errorf("created %d textures, want 1", len(rec.textures))
	}
	if got := c.ImageCount(); got != 1 {
		t.Errorf("ImageCount() = %d, want 1", got)
	}
}

func TestEnsureImageWithoutPixels(t *testing.T) {
	c := NewCache()
	rec := &createRecorder{}

	h, err := c.EnsureImage(1, nil, rec.create)
	if err != nil || h != nil {
		t.Errorf("EnsureImage(nil backing) = (%v, %v), want (nil, nil)", h, err)
	}
	h, err = c.EnsureImage(1, &scene.ImageBacking{}, rec.create)
	if err != nil || h != nil {
		t.Errorf("EnsureImage(empty backing) = (%v, %v), want (nil, nil)", h, err)
	}
}

func TestDropTile(t *testing.T) {
	c := NewCache()
	store := scene.NewBackingStore()
	tile := frontedTile(t, store, 1, 4, 4)
	key := TileKey{Layer: 1, Tile: 1}

	rec := &createRecorder{}
	if _, err := c.EnsureTile(key, tile, rec.create); err != nil {
		t.Fatalf("EnsureTile() error = %v", err)
	}
	c.DropTile(key)
	if !rec.textures[0].destroyed {
		t.Error("texture not destroyed by DropTile")
	}
	if got := c.UsedBytes(); got != 0 {
		t.Errorf("UsedBytes() = %d, want 0", got)
	}
	c.DropTile(key) // unknown key is a no-op
}

func TestDropLayerReleasesOnlyThatLayer(t *testing.T) {
	c := NewCache()
	store := scene.NewBackingStore()
	t1 := frontedTile(t, store, 1, 4, 4)
	other := scene.NewBackingStore()
	t2 := frontedTile(t, other, 1, 4, 4)

	rec := &createRecorder{}
	if _, err := c.EnsureTile(TileKey{Layer: 1, Tile: 1}, t1, rec.create); err != nil {
		t.Fatalf("EnsureTile() error = %v", err)
	}
	if _, err := c.EnsureTile(TileKey{Layer: 2, Tile: 1}, t2, rec.create); err != nil {
		t.Fatalf("EnsureTile() error = %v", err)
	}

	c.DropLayer(1)
	if got := c.TileCount(); got != 1 {
		t.Errorf("TileCount() = %d, want 1", got)
	}
	if !rec.textures[0].destroyed {
		t.Error("layer 1 texture not destroyed")
	}
	if rec.textures[1].destroyed {
		t.Error("layer 2 texture destroyed by DropLayer(1)")
	}
}

func TestPurgeReleasesEverything(t *testing.T) {
	c := NewCache()
	store := scene.NewBackingStore()
	tile := frontedTile(t, store, 1, 4, 4)

	rec := &createRecorder{}
	if _, err := c.EnsureTile(TileKey{Layer: 1, Tile: 1}, tile, rec.create); err != nil {
		t.Fatalf("EnsureTile() error = %v", err)
	}
	if _, err := c.EnsureImage(9, &scene.ImageBacking{Bitmap: render.NewBitmap(2, 2)}, rec.create); err != nil {
		t.Fatalf("EnsureImage() error = %v", err)
	}

	c.Purge()
	if got := c.TileCount(); got != 0 {
		t.Errorf("TileCount() = %d, want 0", got)
	}
	if got := c.ImageCount(); got != 0 {
		t.Errorf("ImageCount() = %d, want 0", got)
	}
	if got := c.UsedBytes(); got != 0 {
		t.Errorf("UsedBytes() = %d, want 0", got)
	}
	for i, ft := range rec.textures {
		if !ft.destroyed {
			t.Errorf("texture %d not destroyed by Purge", i)
		}
	}
	c.Purge() // empty purge is a no-op
}
