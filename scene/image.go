package scene

import "github.com/gogpu/compositor/render"

// ImageID identifies a directly composited image. The content process keys
// images by a 64-bit identity so repeated uses of the same decoded image
// share one backing.
type ImageID int64

// ImageBacking is the compositor-side pixel content of a directly
// composited image. The bitmap never changes after creation; updated images
// arrive as a new ImageID. Texture caches key off the backing's identity.
type ImageBacking struct {
	// Bitmap holds the decoded image pixels.
	Bitmap *render.Bitmap
}

// Width returns the image width in pixels, or 0 without a bitmap.
func (b *ImageBacking) Width() int {
	if b.Bitmap == nil {
		return 0
	}
	return b.Bitmap.Width()
}

// Height returns the image height in pixels, or 0 without a bitmap.
func (b *ImageBacking) Height() int {
	if b.Bitmap == nil {
		return 0
	}
	return b.Bitmap.Height()
}

// ImageStore is the registry of directly composited images, independent of
// any layer. Layers reference entries by ImageID during sync; destroying an
// entry does not touch layers that already resolved it.
type ImageStore struct {
	images map[ImageID]*ImageBacking
}

// NewImageStore creates an empty registry.
func NewImageStore() *ImageStore {
	return &ImageStore{images: make(map[ImageID]*ImageBacking)}
}

// Create registers pixel content under the given ID and returns the new
// backing. Re-creating an existing ID replaces the old backing; the
// previous one is returned so the caller can release resources keyed to it.
func (s *ImageStore) Create(id ImageID, bitmap *render.Bitmap) (backing, replaced *ImageBacking) {
	replaced = s.images[id]
	backing = &ImageBacking{Bitmap: bitmap}
	s.images[id] = backing
	return backing, replaced
}

// Destroy removes the entry for id, returning the removed backing or nil
// for unknown IDs.
func (s *ImageStore) Destroy(id ImageID) *ImageBacking {
	b, ok := s.images[id]
	if !ok {
		return nil
	}
	delete(s.images, id)
	return b
}

// Get returns the backing for id, or nil when absent.
func (s *ImageStore) Get(id ImageID) *ImageBacking {
	return s.images[id]
}

// Len returns the number of registered images.
func (s *ImageStore) Len() int {
	return len(s.images)
}

// Each calls fn for every registered image in unspecified order.
func (s *ImageStore) Each(fn func(ImageID, *ImageBacking)) {
	for id, b := range s.images {
		fn(id, b)
	}
}

// Clear removes every entry.
func (s *ImageStore) Clear() {
	clear(s.images)
}
