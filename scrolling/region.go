package scrolling

import "image"

// Region is a set of page-coordinate rectangles. The page side uses it to
// mark the areas where wheel events must go to the main thread, because
// event handlers or subframes there need full hit-testing.
//
// Membership is tested rectangle by rectangle; the set is small (one entry
// per slow-scrolling element) and rebuilt wholesale on every state commit.
type Region struct {
	rects []image.Rectangle
}

// NewRegion creates a region from the given rectangles. Empty rectangles
// are dropped.
func NewRegion(rects ...image.Rectangle) Region {
	var r Region
	for _, rect := range rects {
		r.Add(rect)
	}
	return r
}

// Add unions a rectangle into the region. Empty rectangles are ignored.
func (r *Region) Add(rect image.Rectangle) {
	if rect.Empty() {
		return
	}
	r.rects = append(r.rects, rect)
}

// Contains reports whether a point falls inside the region.
func (r Region) Contains(p image.Point) bool {
	for _, rect := range r.rects {
		if p.In(rect) {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the region covers nothing.
func (r Region) IsEmpty() bool {
	return len(r.rects) == 0
}

// Len returns the number of rectangles in the region.
func (r Region) Len() int {
	return len(r.rects)
}

// Bounds returns the union bounds of the region, the zero rectangle when
// empty.
func (r Region) Bounds() image.Rectangle {
	var b image.Rectangle
	for _, rect := range r.rects {
		b = b.Union(rect)
	}
	return b
}

// Clone returns a copy that does not share storage with the receiver.
// Commits clone incoming regions so the page side can reuse its buffers.
func (r Region) Clone() Region {
	if len(r.rects) == 0 {
		return Region{}
	}
	out := make([]image.Rectangle, len(r.rects))
	copy(out, r.rects)
	return Region{rects: out}
}
