package compositor

import (
	"errors"
	"math"
	"time"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/compositor/internal/texture"
	"github.com/gogpu/compositor/scene"
)

// Painting errors.
var (
	// ErrNilDrawContext is returned when Paint is called without a draw
	// context.
	ErrNilDrawContext = errors.New("compositor: nil draw context")

	// ErrNoTextureCreator is returned when the draw context cannot create
	// textures.
	ErrNoTextureCreator = errors.New("compositor: draw context has no texture creator")

	// ErrInvalidTexture is returned when a realized texture does not
	// implement gpucontext.Texture.
	ErrInvalidTexture = errors.New("compositor: texture does not implement gpucontext.Texture")
)

// paintVisit carries the resolved paint state of one layer: cumulative
// transform, effective opacity, and accumulated clip in root coordinates.
type paintVisit struct {
	Layer     *scene.Layer
	Transform scene.Matrix
	Opacity   float64
	Clip      scene.Rect
	HasClip   bool
}

// walkLayers traverses the tree in paint order: each layer before its
// children, children in list order. Fully transparent and fully clipped
// subtrees are culled.
func (c *Compositor) walkLayers(l *scene.Layer, base scene.Matrix, opacity float64, clip scene.Rect, hasClip bool, visit func(*paintVisit) error) error {
	if l == nil {
		return nil
	}
	opacity *= l.Opacity
	if opacity <= 0 {
		return nil
	}

	tf := base.
		Multiply(scene.Translate(l.Position.X, l.Position.Y)).
		Multiply(anchoredTransform(l.Transform, l.Anchor, l.Size))

	if l.MasksToBounds {
		// Clip under rotation is approximated by the axis-aligned bounds
		// of the transformed layer rect.
		bounds := transformedBounds(tf, scene.RectXYWH(0, 0, l.Size.Width, l.Size.Height))
		if hasClip {
			clip = clip.Intersect(bounds)
		} else {
			clip, hasClip = bounds, true
		}
		if clip.IsEmpty() {
			return nil
		}
	}

	if err := visit(&paintVisit{Layer: l, Transform: tf, Opacity: opacity, Clip: clip, HasClip: hasClip}); err != nil {
		return err
	}

	childBase := tf.Multiply(anchoredTransform(l.ChildrenTransform, l.Anchor, l.Size))
	for i := 0; i < l.ChildCount(); i++ {
		child, ok := c.graph.Layer(l.ChildAt(i))
		if !ok {
			continue
		}
		if err := c.walkLayers(child, childBase, opacity, clip, hasClip, visit); err != nil {
			return err
		}
	}
	return nil
}

// anchoredTransform wraps a layer transform so it pivots around the
// layer's anchor point instead of its origin.
func anchoredTransform(t scene.Matrix, anchor scene.Point, size scene.Size) scene.Matrix {
	if t.IsIdentity() {
		return t
	}
	ax := anchor.X * size.Width
	ay := anchor.Y * size.Height
	if ax == 0 && ay == 0 {
		return t
	}
	return scene.Translate(ax, ay).Multiply(t).Multiply(scene.Translate(-ax, -ay))
}

// transformedBounds maps a rect through a transform and returns the
// axis-aligned bounds of the result.
func transformedBounds(m scene.Matrix, r scene.Rect) scene.Rect {
	if r.IsEmpty() {
		return scene.Rect{}
	}
	p1 := m.TransformPoint(scene.Pt(r.MinX, r.MinY))
	p2 := m.TransformPoint(scene.Pt(r.MaxX, r.MinY))
	p3 := m.TransformPoint(scene.Pt(r.MinX, r.MaxY))
	p4 := m.TransformPoint(scene.Pt(r.MaxX, r.MaxY))
	return scene.Rect{
		MinX: math.Min(math.Min(p1.X, p2.X), math.Min(p3.X, p4.X)),
		MinY: math.Min(math.Min(p1.Y, p2.Y), math.Min(p3.Y, p4.Y)),
		MaxX: math.Max(math.Max(p1.X, p2.X), math.Max(p3.X, p4.X)),
		MaxY: math.Max(math.Max(p1.Y, p2.Y), math.Max(p3.Y, p4.Y)),
	}
}

// isBackfacing reports whether a transform mirrors the plane, which is the
// 2D notion of showing a layer's back face.
func isBackfacing(m scene.Matrix) bool {
	return m.A*m.E-m.B*m.D < 0
}

// tileLayerRect returns the layer-coordinate rect a tile covers. Tile
// rects are stored in the contents-scaled space they were rasterized in.
func tileLayerRect(t *scene.Tile) scene.Rect {
	target := t.Target()
	s := t.Scale()
	if s <= 0 {
		s = 1
	}
	return scene.RectXYWH(
		float64(target.Min.X)/s,
		float64(target.Min.Y)/s,
		float64(target.Dx())/s,
		float64(target.Dy())/s,
	)
}

// Paint applies pending updates and draws the mirrored tree through a GPU
// draw context. transform, opacity, and clip apply to the whole scene; an
// empty clip means unclipped.
//
// Paint is safe to call before any content arrived; it draws nothing until
// a root layer is attached. GPU textures are realized lazily here, because
// this is the only point where a texture creator is available.
//
// DrawTexture places textures by translation only, so rotation and scale
// components position content by their translation but do not resample it.
// PaintSoftware composites those exactly.
//
// While animations are running, another update is scheduled after the
// frame so the host keeps painting.
func (c *Compositor) Paint(dc gpucontext.TextureDrawer, transform scene.Matrix, opacity float64, clip scene.Rect) error {
	if dc == nil {
		return ErrNilDrawContext
	}
	c.ApplyPendingUpdates()

	root := c.graph.RootLayer()
	if root == nil {
		return nil
	}

	creator := dc.TextureCreator()
	if creator == nil {
		return ErrNoTextureCreator
	}
	create := func(width, height int, data []byte) (any, error) {
		tex, err := creator.NewTextureFromRGBA(width, height, data)
		if err != nil {
			return nil, err
		}
		// Tile and image pixels arrive premultiplied; mark the texture so
		// the backend picks the matching blend pipeline.
		if pt, ok := tex.(interface{ SetPremultiplied(bool) }); ok {
			pt.SetPremultiplied(true)
		}
		return tex, nil
	}

	err := c.walkLayers(root, transform, opacity, clip, !clip.IsEmpty(), func(v *paintVisit) error {
		return c.drawLayerGPU(dc, create, v)
	})
	if err != nil {
		return err
	}

	if c.graph.HasRunningAnimations(time.Now()) {
		c.schedule()
	}
	return nil
}

func (c *Compositor) drawLayerGPU(dc gpucontext.TextureDrawer, create texture.CreateFunc, v *paintVisit) error {
	l := v.Layer
	if !l.BackfaceVisible && isBackfacing(v.Transform) {
		return nil
	}

	if l.Backing != nil && l.DrawsContent {
		for _, id := range l.Backing.TileIDs() {
			tile, ok := l.Backing.Tile(id)
			if !ok {
				continue
			}
			h, err := c.textures.EnsureTile(texture.TileKey{Layer: l.ID(), Tile: id}, tile, create)
			if err != nil {
				return err
			}
			if h == nil {
				continue
			}
			rect := transformedBounds(v.Transform, tileLayerRect(tile))
			if v.HasClip && rect.Intersect(v.Clip).IsEmpty() {
				continue
			}
			if err := drawTexture(dc, h, float32(rect.MinX), float32(rect.MinY)); err != nil {
				return err
			}
		}
	}

	// Directly composited image content draws independently of
	// DrawsContent, which only gates tile-backed content.
	if l.Image != nil {
		h, err := c.textures.EnsureImage(l.ImageID, l.Image, create)
		if err != nil {
			return err
		}
		if h != nil {
			cr := l.ContentsRect
			if cr.IsEmpty() {
				cr = scene.RectXYWH(0, 0, l.Size.Width, l.Size.Height)
			}
			rect := transformedBounds(v.Transform, cr)
			if !v.HasClip || !rect.Intersect(v.Clip).IsEmpty() {
				if err := drawTexture(dc, h, float32(rect.MinX), float32(rect.MinY)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func drawTexture(dc gpucontext.TextureDrawer, h *texture.Handle, x, y float32) error {
	gpuTex, ok := h.Texture().(gpucontext.Texture)
	if !ok {
		return ErrInvalidTexture
	}
	return dc.DrawTexture(gpuTex, x, y)
}
