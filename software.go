package compositor

import (
	"errors"
	"image"
	"image/color"
	"time"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/compositor/render"
	"github.com/gogpu/compositor/scene"
)

// ErrNilTarget is returned when PaintSoftware is called without a target.
var ErrNilTarget = errors.New("compositor: nil render target")

// PaintSoftware applies pending updates and composites the mirrored tree
// into a CPU render target. Unlike the GPU path it scales content into the
// transformed bounds and honors per-layer opacity exactly, so it also
// serves snapshots and tests.
//
// The target is not cleared first; layers composite over whatever it holds.
func (c *Compositor) PaintSoftware(target render.RenderTarget) error {
	if target == nil {
		return ErrNilTarget
	}
	c.ApplyPendingUpdates()

	root := c.graph.RootLayer()
	if root == nil {
		return nil
	}

	dst := &image.RGBA{
		Pix:    target.Pixels(),
		Stride: target.Stride(),
		Rect:   image.Rect(0, 0, target.Width(), target.Height()),
	}

	err := c.walkLayers(root, scene.Identity(), 1, scene.Rect{}, false, func(v *paintVisit) error {
		c.drawLayerSoftware(dst, v)
		return nil
	})
	if err != nil {
		return err
	}

	if c.graph.HasRunningAnimations(time.Now()) {
		c.schedule()
	}
	return nil
}

func (c *Compositor) drawLayerSoftware(dst *image.RGBA, v *paintVisit) {
	l := v.Layer
	if !l.BackfaceVisible && isBackfacing(v.Transform) {
		return
	}

	// Clipping narrows the destination; draw routines clip against the
	// sub-image bounds.
	clipDst := dst
	if v.HasClip {
		clipDst = dst.SubImage(v.Clip.ImageRect().Intersect(dst.Rect)).(*image.RGBA)
	}

	if l.Backing != nil && l.DrawsContent {
		for _, id := range l.Backing.TileIDs() {
			tile, ok := l.Backing.Tile(id)
			if !ok {
				continue
			}
			bm := tile.Front()
			if bm == nil {
				continue
			}
			drawBitmap(clipDst, bm, tile.Source(), tileLayerRect(tile), v.Transform, v.Opacity)
		}
	}

	if l.Image != nil && l.Image.Bitmap != nil {
		cr := l.ContentsRect
		if cr.IsEmpty() {
			cr = scene.RectXYWH(0, 0, l.Size.Width, l.Size.Height)
		}
		drawBitmap(clipDst, l.Image.Bitmap, l.Image.Bitmap.RGBA().Bounds(), cr, v.Transform, v.Opacity)
	}
}

// drawBitmap composites src pixels onto dst, mapping the layer-coordinate
// rect through the cumulative transform. Unscaled translations take the
// direct blit path; everything else resamples.
func drawBitmap(dst *image.RGBA, bm *render.Bitmap, src image.Rectangle, layerRect scene.Rect, tf scene.Matrix, opacity float64) {
	dr := transformedBounds(tf, layerRect).ImageRect()
	if dr.Empty() || src.Empty() {
		return
	}
	srcImg := bm.RGBA()

	if tf.IsTranslation() && dr.Dx() == src.Dx() && dr.Dy() == src.Dy() {
		if opacity >= 1 {
			xdraw.Draw(dst, dr, srcImg, src.Min, xdraw.Over)
			return
		}
		mask := image.NewUniform(color.Alpha{A: opacityAlpha(opacity)})
		xdraw.DrawMask(dst, dr, srcImg, src.Min, mask, image.Point{}, xdraw.Over)
		return
	}

	var opts *xdraw.Options
	if opacity < 1 {
		opts = &xdraw.Options{
			SrcMask: image.NewUniform(color.Alpha{A: opacityAlpha(opacity)}),
		}
	}
	xdraw.ApproxBiLinear.Scale(dst, dr, srcImg, src, xdraw.Over, opts)
}

func opacityAlpha(opacity float64) uint8 {
	if opacity <= 0 {
		return 0
	}
	if opacity >= 1 {
		return 255
	}
	return uint8(opacity*255 + 0.5)
}
