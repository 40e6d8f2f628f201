// Command compdemo replays a synthetic layer tree through the compositor
// and saves the software-painted frame as a PNG.
package main

import (
	"flag"
	"image"
	"image/color"
	"image/png"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/render"
	"github.com/gogpu/compositor/scene"
)

func main() {
	var (
		width   = flag.Int("width", 800, "image width")
		height  = flag.Int("height", 600, "image height")
		output  = flag.String("output", "compdemo.png", "output file")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		compositor.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	c := compositor.New(compositor.Config{})
	defer c.Close()

	// Play the content-process role: build a frame and mark it rendered.
	produceFrame(c, *width, *height)

	target := render.NewPixmapTarget(*width, *height)
	if err := c.PaintSoftware(target); err != nil {
		log.Fatalf("Failed to paint: %v", err)
	}

	if err := savePNG(*output, target.Image()); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Demo saved to %s (%dx%d)\n", *output, *width, *height)
}

// Layer and resource identifiers of the synthetic frame.
const (
	rootLayer  scene.LayerID = 1
	pageLayer  scene.LayerID = 2
	badgeLayer scene.LayerID = 3
	cardLayer  scene.LayerID = 4

	badgeImage scene.ImageID = 1
)

// produceFrame enqueues one complete frame: a tiled gradient page, a
// directly composited badge image, and a rotated card, closed off with
// the frame barrier.
func produceFrame(c *compositor.Compositor, width, height int) {
	const tileSize = 256

	// Page content arrives as a grid of tiles.
	tile := scene.TileID(0)
	for y := 0; y < height; y += tileSize {
		for x := 0; x < width; x += tileSize {
			w := min(tileSize, width-x)
			h := min(tileSize, height-y)
			c.CreateTileForLayer(pageLayer, tile, scene.TileUpdate{
				Source: image.Rect(0, 0, w, h),
				Target: image.Rect(x, y, x+w, y+h),
				Scale:  1,
				Bitmap: gradientTile(w, h, y, height),
			})
			tile++
		}
	}

	c.CreateDirectlyCompositedImage(badgeImage, badgeBitmap(160))

	c.CreateTileForLayer(cardLayer, 0, scene.TileUpdate{
		Source: image.Rect(0, 0, 220, 140),
		Target: image.Rect(0, 0, 220, 140),
		Scale:  1,
		Bitmap: cardBitmap(220, 140),
	})

	c.SyncCompositingLayerState(scene.LayerInfo{
		ID:       rootLayer,
		Name:     "root",
		Size:     scene.Size{Width: float64(width), Height: float64(height)},
		Opacity:  1,
		IsRoot:   true,
		Children: []scene.LayerID{pageLayer, badgeLayer, cardLayer},
	})
	c.SyncCompositingLayerState(scene.LayerInfo{
		ID:           pageLayer,
		Name:         "page",
		Size:         scene.Size{Width: float64(width), Height: float64(height)},
		Opacity:      1,
		DrawsContent: true,
	})
	c.SyncCompositingLayerState(scene.LayerInfo{
		ID:           badgeLayer,
		Name:         "badge",
		Position:     scene.Pt(float64(width)-220, 60),
		Size:         scene.Size{Width: 160, Height: 160},
		Anchor:       scene.Pt(0.5, 0.5),
		Opacity:      0.9,
		ImageID:      badgeImage,
		ImageUpdated: true,
	})
	c.SyncCompositingLayerState(scene.LayerInfo{
		ID:           cardLayer,
		Name:         "card",
		Position:     scene.Pt(120, 320),
		Size:         scene.Size{Width: 220, Height: 140},
		Anchor:       scene.Pt(0.5, 0.5),
		Transform:    scene.Rotate(math.Pi / 12),
		Opacity:      1,
		DrawsContent: true,
	})
	c.SetRootCompositingLayer(rootLayer)
	c.DidRenderFrame()
}

// gradientTile rasterizes one tile of a page-high vertical gradient.
// y0 is the tile's offset so adjacent tiles blend seamlessly.
func gradientTile(w, h, y0, pageH int) *render.Bitmap {
	bm := render.NewBitmap(w, h)
	for y := 0; y < h; y++ {
		t := float64(y0+y) / float64(pageH)
		row := color.RGBA{
			R: uint8(25 + t*100),
			G: uint8(50 + t*75),
			B: uint8(100 + t*50),
			A: 255,
		}
		for x := 0; x < w; x++ {
			bm.SetPixel(x, y, row)
		}
	}
	return bm
}

// badgeBitmap rasterizes a ringed disc on a transparent background.
func badgeBitmap(size int) *render.Bitmap {
	bm := render.NewBitmap(size, size)
	center := float64(size) / 2
	outer := center - 2
	inner := outer - 12
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)+0.5-center, float64(y)+0.5-center)
			switch {
			case d > outer:
				// Transparent: the page shows through.
			case d > inner:
				bm.SetPixel(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
			default:
				bm.SetPixel(x, y, color.RGBA{R: 230, G: 126, B: 34, A: 255})
			}
		}
	}
	return bm
}

// cardBitmap rasterizes a bordered card with placeholder text bars.
func cardBitmap(w, h int) *render.Bitmap {
	bm := render.NewBitmap(w, h)
	bm.Fill(color.RGBA{R: 250, G: 250, B: 250, A: 255})

	border := color.RGBA{R: 60, G: 60, B: 70, A: 255}
	for x := 0; x < w; x++ {
		for _, y := range []int{0, 1, h - 2, h - 1} {
			bm.SetPixel(x, y, border)
		}
	}
	for y := 0; y < h; y++ {
		for _, x := range []int{0, 1, w - 2, w - 1} {
			bm.SetPixel(x, y, border)
		}
	}

	bar := color.RGBA{R: 150, G: 150, B: 160, A: 255}
	for i, barW := range []int{w - 40, w - 60, w / 2} {
		top := 24 + i*28
		for y := top; y < top+12; y++ {
			for x := 20; x < 20+barW; x++ {
				bm.SetPixel(x, y, bar)
			}
		}
	}
	return bm
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return png.Encode(f, img)
}
