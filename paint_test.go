package compositor

import (
	"errors"
	"image"
	"math"
	"testing"

	"github.com/gogpu/compositor/scene"
)

func TestPaintNilDrawContext(t *testing.T) {
	c := New(Config{})
	err := c.Paint(nil, scene.Identity(), 1, scene.Rect{})
	if !errors.Is(err, ErrNilDrawContext) {
		t.Errorf("Paint(nil) error = %v, want ErrNilDrawContext", err)
	}
}

func TestAnchoredTransform(t *testing.T) {
	id := scene.Identity()
	if got := anchoredTransform(id, scene.Pt(0.5, 0.5), scene.Size{Width: 10, Height: 10}); got != id {
		t.Errorf("anchoredTransform(identity) = %v, want identity", got)
	}

	rot := scene.Rotate(math.Pi / 2)
	if got := anchoredTransform(rot, scene.Pt(0, 0), scene.Size{Width: 10, Height: 10}); got != rot {
		t.Errorf("anchoredTransform(origin anchor) = %v, want unchanged", got)
	}

	// A centered anchor keeps the pivot fixed under the transform.
	m := anchoredTransform(rot, scene.Pt(0.5, 0.5), scene.Size{Width: 10, Height: 10})
	center := m.TransformPoint(scene.Pt(5, 5))
	if math.Abs(center.X-5) > 1e-9 || math.Abs(center.Y-5) > 1e-9 {
		t.Errorf("pivot moved to (%v, %v), want (5, 5)", center.X, center.Y)
	}
}

func TestTransformedBounds(t *testing.T) {
	r := scene.RectXYWH(0, 0, 10, 20)

	got := transformedBounds(scene.Translate(5, 5), r)
	want := scene.RectXYWH(5, 5, 10, 20)
	if got != want {
		t.Errorf("translated bounds = %v, want %v", got, want)
	}

	// A quarter turn swaps the extents.
	got = transformedBounds(scene.Rotate(math.Pi/2), r)
	if math.Abs(got.Width()-20) > 1e-9 || math.Abs(got.Height()-10) > 1e-9 {
		t.Errorf("rotated bounds %v, want 20x10 extents", got)
	}

	if got := transformedBounds(scene.Identity(), scene.Rect{}); !got.IsEmpty() {
		t.Errorf("bounds of empty rect = %v, want empty", got)
	}
}

func TestIsBackfacing(t *testing.T) {
	tests := []struct {
		name string
		m    scene.Matrix
		want bool
	}{
		{"identity", scene.Identity(), false},
		{"rotation", scene.Rotate(math.Pi / 3), false},
		{"mirror x", scene.Scale(-1, 1), true},
		{"mirror y", scene.Scale(1, -1), true},
		{"mirror both", scene.Scale(-1, -1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isBackfacing(tt.m); got != tt.want {
				t.Errorf("isBackfacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTileLayerRect(t *testing.T) {
	store := scene.NewBackingStore()
	store.CreateTile(1, 2)
	store.UpdateTile(1, scene.TileUpdate{
		Source: image.Rect(0, 0, 64, 64),
		Target: image.Rect(64, 32, 128, 96),
		Scale:  2,
	})
	store.SwapBuffers()
	tile, _ := store.Tile(1)

	got := tileLayerRect(tile)
	want := scene.RectXYWH(32, 16, 32, 32)
	if got != want {
		t.Errorf("tileLayerRect() = %v, want %v", got, want)
	}
}
