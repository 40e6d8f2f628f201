package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestPixmapTargetBasics(t *testing.T) {
	target := NewPixmapTarget(16, 8)

	if target.Width() != 16 || target.Height() != 8 {
		t.Errorf("size = %dx%d, want 16x8", target.Width(), target.Height())
	}
	if target.Format() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("Format() = %v, want RGBA8Unorm", target.Format())
	}
	if target.Pixels() == nil {
		t.Error("Pixels() returned nil for CPU target")
	}
	if target.Stride() != 16*4 {
		t.Errorf("Stride() = %d, want %d", target.Stride(), 16*4)
	}
}

func TestPixmapTargetClearAndPixels(t *testing.T) {
	target := NewPixmapTarget(4, 4)
	c := color.RGBA{R: 20, G: 40, B: 60, A: 255}
	target.Clear(c)

	if got := target.GetPixel(3, 3); got != c {
		t.Errorf("GetPixel(3, 3) = %v, want %v", got, c)
	}

	target.SetPixel(1, 1, color.RGBA{R: 99, A: 255})
	got := target.GetPixel(1, 1).(color.RGBA)
	if got.R != 99 {
		t.Errorf("GetPixel(1, 1).R = %d, want 99", got.R)
	}
}

func TestPixmapTargetFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 5, 5))
	target := NewPixmapTargetFromImage(img)

	// Shares memory with the wrapped image.
	target.SetPixel(2, 2, color.RGBA{B: 77, A: 255})
	if img.RGBAAt(2, 2).B != 77 {
		t.Error("target does not share memory with wrapped image")
	}
	if target.Image() != img {
		t.Error("Image() should return the wrapped image")
	}
}

func TestPixmapTargetResize(t *testing.T) {
	target := NewPixmapTarget(4, 4)
	target.Clear(color.RGBA{R: 255, A: 255})

	target.Resize(8, 2)
	if target.Width() != 8 || target.Height() != 2 {
		t.Errorf("size after Resize = %dx%d, want 8x2", target.Width(), target.Height())
	}
	// Contents are not preserved.
	if got := target.GetPixel(0, 0).(color.RGBA); got.R != 0 {
		t.Errorf("pixel after Resize = %v, want zero", got)
	}
}

func TestNullDeviceHandle(t *testing.T) {
	var h NullDeviceHandle

	if h.Device() != nil || h.Queue() != nil || h.Adapter() != nil {
		t.Error("NullDeviceHandle should return nil device, queue, and adapter")
	}
	if h.SurfaceFormat() != gputypes.TextureFormatUndefined {
		t.Errorf("SurfaceFormat() = %v, want Undefined", h.SurfaceFormat())
	}
}
